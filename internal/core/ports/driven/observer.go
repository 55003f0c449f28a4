package driven

import "github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"

// ChangeObserver receives per-field diagnostics while a run is in progress.
type ChangeObserver interface {
	// BeforeChange is called with the value read from the service, ahead of the write.
	BeforeChange(change domain.FieldChange)
	// AfterChange is called once the write has been committed.
	AfterChange(change domain.FieldChange)
}
