// Package sharepoint provides an authenticated REST session against a
// SharePoint Online site.
//
// This package provides:
//   - Azure AD token acquisition for a site (password grant, or a pre-acquired token)
//   - User realm discovery ahead of the password grant
//   - Rate limiting for SharePoint REST requests
//   - Error handling for SharePoint REST responses
//   - List and field enumeration and date/time field updates
//
// # Authentication
//
// Tokens are requested from the Azure AD v2.0 endpoint for the site's host:
//   - Token URL: https://login.microsoftonline.com/{tenant}/oauth2/v2.0/token
//   - Scope: https://{tenant}.sharepoint.com/.default
//
// The login name is checked with GetUserRealm.srf first so an unknown account
// fails before any password is sent.
//
// # REST Endpoints
//
//   - Probe: {site}/_api/web
//   - Lists: {site}/_api/web/lists
//   - Fields: {site}/_api/web/lists(guid'{id}')/fields
//   - Update: POST {site}/_api/web/lists(guid'{id}')/fields(guid'{id}') with X-HTTP-Method: MERGE
//
// Collections are read with odata=nometadata and follow odata.nextLink until
// the service stops returning one.
//
// # Rate Limits
//
// SharePoint Online throttles per user and per app. Requests are paced with a
// token bucket, and a 429 response blocks further requests until Retry-After.
// Throttled requests are not retried.
package sharepoint
