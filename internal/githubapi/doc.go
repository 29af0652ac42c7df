// Package githubapi wraps the GitHub REST API operations used by ghops.
//
// It builds a typed client from a personal access token via go-github and
// oauth2, exposes one method per CLI operation, and normalizes service
// failures so commands can surface the API's own message text.
package githubapi
