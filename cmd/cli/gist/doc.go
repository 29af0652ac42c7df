// Package gist implements the gist command group for listing, creating, and
// deleting gists.
package gist
