// Package release implements the release command, which publishes the
// working repository as a single synthetic commit.
package release
