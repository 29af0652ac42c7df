// Package releases publishes a working repository as a single synthetic
// commit.
//
// The service archives HEAD, re-creates history in a scratch directory, and
// force-pushes the result so the published repository always carries exactly
// one commit with a fixed timestamp.
package releases
