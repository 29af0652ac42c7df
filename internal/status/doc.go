// Package status reports service health for the ghops CLI: the validity of
// the resolved token and the public GitHub status feed summary.
package status
