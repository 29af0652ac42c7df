// Package account implements the account-level commands: noreply, iam, and
// status.
package account
