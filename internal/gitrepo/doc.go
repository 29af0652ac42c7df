// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for pushing, listing tracked files, diffing,
// and switching the global identity, along with remote URL parsing and
// formatting utilities consumed by the release workflow.
package gitrepo
