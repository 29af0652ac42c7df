// Package repo implements the repo command group: GitHub repository
// management plus local push, tree, and diff helpers.
package repo
