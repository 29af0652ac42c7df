package gist

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/ghops/internal/githubapi"
)

// ErrGistServiceNotConfigured is raised when a builder lacks a service provider.
var ErrGistServiceNotConfigured = errors.New("gist command requires a gist service provider")

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// GistServiceProvider supplies an authenticated gist service.
type GistServiceProvider func(executionContext context.Context) (GistService, error)

// GistService covers the gist operations used by the group.
type GistService interface {
	ListGists(executionContext context.Context) ([]githubapi.Gist, error)
	CreateGist(executionContext context.Context, gistFileName string, gistFileContent string, gistDescription string, publicVisibility bool) (githubapi.Gist, error)
	DeleteGist(executionContext context.Context, gistIdentifier string) error
}
