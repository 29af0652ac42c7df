package repo

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/ghops/internal/execshell"
	"github.com/temirov/ghops/internal/githubapi"
	"github.com/temirov/ghops/internal/gitrepo"
)

// Sentinel errors raised when a builder is missing collaborators.
var (
	ErrRepositoryServiceNotConfigured = errors.New("repo command requires a repository service provider")
	ErrUsernameProviderNotConfigured  = errors.New("repo command requires a username provider")
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// UsernameProvider resolves the account the command operates on.
type UsernameProvider func() (string, error)

// RepositoryServiceProvider supplies an authenticated repository service.
type RepositoryServiceProvider func(executionContext context.Context) (RepositoryService, error)

// LocalServiceProvider supplies the local git service used by push, tree, and diff.
type LocalServiceProvider func(logger *zap.Logger) (LocalService, error)

// RepositoryService covers the GitHub repository operations used by the group.
type RepositoryService interface {
	ListRepositories(executionContext context.Context) ([]githubapi.Repository, error)
	CreateRepository(executionContext context.Context, repositoryName string, repositoryDescription string, privateVisibility bool) (githubapi.Repository, error)
	DeleteRepository(executionContext context.Context, repositoryOwner string, repositoryName string) error
	SetRepositoryVisibility(executionContext context.Context, repositoryOwner string, repositoryName string, privateVisibility bool) (githubapi.Repository, error)
	RenameRepository(executionContext context.Context, repositoryOwner string, currentRepositoryName string, updatedRepositoryName string) (githubapi.Repository, error)
	EnablePages(executionContext context.Context, repositoryOwner string, repositoryName string, sourceBranch string, sourcePath string) (githubapi.PagesSite, error)
}

// LocalService covers the local git operations used by the group.
type LocalService interface {
	PushCurrentBranch(executionContext context.Context, repositoryPath string, remoteName string) error
	ListTrackedFiles(executionContext context.Context, repositoryPath string) ([]string, error)
	WorkingTreeDiff(executionContext context.Context, repositoryPath string) (string, error)
}

func resolveLogger(loggerProvider LoggerProvider) *zap.Logger {
	if loggerProvider == nil {
		return zap.NewNop()
	}
	logger := loggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveLocalService(localServiceProvider LocalServiceProvider, logger *zap.Logger) (LocalService, error) {
	if localServiceProvider != nil {
		return localServiceProvider(logger)
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner)
	if executorError != nil {
		return nil, executorError
	}

	return gitrepo.NewRepositoryManager(shellExecutor)
}

func resolveConfiguration(configurationProvider func() Configuration) Configuration {
	if configurationProvider == nil {
		return DefaultConfiguration()
	}
	return configurationProvider().sanitize()
}

func workingDirectoryPath() (string, error) {
	return os.Getwd()
}
