package account

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/ghops/internal/execshell"
	"github.com/temirov/ghops/internal/githubapi"
	"github.com/temirov/ghops/internal/gitrepo"
	"github.com/temirov/ghops/internal/status"
)

// Sentinel errors raised when a builder is missing collaborators.
var (
	ErrAccountServiceNotConfigured = errors.New("account command requires an account service provider")
	ErrUsernameProviderNotSet      = errors.New("account command requires a username provider")
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// UsernameProvider resolves the account the command operates on.
type UsernameProvider func() (string, error)

// AccountServiceProvider supplies an account service authenticated for the
// given username.
type AccountServiceProvider func(executionContext context.Context, username string) (AccountService, error)

// IdentityServiceProvider supplies the git identity service used by iam.
type IdentityServiceProvider func(logger *zap.Logger) (IdentityService, error)

// StatusFeedProvider supplies the public status feed client.
type StatusFeedProvider func() StatusFeed

// AccountService covers the account-level GitHub operations.
type AccountService interface {
	NoReplyEmail(executionContext context.Context) (string, error)
	AuthenticatedUser(executionContext context.Context) (githubapi.Account, error)
}

// IdentityService switches the global git identity.
type IdentityService interface {
	SetGlobalIdentity(executionContext context.Context, userName string, userEmail string) error
}

// StatusFeed reports the public GitHub status summary.
type StatusFeed interface {
	Summary(executionContext context.Context) (status.FeedSummary, error)
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

func resolveIdentityService(identityServiceProvider IdentityServiceProvider, logger *zap.Logger) (IdentityService, error) {
	if identityServiceProvider != nil {
		return identityServiceProvider(logger)
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner)
	if executorError != nil {
		return nil, executorError
	}

	return gitrepo.NewRepositoryManager(shellExecutor)
}

func resolveStatusFeed(statusFeedProvider StatusFeedProvider) StatusFeed {
	if statusFeedProvider != nil {
		return statusFeedProvider()
	}
	return status.NewFeedClient(nil, status.DefaultFeedURL)
}
