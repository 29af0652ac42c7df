package release

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ghops/internal/execshell"
	"github.com/temirov/ghops/internal/releases"
)

const (
	commandUseConstant              = "release REPO"
	commandShortDescriptionConstant = "Publish the working repository as a single synthetic commit"
	commandLongDescriptionConstant  = "release archives HEAD of the working repository, rebuilds its history as one commit with a fixed timestamp, and force-pushes the result to USER/REPO."
	argumentsMessageConstant        = "release requires exactly one repository name"
	releasedMessageTemplateConstant = "Released %s to %s\n"
)

// ErrUsernameProviderNotConfigured is raised when the builder lacks a username provider.
var ErrUsernameProviderNotConfigured = errors.New("release command requires a username provider")

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// UsernameProvider resolves the account that owns the target repository.
type UsernameProvider func() (string, error)

// PublisherProvider supplies the release publisher.
type PublisherProvider func(logger *zap.Logger) (Publisher, error)

// Publisher executes the release sequence.
type Publisher interface {
	Release(executionContext context.Context, options releases.Options) (releases.Result, error)
}

// CommandBuilder assembles the release command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	UsernameProvider      UsernameProvider
	PublisherProvider     PublisherProvider
	ConfigurationProvider func() Configuration
}

// Build constructs the release command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errors.New(argumentsMessageConstant)
	}
	if builder.UsernameProvider == nil {
		return ErrUsernameProviderNotConfigured
	}

	username, usernameError := builder.UsernameProvider()
	if usernameError != nil {
		return usernameError
	}

	repositoryPath, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return workingDirectoryError
	}

	publisher, publisherError := builder.resolvePublisher()
	if publisherError != nil {
		return publisherError
	}

	configuration := builder.resolveConfiguration()
	releaseResult, releaseError := publisher.Release(command.Context(), releases.Options{
		RepositoryPath:  repositoryPath,
		Username:        username,
		RepositoryName:  arguments[0],
		RemoteName:      configuration.Remote,
		BranchReference: configuration.Branch,
		CommitMessage:   configuration.CommitMessage,
	})
	if releaseError != nil {
		return releaseError
	}

	fmt.Fprintf(command.OutOrStdout(), releasedMessageTemplateConstant, releaseResult.RepositoryPath, releaseResult.RemoteURL)

	return nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolvePublisher() (Publisher, error) {
	logger := builder.resolveLogger()
	if builder.PublisherProvider != nil {
		return builder.PublisherProvider(logger)
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner)
	if executorError != nil {
		return nil, executorError
	}

	return releases.NewService(releases.ServiceDependencies{
		GitExecutor: shellExecutor,
		TarExecutor: shellExecutor,
	})
}
