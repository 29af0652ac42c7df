package repo

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	renameCommandUseConstant              = "rename OLD NEW"
	renameCommandShortDescriptionConstant = "Rename one of the user's repositories"
	renameArgumentsMessageConstant        = "repo rename requires the current and the new repository name"
	renamedMessageTemplateConstant        = "Renamed %s to %s\n"
)

// RenameCommandBuilder assembles the repo rename command.
type RenameCommandBuilder struct {
	LoggerProvider            LoggerProvider
	UsernameProvider          UsernameProvider
	RepositoryServiceProvider RepositoryServiceProvider
}

// Build constructs the rename command.
func (builder *RenameCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   renameCommandUseConstant,
		Short: renameCommandShortDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *RenameCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) != 2 {
		return errors.New(renameArgumentsMessageConstant)
	}
	if builder.RepositoryServiceProvider == nil {
		return ErrRepositoryServiceNotConfigured
	}
	if builder.UsernameProvider == nil {
		return ErrUsernameProviderNotConfigured
	}

	username, usernameError := builder.UsernameProvider()
	if usernameError != nil {
		return usernameError
	}

	repositoryService, serviceError := builder.RepositoryServiceProvider(command.Context())
	if serviceError != nil {
		return serviceError
	}

	renamedRepository, renameError := repositoryService.RenameRepository(command.Context(), username, arguments[0], arguments[1])
	if renameError != nil {
		return renameError
	}

	fmt.Fprintf(command.OutOrStdout(), renamedMessageTemplateConstant, arguments[0], renamedRepository.FullName)

	return nil
}
