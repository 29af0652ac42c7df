package repo

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	deleteCommandUseConstant              = "delete NAME"
	deleteCommandShortDescriptionConstant = "Delete one of the user's repositories"
	deleteArgumentsMessageConstant        = "repo delete requires exactly one repository name"
	deletedMessageTemplateConstant        = "Deleted %s/%s\n"
)

// DeleteCommandBuilder assembles the repo delete command.
type DeleteCommandBuilder struct {
	LoggerProvider            LoggerProvider
	UsernameProvider          UsernameProvider
	RepositoryServiceProvider RepositoryServiceProvider
}

// Build constructs the delete command.
func (builder *DeleteCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   deleteCommandUseConstant,
		Short: deleteCommandShortDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *DeleteCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errors.New(deleteArgumentsMessageConstant)
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

	if deleteError := repositoryService.DeleteRepository(command.Context(), username, arguments[0]); deleteError != nil {
		return deleteError
	}

	fmt.Fprintf(command.OutOrStdout(), deletedMessageTemplateConstant, username, arguments[0])

	return nil
}
