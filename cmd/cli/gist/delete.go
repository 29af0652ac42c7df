package gist

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	deleteCommandUseConstant              = "delete ID"
	deleteCommandShortDescriptionConstant = "Delete one of the user's gists"
	deleteArgumentsMessageConstant        = "gist delete requires exactly one gist identifier"
	deletedMessageTemplateConstant        = "Deleted gist %s\n"
)

// DeleteCommandBuilder assembles the gist delete command.
type DeleteCommandBuilder struct {
	LoggerProvider      LoggerProvider
	GistServiceProvider GistServiceProvider
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
	if builder.GistServiceProvider == nil {
		return ErrGistServiceNotConfigured
	}

	gistService, serviceError := builder.GistServiceProvider(command.Context())
	if serviceError != nil {
		return serviceError
	}

	if deleteError := gistService.DeleteGist(command.Context(), arguments[0]); deleteError != nil {
		return deleteError
	}

	fmt.Fprintf(command.OutOrStdout(), deletedMessageTemplateConstant, arguments[0])

	return nil
}
