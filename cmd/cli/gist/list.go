package gist

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	listCommandUseConstant              = "list"
	listCommandShortDescriptionConstant = "List the user's gists"
	listUnexpectedArgumentsMessage      = "gist list does not accept positional arguments"
	gistLineTemplateConstant            = "%s\t%s\t%s\n"
	publicVisibilityLabelConstant       = "public"
	secretVisibilityLabelConstant       = "secret"
)

// ListCommandBuilder assembles the gist list command.
type ListCommandBuilder struct {
	LoggerProvider      LoggerProvider
	GistServiceProvider GistServiceProvider
}

// Build constructs the list command.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   listCommandUseConstant,
		Short: listCommandShortDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *ListCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(listUnexpectedArgumentsMessage)
	}
	if builder.GistServiceProvider == nil {
		return ErrGistServiceNotConfigured
	}

	gistService, serviceError := builder.GistServiceProvider(command.Context())
	if serviceError != nil {
		return serviceError
	}

	gists, listError := gistService.ListGists(command.Context())
	if listError != nil {
		return listError
	}

	for _, gist := range gists {
		visibilityLabel := secretVisibilityLabelConstant
		if gist.Public {
			visibilityLabel = publicVisibilityLabelConstant
		}
		fmt.Fprintf(command.OutOrStdout(), gistLineTemplateConstant, gist.Identifier, visibilityLabel, gist.Description)
	}

	return nil
}
