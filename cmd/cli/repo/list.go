package repo

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	listCommandUseConstant              = "list"
	listCommandShortDescriptionConstant = "List the authenticated user's repositories"
	listUnexpectedArgumentsMessage      = "repo list does not accept positional arguments"
	repositoryLineTemplateConstant      = "%s\t%s\n"
	privateVisibilityLabelConstant      = "private"
	publicVisibilityLabelConstant       = "public"
)

// ListCommandBuilder assembles the repo list command.
type ListCommandBuilder struct {
	LoggerProvider            LoggerProvider
	RepositoryServiceProvider RepositoryServiceProvider
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
	if builder.RepositoryServiceProvider == nil {
		return ErrRepositoryServiceNotConfigured
	}

	repositoryService, serviceError := builder.RepositoryServiceProvider(command.Context())
	if serviceError != nil {
		return serviceError
	}

	repositories, listError := repositoryService.ListRepositories(command.Context())
	if listError != nil {
		return listError
	}

	for _, repository := range repositories {
		visibilityLabel := publicVisibilityLabelConstant
		if repository.Private {
			visibilityLabel = privateVisibilityLabelConstant
		}
		fmt.Fprintf(command.OutOrStdout(), repositoryLineTemplateConstant, repository.FullName, visibilityLabel)
	}

	return nil
}
