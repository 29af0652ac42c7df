package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/ghops/internal/githubapi"
)

const (
	createCommandUseConstant              = "create NAME [DESCRIPTION]"
	createCommandNameConstant             = "create"
	createCommandShortDescriptionConstant = "Create a repository for the authenticated user"
	createArgumentsMessageConstant        = "repo create requires a repository name"
	privateFlagNameConstant               = "private"
	privateFlagDescriptionConstant        = "Create the repository with private visibility"
	descriptionJoinSeparatorConstant      = " "
)

// CreateCommandBuilder assembles the repo create command.
type CreateCommandBuilder struct {
	LoggerProvider            LoggerProvider
	RepositoryServiceProvider RepositoryServiceProvider
}

// Build constructs the create command.
func (builder *CreateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   createCommandUseConstant,
		Short: createCommandShortDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().Bool(privateFlagNameConstant, false, privateFlagDescriptionConstant)

	return command, nil
}

func (builder *CreateCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		return errors.New(createArgumentsMessageConstant)
	}
	if builder.RepositoryServiceProvider == nil {
		return ErrRepositoryServiceNotConfigured
	}

	repositoryName := arguments[0]
	repositoryDescription := strings.Join(arguments[1:], descriptionJoinSeparatorConstant)
	privateVisibility, _ := command.Flags().GetBool(privateFlagNameConstant)

	repositoryService, serviceError := builder.RepositoryServiceProvider(command.Context())
	if serviceError != nil {
		return serviceError
	}

	createdRepository, createError := repositoryService.CreateRepository(command.Context(), repositoryName, repositoryDescription, privateVisibility)
	if createError != nil {
		fmt.Fprintln(command.OutOrStdout(), githubapi.ServiceMessage(createError))
		return createError
	}

	fmt.Fprintln(command.OutOrStdout(), createdRepository.HTMLURL)

	return nil
}
