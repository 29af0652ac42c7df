package repo

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	pagesCommandUseConstant              = "pages NAME [BRANCH [PATH]]"
	pagesCommandShortDescriptionConstant = "Enable GitHub Pages for one of the user's repositories"
	pagesArgumentsMessageConstant        = "repo pages requires a repository name"
)

// PagesCommandBuilder assembles the repo pages command.
type PagesCommandBuilder struct {
	LoggerProvider            LoggerProvider
	UsernameProvider          UsernameProvider
	RepositoryServiceProvider RepositoryServiceProvider
	ConfigurationProvider     func() Configuration
}

// Build constructs the pages command.
func (builder *PagesCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   pagesCommandUseConstant,
		Short: pagesCommandShortDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *PagesCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 || len(arguments) > 3 {
		return errors.New(pagesArgumentsMessageConstant)
	}
	if builder.RepositoryServiceProvider == nil {
		return ErrRepositoryServiceNotConfigured
	}
	if builder.UsernameProvider == nil {
		return ErrUsernameProviderNotConfigured
	}

	configuration := resolveConfiguration(builder.ConfigurationProvider)
	sourceBranch := configuration.Pages.Branch
	sourcePath := configuration.Pages.Path
	if len(arguments) > 1 {
		sourceBranch = arguments[1]
	}
	if len(arguments) > 2 {
		sourcePath = arguments[2]
	}

	username, usernameError := builder.UsernameProvider()
	if usernameError != nil {
		return usernameError
	}

	repositoryService, serviceError := builder.RepositoryServiceProvider(command.Context())
	if serviceError != nil {
		return serviceError
	}

	pagesSite, enableError := repositoryService.EnablePages(command.Context(), username, arguments[0], sourceBranch, sourcePath)
	if enableError != nil {
		return enableError
	}

	fmt.Fprintln(command.OutOrStdout(), pagesSite.HTMLURL)

	return nil
}
