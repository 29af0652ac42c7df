package repo

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	publicCommandUseConstant               = "public NAME"
	publicCommandShortDescriptionConstant  = "Make one of the user's repositories public"
	privateCommandUseConstant              = "private NAME"
	privateCommandShortDescriptionConstant = "Make one of the user's repositories private"
	visibilityArgumentsMessageConstant     = "repo visibility commands require exactly one repository name"
	visibilityMessageTemplateConstant      = "%s is now %s\n"
)

// VisibilityCommandBuilder assembles the repo public and repo private commands.
type VisibilityCommandBuilder struct {
	LoggerProvider            LoggerProvider
	UsernameProvider          UsernameProvider
	RepositoryServiceProvider RepositoryServiceProvider
	PrivateVisibility         bool
}

// Build constructs the visibility command for the configured target state.
func (builder *VisibilityCommandBuilder) Build() (*cobra.Command, error) {
	commandUse := publicCommandUseConstant
	commandShort := publicCommandShortDescriptionConstant
	if builder.PrivateVisibility {
		commandUse = privateCommandUseConstant
		commandShort = privateCommandShortDescriptionConstant
	}

	command := &cobra.Command{
		Use:   commandUse,
		Short: commandShort,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *VisibilityCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errors.New(visibilityArgumentsMessageConstant)
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

	updatedRepository, visibilityError := repositoryService.SetRepositoryVisibility(command.Context(), username, arguments[0], builder.PrivateVisibility)
	if visibilityError != nil {
		return visibilityError
	}

	visibilityLabel := publicVisibilityLabelConstant
	if updatedRepository.Private {
		visibilityLabel = privateVisibilityLabelConstant
	}
	fmt.Fprintf(command.OutOrStdout(), visibilityMessageTemplateConstant, updatedRepository.FullName, visibilityLabel)

	return nil
}
