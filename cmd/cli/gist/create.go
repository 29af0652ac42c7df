package gist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const (
	publicCommandUseConstant              = "public FILE [DESCRIPTION]"
	publicCommandShortDescriptionConstant = "Create a public gist from a local file"
	secretCommandUseConstant              = "secret FILE [DESCRIPTION]"
	secretCommandShortDescriptionConstant = "Create a secret gist from a local file"
	createArgumentsMessageConstant        = "gist creation requires a local file path"
	descriptionJoinSeparatorConstant      = " "
	gistFileReadErrorTemplateConstant     = "unable to read gist file: %w"
)

// CreateCommandBuilder assembles the gist public and gist secret commands.
type CreateCommandBuilder struct {
	LoggerProvider      LoggerProvider
	GistServiceProvider GistServiceProvider
	PublicVisibility    bool
}

// Build constructs the creation command for the configured visibility.
func (builder *CreateCommandBuilder) Build() (*cobra.Command, error) {
	commandUse := secretCommandUseConstant
	commandShort := secretCommandShortDescriptionConstant
	if builder.PublicVisibility {
		commandUse = publicCommandUseConstant
		commandShort = publicCommandShortDescriptionConstant
	}

	command := &cobra.Command{
		Use:   commandUse,
		Short: commandShort,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CreateCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		return errors.New(createArgumentsMessageConstant)
	}
	if builder.GistServiceProvider == nil {
		return ErrGistServiceNotConfigured
	}

	gistFilePath := arguments[0]
	gistDescription := strings.Join(arguments[1:], descriptionJoinSeparatorConstant)

	gistFileContent, readError := os.ReadFile(gistFilePath)
	if readError != nil {
		return fmt.Errorf(gistFileReadErrorTemplateConstant, readError)
	}

	gistService, serviceError := builder.GistServiceProvider(command.Context())
	if serviceError != nil {
		return serviceError
	}

	createdGist, createError := gistService.CreateGist(command.Context(), filepath.Base(gistFilePath), string(gistFileContent), gistDescription, builder.PublicVisibility)
	if createError != nil {
		return createError
	}

	fmt.Fprintln(command.OutOrStdout(), createdGist.HTMLURL)

	return nil
}
