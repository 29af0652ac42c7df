package gist

import "github.com/spf13/cobra"

const (
	groupUseConstant      = "gist"
	groupShortDescription = "Manage the user's gists"
	groupLongDescription  = "gist groups subcommands that list, create, and delete gists owned by the authenticated user."
)

// CommandGroupBuilder assembles the gist command group.
type CommandGroupBuilder struct {
	LoggerProvider      LoggerProvider
	GistServiceProvider GistServiceProvider
}

// Build constructs the gist command hierarchy.
func (builder *CommandGroupBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescription,
		Long:  groupLongDescription,
	}

	listBuilder := ListCommandBuilder{LoggerProvider: builder.LoggerProvider, GistServiceProvider: builder.GistServiceProvider}
	if listCommand, listError := listBuilder.Build(); listError == nil {
		command.AddCommand(listCommand)
	}

	publicBuilder := CreateCommandBuilder{LoggerProvider: builder.LoggerProvider, GistServiceProvider: builder.GistServiceProvider, PublicVisibility: true}
	if publicCommand, publicError := publicBuilder.Build(); publicError == nil {
		command.AddCommand(publicCommand)
	}

	secretBuilder := CreateCommandBuilder{LoggerProvider: builder.LoggerProvider, GistServiceProvider: builder.GistServiceProvider, PublicVisibility: false}
	if secretCommand, secretError := secretBuilder.Build(); secretError == nil {
		command.AddCommand(secretCommand)
	}

	deleteBuilder := DeleteCommandBuilder{LoggerProvider: builder.LoggerProvider, GistServiceProvider: builder.GistServiceProvider}
	if deleteCommand, deleteError := deleteBuilder.Build(); deleteError == nil {
		command.AddCommand(deleteCommand)
	}

	return command, nil
}
