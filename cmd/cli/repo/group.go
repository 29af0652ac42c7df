package repo

import "github.com/spf13/cobra"

const (
	groupUseConstant      = "repo"
	groupShortDescription = "Manage the user's GitHub repositories and the working repository"
	groupLongDescription  = "repo groups repository management subcommands: GitHub repository lifecycle operations plus local push, tree, and diff helpers."
)

// CommandGroupBuilder assembles the repo command group.
type CommandGroupBuilder struct {
	LoggerProvider            LoggerProvider
	UsernameProvider          UsernameProvider
	RepositoryServiceProvider RepositoryServiceProvider
	LocalServiceProvider      LocalServiceProvider
	ConfigurationProvider     func() Configuration
}

// Build constructs the repo command hierarchy.
func (builder *CommandGroupBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescription,
		Long:  groupLongDescription,
	}

	listBuilder := ListCommandBuilder{LoggerProvider: builder.LoggerProvider, RepositoryServiceProvider: builder.RepositoryServiceProvider}
	if listCommand, listError := listBuilder.Build(); listError == nil {
		command.AddCommand(listCommand)
	}

	createBuilder := CreateCommandBuilder{LoggerProvider: builder.LoggerProvider, RepositoryServiceProvider: builder.RepositoryServiceProvider}
	if createCommand, createError := createBuilder.Build(); createError == nil {
		command.AddCommand(createCommand)
	}

	deleteBuilder := DeleteCommandBuilder{LoggerProvider: builder.LoggerProvider, UsernameProvider: builder.UsernameProvider, RepositoryServiceProvider: builder.RepositoryServiceProvider}
	if deleteCommand, deleteError := deleteBuilder.Build(); deleteError == nil {
		command.AddCommand(deleteCommand)
	}

	publicBuilder := VisibilityCommandBuilder{LoggerProvider: builder.LoggerProvider, UsernameProvider: builder.UsernameProvider, RepositoryServiceProvider: builder.RepositoryServiceProvider, PrivateVisibility: false}
	if publicCommand, publicError := publicBuilder.Build(); publicError == nil {
		command.AddCommand(publicCommand)
	}

	privateBuilder := VisibilityCommandBuilder{LoggerProvider: builder.LoggerProvider, UsernameProvider: builder.UsernameProvider, RepositoryServiceProvider: builder.RepositoryServiceProvider, PrivateVisibility: true}
	if privateCommand, privateError := privateBuilder.Build(); privateError == nil {
		command.AddCommand(privateCommand)
	}

	renameBuilder := RenameCommandBuilder{LoggerProvider: builder.LoggerProvider, UsernameProvider: builder.UsernameProvider, RepositoryServiceProvider: builder.RepositoryServiceProvider}
	if renameCommand, renameError := renameBuilder.Build(); renameError == nil {
		command.AddCommand(renameCommand)
	}

	pagesBuilder := PagesCommandBuilder{LoggerProvider: builder.LoggerProvider, UsernameProvider: builder.UsernameProvider, RepositoryServiceProvider: builder.RepositoryServiceProvider, ConfigurationProvider: builder.ConfigurationProvider}
	if pagesCommand, pagesError := pagesBuilder.Build(); pagesError == nil {
		command.AddCommand(pagesCommand)
	}

	pushBuilder := PushCommandBuilder{LoggerProvider: builder.LoggerProvider, LocalServiceProvider: builder.LocalServiceProvider, ConfigurationProvider: builder.ConfigurationProvider}
	if pushCommand, pushError := pushBuilder.Build(); pushError == nil {
		command.AddCommand(pushCommand)
	}

	treeBuilder := TreeCommandBuilder{LoggerProvider: builder.LoggerProvider, LocalServiceProvider: builder.LocalServiceProvider}
	if treeCommand, treeError := treeBuilder.Build(); treeError == nil {
		command.AddCommand(treeCommand)
	}

	diffBuilder := DiffCommandBuilder{LoggerProvider: builder.LoggerProvider, LocalServiceProvider: builder.LocalServiceProvider}
	if diffCommand, diffError := diffBuilder.Build(); diffError == nil {
		command.AddCommand(diffCommand)
	}

	return command, nil
}
