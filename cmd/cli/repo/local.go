package repo

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	pushCommandUseConstant              = "push"
	pushCommandShortDescriptionConstant = "Push the current branch of the working repository"
	pushedMessageTemplateConstant       = "Pushed %s to %s\n"
	treeCommandUseConstant              = "tree"
	treeCommandShortDescriptionConstant = "List the files tracked at HEAD of the working repository"
	diffCommandUseConstant              = "diff"
	diffCommandShortDescriptionConstant = "Show the working tree diff"
	localUnexpectedArgumentsMessage     = "local repo commands do not accept positional arguments"
)

// PushCommandBuilder assembles the repo push command.
type PushCommandBuilder struct {
	LoggerProvider        LoggerProvider
	LocalServiceProvider  LocalServiceProvider
	ConfigurationProvider func() Configuration
}

// Build constructs the push command.
func (builder *PushCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   pushCommandUseConstant,
		Short: pushCommandShortDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *PushCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(localUnexpectedArgumentsMessage)
	}

	localService, serviceError := resolveLocalService(builder.LocalServiceProvider, resolveLogger(builder.LoggerProvider))
	if serviceError != nil {
		return serviceError
	}

	repositoryPath, workingDirectoryError := workingDirectoryPath()
	if workingDirectoryError != nil {
		return workingDirectoryError
	}

	remoteName := resolveConfiguration(builder.ConfigurationProvider).Remote
	if pushError := localService.PushCurrentBranch(command.Context(), repositoryPath, remoteName); pushError != nil {
		return pushError
	}

	fmt.Fprintf(command.OutOrStdout(), pushedMessageTemplateConstant, repositoryPath, remoteName)

	return nil
}

// TreeCommandBuilder assembles the repo tree command.
type TreeCommandBuilder struct {
	LoggerProvider       LoggerProvider
	LocalServiceProvider LocalServiceProvider
}

// Build constructs the tree command.
func (builder *TreeCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   treeCommandUseConstant,
		Short: treeCommandShortDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *TreeCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(localUnexpectedArgumentsMessage)
	}

	localService, serviceError := resolveLocalService(builder.LocalServiceProvider, resolveLogger(builder.LoggerProvider))
	if serviceError != nil {
		return serviceError
	}

	repositoryPath, workingDirectoryError := workingDirectoryPath()
	if workingDirectoryError != nil {
		return workingDirectoryError
	}

	trackedFiles, listError := localService.ListTrackedFiles(command.Context(), repositoryPath)
	if listError != nil {
		return listError
	}

	for _, trackedFile := range trackedFiles {
		fmt.Fprintln(command.OutOrStdout(), trackedFile)
	}

	return nil
}

// DiffCommandBuilder assembles the repo diff command.
type DiffCommandBuilder struct {
	LoggerProvider       LoggerProvider
	LocalServiceProvider LocalServiceProvider
}

// Build constructs the diff command.
func (builder *DiffCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   diffCommandUseConstant,
		Short: diffCommandShortDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *DiffCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(localUnexpectedArgumentsMessage)
	}

	localService, serviceError := resolveLocalService(builder.LocalServiceProvider, resolveLogger(builder.LoggerProvider))
	if serviceError != nil {
		return serviceError
	}

	repositoryPath, workingDirectoryError := workingDirectoryPath()
	if workingDirectoryError != nil {
		return workingDirectoryError
	}

	workingTreeDiff, diffError := localService.WorkingTreeDiff(command.Context(), repositoryPath)
	if diffError != nil {
		return diffError
	}

	if len(workingTreeDiff) > 0 {
		fmt.Fprint(command.OutOrStdout(), workingTreeDiff)
	}

	return nil
}
