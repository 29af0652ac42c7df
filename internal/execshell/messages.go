package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitConfigSubcommandNameConstant  = "config"
	gitPushSubcommandNameConstant    = "push"
	gitLSTreeSubcommandNameConstant  = "ls-tree"
	gitDiffSubcommandNameConstant    = "diff"
	gitArchiveSubcommandNameConstant = "archive"
	gitInitSubcommandNameConstant    = "init"
	gitAddSubcommandNameConstant     = "add"
	gitCommitSubcommandNameConstant  = "commit"
	gitRemoteSubcommandNameConstant  = "remote"
	gitMessageFlagConstant           = "-m"
	gitForceFlagConstant             = "--force"
	tarExtractFlagConstant           = "-xf"
)

const (
	gitConfigStartTemplateConstant             = "Setting git configuration %s to %s"
	gitConfigSuccessTemplateConstant           = "Set git configuration %s to %s"
	gitConfigFailureTemplateConstant           = "Failed to set git configuration %s to %s (exit code %d%s)"
	gitConfigExecutionFailureTemplateConstant  = "Unable to set git configuration %s to %s: %s"
	gitPushStartTemplateConstant               = "Pushing %s to %s from %s"
	gitPushSuccessTemplateConstant             = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant             = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant    = "Unable to push %s to %s from %s: %s"
	gitForcePushStartTemplateConstant          = "Force pushing %s to %s from %s"
	gitLSTreeStartTemplateConstant             = "Listing tracked files in %s"
	gitLSTreeSuccessTemplateConstant           = "Listed tracked files in %s"
	gitLSTreeFailureTemplateConstant           = "Failed to list tracked files in %s (exit code %d%s)"
	gitLSTreeExecutionFailureTemplateConstant  = "Unable to list tracked files in %s: %s"
	gitDiffStartTemplateConstant               = "Collecting working tree diff in %s"
	gitDiffSuccessTemplateConstant             = "Collected working tree diff in %s"
	gitDiffFailureTemplateConstant             = "Failed to collect working tree diff in %s (exit code %d%s)"
	gitDiffExecutionFailureTemplateConstant    = "Unable to collect working tree diff in %s: %s"
	gitArchiveStartTemplateConstant            = "Archiving %s in %s"
	gitArchiveSuccessTemplateConstant          = "Archived %s in %s"
	gitArchiveFailureTemplateConstant          = "Failed to archive %s in %s (exit code %d%s)"
	gitArchiveExecutionFailureTemplateConstant = "Unable to archive %s in %s: %s"
	gitInitStartTemplateConstant               = "Initializing repository in %s"
	gitInitSuccessTemplateConstant             = "Initialized repository in %s"
	gitInitFailureTemplateConstant             = "Failed to initialize repository in %s (exit code %d%s)"
	gitInitExecutionFailureTemplateConstant    = "Unable to initialize repository in %s: %s"
	gitAddStartTemplateConstant                = "Staging %s in %s"
	gitAddSuccessTemplateConstant              = "Staged %s in %s"
	gitAddFailureTemplateConstant              = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant     = "Unable to stage %s in %s: %s"
	gitCommitStartTemplateConstant             = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant           = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant           = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant  = "Unable to create commit in %s with message %q: %s"
	gitRemoteStartTemplateConstant             = "Configuring remote %s in %s"
	gitRemoteSuccessTemplateConstant           = "Configured remote %s in %s"
	gitRemoteFailureTemplateConstant           = "Failed to configure remote %s in %s (exit code %d%s)"
	gitRemoteExecutionFailureTemplateConstant  = "Unable to configure remote %s in %s: %s"
	tarExtractStartTemplateConstant            = "Extracting archive %s in %s"
	tarExtractSuccessTemplateConstant          = "Extracted archive %s in %s"
	tarExtractFailureTemplateConstant          = "Failed to extract archive %s in %s (exit code %d%s)"
	tarExtractExecutionFailureTemplateConstant = "Unable to extract archive %s in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandTar:
		return formatter.describeTarMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitConfigSubcommandNameConstant:
		return formatter.describeGitConfigMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	case gitLSTreeSubcommandNameConstant:
		return formatter.describeWorkingDirectoryOnlyMessage(command, result, failure, stage,
			gitLSTreeStartTemplateConstant, gitLSTreeSuccessTemplateConstant, gitLSTreeFailureTemplateConstant, gitLSTreeExecutionFailureTemplateConstant)
	case gitDiffSubcommandNameConstant:
		return formatter.describeWorkingDirectoryOnlyMessage(command, result, failure, stage,
			gitDiffStartTemplateConstant, gitDiffSuccessTemplateConstant, gitDiffFailureTemplateConstant, gitDiffExecutionFailureTemplateConstant)
	case gitArchiveSubcommandNameConstant:
		return formatter.describeTargetAndDirectoryMessage(command, result, failure, stage,
			formatter.resolveRevisionReference(command.Details.Arguments),
			gitArchiveStartTemplateConstant, gitArchiveSuccessTemplateConstant, gitArchiveFailureTemplateConstant, gitArchiveExecutionFailureTemplateConstant)
	case gitInitSubcommandNameConstant:
		return formatter.describeWorkingDirectoryOnlyMessage(command, result, failure, stage,
			gitInitStartTemplateConstant, gitInitSuccessTemplateConstant, gitInitFailureTemplateConstant, gitInitExecutionFailureTemplateConstant)
	case gitAddSubcommandNameConstant:
		return formatter.describeTargetAndDirectoryMessage(command, result, failure, stage,
			formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]),
			gitAddStartTemplateConstant, gitAddSuccessTemplateConstant, gitAddFailureTemplateConstant, gitAddExecutionFailureTemplateConstant)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeTargetAndDirectoryMessage(command, result, failure, stage,
			formatter.argumentAtIndex(command.Details.Arguments, 2),
			gitRemoteStartTemplateConstant, gitRemoteSuccessTemplateConstant, gitRemoteFailureTemplateConstant, gitRemoteExecutionFailureTemplateConstant)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitConfigMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	configurationKey := formatter.ensureValue(formatter.argumentAtIndex(arguments, len(arguments)-2))
	configurationValue := formatter.ensureValue(formatter.argumentAtIndex(arguments, len(arguments)-1))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitConfigStartTemplateConstant, configurationKey, configurationValue)
	case messageStageSuccess:
		return fmt.Sprintf(gitConfigSuccessTemplateConstant, configurationKey, configurationValue)
	case messageStageFailure:
		return fmt.Sprintf(gitConfigFailureTemplateConstant, configurationKey, configurationValue, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitConfigExecutionFailureTemplateConstant, configurationKey, configurationValue, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	arguments := command.Details.Arguments
	remoteName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))
	reference := formatter.ensureValue(formatter.resolveRevisionReference(arguments))
	forcePush := containsArgument(arguments, gitForceFlagConstant)

	switch stage {
	case messageStageStart:
		if forcePush {
			return fmt.Sprintf(gitForcePushStartTemplateConstant, reference, remoteName, workingDirectory)
		}
		return fmt.Sprintf(gitPushStartTemplateConstant, reference, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPushSuccessTemplateConstant, reference, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPushFailureTemplateConstant, reference, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitPushExecutionFailureTemplateConstant, reference, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	commitMessage := formatter.extractCommitMessage(command.Details.Arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectory, commitMessage)
	case messageStageSuccess:
		return fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectory, commitMessage)
	case messageStageFailure:
		return fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectory, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCommitExecutionFailureTemplateConstant, workingDirectory, commitMessage, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeTarMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !containsArgument(arguments, tarExtractFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	archivePath := formatter.ensureValue(findFlagValue(arguments, tarExtractFlagConstant))
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(tarExtractStartTemplateConstant, archivePath, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(tarExtractSuccessTemplateConstant, archivePath, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(tarExtractFailureTemplateConstant, archivePath, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(tarExtractExecutionFailureTemplateConstant, archivePath, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeWorkingDirectoryOnlyMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeTargetAndDirectoryMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage, target string, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	trimmedTarget := formatter.ensureValue(target)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, trimmedTarget, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, trimmedTarget, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, trimmedTarget, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, trimmedTarget, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) resolveRevisionReference(arguments []string) string {
	for index := len(arguments) - 1; index >= 0; index-- {
		argument := strings.TrimSpace(arguments[index])
		if len(argument) == 0 {
			continue
		}
		if strings.HasPrefix(argument, "-") {
			continue
		}
		return argument
	}
	return fallbackUnknownValueLabelConstant
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractCommitMessage(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == gitMessageFlagConstant && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return fallbackUnknownValueLabelConstant
}
