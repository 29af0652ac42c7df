package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForConfigDescribesKeyAndValue(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments: []string{"config", "--global", "user.name", "octocat"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Setting git configuration user.name to octocat", message)
}

func TestBuildStartedMessageForForcePushUsesForceLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"push", "--force", "origin", "HEAD:refs/heads/main"},
			WorkingDirectory: "/workspace/release",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Force pushing HEAD:refs/heads/main to origin from /workspace/release", message)
}

func TestBuildSuccessMessageForLSTreeDescribesWorkingDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"ls-tree", "-r", "--name-only", "HEAD"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildSuccessMessage(command)

	require.Equal(t, "Listed tracked files in /workspace/repo", message)
}

func TestBuildFailureMessageForCommitIncludesExitCodeAndStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"commit", "-m", "Release"},
			WorkingDirectory: "/workspace/release",
		},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1, StandardError: "nothing to commit"})

	require.Equal(t, `Failed to create commit in /workspace/release with message "Release" (exit code 1: nothing to commit)`, message)
}

func TestBuildStartedMessageForTarExtractionDescribesArchive(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandTar,
		Details: CommandDetails{
			Arguments:        []string{"-xf", "/tmp/source.tar"},
			WorkingDirectory: "/tmp/scratch",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Extracting archive /tmp/source.tar in /tmp/scratch", message)
}

func TestBuildExecutionFailureMessageFallsBackToGenericLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments: []string{"version"},
		},
	}

	message := formatter.BuildExecutionFailureMessage(command, errors.New("executable not found"))

	require.Equal(t, "git version failed: executable not found", message)
}
