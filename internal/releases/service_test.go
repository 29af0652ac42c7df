package releases_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghops/internal/execshell"
	"github.com/temirov/ghops/internal/releases"
)

const (
	testRepositoryPathConstant = "/workspace/source"
	testUsernameConstant       = "octocat"
	testRepositoryNameConstant = "tooling"
	testRemoteURLConstant      = "https://github.com/octocat/tooling.git"
)

type recordingGitExecutor struct {
	commands []execshell.CommandDetails
	failures map[int]error
}

func (executor *recordingGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	commandIndex := len(executor.commands)
	executor.commands = append(executor.commands, details)
	if failure, failurePresent := executor.failures[commandIndex]; failurePresent {
		return execshell.ExecutionResult{}, failure
	}
	return execshell.ExecutionResult{}, nil
}

type recordingTarExecutor struct {
	commands []execshell.CommandDetails
	failure  error
}

func (executor *recordingTarExecutor) ExecuteTar(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.commands = append(executor.commands, details)
	return execshell.ExecutionResult{}, executor.failure
}

func newReleaseService(testInstance *testing.T, gitExecutor *recordingGitExecutor, tarExecutor *recordingTarExecutor) *releases.Service {
	testInstance.Helper()

	service, creationError := releases.NewService(releases.ServiceDependencies{
		GitExecutor: gitExecutor,
		TarExecutor: tarExecutor,
	})
	require.NoError(testInstance, creationError)

	return service
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, missingGitError := releases.NewService(releases.ServiceDependencies{TarExecutor: &recordingTarExecutor{}})
	require.ErrorIs(testInstance, missingGitError, releases.ErrGitExecutorNotConfigured)

	_, missingTarError := releases.NewService(releases.ServiceDependencies{GitExecutor: &recordingGitExecutor{}})
	require.ErrorIs(testInstance, missingTarError, releases.ErrTarExecutorNotConfigured)
}

func TestReleaseValidatesOptions(testInstance *testing.T) {
	testCases := []struct {
		name          string
		options       releases.Options
		expectedError error
	}{
		{
			name:          "missing_repository_path",
			options:       releases.Options{Username: testUsernameConstant, RepositoryName: testRepositoryNameConstant},
			expectedError: releases.ErrRepositoryPathRequired,
		},
		{
			name:          "missing_username",
			options:       releases.Options{RepositoryPath: testRepositoryPathConstant, RepositoryName: testRepositoryNameConstant},
			expectedError: releases.ErrUsernameRequired,
		},
		{
			name:          "missing_repository_name",
			options:       releases.Options{RepositoryPath: testRepositoryPathConstant, Username: testUsernameConstant},
			expectedError: releases.ErrRepositoryNameRequired,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			service := newReleaseService(testInstance, &recordingGitExecutor{}, &recordingTarExecutor{})

			_, releaseError := service.Release(context.Background(), testCase.options)

			require.ErrorIs(testInstance, releaseError, testCase.expectedError)
		})
	}
}

func TestReleaseExecutesArchiveExtractAndRepublishSequence(testInstance *testing.T) {
	gitExecutor := &recordingGitExecutor{}
	tarExecutor := &recordingTarExecutor{}
	service := newReleaseService(testInstance, gitExecutor, tarExecutor)
	workspaceDirectory := testInstance.TempDir()

	releaseResult, releaseError := service.Release(context.Background(), releases.Options{
		RepositoryPath:     testRepositoryPathConstant,
		Username:           testUsernameConstant,
		RepositoryName:     testRepositoryNameConstant,
		WorkspaceDirectory: workspaceDirectory,
	})

	require.NoError(testInstance, releaseError)
	require.Equal(testInstance, testRemoteURLConstant, releaseResult.RemoteURL)
	require.Equal(testInstance, testRepositoryPathConstant, releaseResult.RepositoryPath)

	archivePath := filepath.Join(workspaceDirectory, "release.tar")

	require.Len(testInstance, gitExecutor.commands, 6)
	require.Equal(testInstance, []string{"archive", "--format=tar", "--output=" + archivePath, "HEAD"}, gitExecutor.commands[0].Arguments)
	require.Equal(testInstance, testRepositoryPathConstant, gitExecutor.commands[0].WorkingDirectory)
	require.Equal(testInstance, []string{"init"}, gitExecutor.commands[1].Arguments)
	require.Equal(testInstance, []string{"add", "."}, gitExecutor.commands[2].Arguments)
	require.Equal(testInstance, []string{"commit", "-m", "Release"}, gitExecutor.commands[3].Arguments)
	require.Equal(testInstance, []string{"remote", "add", "origin", testRemoteURLConstant}, gitExecutor.commands[4].Arguments)
	require.Equal(testInstance, []string{"push", "--force", "origin", "HEAD:refs/heads/main"}, gitExecutor.commands[5].Arguments)

	for _, scratchCommand := range gitExecutor.commands[1:] {
		require.Equal(testInstance, workspaceDirectory, scratchCommand.WorkingDirectory)
	}

	require.Len(testInstance, tarExecutor.commands, 1)
	require.Equal(testInstance, []string{"-xf", archivePath}, tarExecutor.commands[0].Arguments)
	require.Equal(testInstance, workspaceDirectory, tarExecutor.commands[0].WorkingDirectory)
}

func TestReleasePinsCommitTimestamps(testInstance *testing.T) {
	gitExecutor := &recordingGitExecutor{}
	service := newReleaseService(testInstance, gitExecutor, &recordingTarExecutor{})

	_, releaseError := service.Release(context.Background(), releases.Options{
		RepositoryPath:     testRepositoryPathConstant,
		Username:           testUsernameConstant,
		RepositoryName:     testRepositoryNameConstant,
		WorkspaceDirectory: testInstance.TempDir(),
	})

	require.NoError(testInstance, releaseError)
	commitCommand := gitExecutor.commands[3]
	require.Equal(testInstance, releases.ReleaseTimestamp, commitCommand.EnvironmentVariables["GIT_AUTHOR_DATE"])
	require.Equal(testInstance, releases.ReleaseTimestamp, commitCommand.EnvironmentVariables["GIT_COMMITTER_DATE"])
}

func TestReleaseAbortsOnFirstFailingStep(testInstance *testing.T) {
	commitFailure := errors.New("nothing to commit")
	gitExecutor := &recordingGitExecutor{failures: map[int]error{3: commitFailure}}
	service := newReleaseService(testInstance, gitExecutor, &recordingTarExecutor{})

	_, releaseError := service.Release(context.Background(), releases.Options{
		RepositoryPath:     testRepositoryPathConstant,
		Username:           testUsernameConstant,
		RepositoryName:     testRepositoryNameConstant,
		WorkspaceDirectory: testInstance.TempDir(),
	})

	require.ErrorIs(testInstance, releaseError, commitFailure)
	require.Len(testInstance, gitExecutor.commands, 4)
}

func TestReleasePropagatesExtractionFailures(testInstance *testing.T) {
	extractionFailure := errors.New("archive is corrupt")
	gitExecutor := &recordingGitExecutor{}
	service := newReleaseService(testInstance, gitExecutor, &recordingTarExecutor{failure: extractionFailure})

	_, releaseError := service.Release(context.Background(), releases.Options{
		RepositoryPath:     testRepositoryPathConstant,
		Username:           testUsernameConstant,
		RepositoryName:     testRepositoryNameConstant,
		WorkspaceDirectory: testInstance.TempDir(),
	})

	require.ErrorIs(testInstance, releaseError, extractionFailure)
	require.Len(testInstance, gitExecutor.commands, 1)
}
