package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/ghops/internal/execshell"
)

const (
	pushSubcommandConstant        = "push"
	lsTreeSubcommandConstant      = "ls-tree"
	diffSubcommandConstant        = "diff"
	remoteSubcommandConstant      = "remote"
	getURLArgumentConstant        = "get-url"
	configSubcommandConstant      = "config"
	globalFlagConstant            = "--global"
	recursiveFlagConstant         = "-r"
	nameOnlyFlagConstant          = "--name-only"
	headReferenceConstant         = "HEAD"
	defaultRemoteNameConstant     = "origin"
	userNameConfigurationKey      = "user.name"
	userEmailConfigurationKey     = "user.email"
	trackedFileSeparatorConstant  = "\n"
	gitOperationFailureTemplate   = "git %s failed: %w"
	identityValueRequiredTemplate = "git identity %s requires a value"
	repositoryPathRequiredMessage = "repository path is required"
)

// ErrGitExecutorRequired indicates the manager was built without an executor.
var ErrGitExecutorRequired = errors.New("repository manager requires a git executor")

// GitExecutor runs git commands on behalf of the manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs local git operations for a working repository.
type RepositoryManager struct {
	gitExecutor GitExecutor
}

// NewRepositoryManager wires a manager around the provided git executor.
func NewRepositoryManager(gitExecutor GitExecutor) (*RepositoryManager, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorRequired
	}
	return &RepositoryManager{gitExecutor: gitExecutor}, nil
}

// PushCurrentBranch pushes HEAD of the repository to the named remote,
// defaulting to origin.
func (repositoryManager *RepositoryManager) PushCurrentBranch(executionContext context.Context, repositoryPath string, remoteName string) error {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return errors.New(repositoryPathRequiredMessage)
	}
	if len(remoteName) == 0 {
		remoteName = defaultRemoteNameConstant
	}

	_, executionError := repositoryManager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{pushSubcommandConstant, remoteName, headReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(gitOperationFailureTemplate, pushSubcommandConstant, executionError)
	}

	return nil
}

// ListTrackedFiles returns the paths tracked at HEAD, one entry per file.
func (repositoryManager *RepositoryManager) ListTrackedFiles(executionContext context.Context, repositoryPath string) ([]string, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return nil, errors.New(repositoryPathRequiredMessage)
	}

	executionResult, executionError := repositoryManager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{lsTreeSubcommandConstant, recursiveFlagConstant, nameOnlyFlagConstant, headReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, fmt.Errorf(gitOperationFailureTemplate, lsTreeSubcommandConstant, executionError)
	}

	trimmedOutput := strings.TrimSpace(executionResult.StandardOutput)
	if len(trimmedOutput) == 0 {
		return []string{}, nil
	}

	return strings.Split(trimmedOutput, trackedFileSeparatorConstant), nil
}

// WorkingTreeDiff returns the unstaged diff of the repository.
func (repositoryManager *RepositoryManager) WorkingTreeDiff(executionContext context.Context, repositoryPath string) (string, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return "", errors.New(repositoryPathRequiredMessage)
	}

	executionResult, executionError := repositoryManager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{diffSubcommandConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", fmt.Errorf(gitOperationFailureTemplate, diffSubcommandConstant, executionError)
	}

	return executionResult.StandardOutput, nil
}

// RemoteURL resolves the URL of the named remote, defaulting to origin, and
// parses it into its structured form.
func (repositoryManager *RepositoryManager) RemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (RemoteURL, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return RemoteURL{}, errors.New(repositoryPathRequiredMessage)
	}
	if len(remoteName) == 0 {
		remoteName = defaultRemoteNameConstant
	}

	executionResult, executionError := repositoryManager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{remoteSubcommandConstant, getURLArgumentConstant, remoteName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return RemoteURL{}, fmt.Errorf(gitOperationFailureTemplate, remoteSubcommandConstant, executionError)
	}

	return ParseRemoteURL(strings.TrimSpace(executionResult.StandardOutput))
}

// SetGlobalIdentity writes user.name and user.email into the global git
// configuration.
func (repositoryManager *RepositoryManager) SetGlobalIdentity(executionContext context.Context, userName string, userEmail string) error {
	if len(strings.TrimSpace(userName)) == 0 {
		return fmt.Errorf(identityValueRequiredTemplate, userNameConfigurationKey)
	}
	if len(strings.TrimSpace(userEmail)) == 0 {
		return fmt.Errorf(identityValueRequiredTemplate, userEmailConfigurationKey)
	}

	identityAssignments := []struct {
		configurationKey   string
		configurationValue string
	}{
		{configurationKey: userNameConfigurationKey, configurationValue: userName},
		{configurationKey: userEmailConfigurationKey, configurationValue: userEmail},
	}

	for _, identityAssignment := range identityAssignments {
		_, executionError := repositoryManager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments: []string{configSubcommandConstant, globalFlagConstant, identityAssignment.configurationKey, identityAssignment.configurationValue},
		})
		if executionError != nil {
			return fmt.Errorf(gitOperationFailureTemplate, configSubcommandConstant, executionError)
		}
	}

	return nil
}
