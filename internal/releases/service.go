package releases

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/ghops/internal/execshell"
	"github.com/temirov/ghops/internal/gitrepo"
)

const (
	// ReleaseTimestamp pins author and committer dates on every published
	// commit so re-releasing identical content yields an identical commit.
	ReleaseTimestamp = "2005-04-07T22:13:13 +0000"

	defaultCommitMessageConstant       = "Release"
	defaultRemoteNameConstant          = "origin"
	defaultRemoteHostConstant          = "github.com"
	defaultBranchReferenceConstant     = "HEAD:refs/heads/main"
	archiveFileNameConstant            = "release.tar"
	scratchDirectoryPatternConstant    = "ghops-release-*"
	authorDateEnvironmentVariable      = "GIT_AUTHOR_DATE"
	committerDateEnvironmentVariable   = "GIT_COMMITTER_DATE"
	archiveSubcommandConstant          = "archive"
	archiveFormatFlagConstant          = "--format=tar"
	archiveOutputFlagTemplateConstant  = "--output=%s"
	headReferenceConstant              = "HEAD"
	extractFlagConstant                = "-xf"
	initSubcommandConstant             = "init"
	addSubcommandConstant              = "add"
	addAllPathSpecConstant             = "."
	commitSubcommandConstant           = "commit"
	commitMessageFlagConstant          = "-m"
	remoteSubcommandConstant           = "remote"
	remoteAddSubcommandConstant        = "add"
	pushSubcommandConstant             = "push"
	forcePushFlagConstant              = "--force"
	releaseStepFailureTemplateConstant = "release step %s failed: %w"
	scratchDirectoryFailureTemplate    = "release scratch directory: %w"
)

// Sentinel errors surfaced during service construction and validation.
var (
	ErrGitExecutorNotConfigured = errors.New("release service requires a git executor")
	ErrTarExecutorNotConfigured = errors.New("release service requires a tar executor")
	ErrRepositoryPathRequired   = errors.New("release requires a repository path")
	ErrUsernameRequired         = errors.New("release requires a username")
	ErrRepositoryNameRequired   = errors.New("release requires a repository name")
)

// GitExecutor runs git commands for the release sequence.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// TarExecutor extracts the HEAD archive into the scratch directory.
type TarExecutor interface {
	ExecuteTar(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ServiceDependencies carries the collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor GitExecutor
	TarExecutor TarExecutor
}

// Options configures a single release invocation.
type Options struct {
	RepositoryPath     string
	Username           string
	RepositoryName     string
	RemoteName         string
	BranchReference    string
	CommitMessage      string
	WorkspaceDirectory string
}

// Result reports where the release was published.
type Result struct {
	RepositoryPath string
	RemoteURL      string
	CommitMessage  string
}

// Service publishes repositories as single synthetic commits.
type Service struct {
	gitExecutor GitExecutor
	tarExecutor TarExecutor
}

// NewService validates the dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.TarExecutor == nil {
		return nil, ErrTarExecutorNotConfigured
	}
	return &Service{gitExecutor: dependencies.GitExecutor, tarExecutor: dependencies.TarExecutor}, nil
}

// Release archives HEAD of the working repository, rebuilds history as one
// commit pinned to ReleaseTimestamp, and force-pushes it to the target
// repository. The first failing command aborts the sequence; no rollback is
// attempted.
func (service *Service) Release(executionContext context.Context, options Options) (Result, error) {
	if len(strings.TrimSpace(options.RepositoryPath)) == 0 {
		return Result{}, ErrRepositoryPathRequired
	}
	if len(strings.TrimSpace(options.Username)) == 0 {
		return Result{}, ErrUsernameRequired
	}
	if len(strings.TrimSpace(options.RepositoryName)) == 0 {
		return Result{}, ErrRepositoryNameRequired
	}

	remoteName := options.RemoteName
	if len(remoteName) == 0 {
		remoteName = defaultRemoteNameConstant
	}
	branchReference := options.BranchReference
	if len(branchReference) == 0 {
		branchReference = defaultBranchReferenceConstant
	}
	commitMessage := options.CommitMessage
	if len(commitMessage) == 0 {
		commitMessage = defaultCommitMessageConstant
	}

	remoteURL, remoteURLError := gitrepo.FormatRemoteURL(gitrepo.RemoteURL{
		Protocol:   gitrepo.RemoteProtocolHTTPS,
		Host:       defaultRemoteHostConstant,
		Owner:      options.Username,
		Repository: options.RepositoryName,
	})
	if remoteURLError != nil {
		return Result{}, remoteURLError
	}

	scratchDirectory := options.WorkspaceDirectory
	if len(scratchDirectory) == 0 {
		createdDirectory, scratchError := os.MkdirTemp("", scratchDirectoryPatternConstant)
		if scratchError != nil {
			return Result{}, fmt.Errorf(scratchDirectoryFailureTemplate, scratchError)
		}
		scratchDirectory = createdDirectory
		defer os.RemoveAll(createdDirectory)
	}

	archivePath := filepath.Join(scratchDirectory, archiveFileNameConstant)

	archiveArguments := []string{archiveSubcommandConstant, archiveFormatFlagConstant, fmt.Sprintf(archiveOutputFlagTemplateConstant, archivePath), headReferenceConstant}
	if _, archiveError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        archiveArguments,
		WorkingDirectory: options.RepositoryPath,
	}); archiveError != nil {
		return Result{}, fmt.Errorf(releaseStepFailureTemplateConstant, archiveSubcommandConstant, archiveError)
	}

	if _, extractError := service.tarExecutor.ExecuteTar(executionContext, execshell.CommandDetails{
		Arguments:        []string{extractFlagConstant, archivePath},
		WorkingDirectory: scratchDirectory,
	}); extractError != nil {
		return Result{}, fmt.Errorf(releaseStepFailureTemplateConstant, extractFlagConstant, extractError)
	}

	if removeError := os.Remove(archivePath); removeError != nil && !errors.Is(removeError, os.ErrNotExist) {
		return Result{}, fmt.Errorf(scratchDirectoryFailureTemplate, removeError)
	}

	releaseSteps := []execshell.CommandDetails{
		{
			Arguments:        []string{initSubcommandConstant},
			WorkingDirectory: scratchDirectory,
		},
		{
			Arguments:        []string{addSubcommandConstant, addAllPathSpecConstant},
			WorkingDirectory: scratchDirectory,
		},
		{
			Arguments:        []string{commitSubcommandConstant, commitMessageFlagConstant, commitMessage},
			WorkingDirectory: scratchDirectory,
			EnvironmentVariables: map[string]string{
				authorDateEnvironmentVariable:    ReleaseTimestamp,
				committerDateEnvironmentVariable: ReleaseTimestamp,
			},
		},
		{
			Arguments:        []string{remoteSubcommandConstant, remoteAddSubcommandConstant, remoteName, remoteURL},
			WorkingDirectory: scratchDirectory,
		},
		{
			Arguments:        []string{pushSubcommandConstant, forcePushFlagConstant, remoteName, branchReference},
			WorkingDirectory: scratchDirectory,
		},
	}

	for _, releaseStep := range releaseSteps {
		if _, stepError := service.gitExecutor.ExecuteGit(executionContext, releaseStep); stepError != nil {
			return Result{}, fmt.Errorf(releaseStepFailureTemplateConstant, releaseStep.Arguments[0], stepError)
		}
	}

	return Result{
		RepositoryPath: options.RepositoryPath,
		RemoteURL:      remoteURL,
		CommitMessage:  commitMessage,
	}, nil
}
