package repo_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	repocmd "github.com/temirov/ghops/cmd/cli/repo"
	"github.com/temirov/ghops/internal/githubapi"
)

const (
	testUsernameConstant          = "octocat"
	testRepositoryNameConstant    = "tooling"
	testRepositoryFullName        = "octocat/tooling"
	testRepositoryHTMLURLConstant = "https://github.com/octocat/tooling"
	testPagesHTMLURLConstant      = "https://octocat.github.io/tooling/"
	testServiceMessageConstant    = "name already exists on this account"
)

type fakeRepositoryService struct {
	repositories      []githubapi.Repository
	createdName       string
	createdDesc       string
	createdPrivate    bool
	createFailure     error
	deletedOwner      string
	deletedName       string
	visibilityOwner   string
	visibilityName    string
	visibilityPrivate bool
	renamedFrom       string
	renamedTo         string
	pagesBranch       string
	pagesPath         string
}

func (service *fakeRepositoryService) ListRepositories(context.Context) ([]githubapi.Repository, error) {
	return service.repositories, nil
}

func (service *fakeRepositoryService) CreateRepository(_ context.Context, repositoryName string, repositoryDescription string, privateVisibility bool) (githubapi.Repository, error) {
	if service.createFailure != nil {
		return githubapi.Repository{}, service.createFailure
	}
	service.createdName = repositoryName
	service.createdDesc = repositoryDescription
	service.createdPrivate = privateVisibility
	return githubapi.Repository{FullName: testRepositoryFullName, Private: privateVisibility, HTMLURL: testRepositoryHTMLURLConstant}, nil
}

func (service *fakeRepositoryService) DeleteRepository(_ context.Context, repositoryOwner string, repositoryName string) error {
	service.deletedOwner = repositoryOwner
	service.deletedName = repositoryName
	return nil
}

func (service *fakeRepositoryService) SetRepositoryVisibility(_ context.Context, repositoryOwner string, repositoryName string, privateVisibility bool) (githubapi.Repository, error) {
	service.visibilityOwner = repositoryOwner
	service.visibilityName = repositoryName
	service.visibilityPrivate = privateVisibility
	return githubapi.Repository{FullName: testRepositoryFullName, Private: privateVisibility}, nil
}

func (service *fakeRepositoryService) RenameRepository(_ context.Context, repositoryOwner string, currentRepositoryName string, updatedRepositoryName string) (githubapi.Repository, error) {
	service.renamedFrom = currentRepositoryName
	service.renamedTo = updatedRepositoryName
	return githubapi.Repository{FullName: repositoryOwner + "/" + updatedRepositoryName}, nil
}

func (service *fakeRepositoryService) EnablePages(_ context.Context, _ string, _ string, sourceBranch string, sourcePath string) (githubapi.PagesSite, error) {
	service.pagesBranch = sourceBranch
	service.pagesPath = sourcePath
	return githubapi.PagesSite{HTMLURL: testPagesHTMLURLConstant, Status: "building"}, nil
}

type fakeLocalService struct {
	pushedPath   string
	pushedRemote string
	trackedFiles []string
	diffOutput   string
}

func (service *fakeLocalService) PushCurrentBranch(_ context.Context, repositoryPath string, remoteName string) error {
	service.pushedPath = repositoryPath
	service.pushedRemote = remoteName
	return nil
}

func (service *fakeLocalService) ListTrackedFiles(context.Context, string) ([]string, error) {
	return service.trackedFiles, nil
}

func (service *fakeLocalService) WorkingTreeDiff(context.Context, string) (string, error) {
	return service.diffOutput, nil
}

func buildGroupCommand(testInstance *testing.T, repositoryService *fakeRepositoryService, localService *fakeLocalService) (*cobra.Command, *bytes.Buffer) {
	testInstance.Helper()

	groupBuilder := repocmd.CommandGroupBuilder{
		UsernameProvider: func() (string, error) {
			return testUsernameConstant, nil
		},
		RepositoryServiceProvider: func(context.Context) (repocmd.RepositoryService, error) {
			return repositoryService, nil
		},
		LocalServiceProvider: func(*zap.Logger) (repocmd.LocalService, error) {
			return localService, nil
		},
	}

	groupCommand, buildError := groupBuilder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	groupCommand.SetOut(outputBuffer)
	groupCommand.SetErr(outputBuffer)
	groupCommand.SetContext(context.Background())

	return groupCommand, outputBuffer
}

func TestListCommandPrintsFullNameAndVisibility(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{
		repositories: []githubapi.Repository{
			{FullName: "octocat/tooling", Private: false},
			{FullName: "octocat/journal", Private: true},
		},
	}
	groupCommand, outputBuffer := buildGroupCommand(testInstance, repositoryService, &fakeLocalService{})

	groupCommand.SetArgs([]string{"list"})
	require.NoError(testInstance, groupCommand.Execute())

	require.Equal(testInstance, "octocat/tooling\tpublic\noctocat/journal\tprivate\n", outputBuffer.String())
}

func TestCreateCommandPrintsHTMLURL(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{}
	groupCommand, outputBuffer := buildGroupCommand(testInstance, repositoryService, &fakeLocalService{})

	groupCommand.SetArgs([]string{"create", testRepositoryNameConstant, "helper", "scripts", "--private"})
	require.NoError(testInstance, groupCommand.Execute())

	require.Equal(testInstance, testRepositoryNameConstant, repositoryService.createdName)
	require.Equal(testInstance, "helper scripts", repositoryService.createdDesc)
	require.True(testInstance, repositoryService.createdPrivate)
	require.Equal(testInstance, testRepositoryHTMLURLConstant+"\n", outputBuffer.String())
}

func TestCreateCommandPrintsServiceMessageOnFailure(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{
		createFailure: githubapi.OperationError{
			Operation: githubapi.CreateRepositoryOperationName,
			Cause:     errors.New(testServiceMessageConstant),
		},
	}
	groupCommand, outputBuffer := buildGroupCommand(testInstance, repositoryService, &fakeLocalService{})

	groupCommand.SetArgs([]string{"create", testRepositoryNameConstant})
	require.Error(testInstance, groupCommand.Execute())

	require.Contains(testInstance, outputBuffer.String(), testServiceMessageConstant)
}

func TestDeleteCommandUsesResolvedUsername(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{}
	groupCommand, outputBuffer := buildGroupCommand(testInstance, repositoryService, &fakeLocalService{})

	groupCommand.SetArgs([]string{"delete", testRepositoryNameConstant})
	require.NoError(testInstance, groupCommand.Execute())

	require.Equal(testInstance, testUsernameConstant, repositoryService.deletedOwner)
	require.Equal(testInstance, testRepositoryNameConstant, repositoryService.deletedName)
	require.Equal(testInstance, fmt.Sprintf("Deleted %s/%s\n", testUsernameConstant, testRepositoryNameConstant), outputBuffer.String())
}

func TestVisibilityCommandsFlipPrivateFlag(testInstance *testing.T) {
	testCases := []struct {
		name              string
		subcommand        string
		expectedPrivate   bool
		expectedVisibleAs string
	}{
		{name: "private_subcommand", subcommand: "private", expectedPrivate: true, expectedVisibleAs: "private"},
		{name: "public_subcommand", subcommand: "public", expectedPrivate: false, expectedVisibleAs: "public"},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			repositoryService := &fakeRepositoryService{}
			groupCommand, outputBuffer := buildGroupCommand(testInstance, repositoryService, &fakeLocalService{})

			groupCommand.SetArgs([]string{testCase.subcommand, testRepositoryNameConstant})
			require.NoError(testInstance, groupCommand.Execute())

			require.Equal(testInstance, testCase.expectedPrivate, repositoryService.visibilityPrivate)
			require.Contains(testInstance, outputBuffer.String(), testCase.expectedVisibleAs)
		})
	}
}

func TestRenameCommandReportsUpdatedName(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{}
	groupCommand, outputBuffer := buildGroupCommand(testInstance, repositoryService, &fakeLocalService{})

	groupCommand.SetArgs([]string{"rename", testRepositoryNameConstant, "tooling-next"})
	require.NoError(testInstance, groupCommand.Execute())

	require.Equal(testInstance, testRepositoryNameConstant, repositoryService.renamedFrom)
	require.Equal(testInstance, "tooling-next", repositoryService.renamedTo)
	require.Equal(testInstance, "Renamed tooling to octocat/tooling-next\n", outputBuffer.String())
}

func TestPagesCommandUsesConfiguredDefaults(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{}
	groupCommand, outputBuffer := buildGroupCommand(testInstance, repositoryService, &fakeLocalService{})

	groupCommand.SetArgs([]string{"pages", testRepositoryNameConstant})
	require.NoError(testInstance, groupCommand.Execute())

	require.Equal(testInstance, "main", repositoryService.pagesBranch)
	require.Equal(testInstance, "/", repositoryService.pagesPath)
	require.Equal(testInstance, testPagesHTMLURLConstant+"\n", outputBuffer.String())
}

func TestPagesCommandAcceptsBranchAndPathArguments(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{}
	groupCommand, _ := buildGroupCommand(testInstance, repositoryService, &fakeLocalService{})

	groupCommand.SetArgs([]string{"pages", testRepositoryNameConstant, "gh-pages", "/docs"})
	require.NoError(testInstance, groupCommand.Execute())

	require.Equal(testInstance, "gh-pages", repositoryService.pagesBranch)
	require.Equal(testInstance, "/docs", repositoryService.pagesPath)
}

func TestPushCommandUsesConfiguredRemote(testInstance *testing.T) {
	localService := &fakeLocalService{}
	groupCommand, _ := buildGroupCommand(testInstance, &fakeRepositoryService{}, localService)

	groupCommand.SetArgs([]string{"push"})
	require.NoError(testInstance, groupCommand.Execute())

	require.Equal(testInstance, "origin", localService.pushedRemote)
	require.NotEmpty(testInstance, localService.pushedPath)
}

func TestTreeCommandPrintsTrackedFiles(testInstance *testing.T) {
	localService := &fakeLocalService{trackedFiles: []string{"README.md", "main.go"}}
	groupCommand, outputBuffer := buildGroupCommand(testInstance, &fakeRepositoryService{}, localService)

	groupCommand.SetArgs([]string{"tree"})
	require.NoError(testInstance, groupCommand.Execute())

	require.Equal(testInstance, "README.md\nmain.go\n", outputBuffer.String())
}

func TestDiffCommandPrintsDiffOutput(testInstance *testing.T) {
	localService := &fakeLocalService{diffOutput: "diff --git a/main.go b/main.go\n"}
	groupCommand, outputBuffer := buildGroupCommand(testInstance, &fakeRepositoryService{}, localService)

	groupCommand.SetArgs([]string{"diff"})
	require.NoError(testInstance, groupCommand.Execute())

	require.Equal(testInstance, localService.diffOutput, outputBuffer.String())
}

func TestDeleteCommandRequiresRepositoryName(testInstance *testing.T) {
	groupCommand, _ := buildGroupCommand(testInstance, &fakeRepositoryService{}, &fakeLocalService{})

	groupCommand.SetArgs([]string{"delete"})
	require.Error(testInstance, groupCommand.Execute())
}
