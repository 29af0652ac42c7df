package githubapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

const (
	noReplyEmailSuffixConstant     = "@users.noreply.github.com"
	defaultPagesBranchConstant     = "main"
	defaultPagesPathConstant       = "/"
	baseURLTrailingSlashConstant   = "/"
	repositoryNameFieldConstant    = "repository name"
	repositoryOwnerFieldConstant   = "repository owner"
	gistIdentifierFieldConstant    = "gist identifier"
	gistFileNameFieldConstant      = "gist file name"
	requiredValueMessageConstant   = "value is required"
	repositoryListPageSizeConstant = 100
	gistListPageSizeConstant       = 100
)

// Operation names attached to wrapped client failures.
const (
	ListRepositoriesOperationName        OperationName = "list repositories"
	CreateRepositoryOperationName        OperationName = "create repository"
	DeleteRepositoryOperationName        OperationName = "delete repository"
	SetRepositoryVisibilityOperationName OperationName = "set repository visibility"
	RenameRepositoryOperationName        OperationName = "rename repository"
	EnablePagesOperationName             OperationName = "enable pages"
	ListGistsOperationName               OperationName = "list gists"
	CreateGistOperationName              OperationName = "create gist"
	DeleteGistOperationName              OperationName = "delete gist"
	NoReplyEmailOperationName            OperationName = "resolve noreply email"
	AuthenticatedUserOperationName       OperationName = "resolve authenticated user"
)

// ErrAccessTokenRequired indicates the client was constructed without a token.
var ErrAccessTokenRequired = errors.New("github api client requires an access token")

// ErrNoReplyEmailNotFound indicates the account exposes no noreply address.
var ErrNoReplyEmailNotFound = errors.New("no users.noreply.github.com address on the account")

// ClientDependencies configures a Client instance.
type ClientDependencies struct {
	AccessToken string
	HTTPClient  *http.Client
	APIBaseURL  string
}

// Client exposes the GitHub REST operations used by ghops commands.
type Client struct {
	restClient *github.Client
}

// Repository summarizes one repository for command output.
type Repository struct {
	FullName string
	Private  bool
	HTMLURL  string
}

// Gist summarizes one gist for command output.
type Gist struct {
	Identifier  string
	Public      bool
	Description string
	HTMLURL     string
}

// PagesSite summarizes an enabled GitHub Pages site.
type PagesSite struct {
	HTMLURL string
	Status  string
}

// Account summarizes the authenticated account with its remaining rate budget.
type Account struct {
	Login         string
	Name          string
	RateRemaining int
	RateLimit     int
}

// NewClient builds a Client from the supplied dependencies. When no HTTP
// client is provided one is derived from the access token via oauth2.
func NewClient(executionContext context.Context, dependencies ClientDependencies) (*Client, error) {
	httpClient := dependencies.HTTPClient
	if httpClient == nil {
		trimmedToken := strings.TrimSpace(dependencies.AccessToken)
		if len(trimmedToken) == 0 {
			return nil, ErrAccessTokenRequired
		}
		tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: trimmedToken})
		httpClient = oauth2.NewClient(executionContext, tokenSource)
	}

	restClient := github.NewClient(httpClient)
	if len(dependencies.APIBaseURL) > 0 {
		parsedBaseURL, parseError := url.Parse(ensureTrailingSlash(dependencies.APIBaseURL))
		if parseError != nil {
			return nil, parseError
		}
		restClient.BaseURL = parsedBaseURL
	}

	return &Client{restClient: restClient}, nil
}

// ListRepositories returns every repository owned by the authenticated user.
func (client *Client) ListRepositories(executionContext context.Context) ([]Repository, error) {
	listOptions := &github.RepositoryListByAuthenticatedUserOptions{
		ListOptions: github.ListOptions{PerPage: repositoryListPageSizeConstant},
	}

	repositories := []Repository{}
	for {
		repositoryPage, pageResponse, listError := client.restClient.Repositories.ListByAuthenticatedUser(executionContext, listOptions)
		if listError != nil {
			return nil, OperationError{Operation: ListRepositoriesOperationName, Cause: listError}
		}
		for _, repository := range repositoryPage {
			repositories = append(repositories, Repository{
				FullName: repository.GetFullName(),
				Private:  repository.GetPrivate(),
				HTMLURL:  repository.GetHTMLURL(),
			})
		}
		if pageResponse.NextPage == 0 {
			break
		}
		listOptions.Page = pageResponse.NextPage
	}

	return repositories, nil
}

// CreateRepository creates a repository for the authenticated user.
func (client *Client) CreateRepository(executionContext context.Context, repositoryName string, repositoryDescription string, privateVisibility bool) (Repository, error) {
	if len(strings.TrimSpace(repositoryName)) == 0 {
		return Repository{}, InvalidInputError{FieldName: repositoryNameFieldConstant, Message: requiredValueMessageConstant}
	}

	repositoryRequest := &github.Repository{
		Name:    github.Ptr(repositoryName),
		Private: github.Ptr(privateVisibility),
	}
	if len(repositoryDescription) > 0 {
		repositoryRequest.Description = github.Ptr(repositoryDescription)
	}

	createdRepository, _, createError := client.restClient.Repositories.Create(executionContext, "", repositoryRequest)
	if createError != nil {
		return Repository{}, OperationError{Operation: CreateRepositoryOperationName, Cause: createError}
	}

	return Repository{
		FullName: createdRepository.GetFullName(),
		Private:  createdRepository.GetPrivate(),
		HTMLURL:  createdRepository.GetHTMLURL(),
	}, nil
}

// DeleteRepository removes the named repository owned by the given account.
func (client *Client) DeleteRepository(executionContext context.Context, repositoryOwner string, repositoryName string) error {
	if len(strings.TrimSpace(repositoryOwner)) == 0 {
		return InvalidInputError{FieldName: repositoryOwnerFieldConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(repositoryName)) == 0 {
		return InvalidInputError{FieldName: repositoryNameFieldConstant, Message: requiredValueMessageConstant}
	}

	_, deleteError := client.restClient.Repositories.Delete(executionContext, repositoryOwner, repositoryName)
	if deleteError != nil {
		return OperationError{Operation: DeleteRepositoryOperationName, Cause: deleteError}
	}

	return nil
}

// SetRepositoryVisibility flips the repository between public and private.
func (client *Client) SetRepositoryVisibility(executionContext context.Context, repositoryOwner string, repositoryName string, privateVisibility bool) (Repository, error) {
	if len(strings.TrimSpace(repositoryOwner)) == 0 {
		return Repository{}, InvalidInputError{FieldName: repositoryOwnerFieldConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(repositoryName)) == 0 {
		return Repository{}, InvalidInputError{FieldName: repositoryNameFieldConstant, Message: requiredValueMessageConstant}
	}

	editedRepository, _, editError := client.restClient.Repositories.Edit(executionContext, repositoryOwner, repositoryName, &github.Repository{Private: github.Ptr(privateVisibility)})
	if editError != nil {
		return Repository{}, OperationError{Operation: SetRepositoryVisibilityOperationName, Cause: editError}
	}

	return Repository{
		FullName: editedRepository.GetFullName(),
		Private:  editedRepository.GetPrivate(),
		HTMLURL:  editedRepository.GetHTMLURL(),
	}, nil
}

// RenameRepository renames the repository owned by the given account.
func (client *Client) RenameRepository(executionContext context.Context, repositoryOwner string, currentRepositoryName string, updatedRepositoryName string) (Repository, error) {
	if len(strings.TrimSpace(repositoryOwner)) == 0 {
		return Repository{}, InvalidInputError{FieldName: repositoryOwnerFieldConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(currentRepositoryName)) == 0 || len(strings.TrimSpace(updatedRepositoryName)) == 0 {
		return Repository{}, InvalidInputError{FieldName: repositoryNameFieldConstant, Message: requiredValueMessageConstant}
	}

	renamedRepository, _, editError := client.restClient.Repositories.Edit(executionContext, repositoryOwner, currentRepositoryName, &github.Repository{Name: github.Ptr(updatedRepositoryName)})
	if editError != nil {
		return Repository{}, OperationError{Operation: RenameRepositoryOperationName, Cause: editError}
	}

	return Repository{
		FullName: renamedRepository.GetFullName(),
		Private:  renamedRepository.GetPrivate(),
		HTMLURL:  renamedRepository.GetHTMLURL(),
	}, nil
}

// EnablePages turns on GitHub Pages for the repository, defaulting to the
// main branch served from the repository root.
func (client *Client) EnablePages(executionContext context.Context, repositoryOwner string, repositoryName string, sourceBranch string, sourcePath string) (PagesSite, error) {
	if len(strings.TrimSpace(repositoryOwner)) == 0 {
		return PagesSite{}, InvalidInputError{FieldName: repositoryOwnerFieldConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(repositoryName)) == 0 {
		return PagesSite{}, InvalidInputError{FieldName: repositoryNameFieldConstant, Message: requiredValueMessageConstant}
	}
	if len(sourceBranch) == 0 {
		sourceBranch = defaultPagesBranchConstant
	}
	if len(sourcePath) == 0 {
		sourcePath = defaultPagesPathConstant
	}

	pagesRequest := &github.Pages{
		Source: &github.PagesSource{
			Branch: github.Ptr(sourceBranch),
			Path:   github.Ptr(sourcePath),
		},
	}

	enabledPages, _, enableError := client.restClient.Repositories.EnablePages(executionContext, repositoryOwner, repositoryName, pagesRequest)
	if enableError != nil {
		return PagesSite{}, OperationError{Operation: EnablePagesOperationName, Cause: enableError}
	}

	return PagesSite{
		HTMLURL: enabledPages.GetHTMLURL(),
		Status:  enabledPages.GetStatus(),
	}, nil
}

// ListGists returns every gist owned by the authenticated user.
func (client *Client) ListGists(executionContext context.Context) ([]Gist, error) {
	listOptions := &github.GistListOptions{
		ListOptions: github.ListOptions{PerPage: gistListPageSizeConstant},
	}

	gists := []Gist{}
	for {
		gistPage, pageResponse, listError := client.restClient.Gists.List(executionContext, "", listOptions)
		if listError != nil {
			return nil, OperationError{Operation: ListGistsOperationName, Cause: listError}
		}
		for _, gist := range gistPage {
			gists = append(gists, Gist{
				Identifier:  gist.GetID(),
				Public:      gist.GetPublic(),
				Description: gist.GetDescription(),
				HTMLURL:     gist.GetHTMLURL(),
			})
		}
		if pageResponse.NextPage == 0 {
			break
		}
		listOptions.Page = pageResponse.NextPage
	}

	return gists, nil
}

// CreateGist creates a gist holding a single file.
func (client *Client) CreateGist(executionContext context.Context, gistFileName string, gistFileContent string, gistDescription string, publicVisibility bool) (Gist, error) {
	if len(strings.TrimSpace(gistFileName)) == 0 {
		return Gist{}, InvalidInputError{FieldName: gistFileNameFieldConstant, Message: requiredValueMessageConstant}
	}

	gistRequest := &github.Gist{
		Public: github.Ptr(publicVisibility),
		Files: map[github.GistFilename]github.GistFile{
			github.GistFilename(gistFileName): {Content: github.Ptr(gistFileContent)},
		},
	}
	if len(gistDescription) > 0 {
		gistRequest.Description = github.Ptr(gistDescription)
	}

	createdGist, _, createError := client.restClient.Gists.Create(executionContext, gistRequest)
	if createError != nil {
		return Gist{}, OperationError{Operation: CreateGistOperationName, Cause: createError}
	}

	return Gist{
		Identifier:  createdGist.GetID(),
		Public:      createdGist.GetPublic(),
		Description: createdGist.GetDescription(),
		HTMLURL:     createdGist.GetHTMLURL(),
	}, nil
}

// DeleteGist removes the identified gist.
func (client *Client) DeleteGist(executionContext context.Context, gistIdentifier string) error {
	if len(strings.TrimSpace(gistIdentifier)) == 0 {
		return InvalidInputError{FieldName: gistIdentifierFieldConstant, Message: requiredValueMessageConstant}
	}

	_, deleteError := client.restClient.Gists.Delete(executionContext, gistIdentifier)
	if deleteError != nil {
		return OperationError{Operation: DeleteGistOperationName, Cause: deleteError}
	}

	return nil
}

// NoReplyEmail returns the account's users.noreply.github.com address.
func (client *Client) NoReplyEmail(executionContext context.Context) (string, error) {
	emailRecords, _, listError := client.restClient.Users.ListEmails(executionContext, nil)
	if listError != nil {
		return "", OperationError{Operation: NoReplyEmailOperationName, Cause: listError}
	}

	for _, emailRecord := range emailRecords {
		if strings.HasSuffix(emailRecord.GetEmail(), noReplyEmailSuffixConstant) {
			return emailRecord.GetEmail(), nil
		}
	}

	return "", OperationError{Operation: NoReplyEmailOperationName, Cause: ErrNoReplyEmailNotFound}
}

// AuthenticatedUser resolves the token's account along with the remaining
// REST rate budget reported on the response.
func (client *Client) AuthenticatedUser(executionContext context.Context) (Account, error) {
	authenticatedUser, userResponse, fetchError := client.restClient.Users.Get(executionContext, "")
	if fetchError != nil {
		return Account{}, OperationError{Operation: AuthenticatedUserOperationName, Cause: fetchError}
	}

	return Account{
		Login:         authenticatedUser.GetLogin(),
		Name:          authenticatedUser.GetName(),
		RateRemaining: userResponse.Rate.Remaining,
		RateLimit:     userResponse.Rate.Limit,
	}, nil
}

func ensureTrailingSlash(rawURL string) string {
	if strings.HasSuffix(rawURL, baseURLTrailingSlashConstant) {
		return rawURL
	}
	return rawURL + baseURLTrailingSlashConstant
}
