package credentials

import (
	"errors"
	"fmt"
	"strings"
)

const (
	missingUsernameMessageConstant      = "username is required"
	storeNotConfiguredMessageConstant   = "credential store not configured"
	lookupFailedErrorTemplateConstant   = "credential lookup for %s failed: %w"
	promptFailedErrorTemplateConstant   = "credential prompt for %s failed: %w"
	persistFailedErrorTemplateConstant  = "credential persistence for %s failed: %w"
	prompterNotConfiguredMessageConst   = "token prompter not configured"
	environmentSourceLabelConstant      = "environment"
	storeSourceLabelConstant            = "store"
	prompterSourceLabelConstant         = "prompt"
	unknownCredentialSourceLabelConstant = "unknown"
)

// ErrMissingUsername indicates no username was supplied for credential resolution.
var ErrMissingUsername = errors.New(missingUsernameMessageConstant)

// CredentialStore abstracts persistent lookup and append operations for credential records.
type CredentialStore interface {
	Lookup(username string) (string, bool, error)
	Append(username string, token string) error
}

// Source identifies where a resolved token came from.
type Source string

// Supported credential sources.
const (
	SourceEnvironment Source = Source(environmentSourceLabelConstant)
	SourceStore       Source = Source(storeSourceLabelConstant)
	SourcePrompt      Source = Source(prompterSourceLabelConstant)
	SourceUnknown     Source = Source(unknownCredentialSourceLabelConstant)
)

// Credential couples a username with its resolved token and provenance.
type Credential struct {
	Username string
	Token    string
	Source   Source
}

// Resolver locates or collects tokens for usernames.
type Resolver struct {
	store    CredentialStore
	prompter TokenPrompter
}

// NewResolver constructs a resolver from a store and prompter.
func NewResolver(store CredentialStore, prompter TokenPrompter) (*Resolver, error) {
	if store == nil {
		return nil, errors.New(storeNotConfiguredMessageConstant)
	}
	if prompter == nil {
		return nil, errors.New(prompterNotConfiguredMessageConst)
	}
	return &Resolver{store: store, prompter: prompter}, nil
}

// Resolve returns the token for the supplied username, collecting and
// persisting a new record when the store has none. Environment overrides take
// precedence over the store and never persist.
func (resolver *Resolver) Resolve(username string) (Credential, error) {
	trimmedUsername := strings.TrimSpace(username)
	if len(trimmedUsername) == 0 {
		return Credential{}, ErrMissingUsername
	}

	if environmentToken, found := ResolveEnvironmentToken(nil); found {
		return Credential{Username: trimmedUsername, Token: environmentToken, Source: SourceEnvironment}, nil
	}

	storedToken, found, lookupError := resolver.store.Lookup(trimmedUsername)
	if lookupError != nil {
		return Credential{}, fmt.Errorf(lookupFailedErrorTemplateConstant, trimmedUsername, lookupError)
	}
	if found {
		return Credential{Username: trimmedUsername, Token: storedToken, Source: SourceStore}, nil
	}

	promptedToken, promptError := resolver.prompter.PromptToken(trimmedUsername)
	if promptError != nil {
		return Credential{}, fmt.Errorf(promptFailedErrorTemplateConstant, trimmedUsername, promptError)
	}

	if appendError := resolver.store.Append(trimmedUsername, promptedToken); appendError != nil {
		return Credential{}, fmt.Errorf(persistFailedErrorTemplateConstant, trimmedUsername, appendError)
	}

	return Credential{Username: trimmedUsername, Token: promptedToken, Source: SourcePrompt}, nil
}
