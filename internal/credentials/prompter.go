package credentials

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	tokenPromptTemplateConstant         = "Personal access token for %s: "
	promptNewlineConstant               = "\n"
	promptReadErrorTemplateConstant     = "unable to read token: %w"
	emptyTokenMessageConstant           = "empty token provided"
	terminalUnavailableMessageConstant  = "standard input is not a terminal"
	staticPrompterExhaustedMessageConst = "no token configured for prompting"
)

// TokenPrompter collects a personal access token for a username.
type TokenPrompter interface {
	PromptToken(username string) (string, error)
}

// TerminalPrompter reads tokens interactively without echoing input.
type TerminalPrompter struct {
	promptWriter io.Writer
}

// NewTerminalPrompter constructs a prompter that writes its prompt to standard error.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{promptWriter: os.Stderr}
}

// PromptToken asks for the token on the controlling terminal with echo disabled.
func (prompter *TerminalPrompter) PromptToken(username string) (string, error) {
	standardInputDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(standardInputDescriptor) {
		return "", errors.New(terminalUnavailableMessageConstant)
	}

	fmt.Fprintf(prompter.promptWriter, tokenPromptTemplateConstant, username)
	tokenBytes, readError := term.ReadPassword(standardInputDescriptor)
	fmt.Fprint(prompter.promptWriter, promptNewlineConstant)
	if readError != nil {
		return "", fmt.Errorf(promptReadErrorTemplateConstant, readError)
	}

	token := strings.TrimSpace(string(tokenBytes))
	if len(token) == 0 {
		return "", errors.New(emptyTokenMessageConstant)
	}

	return token, nil
}

// StaticPrompter returns preconfigured tokens, supporting non-interactive use and tests.
type StaticPrompter struct {
	Token string
}

// PromptToken returns the configured token.
func (prompter StaticPrompter) PromptToken(string) (string, error) {
	if len(strings.TrimSpace(prompter.Token)) == 0 {
		return "", errors.New(staticPrompterExhaustedMessageConst)
	}
	return strings.TrimSpace(prompter.Token), nil
}
