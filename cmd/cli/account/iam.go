package account

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	iamCommandUseConstant              = "iam USER"
	iamCommandShortDescriptionConstant = "Switch the global git identity to the given account"
	iamArgumentsMessageConstant        = "iam requires exactly one username"
	iamMessageTemplateConstant         = "Now committing as %s <%s>\n"
	noReplyFallbackTemplateConstant    = "%s@users.noreply.github.com"
)

// IdentityCommandBuilder assembles the iam command.
type IdentityCommandBuilder struct {
	LoggerProvider          LoggerProvider
	AccountServiceProvider  AccountServiceProvider
	IdentityServiceProvider IdentityServiceProvider
}

// Build constructs the iam command.
func (builder *IdentityCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   iamCommandUseConstant,
		Short: iamCommandShortDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *IdentityCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errors.New(iamArgumentsMessageConstant)
	}

	username := arguments[0]
	noReplyEmail := builder.resolveNoReplyEmail(command, username)

	identityService, identityError := resolveIdentityService(builder.IdentityServiceProvider, resolveLogger(builder.LoggerProvider))
	if identityError != nil {
		return identityError
	}

	if assignError := identityService.SetGlobalIdentity(command.Context(), username, noReplyEmail); assignError != nil {
		return assignError
	}

	fmt.Fprintf(command.OutOrStdout(), iamMessageTemplateConstant, username, noReplyEmail)

	return nil
}

// resolveNoReplyEmail asks the API for the account's noreply address and
// falls back to the derived USER@users.noreply.github.com form when the
// token or the email endpoint is unavailable.
func (builder *IdentityCommandBuilder) resolveNoReplyEmail(command *cobra.Command, username string) string {
	fallbackEmail := fmt.Sprintf(noReplyFallbackTemplateConstant, username)
	if builder.AccountServiceProvider == nil {
		return fallbackEmail
	}

	accountService, serviceError := builder.AccountServiceProvider(command.Context(), username)
	if serviceError != nil {
		return fallbackEmail
	}

	noReplyEmail, resolveError := accountService.NoReplyEmail(command.Context())
	if resolveError != nil {
		return fallbackEmail
	}

	return noReplyEmail
}
