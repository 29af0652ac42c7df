package account

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/ghops/internal/githubapi"
)

const (
	statusCommandUseConstant              = "status"
	statusCommandShortDescriptionConstant = "Report token validity and the public GitHub status feed"
	statusUnexpectedArgumentsMessage      = "status does not accept positional arguments"
	tokenValidMessageTemplateConstant     = "Token for %s is valid (rate %d/%d)\n"
	tokenInvalidMessageTemplateConstant   = "Token check failed: %s\n"
	feedMessageTemplateConstant           = "GitHub status: %s (%s)\n"
	feedUnavailableTemplateConstant       = "GitHub status unavailable: %s\n"
)

// StatusCommandBuilder assembles the status command.
type StatusCommandBuilder struct {
	LoggerProvider         LoggerProvider
	UsernameProvider       UsernameProvider
	AccountServiceProvider AccountServiceProvider
	StatusFeedProvider     StatusFeedProvider
}

// Build constructs the status command.
func (builder *StatusCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   statusCommandUseConstant,
		Short: statusCommandShortDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

// run reports both health checks and always exits zero: status is a report,
// not an assertion.
func (builder *StatusCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(statusUnexpectedArgumentsMessage)
	}

	builder.reportToken(command)
	builder.reportFeed(command)

	return nil
}

func (builder *StatusCommandBuilder) reportToken(command *cobra.Command) {
	if builder.AccountServiceProvider == nil || builder.UsernameProvider == nil {
		fmt.Fprintf(command.OutOrStdout(), tokenInvalidMessageTemplateConstant, ErrAccountServiceNotConfigured)
		return
	}

	username, usernameError := builder.UsernameProvider()
	if usernameError != nil {
		fmt.Fprintf(command.OutOrStdout(), tokenInvalidMessageTemplateConstant, usernameError)
		return
	}

	accountService, serviceError := builder.AccountServiceProvider(command.Context(), username)
	if serviceError != nil {
		fmt.Fprintf(command.OutOrStdout(), tokenInvalidMessageTemplateConstant, serviceError)
		return
	}

	account, fetchError := accountService.AuthenticatedUser(command.Context())
	if fetchError != nil {
		fmt.Fprintf(command.OutOrStdout(), tokenInvalidMessageTemplateConstant, githubapi.ServiceMessage(fetchError))
		return
	}

	fmt.Fprintf(command.OutOrStdout(), tokenValidMessageTemplateConstant, account.Login, account.RateRemaining, account.RateLimit)
}

func (builder *StatusCommandBuilder) reportFeed(command *cobra.Command) {
	feedSummary, summaryError := resolveStatusFeed(builder.StatusFeedProvider).Summary(command.Context())
	if summaryError != nil {
		fmt.Fprintf(command.OutOrStdout(), feedUnavailableTemplateConstant, summaryError)
		return
	}

	fmt.Fprintf(command.OutOrStdout(), feedMessageTemplateConstant, feedSummary.Indicator, feedSummary.Description)
}
