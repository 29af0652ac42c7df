package account

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	noreplyCommandUseConstant              = "noreply"
	noreplyCommandShortDescriptionConstant = "Print the account's noreply commit address"
	noreplyUnexpectedArgumentsMessage      = "noreply does not accept positional arguments"
)

// NoreplyCommandBuilder assembles the noreply command.
type NoreplyCommandBuilder struct {
	LoggerProvider         LoggerProvider
	UsernameProvider       UsernameProvider
	AccountServiceProvider AccountServiceProvider
}

// Build constructs the noreply command.
func (builder *NoreplyCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   noreplyCommandUseConstant,
		Short: noreplyCommandShortDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *NoreplyCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(noreplyUnexpectedArgumentsMessage)
	}
	if builder.AccountServiceProvider == nil {
		return ErrAccountServiceNotConfigured
	}
	if builder.UsernameProvider == nil {
		return ErrUsernameProviderNotSet
	}

	username, usernameError := builder.UsernameProvider()
	if usernameError != nil {
		return usernameError
	}

	accountService, serviceError := builder.AccountServiceProvider(command.Context(), username)
	if serviceError != nil {
		return serviceError
	}

	noReplyEmail, resolveError := accountService.NoReplyEmail(command.Context())
	if resolveError != nil {
		return resolveError
	}

	fmt.Fprintln(command.OutOrStdout(), noReplyEmail)

	return nil
}
