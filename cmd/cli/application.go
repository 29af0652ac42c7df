package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/ghops/cmd/cli/account"
	gistcmd "github.com/temirov/ghops/cmd/cli/gist"
	releasecmd "github.com/temirov/ghops/cmd/cli/release"
	repocmd "github.com/temirov/ghops/cmd/cli/repo"
	"github.com/temirov/ghops/internal/credentials"
	"github.com/temirov/ghops/internal/execshell"
	"github.com/temirov/ghops/internal/githubapi"
	"github.com/temirov/ghops/internal/gitrepo"
	"github.com/temirov/ghops/internal/releases"
	"github.com/temirov/ghops/internal/status"
	"github.com/temirov/ghops/internal/ui"
	"github.com/temirov/ghops/internal/utils"
	pathutils "github.com/temirov/ghops/internal/utils/path"
)

const (
	applicationNameConstant                 = "ghops"
	applicationShortDescriptionConstant     = "Command-line interface for GitHub repository, gist, and account operations"
	applicationLongDescriptionConstant      = "ghops wraps the GitHub REST API and a few local git workflows behind per-user personal access tokens."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	userFlagNameConstant                    = "user"
	userFlagUsageConstant                   = "GitHub account the command operates on."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	commonUsernameConfigKeyConstant         = commonConfigurationKeyConstant + ".username"
	environmentPrefixConstant               = "GHOPS"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandInfoMessageConstant          = "ghops CLI executed"
	rootCommandDebugMessageConstant         = "ghops CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	logFieldUsernameConstant                = "username"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	toolsConfigurationKeyConstant           = "tools"
	repoConfigurationKeyConstant            = toolsConfigurationKeyConstant + ".repo"
	releaseConfigurationKeyConstant         = toolsConfigurationKeyConstant + ".release"
	statusFeedURLConfigKeyConstant          = toolsConfigurationKeyConstant + ".status.feed_url"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging and account configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Username  string `mapstructure:"username"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool family.
type ApplicationToolsConfiguration struct {
	Repo    repocmd.Configuration          `mapstructure:"repo"`
	Release releasecmd.Configuration       `mapstructure:"release"`
	Status  ApplicationStatusConfiguration `mapstructure:"status"`
}

// ApplicationStatusConfiguration holds configuration for the status command.
type ApplicationStatusConfiguration struct {
	FeedURL string `mapstructure:"feed_url"`
}

// Application wires the Cobra root command, configuration loader, credential
// resolver, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	usernameFlagValue      string
	commandContextAccessor utils.CommandContextAccessor
	credentialResolver     *credentials.Resolver
	remoteOwnerResolver    func() (string, error)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	embeddedConfiguration, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfiguration, embeddedConfigurationType)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}
	application.remoteOwnerResolver = application.workingRepositoryOwner

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.SetOut(utils.NewFlushingWriter(os.Stdout))
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.usernameFlagValue, userFlagNameConstant, "", userFlagUsageConstant)

	repoGroupBuilder := repocmd.CommandGroupBuilder{
		LoggerProvider:            application.loggerProvider,
		UsernameProvider:          application.resolveUsername,
		RepositoryServiceProvider: application.repositoryService,
		LocalServiceProvider:      application.localGitService,
		ConfigurationProvider: func() repocmd.Configuration {
			return application.configuration.Tools.Repo
		},
	}
	if repoGroupCommand, repoGroupError := repoGroupBuilder.Build(); repoGroupError == nil {
		cobraCommand.AddCommand(repoGroupCommand)
	}

	gistGroupBuilder := gistcmd.CommandGroupBuilder{
		LoggerProvider:      application.loggerProvider,
		GistServiceProvider: application.gistService,
	}
	if gistGroupCommand, gistGroupError := gistGroupBuilder.Build(); gistGroupError == nil {
		cobraCommand.AddCommand(gistGroupCommand)
	}

	noreplyBuilder := account.NoreplyCommandBuilder{
		LoggerProvider:         application.loggerProvider,
		UsernameProvider:       application.resolveUsername,
		AccountServiceProvider: application.accountService,
	}
	if noreplyCommand, noreplyError := noreplyBuilder.Build(); noreplyError == nil {
		cobraCommand.AddCommand(noreplyCommand)
	}

	identityBuilder := account.IdentityCommandBuilder{
		LoggerProvider:          application.loggerProvider,
		AccountServiceProvider:  application.accountService,
		IdentityServiceProvider: application.identityService,
	}
	if identityCommand, identityError := identityBuilder.Build(); identityError == nil {
		cobraCommand.AddCommand(identityCommand)
	}

	statusBuilder := account.StatusCommandBuilder{
		LoggerProvider:         application.loggerProvider,
		UsernameProvider:       application.resolveUsername,
		AccountServiceProvider: application.accountService,
		StatusFeedProvider:     application.statusFeed,
	}
	if statusCommand, statusError := statusBuilder.Build(); statusError == nil {
		cobraCommand.AddCommand(statusCommand)
	}

	releaseBuilder := releasecmd.CommandBuilder{
		LoggerProvider:    application.loggerProvider,
		UsernameProvider:  application.resolveUsername,
		PublisherProvider: application.releasePublisher,
		ConfigurationProvider: func() releasecmd.Configuration {
			return application.configuration.Tools.Release
		},
	}
	if releaseCommand, releaseError := releaseBuilder.Build(); releaseError == nil {
		cobraCommand.AddCommand(releaseCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

// RootCommand exposes the assembled command hierarchy for tests.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
		commonUsernameConfigKeyConstant:  "",
		statusFeedURLConfigKeyConstant:   status.DefaultFeedURL,
	}
	for configurationKey, configurationValue := range repocmd.DefaultConfigurationValues(repoConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range releasecmd.DefaultConfigurationValues(releaseConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	expandedConfigurationFilePath := pathutils.NewHomeExpander().Expand(application.configurationFilePath)
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(expandedConfigurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		if resolvedUsername, usernameError := application.resolveUsername(); usernameError == nil {
			updatedContext = application.commandContextAccessor.WithUsername(updatedContext, resolvedUsername)
		}
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) loggerProvider() *zap.Logger {
	return application.logger
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

// resolveUsername prefers the --user flag, then the configured account, then
// the owner of the working repository's origin remote.
func (application *Application) resolveUsername() (string, error) {
	trimmedFlagValue := strings.TrimSpace(application.usernameFlagValue)
	if len(trimmedFlagValue) > 0 {
		return trimmedFlagValue, nil
	}

	trimmedConfiguredValue := strings.TrimSpace(application.configuration.Common.Username)
	if len(trimmedConfiguredValue) > 0 {
		return trimmedConfiguredValue, nil
	}

	if application.remoteOwnerResolver != nil {
		if remoteOwner, remoteOwnerError := application.remoteOwnerResolver(); remoteOwnerError == nil && len(strings.TrimSpace(remoteOwner)) > 0 {
			return strings.TrimSpace(remoteOwner), nil
		}
	}

	return "", credentials.ErrMissingUsername
}

// workingRepositoryOwner derives an account name from the origin remote of
// the repository containing the current working directory.
func (application *Application) workingRepositoryOwner() (string, error) {
	repositoryPath, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "", workingDirectoryError
	}

	shellExecutor, executorError := application.shellExecutor(application.logger)
	if executorError != nil {
		return "", executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
	if managerError != nil {
		return "", managerError
	}

	remoteURL, remoteError := repositoryManager.RemoteURL(context.Background(), repositoryPath, "")
	if remoteError != nil {
		return "", remoteError
	}

	return remoteURL.Owner, nil
}

func (application *Application) resolveCredentialResolver() (*credentials.Resolver, error) {
	if application.credentialResolver != nil {
		return application.credentialResolver, nil
	}

	storePath, storePathError := credentials.DefaultStorePath()
	if storePathError != nil {
		return nil, storePathError
	}

	credentialResolver, resolverError := credentials.NewResolver(credentials.NewFileStore(storePath), credentials.NewTerminalPrompter())
	if resolverError != nil {
		return nil, resolverError
	}

	application.credentialResolver = credentialResolver
	return credentialResolver, nil
}

func (application *Application) githubClientForUsername(executionContext context.Context, username string) (*githubapi.Client, error) {
	credentialResolver, resolverError := application.resolveCredentialResolver()
	if resolverError != nil {
		return nil, resolverError
	}

	credential, credentialError := credentialResolver.Resolve(username)
	if credentialError != nil {
		return nil, credentialError
	}

	return githubapi.NewClient(executionContext, githubapi.ClientDependencies{AccessToken: credential.Token})
}

func (application *Application) authenticatedClient(executionContext context.Context) (*githubapi.Client, error) {
	username, usernameError := application.resolveUsername()
	if usernameError != nil {
		return nil, usernameError
	}
	return application.githubClientForUsername(executionContext, username)
}

func (application *Application) repositoryService(executionContext context.Context) (repocmd.RepositoryService, error) {
	return application.authenticatedClient(executionContext)
}

func (application *Application) gistService(executionContext context.Context) (gistcmd.GistService, error) {
	return application.authenticatedClient(executionContext)
}

func (application *Application) accountService(executionContext context.Context, username string) (account.AccountService, error) {
	return application.githubClientForUsername(executionContext, username)
}

func (application *Application) statusFeed() account.StatusFeed {
	return status.NewFeedClient(http.DefaultClient, application.configuration.Tools.Status.FeedURL)
}

func (application *Application) shellExecutor(logger *zap.Logger) (*execshell.ShellExecutor, error) {
	commandRunner := execshell.NewOSCommandRunner()
	if application.humanReadableLoggingEnabled() {
		return execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}

func (application *Application) localGitService(logger *zap.Logger) (repocmd.LocalService, error) {
	shellExecutor, executorError := application.shellExecutor(logger)
	if executorError != nil {
		return nil, executorError
	}
	return gitrepo.NewRepositoryManager(shellExecutor)
}

func (application *Application) identityService(logger *zap.Logger) (account.IdentityService, error) {
	shellExecutor, executorError := application.shellExecutor(logger)
	if executorError != nil {
		return nil, executorError
	}
	return gitrepo.NewRepositoryManager(shellExecutor)
}

func (application *Application) releasePublisher(logger *zap.Logger) (releasecmd.Publisher, error) {
	shellExecutor, executorError := application.shellExecutor(logger)
	if executorError != nil {
		return nil, executorError
	}
	return releases.NewService(releases.ServiceDependencies{
		GitExecutor: shellExecutor,
		TarExecutor: shellExecutor,
	})
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	commandContext := command.Context()
	configurationFilePathValue, _ := application.commandContextAccessor.ConfigurationFilePath(commandContext)
	usernameValue, _ := application.commandContextAccessor.Username(commandContext)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
		zap.String(configurationFileFieldConstant, configurationFilePathValue),
		zap.String(logFieldUsernameConstant, usernameValue),
	)

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
