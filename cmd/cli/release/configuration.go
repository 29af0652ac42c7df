package release

import "strings"

const (
	configurationRemoteKeyConstant        = "remote"
	configurationBranchKeyConstant        = "branch"
	configurationCommitMessageKeyConstant = "commit_message"
	defaultRemoteNameConstant             = "origin"
	defaultBranchReferenceConstant        = "HEAD:refs/heads/main"
	defaultCommitMessageConstant          = "Release"
)

// Configuration captures release command configuration values.
type Configuration struct {
	Remote        string `mapstructure:"remote"`
	Branch        string `mapstructure:"branch"`
	CommitMessage string `mapstructure:"commit_message"`
}

// DefaultConfiguration returns baseline configuration values for the release command.
func DefaultConfiguration() Configuration {
	return Configuration{
		Remote:        defaultRemoteNameConstant,
		Branch:        defaultBranchReferenceConstant,
		CommitMessage: defaultCommitMessageConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the release command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		rootKey + "." + configurationRemoteKeyConstant:        defaults.Remote,
		rootKey + "." + configurationBranchKeyConstant:        defaults.Branch,
		rootKey + "." + configurationCommitMessageKeyConstant: defaults.CommitMessage,
	}
}

func (configuration Configuration) sanitize() Configuration {
	sanitized := configuration
	sanitized.Remote = strings.TrimSpace(configuration.Remote)
	if len(sanitized.Remote) == 0 {
		sanitized.Remote = defaultRemoteNameConstant
	}
	sanitized.Branch = strings.TrimSpace(configuration.Branch)
	if len(sanitized.Branch) == 0 {
		sanitized.Branch = defaultBranchReferenceConstant
	}
	sanitized.CommitMessage = strings.TrimSpace(configuration.CommitMessage)
	if len(sanitized.CommitMessage) == 0 {
		sanitized.CommitMessage = defaultCommitMessageConstant
	}
	return sanitized
}
