package repo

import "strings"

const (
	configurationRemoteKeyConstant      = "remote"
	configurationPagesKeyConstant       = "pages"
	configurationPagesBranchKeyConstant = "branch"
	configurationPagesPathKeyConstant   = "path"
	defaultRemoteNameConstant           = "origin"
	defaultPagesBranchConstant          = "main"
	defaultPagesPathConstant            = "/"
)

// Configuration captures repo command configuration values.
type Configuration struct {
	Remote string             `mapstructure:"remote"`
	Pages  PagesConfiguration `mapstructure:"pages"`
}

// PagesConfiguration describes the default GitHub Pages source.
type PagesConfiguration struct {
	Branch string `mapstructure:"branch"`
	Path   string `mapstructure:"path"`
}

// DefaultConfiguration returns baseline configuration values for repo commands.
func DefaultConfiguration() Configuration {
	return Configuration{
		Remote: defaultRemoteNameConstant,
		Pages: PagesConfiguration{
			Branch: defaultPagesBranchConstant,
			Path:   defaultPagesPathConstant,
		},
	}
}

// DefaultConfigurationValues produces Viper defaults for repo commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		rootKey + "." + configurationRemoteKeyConstant: defaults.Remote,
		rootKey + "." + configurationPagesKeyConstant + "." + configurationPagesBranchKeyConstant: defaults.Pages.Branch,
		rootKey + "." + configurationPagesKeyConstant + "." + configurationPagesPathKeyConstant:   defaults.Pages.Path,
	}
}

func (configuration Configuration) sanitize() Configuration {
	sanitized := configuration
	sanitized.Remote = strings.TrimSpace(configuration.Remote)
	if len(sanitized.Remote) == 0 {
		sanitized.Remote = defaultRemoteNameConstant
	}
	sanitized.Pages.Branch = strings.TrimSpace(configuration.Pages.Branch)
	if len(sanitized.Pages.Branch) == 0 {
		sanitized.Pages.Branch = defaultPagesBranchConstant
	}
	sanitized.Pages.Path = strings.TrimSpace(configuration.Pages.Path)
	if len(sanitized.Pages.Path) == 0 {
		sanitized.Pages.Path = defaultPagesPathConstant
	}
	return sanitized
}
