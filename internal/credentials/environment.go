package credentials

import (
	"os"
	"strings"
)

// Environment variable names consulted before the credentials store.
const (
	EnvGhopsToken  = "GHOPS_TOKEN"
	EnvGitHubToken = "GITHUB_TOKEN"
)

var tokenPreference = []string{
	EnvGhopsToken,
	EnvGitHubToken,
}

// ResolveEnvironmentToken returns the first non-empty token observed in the
// provided environment map or the process environment.
func ResolveEnvironmentToken(environment map[string]string) (string, bool) {
	for _, key := range tokenPreference {
		if value, ok := lookupEnvironment(environment, key); ok {
			return value, true
		}
	}
	for _, key := range tokenPreference {
		if value, ok := os.LookupEnv(key); ok {
			value = strings.TrimSpace(value)
			if len(value) > 0 {
				return value, true
			}
		}
	}
	return "", false
}

func lookupEnvironment(environment map[string]string, key string) (string, bool) {
	if environment == nil {
		return "", false
	}
	value, exists := environment[key]
	if !exists {
		return "", false
	}
	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return "", false
	}
	return value, true
}
