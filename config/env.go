package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// ParseEnvironment maps an ENV value to an Environment, defaulting to development
func ParseEnvironment(s string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case Production:
		return Production
	case Test:
		return Test
	case CI:
		return CI
	default:
		return Development
	}
}

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// IsProduction returns true if the current environment is production
func (e Environment) IsProduction() bool {
	return e == Production
}
