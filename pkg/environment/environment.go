// Package environment names the deployment stage the service runs in.
package environment

import "strings"

type Environment string

const (
	// Development for local runs.
	Development Environment = "development"
	// Production for the public deployment.
	Production Environment = "production"
	// Staging for preview deployments.
	Staging Environment = "staging"
)

// Parse maps APP_ENV values, including the short aliases, to an Environment.
// Unknown values fall back to Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

func (e Environment) String() string { return string(e) }

func (e Environment) IsProduction() bool { return e == Production }

func (e Environment) IsDevelopment() bool { return e == Development }
