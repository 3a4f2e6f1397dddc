package entity

import "fmt"

// Environment is a single bootstrap target.
type Environment struct {
	Account string `json:"account"`
	Region  string `json:"region"`
	Profile string `json:"profile,omitempty"`
}

// Target returns the CDK environment URI, e.g. aws://123456789012/us-east-1.
func (e Environment) Target() string {
	return fmt.Sprintf("aws://%s/%s", e.Account, e.Region)
}

// String retorna "conta/região" com o perfil entre parênteses, quando houver.
func (e Environment) String() string {
	if e.Profile != "" {
		return fmt.Sprintf("%s/%s (profile: %s)", e.Account, e.Region, e.Profile)
	}
	return fmt.Sprintf("%s/%s", e.Account, e.Region)
}
