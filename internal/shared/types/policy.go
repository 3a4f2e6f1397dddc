package types

import (
	"fmt"
	"strings"
)

// FailurePolicy decides what a failed bootstrap command does to the rest of the run.
type FailurePolicy string

const (
	// PolicyFailFast aborts the run on the first command that exits non-zero.
	PolicyFailFast FailurePolicy = "fail-fast"
	// PolicyContinue records the failure and moves on to the next environment.
	PolicyContinue FailurePolicy = "continue"
)

// ParseFailurePolicy converte o valor de flag/arquivo numa FailurePolicy. Vazio é fail-fast.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(PolicyFailFast):
		return PolicyFailFast, nil
	case string(PolicyContinue), "continue-on-error":
		return PolicyContinue, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownPolicy, s)
	}
}

// IdentitySource selects how the caller identity is resolved.
type IdentitySource string

const (
	IdentitySourceCLI IdentitySource = "cli"
	IdentitySourceSDK IdentitySource = "sdk"
)

func ParseIdentitySource(s string) (IdentitySource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(IdentitySourceCLI):
		return IdentitySourceCLI, nil
	case string(IdentitySourceSDK):
		return IdentitySourceSDK, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownIdentitySource, s)
	}
}

// DefaultQualifier is the qualifier `cdk bootstrap` uses unless told otherwise.
const DefaultQualifier = "hnb659fds"
