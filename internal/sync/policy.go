package sync

import (
	"fmt"
	"strings"
)

// Policy decides whether a drift record is applied without asking.
type Policy string

const (
	// PolicyInteractive asks for confirmation before each record.
	PolicyInteractive Policy = "interactive"

	// PolicyForce applies every record without prompting.
	PolicyForce Policy = "force"

	// PolicySilent applies every record without prompting or banner output.
	PolicySilent Policy = "silent"
)

// IsValid returns true if the policy is recognized.
func (p Policy) IsValid() bool {
	switch p {
	case PolicyInteractive, PolicyForce, PolicySilent:
		return true
	default:
		return false
	}
}

// Prompts reports whether the policy asks before applying a record.
func (p Policy) Prompts() bool {
	return p == PolicyInteractive
}

// AllPolicies returns all supported policies.
func AllPolicies() []Policy {
	return []Policy{PolicyInteractive, PolicyForce, PolicySilent}
}

// String returns the string representation of the policy.
func (p Policy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p Policy) Description() string {
	switch p {
	case PolicyInteractive:
		return "Ask before updating each file"
	case PolicyForce:
		return "Update every drifted file without asking"
	case PolicySilent:
		return "Update every drifted file without asking or printing the configuration"
	default:
		return "Unknown policy"
	}
}

// ParsePolicy converts a name into a Policy. An empty name is interactive.
func ParsePolicy(name string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return PolicyInteractive, nil
	}
	if !p.IsValid() {
		return "", fmt.Errorf("unknown sync policy %q (valid: interactive, force, silent)", name)
	}
	return p, nil
}

// SelectPolicy resolves the command-line switches into a policy.
// Silent wins over force; both win over the configured fallback.
func SelectPolicy(force, silent bool, fallback Policy) Policy {
	switch {
	case silent:
		return PolicySilent
	case force:
		return PolicyForce
	case fallback.IsValid():
		return fallback
	default:
		return PolicyInteractive
	}
}
