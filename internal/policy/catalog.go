// AngelaMos | 2026
// catalog.go

package policy

import (
	"strings"
)

// DefaultTypes is offered when a provider has no active policies.
var DefaultTypes = []string{
	"Health Insurance",
	"Motor Insurance",
	"Life Insurance",
	"Property Insurance",
	"Travel Insurance",
	"Business Insurance",
}

// Providers returns the distinct, non-empty providers of ps in first-seen
// order.
func Providers(ps []Policy) []string {
	seen := make(map[string]struct{}, len(ps))
	out := make([]string, 0, len(ps))

	for _, p := range ps {
		name := strings.TrimSpace(p.ProviderName())
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}

// TypesFor returns the distinct policy types offered by provider. Type
// comparison ignores case and the first spelling seen wins.
func TypesFor(ps []Policy, provider string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, p := range ps {
		if p.ProviderName() != provider {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(p.PolicyType))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p.PolicyType)
	}

	return out
}

// TypeOptions is TypesFor with the default list as a fallback.
func TypeOptions(ps []Policy, provider string) []string {
	types := TypesFor(ps, provider)
	if len(types) == 0 {
		return append([]string(nil), DefaultTypes...)
	}
	return types
}

func PoliciesFor(ps []Policy, provider, policyType string) []Policy {
	out := make([]Policy, 0)
	for _, p := range ps {
		if p.ProviderName() == provider && strings.EqualFold(p.PolicyType, policyType) {
			out = append(out, p)
		}
	}
	return out
}

func Find(ps []Policy, id string) (Policy, bool) {
	for _, p := range ps {
		if p.ID == id {
			return p, true
		}
	}
	return Policy{}, false
}
