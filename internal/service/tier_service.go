package service

import (
	"fmt"
	"strings"

	"github.com/sefazor/gracex-storefront/internal/models"
)

// TierRegistry maps the fixed tier names to Stripe price lookup keys.
// It is read-only after construction and safe for concurrent use.
type TierRegistry struct {
	tiers map[string]models.Tier
}

// NewTierRegistry requires a lookup key for every name in models.TierNames and
// rejects unknown names or a key shared by two tiers.
func NewTierRegistry(lookupKeys map[string]string) (*TierRegistry, error) {
	tiers := make(map[string]models.Tier, len(models.TierNames))
	seen := make(map[string]string, len(models.TierNames))

	for _, name := range models.TierNames {
		key := strings.TrimSpace(lookupKeys[name])
		if key == "" {
			return nil, fmt.Errorf("tier %s has no lookup key", name)
		}
		if other, dup := seen[key]; dup {
			return nil, fmt.Errorf("lookup key %q used by both %s and %s", key, other, name)
		}
		seen[key] = name
		tiers[name] = models.Tier{Name: name, LookupKey: key}
	}
	if len(lookupKeys) != len(tiers) {
		for name := range lookupKeys {
			if _, ok := tiers[name]; !ok {
				return nil, fmt.Errorf("unknown tier %q", name)
			}
		}
	}

	return &TierRegistry{tiers: tiers}, nil
}

// Resolve trims and lower-cases raw before looking it up.
func (r *TierRegistry) Resolve(raw string) (models.Tier, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return models.Tier{}, false
	}
	tier, ok := r.tiers[name]
	return tier, ok
}

// All returns the tiers in display order.
func (r *TierRegistry) All() []models.Tier {
	out := make([]models.Tier, 0, len(models.TierNames))
	for _, name := range models.TierNames {
		out = append(out, r.tiers[name])
	}
	return out
}

func (r *TierRegistry) Names() []string {
	return append([]string(nil), models.TierNames...)
}
