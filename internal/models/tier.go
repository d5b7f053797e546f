package models

const (
	TierStarter   = "starter"
	TierPro       = "pro"
	TierSyndicate = "syndicate"
)

// TierNames is the closed set of plan names, in display order.
var TierNames = []string{TierStarter, TierPro, TierSyndicate}

type Tier struct {
	Name      string `json:"name"`
	LookupKey string `json:"lookup_key"`
}
