package models

// CreateCheckoutSessionRequest accepts the plan under any of the field names
// older forms used.
type CreateCheckoutSessionRequest struct {
	Tier      string `json:"tier" form:"tier"`
	Plan      string `json:"plan" form:"plan"`
	LookupKey string `json:"lookup_key" form:"lookup_key"`
}

// RawTier returns the first non-empty of tier, plan, lookup_key.
func (r CreateCheckoutSessionRequest) RawTier() string {
	for _, v := range []string{r.Tier, r.Plan, r.LookupKey} {
		if v != "" {
			return v
		}
	}
	return ""
}

type CreatePortalSessionRequest struct {
	SessionID string `json:"session_id" form:"session_id" validate:"required"`
}

type ActivateKeyRequest struct {
	AdminKey string `json:"admin_key" form:"admin_key"`
}
