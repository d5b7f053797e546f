package models

// Response is the JSON envelope used by the read-only endpoints.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type HealthData struct {
	Tiers             []Tier `json:"tiers"`
	WebhookVerifying  bool   `json:"webhook_verification"`
	AdminActivationOn bool   `json:"admin_activation"`
}

func SuccessResponse(data any, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}
