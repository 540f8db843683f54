package models

// Health statuses reported by the health-check endpoints.
const (
	HealthStatusOK    = "ok"
	HealthStatusError = "error"
	IndicatorUp       = "up"
	IndicatorDown     = "down"
)

// IndicatorStatus is the state of a single checked dependency.
type IndicatorStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the result of a health check
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall status
	// default: ok
	Status string `json:"status"`

	// Indicators that are up
	Info map[string]IndicatorStatus `json:"info"`

	// Indicators that are down
	Error map[string]IndicatorStatus `json:"error"`

	// All indicators
	Details map[string]IndicatorStatus `json:"details"`
}

// NewHealthResponse builds a response from the given indicators. The overall
// status is ok only when every indicator is up.
func NewHealthResponse(indicators map[string]IndicatorStatus) HealthResponse {
	resp := HealthResponse{
		Status:  HealthStatusOK,
		Info:    map[string]IndicatorStatus{},
		Error:   map[string]IndicatorStatus{},
		Details: map[string]IndicatorStatus{},
	}
	for name, ind := range indicators {
		resp.Details[name] = ind
		if ind.Status == IndicatorUp {
			resp.Info[name] = ind
			continue
		}
		resp.Error[name] = ind
		resp.Status = HealthStatusError
	}
	return resp
}
