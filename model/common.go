package model

// Common Response structure for error bodies and plain acknowledgements
type Response struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Update successful"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DefaultResponse is a generic wrapper for Huma responses
type DefaultResponse struct {
	Body Response
}

// StatusResponse is returned by portfolio mutations.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

type StatusOutput struct {
	Body StatusResponse
}

func OkStatus() *StatusOutput {
	return &StatusOutput{Body: StatusResponse{Status: "ok"}}
}
