package dto

// ErrorResponse is the uniform error payload of the agent surface.
type ErrorResponse struct {
	Message string `json:"message"`
}
