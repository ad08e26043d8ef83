package dto

import "time"

// ErrorResponse is the JSON body returned by every failing endpoint.
//
// Fields:
//   - Message: Human-readable description of what failed.
//   - ErrorDetails: Optional underlying error text, omitted when empty.
//   - Timestamp: Server time at which the error response was built.
//
// ErrorResponse implements the error interface so it can travel through
// middleware that expects an error value.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid request"`
	ErrorDetails string    `json:"error,omitempty" example:"cusip is required"`
	Timestamp    time.Time `json:"timestamp" example:"2024-01-02T15:04:05Z"`
}

// Error returns the message, with the underlying details appended when
// they exist.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse from a message and an
// optional inner error.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
