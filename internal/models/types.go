package models

// ChatPayload is the body accepted by the chat endpoint
type ChatPayload struct {
	Message string `json:"message"`
}

// CompletionResult is returned to the UI on success
type CompletionResult struct {
	Text        string                 `json:"text"`
	Translation string                 `json:"translation"`
	Success     bool                   `json:"success"`
	Tokens      map[string]interface{} `json:"tokens"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
	Help    string `json:"help,omitempty"`
}

// NewErrorResponse builds a failed response body
func NewErrorResponse(err string) *ErrorResponse {
	return &ErrorResponse{Success: false, Error: err}
}
