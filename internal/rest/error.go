package rest

// ErrorResponse is the JSON body returned for any failed API request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
