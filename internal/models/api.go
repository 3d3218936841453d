package models

// OKResponse is the body returned on successful trigger creation.
type OKResponse struct {
	OK string `json:"ok"`
}

// ErrorResponse is the body returned on any failed trigger creation.
// Error is a string for locally detected failures and may carry the
// upstream payload for authorization denials.
type ErrorResponse struct {
	Message string      `json:"message"`
	Error   interface{} `json:"error"`
}
