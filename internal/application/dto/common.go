package dto

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SessionRequest body for POST /api/session.
type SessionRequest struct {
	Msisdn string `json:"msisdn"`
}

// SessionResponse issued session token.
type SessionResponse struct {
	Token  string `json:"token"`
	Msisdn string `json:"msisdn"`
}

// DateValidationRequest body for POST /api/dates/validate.
type DateValidationRequest struct {
	DateProvided string `json:"date_provided"`
	Operator     string `json:"operator"` // equal | less_than | greater_than | equal_less | equal_greater
	Date         string `json:"date"`     // reference date or "today"
}

// DateValidationResponse result of a date check.
type DateValidationResponse struct {
	Valid bool `json:"valid"`
}
