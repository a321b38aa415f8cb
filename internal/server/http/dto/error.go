package dto

// ErrorResponse is returned for every rejected request.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}
