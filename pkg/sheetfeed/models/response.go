package models

// ValuesResponse is the JSON envelope returned by the values endpoint.
type ValuesResponse struct {
	// Range is the A1 range the upstream actually returned.
	Range string `json:"range,omitempty"`
	// MajorDimension is "ROWS" for row-major grids.
	MajorDimension string `json:"majorDimension,omitempty"`
	// Values is the raw grid; absent for an empty range.
	Values Grid `json:"values,omitempty"`
	// Error is set when the upstream rejected the request.
	Error *APIError `json:"error,omitempty"`
}

// APIError is the error object carried in a failed upstream response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}
