package errx

// HTTPErrorResponse represents a standard HTTP error response
type HTTPErrorResponse struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Type       string                 `json:"type"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"status_code"`
}

// ToHTTPResponse converts an Error to an HTTPErrorResponse
func (e *Error) ToHTTPResponse() HTTPErrorResponse {
	return HTTPErrorResponse{
		Code:       e.Code,
		Message:    e.Message,
		Type:       string(e.Type),
		Details:    e.Details,
		StatusCode: e.HTTPStatus,
	}
}

// ToHTTP converts any error into an HTTP response. Errors outside the errx
// family become a generic internal error so their text never leaks.
func ToHTTP(err error) HTTPErrorResponse {
	var e *Error
	if As(err, &e) {
		return e.ToHTTPResponse()
	}
	return New("An unexpected error occurred", TypeInternal).ToHTTPResponse()
}
