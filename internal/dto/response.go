package dto

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	// PreviewURL is only set by OTP resend endpoints in non-production mode.
	PreviewURL string `json:"previewUrl,omitempty"`
	// Detail carries underlying error text, debug mode only.
	Detail string `json:"detail,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail builds a failure envelope.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}
