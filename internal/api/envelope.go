package api

import "encoding/json"

const (
	// SuccessCode marks a successful envelope.
	SuccessCode = "0000"

	// TokenExpiredCode marks a response that invalidates the session.
	TokenExpiredCode = "SYS_1202"
)

// Envelope is the wrapper every management-service response uses. Result
// stays raw until the caller knows its shape.
type Envelope struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	RequestID string          `json:"requestId"`
	Result    json.RawMessage `json:"result"`
	Version   string          `json:"version"`
}

// OK reports whether the envelope carries a success code.
func (e *Envelope) OK() bool {
	return e.Code == SuccessCode
}
