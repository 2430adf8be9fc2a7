package model

import (
	"bytes"
	"encoding/json"
)

// Validation statuses.
const (
	StatusCorrect = "correct"
	StatusWrong   = "wrong"
)

// DeleteBindingMessage is returned after a successful unbind.
const DeleteBindingMessage = "Binding deleted successfully"

// Field is a request value that accepts a JSON string or a JSON number.
// null and any other JSON type decode to the empty string.
type Field string

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*f = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = Field(n.String())
	default:
		*f = ""
	}

	return nil
}

// String returns the raw field value.
func (f Field) String() string {
	return string(f)
}

// ValidateRequest is the payload of POST /api/validate.
type ValidateRequest struct {
	Code Field `json:"code"`
}

// ValidateResponse reports whether a code is usable and, when bound, its game.
type ValidateResponse struct {
	Status string  `json:"status"`
	Game   *string `json:"game,omitempty"`
}

// BindRequest is the payload of POST /api/bind.
type BindRequest struct {
	Code Field `json:"code"`
	Game Field `json:"game"`
}

// BindResponse is returned by a successful bind.
type BindResponse struct {
	OK     bool   `json:"ok"`
	Code   string `json:"code"`
	Game   string `json:"game"`
	Locked bool   `json:"locked"`
}

// DeleteBindingRequest is the payload of POST /api/delete-binding.
type DeleteBindingRequest struct {
	Code Field `json:"code"`
}

// DeleteBindingResponse is returned by a successful unbind.
type DeleteBindingResponse struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FailureResponse is the payload of every failed bind or delete-binding call.
type FailureResponse struct {
	OK            bool   `json:"ok"`
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId,omitempty"`
}
