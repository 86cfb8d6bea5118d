package api

import (
	"encoding/json"
	"io"

	"github.com/mitchellh/mapstructure"
)

// Envelope is the response wrapper used by every GlucoMate endpoint:
// { success: bool, message: string, data?: object }. Some endpoints omit
// the wrapper and return the payload at the top level; DecodeData falls
// back to the raw body in that case.
type Envelope struct {
	Success *bool                  `json:"success,omitempty"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`

	raw map[string]interface{}
}

// Failed reports whether the endpoint explicitly signalled failure. Only
// success: false counts; an absent success field does not.
func (e *Envelope) Failed() bool {
	return e.Success != nil && !*e.Success
}

// DecodeData maps the payload onto target using its json tags. Numeric
// fields tolerate the string/number looseness of the backend.
func (e *Envelope) DecodeData(target interface{}) error {
	source := e.Data
	if source == nil {
		source = e.raw
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(source)
}

// DecodeEnvelope reads the response body. A missing or malformed body
// yields an empty envelope rather than an error; status codes carry the
// failure signal in that case.
func DecodeEnvelope(body io.Reader) *Envelope {
	envelope := &Envelope{}
	raw, err := io.ReadAll(body)
	if err != nil || len(raw) == 0 {
		return envelope
	}

	_ = json.Unmarshal(raw, envelope)
	_ = json.Unmarshal(raw, &envelope.raw)
	return envelope
}
