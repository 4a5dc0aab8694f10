package transport

import "encoding/json"

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every JSON body the dashboard API writes. Views and records go in
// Data; failures carry a machine code and the user-facing message in Error.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess wraps a view or record list.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{Status: StatusSuccess, Data: data, Meta: meta}
}

// NewError wraps a rejected request. meta carries extra context such as the
// health report of a degraded backend.
func NewError(code, message string, meta interface{}) Envelope {
	return Envelope{Status: StatusError, Code: code, Error: message, Meta: meta}
}

// Failed reports whether the envelope describes a rejected request.
func (e Envelope) Failed() bool {
	return e.Status == StatusError
}

// Body encodes the envelope. An unencodable payload degrades to a bare error body
// so clients always receive valid JSON.
func (e Envelope) Body() []byte {
	out, err := json.Marshal(e)
	if err != nil {
		out, _ = json.Marshal(Envelope{Status: StatusError, Code: e.Code, Error: "response could not be encoded"})
	}
	return out
}

// String is the encoded body, used when logging a response.
func (e Envelope) String() string {
	return string(e.Body())
}
