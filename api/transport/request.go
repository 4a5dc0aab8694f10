package transport

import "encoding/json"

// RecordRequest adds an activity or a task.
type RecordRequest struct {
	Description string `json:"description"`
}

// IntentRequest is the body of POST /api/v1/intents.
type IntentRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}
