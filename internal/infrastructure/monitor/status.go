package monitor

import "time"

// Status is the last observed health of the slot backend and the remote APIs.
type Status struct {
	Storage   StorageStatus           `json:"storage"`
	Remotes   map[string]RemoteStatus `json:"remotes"`
	LastCheck time.Time               `json:"last_check"`
}

type StorageStatus struct {
	Driver string `json:"driver"`
	Online bool   `json:"online"`
	Error  string `json:"error,omitempty"`
}

// RemoteStatus reports the circuit breaker state of a remote API. An open breaker
// degrades a view but does not make the service unhealthy.
type RemoteStatus struct {
	Breaker string `json:"breaker"`
}
