// internal/callback/protocol.go
// Struktur request/response endpoint callback

package callback

type Request struct {
	Callback string            `json:"callback"`
	Inputs   map[string]string `json:"inputs"`
}

type Response struct {
	Success bool           `json:"success"`
	Outputs map[string]any `json:"outputs,omitempty"`
	Error   string         `json:"error,omitempty"`
}
