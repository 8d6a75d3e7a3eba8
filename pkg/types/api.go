package types

// ErrorResponse is the body of every non-2xx response from the server.
// Fields is only set for validation failures and is keyed by the
// calculator's input field names.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
}

// CalculatorInfo describes one endpoint in the calculator catalog.
type CalculatorInfo struct {
	Name        string `json:"name"`
	Group       string `json:"group"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}
