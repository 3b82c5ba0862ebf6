package types

// ErrorBody is the JSON body of every failed request. Error stays a plain
// string so browser clients can render it directly.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// StatusBody is returned by the health probes.
type StatusBody struct {
	Status string `json:"status"`
}
