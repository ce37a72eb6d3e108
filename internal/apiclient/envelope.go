package apiclient

import "encoding/json"

// envelope matches the `{ success, data }` response shape some endpoints
// emit. Other endpoints return the raw resource; both must be accepted.
type envelope struct {
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// unwrap decodes a response body into out, tolerating both the enveloped
// and the raw shape. This is the single compatibility shim; resource
// clients and their callers never see the difference.
func unwrap(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(body, out)
}
