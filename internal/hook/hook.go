// Package hook implements the wire protocol between this tool and the
// session hook runner that invokes it.
//
// The runner writes a JSON payload to stdin and reads a single JSON line
// from stdout. Stdin must be consumed even when its contents are unused,
// otherwise the runner can hit a broken pipe.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
)

// Response is the single stdout line consumed by the hook runner.
type Response struct {
	SystemMessage string `json:"systemMessage,omitempty"`
	Decision      string `json:"decision,omitempty"`
}

// DecisionApprove marks a non-blocking approval response.
const DecisionApprove = "approve"

// Payload carries the fields of the hook invocation we care about.
// Everything else in the runner's payload is ignored.
type Payload struct {
	SessionID     string `json:"session_id,omitempty"`
	HookEventName string `json:"hook_event_name,omitempty"`
}

// Consume drains the hook payload from r and parses what it can.
// Empty or malformed payloads are normal (manual invocation, older runners)
// and yield a zero Payload.
func Consume(r io.Reader) Payload {
	var p Payload
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return Payload{}
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}
	}
	return p
}

// Emit writes the response as a single JSON line to w.
func Emit(w io.Writer, resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode hook response: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write hook response: %w", err)
	}
	return nil
}
