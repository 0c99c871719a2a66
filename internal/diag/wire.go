package diag

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MarshalJSONL renders diagnostics as newline-delimited JSON, one object
// per line, for editor integrations and CI annotation consumers that want
// machine-readable diagnostics without buffering the whole output map.
func MarshalJSONL(items []Diagnostic) ([]byte, error) {
	var buf bytes.Buffer
	for _, d := range items {
		b, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// ParseJSONLField reads one field out of a single JSONL line without
// decoding the whole record, so a caller can pull e.g. "code" out of a
// large batch cheaply.
func ParseJSONLField(line []byte, field string) string {
	return gjson.GetBytes(line, field).String()
}

// RedactHints patches the "hint" field out of every line of a JSONL
// diagnostic stream without a full decode/re-encode round trip. This is
// what the CLI's --quiet flag uses when --json is also set: it wants the
// same deterministic byte stream minus hints, not a second serialization
// code path that could drift from MarshalJSONL's field ordering.
func RedactHints(jsonl []byte) ([]byte, error) {
	var out bytes.Buffer
	for _, line := range bytes.Split(jsonl, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			return nil, fmt.Errorf("diag: invalid JSONL line: %s", line)
		}
		patched, err := sjson.DeleteBytes(line, "hint")
		if err != nil {
			return nil, err
		}
		out.Write(patched)
		out.WriteByte('\n')
	}
	return out.Bytes(), nil
}

// CountBySeverity reports how many diagnostics in a JSONL stream have the
// given severity, using gjson for a parse-free scan — used by the
// build command's summary line (cmd/tsonic/cmd/build.go) to avoid
// decoding the whole batch just to print "3 errors, 1 warning".
func CountBySeverity(jsonl []byte, sev Severity) int {
	n := 0
	for _, line := range bytes.Split(jsonl, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if gjson.GetBytes(line, "severity").Int() == int64(sev) {
			n++
		}
	}
	return n
}
