package check

import (
	"bytes"
	"encoding/json"
	"time"
)

// Entry is one named check result inside a report. Entries preserve the
// order in which checks ran.
type Entry struct {
	Name   string
	Result Result
}

// Report is the outcome of one full monitoring cycle. It is built once,
// then handed to the metrics and reporting paths; it must never be mutated
// afterwards.
//
// Invariant: Checks always contains a container_running entry; all other
// entries are present only if the liveness check did not short-circuit the
// cycle.
type Report struct {
	Timestamp time.Time
	Container string
	Overall   Status
	Checks    []Entry
}

// Check returns the named check result, if present.
func (r *Report) Check(name string) (Result, bool) {
	for _, entry := range r.Checks {
		if entry.Name == name {
			return entry.Result, true
		}
	}
	return Result{}, false
}

// MarshalJSON renders the report in its wire schema: an ISO-8601 timestamp,
// the container name, the overall status string, and a checks object whose
// keys appear in execution order.
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString(`"timestamp":`)
	ts, err := json.Marshal(r.Timestamp.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	buf.Write(ts)

	buf.WriteString(`,"container_name":`)
	name, err := json.Marshal(r.Container)
	if err != nil {
		return nil, err
	}
	buf.Write(name)

	buf.WriteString(`,"overall_status":`)
	overall, err := json.Marshal(r.Overall)
	if err != nil {
		return nil, err
	}
	buf.Write(overall)

	buf.WriteString(`,"checks":{`)
	for i, entry := range r.Checks {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(entry.Result)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}
