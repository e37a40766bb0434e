package renderer

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/capgains"
)

// JSON renders the report with exact amounts, for other programs to consume.
func JSON(r *capgains.Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// Query evaluates a JSONPath expression over the JSON form of the report, e.g.
// "$.closedTotals[*].gain".
func Query(r *capgains.Report, expr string) (any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("could not marshal report: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("could not decode report: %w", err)
	}
	val, err := jsonpath.Get(expr, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", expr, err)
	}
	return val, nil
}
