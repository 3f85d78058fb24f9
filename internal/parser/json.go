package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/veridata-labs/airlens-cli/internal/dataset"
)

type jsonParser struct{}

func (jsonParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".json")
}

// Parse decodes an array of flat objects. Numbers stay json.Number so large
// sensor ids survive without float rounding.
func (jsonParser) Parse(data []byte) (dataset.RecordSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	records := make(dataset.RecordSet, 0, len(raw))
	for _, m := range raw {
		if len(m) > 0 {
			records = append(records, dataset.Record(m))
		}
	}
	return records, nil
}
