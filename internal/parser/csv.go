package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/veridata-labs/airlens-cli/internal/dataset"
)

type csvParser struct{}

func (csvParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvParser) Parse(data []byte) (dataset.RecordSet, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return dataset.RecordSet{}, nil
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := make(dataset.RecordSet, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := dataset.Record{}
		for i, name := range header {
			if name == "" || i >= len(row) {
				continue
			}
			rec[name] = strings.TrimSpace(row[i])
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}
	return records, nil
}

// sniffDelimiter picks the separator occurring most often in the first line.
// Comma wins ties, so plain CSV never misdetects.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, cand := range []byte{'\t', ';'} {
		if n := bytes.Count(line, []byte{cand}); n > bestCount {
			best, bestCount = rune(cand), n
		}
	}
	return best
}
