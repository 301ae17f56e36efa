// Package genekeys loads the Gene Keys reference table from its CSV source
// and serves per-gate lookups through a store.
package genekeys

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"humandesign/internal/domain"
)

// The CSV ships with a decorative first line; the real header with the
// column names below is on the second line. Rows carry the gate number
// inside the name column, e.g. "基因天命36".
const (
	gateNameMarker = "基因天命"

	colName           = "名稱"
	colMeaning        = "意義"
	colShadow         = "陰影"
	colManifestation  = "表現形式"
	colGift           = "天賦"
	colTransformation = "轉化過程"
	colSiddhi         = "神聖才能"
	colFinalState     = "最終狀態"
	colSynthesis      = "綜合意義"
)

// ParseCSV parses the gene keys CSV. Rows whose name column does not carry a
// parseable gate number are skipped, matching the tolerant source loader.
func ParseCSV(r io.Reader) ([]*domain.GeneKey, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Decorative first line
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty gene keys csv")
		}
		return nil, fmt.Errorf("read csv preamble: %w", err)
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		// utf-8-sig files carry a BOM on the first cell
		cols[strings.TrimPrefix(strings.TrimSpace(name), "\uFEFF")] = i
	}
	if _, ok := cols[colName]; !ok {
		return nil, fmt.Errorf("gene keys csv missing %q column", colName)
	}

	field := func(record []string, col string) string {
		idx, ok := cols[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var keys []*domain.GeneKey
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		name := field(record, colName)
		if !strings.Contains(name, gateNameMarker) {
			continue
		}
		gate, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(name, gateNameMarker, "")))
		if err != nil || gate < 1 || gate > 64 {
			continue
		}

		keys = append(keys, &domain.GeneKey{
			Gate:           gate,
			Name:           name,
			Meaning:        field(record, colMeaning),
			Shadow:         field(record, colShadow),
			Manifestation:  field(record, colManifestation),
			Gift:           field(record, colGift),
			Transformation: field(record, colTransformation),
			Siddhi:         field(record, colSiddhi),
			FinalState:     field(record, colFinalState),
			Synthesis:      field(record, colSynthesis),
		})
	}
	return keys, nil
}
