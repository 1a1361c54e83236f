package space

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/lixenwraith/tmc-evolve/tmc"
)

const (
	colID   = "id"
	colIter = "iter"
)

var ligandColumns = [4]string{"lig1", "lig2", "lig3", "lig4"}

// ReadCSV loads a search space or sample history table
// Required columns: id, lig1..lig4. An iter column fills Entry.Iter; every
// other column whose first row parses as a number becomes a property.
// Empty cells in property columns read as NaN
func ReadCSV(r io.Reader) (*Space, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("space: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	idCol, ok := cols[colID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, colID)
	}
	var ligCols [4]int
	for i, name := range ligandColumns {
		c, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		ligCols[i] = c
	}
	iterCol, hasIter := cols[colIter]

	reserved := map[int]bool{idCol: true}
	for _, c := range ligCols {
		reserved[c] = true
	}
	if hasIter {
		reserved[iterCol] = true
	}

	var (
		entries   []Entry
		props     []string
		propCols  []int
		line      = 1
		firstData = true
	)

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("space: line %d: %w", line, err)
		}

		// Property columns are decided on the first data row
		if firstData {
			for i, name := range header {
				if reserved[i] {
					continue
				}
				if _, err := parseCell(record[i]); err == nil {
					props = append(props, name)
					propCols = append(propCols, i)
				}
			}
			firstData = false
		}

		e := Entry{
			ID: record[idCol],
			Ligands: tmc.FromSlots(
				record[ligCols[0]], record[ligCols[1]], record[ligCols[2]], record[ligCols[3]],
			),
			Props: make(map[string]float64, len(props)),
		}
		for i, c := range propCols {
			v, err := parseCell(record[c])
			if err != nil {
				return nil, fmt.Errorf("space: line %d column %s: %w", line, props[i], err)
			}
			e.Props[props[i]] = v
		}
		if hasIter && record[iterCol] != "" {
			iter, err := strconv.Atoi(record[iterCol])
			if err != nil {
				return nil, fmt.Errorf("space: line %d column %s: %w", line, colIter, err)
			}
			e.Iter = iter
		}
		entries = append(entries, e)
	}

	return New(entries, props), nil
}

func parseCell(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// WriteCSV writes entries as id, lig1..lig4, props..., iter
func WriteCSV(w io.Writer, entries []Entry, props []string) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, 6+len(props))
	header = append(header, colID)
	header = append(header, ligandColumns[:]...)
	header = append(header, props...)
	header = append(header, colIter)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("space: write header: %w", err)
	}

	row := make([]string, len(header))
	for _, e := range entries {
		row = row[:0]
		row = append(row, e.ID)
		for _, lig := range e.Ligands {
			row = append(row, string(lig))
		}
		for _, p := range props {
			v, ok := e.Props[p]
			if !ok || math.IsNaN(v) {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		row = append(row, strconv.Itoa(e.Iter))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("space: write entry %s: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
