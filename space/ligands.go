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

const colCharge = "charge"

// ReadLigands loads the ligand catalog CSV into a charge table
// Only id and charge are used; charges may be written as "-1" or "-1.0"
func ReadLigands(r io.Reader) (*tmc.ChargeTable, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("space: read ligand header: %w", err)
	}

	idCol, chargeCol := -1, -1
	for i, name := range header {
		switch name {
		case colID:
			idCol = i
		case colCharge:
			chargeCol = i
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, colID)
	}
	if chargeCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, colCharge)
	}

	charges := make(map[tmc.LigandID]int)
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("space: ligand line %d: %w", line, err)
		}

		q, err := parseCharge(record[chargeCol])
		if err != nil {
			return nil, fmt.Errorf("space: ligand line %d: %w", line, err)
		}
		charges[tmc.LigandID(record[idCol])] = q
	}

	return tmc.NewChargeTable(charges), nil
}

func parseCharge(s string) (int, error) {
	if q, err := strconv.Atoi(s); err == nil {
		return q, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("charge %q: %w", s, err)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("charge %q is not an integer", s)
	}
	return int(f), nil
}
