package tmc

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/tmc-evolve/parameter"
)

// ChargeTable maps ligands to their integer formal charge
// Immutable after construction; safe for concurrent readers
type ChargeTable struct {
	charges map[LigandID]int
	catalog []LigandID
}

// NewChargeTable copies charges and fixes a sorted catalog order
// Sorting keeps mutation draws reproducible under a seeded source
func NewChargeTable(charges map[LigandID]int) *ChargeTable {
	t := &ChargeTable{
		charges: make(map[LigandID]int, len(charges)),
		catalog: make([]LigandID, 0, len(charges)),
	}
	for id, q := range charges {
		t.charges[id] = q
		t.catalog = append(t.catalog, id)
	}
	slices.Sort(t.catalog)
	return t
}

// Charge returns the charge of a ligand
func (t *ChargeTable) Charge(id LigandID) (int, bool) {
	q, ok := t.charges[id]
	return q, ok
}

// Catalog returns all ligands in sorted order
func (t *ChargeTable) Catalog() []LigandID {
	return t.catalog
}

// Len returns the catalog size
func (t *ChargeTable) Len() int {
	return len(t.catalog)
}

// ChargeBand is a closed interval of accepted total charges
type ChargeBand struct {
	Min, Max int
}

// DefaultBand is [-1, 1]
var DefaultBand = ChargeBand{Min: parameter.ChargeBandMin, Max: parameter.ChargeBandMax}

// Contains reports whether q lies in the band
func (b ChargeBand) Contains(q int) bool {
	return q >= b.Min && q <= b.Max
}

// ChargePolicy selects how mutation computes the charge left after removing
// the ligand being replaced
type ChargePolicy int

const (
	// ExcludeSlot subtracts only the targeted slot's charge
	ExcludeSlot ChargePolicy = iota
	// ExcludeMatching drops every slot holding the same ligand as the targeted slot
	// With repeated ligands the substituted complex may end outside the band
	ExcludeMatching
)

// String returns the policy name used in configuration
func (p ChargePolicy) String() string {
	switch p {
	case ExcludeSlot:
		return "slot"
	case ExcludeMatching:
		return "matching"
	default:
		return "unknown"
	}
}

// ParseChargePolicy parses "slot" or "matching"
func ParseChargePolicy(s string) (ChargePolicy, error) {
	switch s {
	case "slot", "":
		return ExcludeSlot, nil
	case "matching":
		return ExcludeMatching, nil
	default:
		return ExcludeSlot, fmt.Errorf("tmc: unknown charge policy %q", s)
	}
}

// partialCharge is the charge of c without the ligand at slot, center included
func (p ChargePolicy) partialCharge(c Complex, slot int, table *ChargeTable) (int, error) {
	target := c[slot]
	partial := parameter.CenterCharge
	for i, lig := range c {
		q, ok := table.Charge(lig)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownLigand, lig)
		}
		switch p {
		case ExcludeMatching:
			if lig == target {
				continue
			}
		default:
			if i == slot {
				continue
			}
		}
		partial += q
	}
	return partial, nil
}
