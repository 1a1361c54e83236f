package tmc

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/tmc-evolve/genetic"
	"github.com/lixenwraith/tmc-evolve/parameter"
)

// LigandID names one catalog ligand (e.g. "WECJIA-subgraph-3")
type LigandID string

// Complex is the ordered four-ligand sequence of a candidate
// The Pd center is implicit and never stored
type Complex [parameter.LigandSlots]LigandID

// FromSlots builds a complex from the four slot columns of a population row
func FromSlots(lig1, lig2, lig3, lig4 string) Complex {
	return Complex{LigandID(lig1), LigandID(lig2), LigandID(lig3), LigandID(lig4)}
}

// String returns the canonical encoding "Pd_l1_l2_l3_l4"
func (c Complex) String() string {
	var sb strings.Builder
	sb.WriteString(parameter.CenterToken)
	for _, lig := range c {
		sb.WriteString(parameter.EncodingSeparator)
		sb.WriteString(string(lig))
	}
	return sb.String()
}

// Decode parses a canonical encoding back into its ligand sequence
func Decode(encoding string) (Complex, error) {
	parts := strings.Split(encoding, parameter.EncodingSeparator)
	if len(parts) != parameter.LigandSlots+1 {
		return Complex{}, fmt.Errorf("%w: %q has %d ligands", ErrMalformedEncoding, encoding, len(parts)-1)
	}
	if parts[0] != parameter.CenterToken {
		return Complex{}, fmt.Errorf("%w: %q has center %q", ErrMalformedEncoding, encoding, parts[0])
	}

	var c Complex
	for i, p := range parts[1:] {
		if p == "" {
			return Complex{}, fmt.Errorf("%w: %q has empty slot %d", ErrMalformedEncoding, encoding, i+1)
		}
		c[i] = LigandID(p)
	}
	return c, nil
}

// Charge returns the total charge: ligand charges plus the center charge
func (c Complex) Charge(table *ChargeTable) (int, error) {
	total := parameter.CenterCharge
	for _, lig := range c {
		q, ok := table.Charge(lig)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownLigand, lig)
		}
		total += q
	}
	return total, nil
}

// Rotate returns the complex with its ligands cyclically shifted left by k
// Rotate(1) of [a b c d] is [b c d a]
func (c Complex) Rotate(k int) Complex {
	n := len(c)
	k = ((k % n) + n) % n

	var r Complex
	for i := range c {
		r[i] = c[(i+k)%n]
	}
	return r
}

// Codec is the string codec for complexes
type Codec struct{}

var _ genetic.Codec[string, Complex] = Codec{}

func (Codec) Encode(c Complex) string { return c.String() }

func (Codec) Decode(s string) (Complex, error) { return Decode(s) }

// Encodings returns the canonical encodings of cs in order
func Encodings(cs []Complex) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
