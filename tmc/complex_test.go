package tmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplex_EncodeDecodeRoundTrip(t *testing.T) {
	for _, c := range samplePopulation() {
		enc := c.String()
		assert.Regexp(t, `^Pd_[^_]+_[^_]+_[^_]+_[^_]+$`, enc)

		got, err := Decode(enc)
		require.NoError(t, err)
		assert.Equal(t, c, got)
		assert.Equal(t, enc, got.String())
	}
}

func TestComplex_String(t *testing.T) {
	c := FromSlots("A", "B", "C", "D")
	assert.Equal(t, "Pd_A_B_C_D", c.String())
	assert.Equal(t, "Pd_A_B_C_D", Codec{}.Encode(c))
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"too few":      "Pd_A_B_C",
		"too many":     "Pd_A_B_C_D_E",
		"wrong center": "Pt_A_B_C_D",
		"empty slot":   "Pd_A__C_D",
		"empty":        "",
	}
	for name, enc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Codec{}.Decode(enc)
			assert.ErrorIs(t, err, ErrMalformedEncoding)
		})
	}
}

func TestComplex_Charge(t *testing.T) {
	table := sampleCharges()
	expected := []int{0, 1, -1, 0}
	for i, c := range samplePopulation() {
		q, err := c.Charge(table)
		require.NoError(t, err)
		assert.Equal(t, expected[i], q, c.String())
	}

	_, err := FromSlots("X", ligW, ligW, ligW).Charge(table)
	assert.ErrorIs(t, err, ErrUnknownLigand)
}

func TestComplex_Rotate(t *testing.T) {
	c := FromSlots("A", "B", "C", "D")
	assert.Equal(t, c, c.Rotate(0))
	assert.Equal(t, FromSlots("B", "C", "D", "A"), c.Rotate(1))
	assert.Equal(t, FromSlots("D", "A", "B", "C"), c.Rotate(3))
	assert.Equal(t, c.Rotate(3), c.Rotate(-1))
	assert.Equal(t, c, c.Rotate(4))
}

func TestEncodings(t *testing.T) {
	got := Encodings([]Complex{FromSlots("A", "B", "C", "D"), FromSlots("E", "F", "G", "H")})
	assert.Equal(t, []string{"Pd_A_B_C_D", "Pd_E_F_G_H"}, got)
}

func TestChargeTable_CatalogSortedAndCopied(t *testing.T) {
	src := map[LigandID]int{"b": 0, "a": -1, "c": 1}
	table := NewChargeTable(src)
	src["d"] = 5

	assert.Equal(t, []LigandID{"a", "b", "c"}, table.Catalog())
	assert.Equal(t, 3, table.Len())
	_, ok := table.Charge("d")
	assert.False(t, ok)
}

func TestParseChargePolicy(t *testing.T) {
	p, err := ParseChargePolicy("matching")
	require.NoError(t, err)
	assert.Equal(t, ExcludeMatching, p)
	assert.Equal(t, "matching", p.String())

	p, err = ParseChargePolicy("")
	require.NoError(t, err)
	assert.Equal(t, ExcludeSlot, p)

	_, err = ParseChargePolicy("nope")
	assert.Error(t, err)
}
