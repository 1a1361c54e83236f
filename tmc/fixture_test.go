package tmc

import "fmt"

// Ligands and population rows of a small four-complex search space
const (
	ligW = "WECJIA-subgraph-3"
	ligM = "MEBXUN-subgraph-1"
	ligU = "ULUSIE-subgraph-1"
	ligO = "OBONEA-subgraph-1"
	ligC = "CORTOU-subgraph-2"
	ligI = "IRIXUC-subgraph-3"
)

func sampleCharges() *ChargeTable {
	return NewChargeTable(map[LigandID]int{
		ligW: 0, ligM: 0, ligU: 0,
		ligO: -1, ligC: -1, ligI: -1,
	})
}

func samplePopulation() []Complex {
	return []Complex{
		FromSlots(ligC, ligI, ligW, ligW),
		FromSlots(ligO, ligW, ligW, ligW),
		FromSlots(ligC, ligU, ligC, ligO),
		FromSlots(ligU, ligM, ligO, ligO),
	}
}

// scriptedRand replays fixed draws so operator paths can be pinned exactly
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (s *scriptedRand) IntN(n int) int {
	if len(s.ints) == 0 {
		panic("scriptedRand: ints exhausted")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scriptedRand: %d out of range [0,%d)", v, n))
	}
	return v
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		panic("scriptedRand: floats exhausted")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func contains(pop []Complex, c Complex) bool {
	for _, p := range pop {
		if p == c {
			return true
		}
	}
	return false
}
