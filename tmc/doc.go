// Package tmc generates candidate square-planar transition-metal complexes
// for an evolutionary search.
//
// A complex is four ligands around a fixed Pd center, encoded as
// "Pd_<l1>_<l2>_<l3>_<l4>". Every operator here produces a new complex whose
// total charge (ligand charges + 2 for the center) is kept inside a closed band,
// [-1, 1] by default. The band is best effort: when no valid offspring can be
// found the operator returns its input unchanged instead of failing.
//
// Operators:
//
//	Mutate     replace one ligand with a catalog ligand that keeps the charge valid
//	Crossover  copy 1-3 slots from donor complexes into a base, retried up to 10 times
//	Sample     coin flip between the two, repeated for N offspring
//
// Randomness comes from a genetic.Rand; NewGenerator defaults to the
// process-wide source and accepts WithSeed/WithRand for reproducible runs.
package tmc
