package tmc

import "errors"

// ErrEmptyPopulation is returned when an operator needs at least one complex
var ErrEmptyPopulation = errors.New("tmc: population is empty")

// ErrUnknownLigand is returned when a ligand has no entry in the charge table
var ErrUnknownLigand = errors.New("tmc: ligand missing from charge table")

// ErrMalformedEncoding is returned when an encoding is not center plus four ligands
var ErrMalformedEncoding = errors.New("tmc: malformed complex encoding")

// ErrInvalidDegree is returned for a crossover degree outside 1..3 (0 selects randomly)
var ErrInvalidDegree = errors.New("tmc: crossover degree out of range")
