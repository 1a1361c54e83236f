// Command tmc-sample proposes offspring complexes from a population table
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/tmc-evolve/genetic"
	"github.com/lixenwraith/tmc-evolve/parameter"
	"github.com/lixenwraith/tmc-evolve/space"
	"github.com/lixenwraith/tmc-evolve/tmc"
)

type options struct {
	population string
	ligands    string
	count      int
	seed       int64
	policy     string
	charges    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.population, "population", "", "population csv with lig1..lig4 columns (required)")
	flag.StringVar(&opts.ligands, "ligands", parameter.DefaultLigandFile, "ligand catalog csv (id, charge)")
	flag.IntVar(&opts.count, "n", parameter.GADefaultOffspring, "offspring to generate")
	flag.Int64Var(&opts.seed, "seed", -1, "random seed, negative for a nondeterministic run")
	flag.StringVar(&opts.policy, "charge_policy", tmc.ExcludeSlot.String(), "mutation partial charge: slot, matching")
	flag.BoolVar(&opts.charges, "show-charge", false, "print the total charge next to each encoding")
	flag.Parse()

	if opts.population == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := sample(os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "tmc-sample: %v\n", err)
		os.Exit(1)
	}
}

func sample(w io.Writer, opts options) error {
	policy, err := tmc.ParseChargePolicy(opts.policy)
	if err != nil {
		return err
	}

	lf, err := os.Open(opts.ligands)
	if err != nil {
		return err
	}
	defer lf.Close()
	charges, err := space.ReadLigands(lf)
	if err != nil {
		return err
	}

	pf, err := os.Open(opts.population)
	if err != nil {
		return err
	}
	defer pf.Close()
	pop, err := space.ReadCSV(pf)
	if err != nil {
		return err
	}

	var rng genetic.Rand = genetic.Global()
	if opts.seed >= 0 {
		rng = genetic.NewSeeded(uint64(opts.seed))
	}
	gen := tmc.NewGenerator(charges, tmc.WithRand(rng), tmc.WithPolicy(policy))

	offspring, err := gen.Sample(space.Complexes(pop.Entries()), opts.count)
	if err != nil {
		return err
	}

	for _, c := range offspring {
		if !opts.charges {
			fmt.Fprintln(w, c)
			continue
		}
		q, err := c.Charge(charges)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%+d\n", c, q)
	}
	return nil
}
