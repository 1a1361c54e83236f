package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alitto/pond"
	"github.com/google/uuid"

	"github.com/lixenwraith/tmc-evolve/config"
	"github.com/lixenwraith/tmc-evolve/evolve"
	"github.com/lixenwraith/tmc-evolve/genetic"
	"github.com/lixenwraith/tmc-evolve/logging"
	"github.com/lixenwraith/tmc-evolve/objective"
	"github.com/lixenwraith/tmc-evolve/persistence"
	"github.com/lixenwraith/tmc-evolve/space"
	"github.com/lixenwraith/tmc-evolve/tmc"
)

// inputs are the read-only tables shared by every replicate
type inputs struct {
	space   *space.Space
	charges *tmc.ChargeTable
}

func loadInputs(cfg config.Config) (inputs, error) {
	lf, err := os.Open(cfg.LigandFile)
	if err != nil {
		return inputs{}, fmt.Errorf("ligand file: %w", err)
	}
	defer lf.Close()
	charges, err := space.ReadLigands(lf)
	if err != nil {
		return inputs{}, fmt.Errorf("ligand file %s: %w", cfg.LigandFile, err)
	}

	sf, err := os.Open(cfg.SpaceFile)
	if err != nil {
		return inputs{}, fmt.Errorf("space file: %w", err)
	}
	defer sf.Close()
	sp, err := space.ReadCSV(sf)
	if err != nil {
		return inputs{}, fmt.Errorf("space file %s: %w", cfg.SpaceFile, err)
	}

	return inputs{space: sp, charges: charges}, nil
}

// newRunID returns the first group of a random UUID
func newRunID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// replicate identifies one independent run
type replicate struct {
	runID  string
	seed   int64
	base   string
	resume *persistence.CheckpointDTO
}

func plan(cfg config.Config) ([]replicate, error) {
	if cfg.Resume != "" {
		dto, err := persistence.LoadFile(cfg.Resume)
		if err != nil {
			return nil, fmt.Errorf("resume: %w", err)
		}
		if err := checkResume(cfg, dto); err != nil {
			return nil, fmt.Errorf("resume %s: %w", cfg.Resume, err)
		}
		return []replicate{{
			runID:  dto.RunID,
			seed:   dto.Seed,
			base:   strings.TrimSuffix(cfg.Resume, filepath.Ext(cfg.Resume)),
			resume: &dto,
		}}, nil
	}

	reps := make([]replicate, cfg.Replicates)
	for i := range reps {
		seed := cfg.Seed + int64(i)
		runID := newRunID()
		reps[i] = replicate{runID: runID, seed: seed, base: cfg.OutputBase(seed, runID)}
	}
	return reps, nil
}

// checkResume rejects settings that would change the meaning of a resumed run
// Checkpoints written without population or offspring skip those checks
func checkResume(cfg config.Config, dto persistence.CheckpointDTO) error {
	var issues []string
	if dto.Objective != cfg.Prop {
		issues = append(issues, fmt.Sprintf("prop %q, checkpoint has %q", cfg.Prop, dto.Objective))
	}
	if dto.Strategy != "" && dto.Strategy != cfg.Strategy {
		issues = append(issues, fmt.Sprintf("strategy %q, checkpoint has %q", cfg.Strategy, dto.Strategy))
	}
	if dto.Population > 0 && dto.Population != cfg.Population {
		issues = append(issues, fmt.Sprintf("population %d, checkpoint has %d", cfg.Population, dto.Population))
	}
	if dto.Offspring > 0 && dto.Offspring != cfg.Offspring {
		issues = append(issues, fmt.Sprintf("num_offspring %d, checkpoint has %d", cfg.Offspring, dto.Offspring))
	}
	if len(issues) > 0 {
		return &config.ValidationError{Issues: issues}
	}
	return nil
}

// runAll executes every replicate on a bounded worker pool
func runAll(ctx context.Context, cfg config.Config, in inputs, command string, console io.Writer, observers []evolve.Observer) error {
	if err := os.MkdirAll(cfg.Path, 0755); err != nil {
		return err
	}

	reps, err := plan(cfg)
	if err != nil {
		return err
	}

	pool := pond.New(min(len(reps), runtime.NumCPU()), len(reps))
	defer pool.StopAndWait()

	errs := make([]error, len(reps))
	group := pool.Group()
	for i, rep := range reps {
		group.Submit(func() {
			errs[i] = runReplicate(ctx, cfg, in, rep, command, console, observers)
		})
	}
	group.Wait()

	return errors.Join(errs...)
}

func runReplicate(ctx context.Context, cfg config.Config, in inputs, rep replicate, command string, console io.Writer, observers []evolve.Observer) error {
	if err := os.MkdirAll(filepath.Dir(rep.base), 0755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(rep.base+".log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(io.MultiWriter(logFile, console), "["+rep.runID+"] ", level)
	logger.Infof("Command used: %s", command)
	logger.Infof("Options: %+v", cfg)

	obj, err := objective.Parse(cfg.Prop)
	if err != nil {
		return err
	}
	policy, err := tmc.ParseChargePolicy(cfg.ChargePolicy)
	if err != nil {
		return err
	}

	opts := []evolve.Option{
		evolve.WithLogger(logger),
		evolve.WithRecorder(persistence.NewRecorder(rep.base, persistence.RunMeta{
			RunID:      rep.runID,
			Objective:  obj.Name(),
			Strategy:   cfg.Strategy,
			Seed:       rep.seed,
			Population: cfg.Population,
			Offspring:  cfg.Offspring,
			Props:      in.space.Props(),
		})),
	}
	for _, obs := range observers {
		opts = append(opts, evolve.WithObserver(obs))
	}

	// Operators draw from a stream separate from initial sampling
	genSeed := uint64(rep.seed) + 1
	if rep.resume != nil {
		st, err := rep.resume.ToState()
		if err != nil {
			return err
		}
		opts = append(opts, evolve.WithState(st))
		genSeed += uint64(st.Iteration)
	}

	gen := tmc.NewGenerator(in.charges, tmc.WithRand(genetic.NewSeeded(genSeed)), tmc.WithPolicy(policy))
	o, err := evolve.New(in.space, obj, evolve.NewGAProposer(gen), cfg.RunConfig(rep.runID, rep.seed), opts...)
	if err != nil {
		return err
	}

	st, err := o.Run(ctx)
	if err != nil {
		logger.Errorf("run stopped: %v", err)
		return fmt.Errorf("run %s: %w", rep.runID, err)
	}
	logger.Infof("finished %d iterations, %d history rows -> %s.csv", st.Iteration, len(st.History), rep.base)
	return nil
}
