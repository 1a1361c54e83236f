package persistence

import (
	"path/filepath"

	"github.com/lixenwraith/tmc-evolve/evolve"
)

// RunMeta identifies a run inside its checkpoint
type RunMeta struct {
	RunID      string
	Objective  string
	Strategy   string
	Seed       int64
	Population int
	Offspring  int
	Props      []string
}

// Recorder writes the history CSV and checkpoint of one run after every round
type Recorder struct {
	csvPath string
	name    string
	manager *Manager
	meta    RunMeta
}

// NewRecorder writes <base>.csv and <base>.toml, base being a path without extension
func NewRecorder(base string, meta RunMeta) *Recorder {
	return &Recorder{
		csvPath: base + ".csv",
		name:    filepath.Base(base),
		manager: NewManager(filepath.Dir(base)),
		meta:    meta,
	}
}

// CSVPath returns the history CSV location
func (r *Recorder) CSVPath() string { return r.csvPath }

// CheckpointPath returns the checkpoint location
func (r *Recorder) CheckpointPath() string { return r.manager.FilePath(r.name) }

// Record implements evolve.Recorder
func (r *Recorder) Record(st evolve.State) error {
	if err := WriteHistory(r.csvPath, st.History, r.meta.Props); err != nil {
		return err
	}

	dto := FromState(st)
	dto.RunID = r.meta.RunID
	dto.Objective = r.meta.Objective
	dto.Strategy = r.meta.Strategy
	dto.Seed = r.meta.Seed
	dto.Population = r.meta.Population
	dto.Offspring = r.meta.Offspring
	dto.Props = r.meta.Props
	return r.manager.Save(r.name, dto)
}

var _ evolve.Recorder = (*Recorder)(nil)
