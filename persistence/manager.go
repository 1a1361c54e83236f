// Package persistence writes run outputs: the sample history CSV and a
// resumable TOML checkpoint
package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrCorruptCheckpoint is returned when a checkpoint decodes but cannot be restored
var ErrCorruptCheckpoint = errors.New("persistence: corrupt checkpoint")

// Manager handles save/load of run checkpoints
type Manager struct {
	basePath string
}

// NewManager creates a manager with the given base directory
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the checkpoint path for a run name
func (m *Manager) FilePath(name string) string {
	return filepath.Join(m.basePath, name+".toml")
}

// Exists checks if a checkpoint file exists
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.FilePath(name))
	return err == nil
}

// Save writes the checkpoint, replacing any previous one atomically
func (m *Manager) Save(name string, dto CheckpointDTO) error {
	return writeAtomic(m.FilePath(name), func(f *os.File) error {
		return toml.NewEncoder(f).Encode(dto)
	})
}

// Load reads a checkpoint by run name
func (m *Manager) Load(name string) (CheckpointDTO, error) {
	return LoadFile(m.FilePath(name))
}

// LoadFile reads a checkpoint from an explicit path
func LoadFile(path string) (CheckpointDTO, error) {
	var dto CheckpointDTO

	f, err := os.Open(path)
	if err != nil {
		return dto, err
	}
	defer f.Close()

	if _, err := toml.NewDecoder(f).Decode(&dto); err != nil {
		return dto, fmt.Errorf("persistence: decode %s: %w", path, err)
	}
	return dto, nil
}

// writeAtomic writes through a temp file in the target directory and renames it into place
func writeAtomic(path string, write func(*os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
