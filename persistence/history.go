package persistence

import (
	"os"

	"github.com/lixenwraith/tmc-evolve/space"
)

// WriteHistory rewrites the sample history CSV at path
func WriteHistory(path string, entries []space.Entry, props []string) error {
	return writeAtomic(path, func(f *os.File) error {
		return space.WriteCSV(f, entries, props)
	})
}
