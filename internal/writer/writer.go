// Package writer persists a rendered output set to a directory.
package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/geoforge/wavedeck/internal/render"
)

// Write stores every file of the output set under dir, creating the
// directory if needed. Each file is written to a temporary sibling first and
// renamed into place, so a crash never leaves a half written input file.
func Write(dir string, files render.OutputSet) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, name := range files.Names() {
		if err := writeFile(filepath.Join(dir, name), files[name]); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func writeFile(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
