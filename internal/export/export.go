package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/geoscience-tools/geochemtools/internal/geochem"
)

// WriteCSV writes a frame to dir/{label}.csv as a whole-file replace: the
// data lands in a temp file first and is renamed into place, so readers never
// observe a partial export.
func WriteCSV(f *geochem.Frame, dir, label string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working dir: %w", err)
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir output dir: %w", err)
	}

	var buf bytes.Buffer
	if err := f.WriteCSV(&buf); err != nil {
		return "", fmt.Errorf("render csv: %w", err)
	}
	path := filepath.Join(dir, label+".csv")
	if err := safeWriteFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

func safeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// Manifest records what a single run exported, so downstream plotting can
// pick up the produced files without guessing.
type Manifest struct {
	RunID     string         `json:"run_id"`
	CreatedAt time.Time      `json:"created_at"`
	Files     []ManifestFile `json:"files"`
}

// ManifestFile is one exported artifact.
type ManifestFile struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

// NewManifest starts a manifest stamped with a fresh run id.
func NewManifest() *Manifest {
	return &Manifest{RunID: uuid.NewString(), CreatedAt: time.Now().UTC()}
}

// Add records an exported file.
func (m *Manifest) Add(path string, rows int) {
	m.Files = append(m.Files, ManifestFile{Path: path, Rows: rows})
}

// Write stores the manifest as indented JSON next to the exports.
func (m *Manifest) Write(dir string) error {
	if len(m.Files) == 0 {
		return nil
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working dir: %w", err)
		}
		dir = wd
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return safeWriteFile(filepath.Join(dir, "export_manifest.json"), b)
}
