package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

// ExportJSON writes the metadata and full trajectory of a run as a
// single indented JSON document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	traj, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	doc := struct {
		Metadata   *RunMetadata `json:"metadata"`
		Trajectory *Trajectory  `json:"trajectory"`
	}{meta, traj}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportCSV streams the stored trajectory file verbatim.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}
