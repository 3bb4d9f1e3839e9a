package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/catasim/internal/catapult"
)

type ExportData struct {
	RunMetadata
	Trajectory []catapult.Point `json:"trajectory"`
}

// ExportJSON writes a run's metadata together with its trajectory.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	points, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Trajectory: points})
}
