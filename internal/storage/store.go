package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/catasim/internal/catapult"
	"github.com/san-kum/catasim/internal/config"
	"github.com/san-kum/catasim/internal/experiment"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Kind      string              `json:"kind"`
	Timestamp time.Time           `json:"timestamp"`
	Config    *config.Config      `json:"config"`
	Report    catapult.Report     `json:"report"`
	Summary   *experiment.Summary `json:"summary,omitempty"`
}

// Run is everything needed to persist one launch or trial series.
type Run struct {
	Kind       string
	Config     *config.Config
	Report     catapult.Report
	Summary    *experiment.Summary
	Trajectory []catapult.Point
}

func (s *Store) Save(run Run) (string, error) {
	if run.Config == nil {
		return "", fmt.Errorf("save run: missing config")
	}

	ts := s.now()
	name := run.Config.Name
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", name, ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Kind:      run.Kind,
		Timestamp: ts,
		Config:    run.Config,
		Report:    run.Report,
		Summary:   run.Summary,
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, data, run.Trajectory); err != nil {
		_ = os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

func writeRun(runDir string, meta []byte, points []catapult.Point) error {
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), meta, 0644); err != nil {
		return err
	}
	return writeTrajectory(filepath.Join(runDir, trajectoryFile), points)
}

func writeTrajectory(path string, points []catapult.Point) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"t", "x", "y"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.T, 'f', 6, 64),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns saved runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) ([]catapult.Point, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []catapult.Point{}, nil
	}

	points := make([]catapult.Point, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		var vals [3]float64
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		points = append(points, catapult.Point{T: vals[0], X: vals[1], Y: vals[2]})
	}

	return points, nil
}
