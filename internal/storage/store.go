package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Label     string             `json:"label"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Scratch   string             `json:"scratch"`
	Params    map[string]float64 `json:"params"`
	Pulse     PulseInfo          `json:"pulse"`
	Metrics   map[string]float64 `json:"metrics"`
}

type PulseInfo struct {
	Kind   string  `json:"kind"`
	Depth  float64 `json:"depth"`
	Freq   float64 `json:"freq"`
	Phase  float64 `json:"phase"`
	Center float64 `json:"center"`
	Width  float64 `json:"width"`
}

// Trajectory holds the sampled run. Q and V have one sample per grid
// point; DW and Pulse carry the increment and modulation leading out of
// each sample and are zero-padded on the final row so all columns align.
type Trajectory struct {
	Times []float64 `json:"times"`
	Q     []float64 `json:"q"`
	V     []float64 `json:"v"`
	DW    []float64 `json:"dw"`
	Pulse []float64 `json:"pulse"`
}

// Save writes metadata.json and trajectory.csv under a fresh run
// directory and returns the run ID. The ID and timestamp fields of meta
// are filled in here.
func (s *Store) Save(meta RunMetadata, traj *Trajectory) (string, error) {
	label := meta.Label
	if label == "" {
		label = "run"
	}
	runID := fmt.Sprintf("%s_%d", label, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeTrajectory(csvFile, traj); err != nil {
		return "", err
	}
	return runID, nil
}

func writeTrajectory(f io.Writer, traj *Trajectory) error {
	w := csv.NewWriter(f)

	if err := w.Write([]string{"time", "q", "v", "dw", "pulse"}); err != nil {
		return err
	}

	col := func(xs []float64, i int) string {
		if i < len(xs) {
			return strconv.FormatFloat(xs[i], 'g', -1, 64)
		}
		return "0"
	}
	for i := range traj.Q {
		row := []string{
			col(traj.Times, i),
			col(traj.Q, i),
			col(traj.V, i),
			col(traj.DW, i),
			col(traj.Pulse, i),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
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

	traj := &Trajectory{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 5 {
			continue
		}

		vals := make([]float64, 5)
		ok := true
		for j := 0; j < 5; j++ {
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

		traj.Times = append(traj.Times, vals[0])
		traj.Q = append(traj.Q, vals[1])
		traj.V = append(traj.V, vals[2])
		traj.DW = append(traj.DW, vals[3])
		traj.Pulse = append(traj.Pulse, vals[4])
	}
	return traj, nil
}
