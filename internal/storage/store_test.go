package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleRun() (RunMetadata, *Trajectory) {
	meta := RunMetadata{
		Label:   "thermal",
		Seed:    42,
		Dt:      1e-3,
		Steps:   4,
		Scratch: "float64",
		Params:  map[string]float64{"omega0": 1.0, "gamma0": 0.02},
		Pulse:   PulseInfo{Kind: "sine", Depth: 0.1, Freq: 2},
		Metrics: map[string]float64{"var_q": 0.123},
	}
	traj := &Trajectory{
		Times: []float64{0, 1e-3, 2e-3, 3e-3, 4e-3},
		Q:     []float64{1, 0.9999, 0.9997, 0.9993, 0.9988},
		V:     []float64{0, -0.01, -0.02, -0.0301, -0.0399},
		DW:    []float64{1.5e-5, -2.25e-5, 3e-5, -7.5e-6},
		Pulse: []float64{1, 1.01, 1.02, 1.01},
	}
	return meta, traj
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	meta, traj := sampleRun()
	runID, err := s.Save(meta, traj)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(runID, "thermal_"))

	got, err := s.Load(runID)
	require.NoError(t, err)
	require.Equal(t, runID, got.ID)
	require.Equal(t, meta.Seed, got.Seed)
	require.Equal(t, meta.Dt, got.Dt)
	require.Equal(t, meta.Steps, got.Steps)
	require.Equal(t, meta.Params, got.Params)
	require.Equal(t, meta.Pulse, got.Pulse)
	require.InDelta(t, 0.123, got.Metrics["var_q"], 1e-12)

	back, err := s.LoadTrajectory(runID)
	require.NoError(t, err)
	require.Equal(t, traj.Times, back.Times)
	require.Equal(t, traj.Q, back.Q)
	require.Equal(t, traj.V, back.V)

	// The increment columns are zero-padded on the final row.
	require.Equal(t, len(traj.Q), len(back.DW))
	require.Equal(t, traj.DW, back.DW[:len(traj.DW)])
	require.Zero(t, back.DW[len(back.DW)-1])
	require.Equal(t, traj.Pulse, back.Pulse[:len(traj.Pulse)])
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	runs, err := s.List()
	require.NoError(t, err)
	require.Empty(t, runs)

	meta, traj := sampleRun()
	_, err = s.Save(meta, traj)
	require.NoError(t, err)
	meta.Label = "locked"
	_, err = s.Save(meta, traj)
	require.NoError(t, err)

	runs, err = s.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	labels := []string{runs[0].Label, runs[1].Label}
	require.Contains(t, labels, "thermal")
	require.Contains(t, labels, "locked")
}

func TestListMissingDir(t *testing.T) {
	s := New(t.TempDir() + "/never-created")
	runs, err := s.List()
	require.NoError(t, err)
	require.Empty(t, runs)
}

func TestLoadMissingRun(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	_, err := s.Load("ghost_123")
	require.Error(t, err)
	_, err = s.LoadTrajectory("ghost_123")
	require.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	meta, traj := sampleRun()
	runID, err := s.Save(meta, traj)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.ExportJSON(runID, &buf))

	var doc struct {
		Metadata   RunMetadata `json:"metadata"`
		Trajectory Trajectory  `json:"trajectory"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, runID, doc.Metadata.ID)
	require.Equal(t, traj.Q, doc.Trajectory.Q)
}

func TestExportCSV(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Init())

	meta, traj := sampleRun()
	runID, err := s.Save(meta, traj)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.ExportCSV(runID, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "time,q,v,dw,pulse", lines[0])
	require.Len(t, lines, len(traj.Q)+1)
}
