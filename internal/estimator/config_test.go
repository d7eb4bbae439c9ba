package estimator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJobYAML = `
qubit_model: qubit_gate_ns_e4
qec: surface_code
program:
  logical_qubits: 5
  logical_depth: 100
  t_count: 50
  rotations: 10
factories:
  - name: t-factory-small
    qubits: 500
    duration_ns: 5000
    num_states: 1
    max_distance: 25
  - name: t-factory-fast
    qubits: 2000
    duration_ns: 2000
    num_states: 4
    max_distance: 25
error_budget:
  logical: 0.001
  magic_states: 0.01
  rotations: 0.01
`

func writeSampleJob(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleJobYAML), 0o644))
	return path
}

func TestLoadJobConfig(t *testing.T) {
	path := writeSampleJob(t)
	cfg, err := LoadJobConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "qubit_gate_ns_e4", cfg.QubitModel)
	assert.Equal(t, "surface_code", cfg.QEC)
	assert.Len(t, cfg.Factories, 2)
	assert.Equal(t, uint64(5), cfg.Program.LogicalQubits)
}

func TestLoadJobConfigRejectsUnknownQubitModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte("qubit_model: nonsense\nqec: surface_code\n"), 0o644))

	_, err := LoadJobConfig(path)
	require.Error(t, err)
}

func TestLoadJobConfigRejectsConflictingConstraints(t *testing.T) {
	content := sampleJobYAML + "max_duration_ns: 1000000\nmax_physical_qubits: 5000\n"
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadJobConfig(path)
	require.Error(t, err)
}

func TestBuildEstimationFromConfig(t *testing.T) {
	path := writeSampleJob(t)
	cfg, err := LoadJobConfig(path)
	require.NoError(t, err)

	est, err := BuildEstimation(cfg)
	require.NoError(t, err)

	result, err := est.Estimate()
	require.NoError(t, err)
	assert.Greater(t, result.PhysicalQubits(), uint64(0))
}
