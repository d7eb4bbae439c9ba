package estimator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// JobConfig describes one estimation job as loaded from a YAML file: the
// qubit model and code family to assume, the magic state factories
// available to the builder, the error budget to split across logical
// patches/magic states/rotations, and any of the four optional search
// constraints.
type JobConfig struct {
	QubitModel  string            `yaml:"qubit_model"`
	QEC         string            `yaml:"qec"`
	Program     ProgramConfig     `yaml:"program"`
	Factories   []FactoryConfig   `yaml:"factories"`
	ErrorBudget ErrorBudgetConfig `yaml:"error_budget"`

	LogicalDepthFactor *float64 `yaml:"logical_depth_factor,omitempty"`
	MaxFactories       *uint64  `yaml:"max_factories,omitempty"`
	MaxDurationNs      *uint64  `yaml:"max_duration_ns,omitempty"`
	MaxPhysicalQubits  *uint64  `yaml:"max_physical_qubits,omitempty"`
}

// ProgramConfig is LogicalProgram's YAML form: the logical resource
// counts a frontend would otherwise derive from a compiled program.
type ProgramConfig struct {
	LogicalQubits uint64 `yaml:"logical_qubits"`
	LogicalDepth  uint64 `yaml:"logical_depth"`
	TCount        uint64 `yaml:"t_count"`
	Rotations     uint64 `yaml:"rotations"`
}

// Overhead converts the config into a LogicalProgram.
func (c ProgramConfig) Overhead() LogicalProgram {
	return LogicalProgram{NumLogicalQubits: c.LogicalQubits, BaseDepth: c.LogicalDepth, TCount: c.TCount, NumRotations: c.Rotations}
}

// FactoryConfig names one magic state factory variant in a catalog: its
// fixed physical qubit/time/output-state cost and the most expensive
// code distance its output remains usable with.
type FactoryConfig struct {
	Name           string `yaml:"name"`
	Qubits         uint64 `yaml:"qubits"`
	DurationNs     uint64 `yaml:"duration_ns"`
	NumStates      uint64 `yaml:"num_states"`
	MaxDistance    int    `yaml:"max_distance,omitempty"`
	HasMaxDistance bool   `yaml:"-"`
}

// Factory converts the config into a CatalogFactory.
func (c FactoryConfig) Factory() CatalogFactory {
	return CatalogFactory{
		Name: c.Name, Qubits: c.Qubits, DurationNs: c.DurationNs, NumStates: c.NumStates,
		MaxDistance: c.MaxDistance, HasMaxDistance: c.MaxDistance > 0,
	}
}

// ErrorBudgetConfig is ErrorBudget's YAML form.
type ErrorBudgetConfig struct {
	Logical     float64 `yaml:"logical"`
	MagicStates float64 `yaml:"magic_states"`
	Rotations   float64 `yaml:"rotations"`
}

// Budget converts the config into an ErrorBudget.
func (c ErrorBudgetConfig) Budget() ErrorBudget {
	return NewErrorBudget(c.Logical, c.MagicStates, c.Rotations)
}

// LoadJobConfig reads and validates an estimation job from a YAML file.
func LoadJobConfig(path string) (*JobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read estimator job config: %w", err)
	}

	var cfg JobConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse estimator job config: %w", err)
	}

	if cfg.QubitModel == "" {
		return nil, fmt.Errorf("estimator job config missing required field: qubit_model")
	}
	if cfg.QEC == "" {
		return nil, fmt.Errorf("estimator job config missing required field: qec")
	}
	if cfg.MaxDurationNs != nil && cfg.MaxPhysicalQubits != nil {
		return nil, fmt.Errorf("estimator job config sets both max_duration_ns and max_physical_qubits; only one is supported per job")
	}
	if _, err := LookupQubitPreset(cfg.QubitModel); err != nil {
		return nil, fmt.Errorf("estimator job config: %w", err)
	}
	if cfg.QEC != "surface_code" {
		return nil, fmt.Errorf("estimator job config: unsupported qec %q (only \"surface_code\" is implemented)", cfg.QEC)
	}

	return &cfg, nil
}

// BuildEstimation resolves a loaded JobConfig into a ready-to-run
// Estimation over the concrete surface-code/catalog-factory/logical-
// program types cmd/qcc operates on.
func BuildEstimation(cfg *JobConfig) (*Estimation[QubitParams, int, CatalogFactory, CatalogFactoryBuilder, LogicalProgram], error) {
	qubit, err := LookupQubitPreset(cfg.QubitModel)
	if err != nil {
		return nil, err
	}

	factories := make([]CatalogFactory, len(cfg.Factories))
	for i, f := range cfg.Factories {
		factories[i] = f.Factory()
	}

	est := NewEstimation[QubitParams, int, CatalogFactory, CatalogFactoryBuilder, LogicalProgram](
		NewSurfaceCode(), qubit, CatalogFactoryBuilder{Catalog: factories}, cfg.Program.Overhead(), cfg.ErrorBudget.Budget(),
	)
	ApplyConstraints(cfg, est)
	return est, nil
}

// ApplyConstraints copies the job's optional search constraints onto an
// Estimation, leaving whichever the config didn't set untouched.
func ApplyConstraints[Q any, P any, F Factory[P], B FactoryBuilder[Q, P, F], L LogicalOverhead](cfg *JobConfig, est *Estimation[Q, P, F, B, L]) {
	if cfg.LogicalDepthFactor != nil {
		est.SetLogicalDepthFactor(*cfg.LogicalDepthFactor)
	}
	if cfg.MaxFactories != nil {
		est.SetMaxFactories(*cfg.MaxFactories)
	}
	if cfg.MaxDurationNs != nil {
		est.SetMaxDuration(*cfg.MaxDurationNs)
	}
	if cfg.MaxPhysicalQubits != nil {
		est.SetMaxPhysicalQubits(*cfg.MaxPhysicalQubits)
	}
}
