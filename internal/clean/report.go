package clean

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/tabloom/internal/utils"
)

// RunReport describes one normalization run: which source was cleaned, where
// the identifier sequence started, and every identifier that was synthesized.
type RunReport struct {
	RunID       string      `yaml:"run_id"`
	Source      string      `yaml:"source"`
	Seed        uint64      `yaml:"seed"`
	Synthesized []Operation `yaml:"synthesized"`
}

// NewRunReport stamps the report with a fresh run identifier.
func NewRunReport(source string, seed uint64, ops []Operation) *RunReport {
	return &RunReport{
		RunID:       uuid.NewString(),
		Source:      source,
		Seed:        seed,
		Synthesized: ops,
	}
}

// Save writes the report as YAML, atomically.
func (r *RunReport) Save(path string) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return utils.SafeWriteFile(path, b)
}
