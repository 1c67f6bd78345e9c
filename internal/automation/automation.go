package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/ltisim/internal/config"
	"github.com/san-kum/ltisim/internal/dynamo"
	"github.com/san-kum/ltisim/internal/experiment"
	"github.com/san-kum/ltisim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted simulation sequence.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one simulation of a scenario. It starts from the named preset,
// or the default config, and applies the step's own keys on top.
type Step struct {
	Preset string
	SaveAs string
	Config *config.Config
}

func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Preset string `yaml:"preset"`
		SaveAs string `yaml:"save_as"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}

	base := config.DefaultConfig()
	if head.Preset != "" {
		if base = config.GetPreset(head.Preset); base == nil {
			return fmt.Errorf("line %d: unknown preset %q", node.Line, head.Preset)
		}
	}
	if err := node.Decode(base); err != nil {
		return err
	}

	s.Preset, s.SaveAs, s.Config = head.Preset, head.SaveAs, base
	return nil
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario: no steps")
	}
	return &scenario, nil
}

type StepResult struct {
	Name   string
	RunID  string
	Result *dynamo.Result
}

// RunScenario executes the steps in order. Steps with save_as are stored
// under that run id when store is non-nil. On failure the results of the
// completed steps are returned with the error.
func RunScenario(ctx context.Context, scenario *Scenario, reg *experiment.Registry, store *storage.Store, log *slog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Config.Name
		if name == "" {
			name = step.Preset
		}
		log.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "name", name)

		exp, err := experiment.New(step.Config, reg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Result: result}
		if step.SaveAs != "" && store != nil {
			meta := exp.Metadata()
			meta.ID = step.SaveAs
			if sr.RunID, err = store.Save(meta, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			log.Debug("saved step", "step", i+1, "run", sr.RunID)
		}
		results = append(results, sr)
	}

	return results, nil
}
