// Package score converts one day's raw telemetry into a scalar
// performance score plus a per-component breakdown.
package score

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// GenerativeEnergyWeights are the sub-signal exponents for the
// generative energy component. They must sum to 1.
type GenerativeEnergyWeights struct {
	Sleep         float64 `yaml:"sleep"`
	Training      float64 `yaml:"training"`
	BodyFelt      float64 `yaml:"body_felt"`
	NervousSystem float64 `yaml:"nervous_system"`
}

// IntelligenceGrowthWeights weight study time against captured insights.
type IntelligenceGrowthWeights struct {
	Study    float64 `yaml:"study"`
	Insights float64 `yaml:"insights"`
}

// ValueCreationWeights weight focused build time against shipping.
type ValueCreationWeights struct {
	Focus float64 `yaml:"focus"`
	Ships float64 `yaml:"ships"`
}

// CaptureRatioWeights weight revenue asks against revenue captured.
type CaptureRatioWeights struct {
	Asks    float64 `yaml:"asks"`
	Revenue float64 `yaml:"revenue"`
}

// DiscoveryWeights weight conversations against public posts.
type DiscoveryWeights struct {
	Conversations float64 `yaml:"conversations"`
	Posts         float64 `yaml:"posts"`
}

// OptionalityWeights weight warm intros, meetings and new contacts.
type OptionalityWeights struct {
	Intros      float64 `yaml:"intros"`
	Meetings    float64 `yaml:"meetings"`
	NewContacts float64 `yaml:"new_contacts"`
}

// SkillBuildingWeights weight deliberate practice against training.
type SkillBuildingWeights struct {
	Practice float64 `yaml:"practice"`
	Training float64 `yaml:"training"`
}

// Weights holds every component's sub-signal exponents. The engine's
// structure is fixed; only these exponents are configuration.
type Weights struct {
	GenerativeEnergy   GenerativeEnergyWeights   `yaml:"generative_energy"`
	IntelligenceGrowth IntelligenceGrowthWeights `yaml:"intelligence_growth"`
	ValueCreation      ValueCreationWeights      `yaml:"value_creation"`
	CaptureRatio       CaptureRatioWeights       `yaml:"capture_ratio"`
	Discovery          DiscoveryWeights          `yaml:"discovery"`
	Optionality        OptionalityWeights        `yaml:"optionality"`
	SkillBuilding      SkillBuildingWeights      `yaml:"skill_building"`
}

// DefaultWeights returns the observed default configuration. The
// generative energy exponents are fixed by the scoring model; the rest
// are tunable starting points.
func DefaultWeights() Weights {
	return Weights{
		GenerativeEnergy: GenerativeEnergyWeights{
			Sleep:         0.35,
			Training:      0.2,
			BodyFelt:      0.2,
			NervousSystem: 0.25,
		},
		IntelligenceGrowth: IntelligenceGrowthWeights{Study: 0.6, Insights: 0.4},
		ValueCreation:      ValueCreationWeights{Focus: 0.5, Ships: 0.5},
		CaptureRatio:       CaptureRatioWeights{Asks: 0.4, Revenue: 0.6},
		Discovery:          DiscoveryWeights{Conversations: 0.6, Posts: 0.4},
		Optionality:        OptionalityWeights{Intros: 0.4, Meetings: 0.3, NewContacts: 0.3},
		SkillBuilding:      SkillBuildingWeights{Practice: 0.7, Training: 0.3},
	}
}

const weightSumTolerance = 1e-9

// Validate checks that every component's exponents sum to 1, which the
// geometric construction requires for components to stay in [0,1].
func (w Weights) Validate() error {
	sums := map[string]float64{
		ComponentGenerativeEnergy:   w.GenerativeEnergy.Sleep + w.GenerativeEnergy.Training + w.GenerativeEnergy.BodyFelt + w.GenerativeEnergy.NervousSystem,
		ComponentIntelligenceGrowth: w.IntelligenceGrowth.Study + w.IntelligenceGrowth.Insights,
		ComponentValueCreation:      w.ValueCreation.Focus + w.ValueCreation.Ships,
		ComponentCaptureRatio:       w.CaptureRatio.Asks + w.CaptureRatio.Revenue,
		ComponentDiscovery:          w.Discovery.Conversations + w.Discovery.Posts,
		ComponentOptionality:        w.Optionality.Intros + w.Optionality.Meetings + w.Optionality.NewContacts,
		ComponentSkillBuilding:      w.SkillBuilding.Practice + w.SkillBuilding.Training,
	}
	for name, sum := range sums {
		if math.Abs(sum-1) > weightSumTolerance {
			return fmt.Errorf("component %s weights sum to %v, want 1", name, sum)
		}
	}
	return nil
}

// LoadWeights reads a YAML weights file over the defaults. An empty
// path returns the defaults unchanged.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	if path == "" {
		return w, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("failed to read weights file: %w", err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("failed to parse weights file: %w", err)
	}
	if err := w.Validate(); err != nil {
		return w, err
	}
	return w, nil
}
