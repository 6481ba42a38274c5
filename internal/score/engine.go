package score

import (
	"math"

	"github.com/founderos/calibrate/internal/models"
)

// Component map keys.
const (
	ComponentGenerativeEnergy   = "generativeEnergy"
	ComponentIntelligenceGrowth = "intelligenceGrowth"
	ComponentValueCreation      = "valueCreation"
	ComponentCaptureRatio       = "captureRatio"
	ComponentDiscovery          = "discovery"
	ComponentOptionality        = "optionality"
	ComponentSkillBuilding      = "skillBuilding"
	ComponentFragmentation      = "fragmentationPenalty"
	ComponentRegulationGate     = "regulationGate"
)

// PrimaryComponents lists the components combined by the geometric
// mean, in display order. The fragmentation penalty and regulation
// gate act on the mean instead of joining it.
var PrimaryComponents = []string{
	ComponentGenerativeEnergy,
	ComponentIntelligenceGrowth,
	ComponentValueCreation,
	ComponentCaptureRatio,
	ComponentDiscovery,
	ComponentOptionality,
	ComponentSkillBuilding,
}

// Normalization targets: the raw value at which a sub-signal saturates
// to 1.0.
const (
	sleepTargetHours     = 8.0
	trainingTargetMin    = 45.0
	focusTargetHours     = 4.0
	studyTargetMin       = 90.0
	insightTarget        = 3.0
	shipTarget           = 1.0
	askTarget            = 3.0
	revenueTarget        = 500.0
	conversationTarget   = 3.0
	postTarget           = 1.0
	introTarget          = 1.0
	meetingTarget        = 1.0
	newContactTarget     = 2.0
	practiceTargetMin    = 60.0
	fragmentationPenalty = 0.3  // coefficient applied to the dispersion term
	rawFloor             = 0.05 // clamp before display scaling
)

// Gate multipliers per regulation state.
const (
	gateRegulated = 1.0
	gateElevated  = 0.7
	gateSpiked    = 0.3
)

// Compute scores one day of telemetry. prevScore is the previous
// day's display score, nil when none exists. The result is always
// valid: missing numeric inputs count as zero and unknown categorical
// states fall back to their neutral defaults.
func Compute(rec *models.DayRecord, prevScore *float64, w Weights) models.ScoreResult {
	components := map[string]float64{
		ComponentGenerativeEnergy:   GenerativeEnergy(rec, w.GenerativeEnergy),
		ComponentIntelligenceGrowth: IntelligenceGrowth(rec, w.IntelligenceGrowth),
		ComponentValueCreation:      ValueCreation(rec, w.ValueCreation),
		ComponentCaptureRatio:       CaptureRatio(rec, w.CaptureRatio),
		ComponentDiscovery:          Discovery(rec, w.Discovery),
		ComponentOptionality:        Optionality(rec, w.Optionality),
		ComponentSkillBuilding:      SkillBuilding(rec, w.SkillBuilding),
		ComponentFragmentation:      Fragmentation(rec),
		ComponentRegulationGate:     RegulationGate(rec.NervousSystem),
	}

	primary := make([]float64, 0, len(PrimaryComponents))
	for _, name := range PrimaryComponents {
		primary = append(primary, components[name])
	}

	raw := geometricMean(primary) * components[ComponentRegulationGate]
	raw -= fragmentationPenalty * components[ComponentFragmentation]

	clamped := raw
	if clamped < rawFloor {
		clamped = rawFloor
	}
	display := toDisplayScale(clamped)

	result := models.ScoreResult{
		Score:      display,
		Components: components,
	}
	if prevScore != nil {
		delta := display - *prevScore
		result.Delta = &delta
	}
	return result
}

// toDisplayScale converts the internal [rawFloor,1] scale to the
// user-facing 0-10 range. It is the single place the conversion lives
// so the curve can change without touching component logic.
func toDisplayScale(v float64) float64 {
	return v * 10
}

// DisplayFloor is the lowest reachable display score.
func DisplayFloor() float64 {
	return toDisplayScale(rawFloor)
}

// GenerativeEnergy measures physical and regulatory capacity:
// sleep^ws x training^wt x bodyFelt^wb x nervousSystem^wn.
func GenerativeEnergy(rec *models.DayRecord, w GenerativeEnergyWeights) float64 {
	return weightedGeometric(
		signal{norm(rec.SleepHours, sleepTargetHours), w.Sleep},
		signal{norm(float64(rec.TrainingMinutes), trainingTargetMin), w.Training},
		signal{norm(float64(rec.BodyFelt), 10), w.BodyFelt},
		signal{nervousSystemSignal(rec.NervousSystem), w.NervousSystem},
	)
}

// IntelligenceGrowth measures learning throughput.
func IntelligenceGrowth(rec *models.DayRecord, w IntelligenceGrowthWeights) float64 {
	return weightedGeometric(
		signal{norm(float64(rec.StudyMinutes), studyTargetMin), w.Study},
		signal{norm(float64(rec.InsightsLogged), insightTarget), w.Insights},
	)
}

// ValueCreation measures focused build time that actually ships.
func ValueCreation(rec *models.DayRecord, w ValueCreationWeights) float64 {
	return weightedGeometric(
		signal{norm(rec.FocusHours, focusTargetHours), w.Focus},
		signal{norm(float64(rec.ShipTally()), shipTarget), w.Ships},
	)
}

// CaptureRatio measures revenue activity against revenue landed.
func CaptureRatio(rec *models.DayRecord, w CaptureRatioWeights) float64 {
	return weightedGeometric(
		signal{norm(float64(rec.RevenueAsks), askTarget), w.Asks},
		signal{norm(rec.RevenueAmount, revenueTarget), w.Revenue},
	)
}

// Discovery measures outward-facing surface area.
func Discovery(rec *models.DayRecord, w DiscoveryWeights) float64 {
	return weightedGeometric(
		signal{norm(float64(rec.Conversations), conversationTarget), w.Conversations},
		signal{norm(float64(rec.Posts), postTarget), w.Posts},
	)
}

// Optionality measures new doors opened.
func Optionality(rec *models.DayRecord, w OptionalityWeights) float64 {
	return weightedGeometric(
		signal{norm(float64(rec.Intros), introTarget), w.Intros},
		signal{norm(float64(rec.Meetings), meetingTarget), w.Meetings},
		signal{norm(float64(rec.NewContacts), newContactTarget), w.NewContacts},
	)
}

// SkillBuilding measures deliberate practice.
func SkillBuilding(rec *models.DayRecord, w SkillBuildingWeights) float64 {
	return weightedGeometric(
		signal{norm(float64(rec.PracticeMinutes), practiceTargetMin), w.Practice},
		signal{norm(float64(rec.TrainingMinutes), trainingTargetMin), w.Training},
	)
}

// Fragmentation measures dispersion of the day's hours across
// projects: 1 - sum(share^2). A single-project day scores 0; an evenly
// split day approaches 1 - 1/n.
func Fragmentation(rec *models.DayRecord) float64 {
	total := 0.0
	for _, h := range rec.ProjectHours {
		if h > 0 {
			total += h
		}
	}
	if total <= 0 {
		return 0
	}
	concentration := 0.0
	for _, h := range rec.ProjectHours {
		if h <= 0 {
			continue
		}
		share := h / total
		concentration += share * share
	}
	return 1 - concentration
}

// RegulationGate is the discrete multiplier applied to the geometric
// mean based on the nervous-system state.
func RegulationGate(state models.NervousSystemState) float64 {
	switch state.Normalize() {
	case models.NervousSystemSpiked:
		return gateSpiked
	case models.NervousSystemElevated:
		return gateElevated
	default:
		return gateRegulated
	}
}

// nervousSystemSignal is the continuous sub-signal inside generative
// energy, distinct from the discrete gate.
func nervousSystemSignal(state models.NervousSystemState) float64 {
	switch state.Normalize() {
	case models.NervousSystemSpiked:
		return 0.3
	case models.NervousSystemElevated:
		return 0.6
	default:
		return 1.0
	}
}

type signal struct {
	value  float64
	weight float64
}

// weightedGeometric combines normalized sub-signals as
// prod(v_i^w_i). With weights summing to 1 the result stays in [0,1],
// and any zero-valued signal with positive weight zeroes the whole
// component.
func weightedGeometric(signals ...signal) float64 {
	product := 1.0
	for _, s := range signals {
		if s.weight == 0 {
			continue
		}
		product *= math.Pow(s.value, s.weight)
	}
	return product
}

// geometricMean is unweighted: components are complementary, not
// substitutable, so one collapsed component collapses the mean.
func geometricMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	product := 1.0
	for _, v := range values {
		product *= v
	}
	if product <= 0 {
		return 0
	}
	return math.Pow(product, 1/float64(len(values)))
}

// norm maps a raw value onto [0,1] against its saturation target.
func norm(value, target float64) float64 {
	if value <= 0 || target <= 0 {
		return 0
	}
	if value >= target {
		return 1
	}
	return value / target
}
