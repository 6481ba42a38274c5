package synthesis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/founderos/calibrate/internal/models"
)

// parseResponse validates the service's free-form output against the
// five-key schema. The service is untrusted: every key is checked
// explicitly and missing or malformed fields coerce to safe empties
// rather than failing the parse. Only an unreadable top-level object
// is an error.
func parseResponse(raw string) (models.SynthesisResult, error) {
	cleaned := stripCodeFences(raw)

	var payload struct {
		Antitheses           json.RawMessage `json:"antitheses"`
		BlindSpots           json.RawMessage `json:"blindSpots"`
		Synthesis            json.RawMessage `json:"synthesis"`
		TopRelationshipMoves json.RawMessage `json:"topRelationshipMoves"`
		AttentionCommentary  json.RawMessage `json:"attentionCommentary"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return models.SynthesisResult{}, fmt.Errorf("response is not a JSON object: %w", err)
	}

	return models.SynthesisResult{
		Antitheses:           coerceAntitheses(payload.Antitheses),
		BlindSpots:           coerceStrings(payload.BlindSpots),
		Synthesis:            coerceString(payload.Synthesis),
		TopRelationshipMoves: coerceStrings(payload.TopRelationshipMoves),
		AttentionCommentary:  coerceStringMap(payload.AttentionCommentary),
	}, nil
}

// stripCodeFences removes markdown fence markup some models wrap
// around JSON, then extracts the outermost object if prose surrounds
// it.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}

func coerceAntitheses(raw json.RawMessage) []models.Antithesis {
	result := []models.Antithesis{}
	if len(raw) == 0 {
		return result
	}
	var entries []struct {
		Decision              string `json:"decision"`
		CounterArgument       string `json:"counterArgument"`
		KillCriteriaProximity string `json:"killCriteriaProximity"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return result
	}
	for _, e := range entries {
		if e.Decision == "" && e.CounterArgument == "" {
			continue
		}
		result = append(result, models.Antithesis{
			Decision:              e.Decision,
			CounterArgument:       e.CounterArgument,
			KillCriteriaProximity: e.KillCriteriaProximity,
		})
	}
	return result
}

func coerceStrings(raw json.RawMessage) []string {
	result := []string{}
	if len(raw) == 0 {
		return result
	}
	var values []any
	if err := json.Unmarshal(raw, &values); err != nil {
		return result
	}
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			result = append(result, s)
		}
	}
	return result
}

func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func coerceStringMap(raw json.RawMessage) map[string]string {
	result := map[string]string{}
	if len(raw) == 0 {
		return result
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return result
	}
	for k, v := range values {
		if s, ok := v.(string); ok && s != "" {
			result[k] = s
		}
	}
	return result
}
