package nutrition

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// MacroResult is the shape the prompt asks the model for. Responses are not
// validated against it.
type MacroResult struct {
	Calories   int              `json:"calories"`
	ProteinG   float64          `json:"protein_g"`
	CarbsG     float64          `json:"carbs_g"`
	FatG       float64          `json:"fat_g"`
	Foods      []map[string]any `json:"foods"`
	Notes      *string          `json:"notes,omitempty"`
	Confidence *string          `json:"confidence,omitempty"`
}

// Analysis holds the model output exactly as it was returned.
type Analysis struct {
	Raw json.RawMessage
}

// ParseAnalysis checks that text is a single JSON document and keeps its bytes.
func ParseAnalysis(text string) (*Analysis, error) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}
	return &Analysis{Raw: raw}, nil
}

// Macros reads the well-known fields leniently. Missing or mistyped fields
// come back as zero values.
func (a *Analysis) Macros() MacroResult {
	var m MacroResult
	if a == nil || len(a.Raw) == 0 {
		return m
	}
	fields := gjson.GetManyBytes(a.Raw, "calories", "protein_g", "carbs_g", "fat_g", "foods", "notes", "confidence")
	m.Calories = int(fields[0].Int())
	m.ProteinG = fields[1].Float()
	m.CarbsG = fields[2].Float()
	m.FatG = fields[3].Float()
	fields[4].ForEach(func(_, food gjson.Result) bool {
		if item, ok := food.Value().(map[string]any); ok {
			m.Foods = append(m.Foods, item)
		}
		return true
	})
	if fields[5].Type == gjson.String {
		notes := fields[5].String()
		m.Notes = &notes
	}
	if fields[6].Type == gjson.String {
		confidence := fields[6].String()
		m.Confidence = &confidence
	}
	return m
}
