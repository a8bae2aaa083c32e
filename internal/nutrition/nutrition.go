package nutrition

import "context"

// Model is the inference model every analysis is sent to.
const Model = "gpt-4.1-mini"

// AnalysisPrompt is the fixed instruction sent alongside every meal photo.
const AnalysisPrompt = `
Analyze this meal photo and estimate:

calories
protein_g
carbs_g
fat_g

Return STRICT JSON format:

{
  "calories": number,
  "protein_g": number,
  "carbs_g": number,
  "fat_g": number,
  "foods": [],
  "notes": "",
  "confidence": "low|medium|high"
}
`

// Analyzer exposes the subset of the inference API used by the analysis flow.
// It returns the model's text output unparsed.
type Analyzer interface {
	Analyze(ctx context.Context, prompt, imageURL string) (string, error)
}
