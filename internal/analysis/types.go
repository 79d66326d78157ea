// Package analysis defines the CV analysis result shape, its schema
// validation and the neutral fallback used when the model output cannot be
// recovered.
package analysis

import "time"

// Dimension is one scored axis of the three-part rubric.
type Dimension struct {
	Score       int      `json:"score"`
	Explanation string   `json:"explanation"`
	Suggestions []string `json:"suggestions"`
}

// ImprovedSample shows a rewritten fragment of the analyzed CV.
type ImprovedSample struct {
	Section  string `json:"section"`
	Original string `json:"original"`
	Improved string `json:"improved"`
}

// Resource points the user at further reading.
type Resource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Metadata echoes the analysis context back to the caller.
type Metadata struct {
	AnalyzedAt string `json:"analyzedAt"`
	JobTitle   string `json:"jobTitle"`
	Industry   string `json:"industry"`
}

// Result is the full analysis payload. It is the one entity in this system
// with an enforced shape; see Parse.
type Result struct {
	OverallScore    int              `json:"overallScore"`
	Visual          Dimension        `json:"visual"`
	Structural      Dimension        `json:"structural"`
	Content         Dimension        `json:"content"`
	ActionPlan      []string         `json:"actionPlan"`
	ImprovedSamples []ImprovedSample `json:"improvedSamples"`
	Keywords        []string         `json:"keywords"`
	Resources       []Resource       `json:"resources"`
	Metadata        Metadata         `json:"metadata"`
}

// Fallback builds the neutral low-confidence result returned when the model
// output survives neither a strict parse nor a repair pass. The UI always
// gets something renderable; the scores say "we could not tell".
func Fallback(jobTitle, industry string, now time.Time) *Result {
	const neutral = "Analysis incomplete: the model response could not be interpreted."

	dim := func() Dimension {
		return Dimension{Score: 50, Explanation: neutral, Suggestions: []string{}}
	}

	return &Result{
		OverallScore:    50,
		Visual:          dim(),
		Structural:      dim(),
		Content:         dim(),
		ActionPlan:      []string{},
		ImprovedSamples: []ImprovedSample{},
		Keywords:        []string{},
		Resources:       []Resource{},
		Metadata: Metadata{
			AnalyzedAt: now.UTC().Format(time.RFC3339),
			JobTitle:   jobTitle,
			Industry:   industry,
		},
	}
}
