package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResultJSON = `{
	"overallScore": 78,
	"visual": {"score": 80, "explanation": "clean layout", "suggestions": ["more whitespace"]},
	"structural": {"score": 75, "explanation": "good order", "suggestions": []},
	"content": {"score": 79, "explanation": "solid achievements", "suggestions": ["quantify more"]},
	"actionPlan": ["add metrics to the last role"],
	"improvedSamples": [{"section": "summary", "original": "hard worker", "improved": "shipped 12 releases"}],
	"keywords": ["golang", "postgresql"],
	"resources": [{"title": "ATS basics", "url": "https://example.com", "description": "primer"}],
	"metadata": {"analyzedAt": "2026-01-01T00:00:00Z", "jobTitle": "Backend Engineer", "industry": "Fintech"}
}`

func TestParse_ValidResult(t *testing.T) {
	result, err := Parse(validResultJSON)

	require.NoError(t, err)
	assert.Equal(t, 78, result.OverallScore)
	assert.Equal(t, 80, result.Visual.Score)
	assert.Equal(t, []string{"add metrics to the last role"}, result.ActionPlan)
	assert.Equal(t, "Backend Engineer", result.Metadata.JobTitle)
}

func TestParse_RejectsNonJSON(t *testing.T) {
	_, err := Parse("not json at all {{{")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParse_RejectsSchemaMismatch(t *testing.T) {
	// Valid JSON, wrong shape: counts as a parse failure for the recovery chain.
	_, err := Parse(`{"overallScore": "high"}`)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotEmpty(t, parseErr.Fields)
}

func TestParse_RejectsMissingRequiredFields(t *testing.T) {
	_, err := Parse(`{"overallScore": 70}`)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFallback_NeutralShape(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	result := Fallback("Data Engineer", "Healthcare", now)

	assert.Equal(t, 50, result.OverallScore)
	assert.Equal(t, 50, result.Visual.Score)
	assert.Equal(t, 50, result.Structural.Score)
	assert.Equal(t, 50, result.Content.Score)
	assert.Empty(t, result.ActionPlan)
	assert.NotNil(t, result.ActionPlan)
	assert.Empty(t, result.Keywords)
	assert.Empty(t, result.Resources)
	assert.Empty(t, result.ImprovedSamples)
	assert.Equal(t, "Data Engineer", result.Metadata.JobTitle)
	assert.Equal(t, "Healthcare", result.Metadata.Industry)
	assert.Equal(t, "2026-03-01T12:00:00Z", result.Metadata.AnalyzedAt)
	assert.NotEmpty(t, result.Visual.Explanation)
}
