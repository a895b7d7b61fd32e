package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-chatbot-backend/config"
	"maintenance-chatbot-backend/models"
)

type fakeGenerator struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestNewGeminiClassifier_MissingAPIKey(t *testing.T) {
	_, err := NewGeminiClassifier(config.AIConfig{Model: "gemini-1.5-flash"})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGeminiClassifier_ParsesReply(t *testing.T) {
	gen := &fakeGenerator{reply: `{"issue_type": "Plumbing", "priority": "HIGH", "estimated_cost": 1500, "reasoning": "Ceiling leak indicates pipe issue", "needs_clarification": false, "clarification_question": null}`}
	gc := &GeminiClassifier{gen: gen}

	result, err := gc.Classify(context.Background(), "Water leaking from the ceiling in bathroom")
	require.NoError(t, err)

	assert.Equal(t, "Plumbing", result.IssueType)
	assert.Equal(t, models.PriorityHigh, result.Priority)
	assert.Equal(t, 1500.0, result.EstimatedCost)
	assert.Equal(t, "Ceiling leak indicates pipe issue", result.Reasoning)
	assert.False(t, result.NeedsClarification)
	assert.Empty(t, result.ClarificationQuestion)

	// The tenant's text rides along with the fixed instruction
	assert.Contains(t, gen.prompt, "Tenant Message: Water leaking from the ceiling in bathroom")
	assert.Contains(t, gen.prompt, `"issue_type"`)
}

func TestGeminiClassifier_CodeFencedReply(t *testing.T) {
	plain := `{"issue_type": "AC", "priority": "MEDIUM", "estimated_cost": 600, "reasoning": "gas refill", "needs_clarification": false, "clarification_question": null}`
	fenced := "```json\n" + plain + "\n```"

	plainResult, err := (&GeminiClassifier{gen: &fakeGenerator{reply: plain}}).Classify(context.Background(), "AC not cooling")
	require.NoError(t, err)

	fencedResult, err := (&GeminiClassifier{gen: &fakeGenerator{reply: fenced}}).Classify(context.Background(), "AC not cooling")
	require.NoError(t, err)

	assert.Equal(t, plainResult, fencedResult)
}

func TestGeminiClassifier_MalformedReplyFallsBack(t *testing.T) {
	gc := &GeminiClassifier{gen: &fakeGenerator{reply: "I think this is probably a plumbing issue."}}

	result, err := gc.Classify(context.Background(), "Water everywhere")
	require.NoError(t, err, "a malformed reply is recovered, not surfaced")

	assert.Equal(t, models.IssueGeneralMaintenance, result.IssueType)
	assert.Equal(t, models.PriorityMedium, result.Priority)
	assert.Equal(t, 500.0, result.EstimatedCost)
	assert.True(t, result.NeedsClarification)
	assert.Equal(t, fallbackClarificationQuestion, result.ClarificationQuestion)
}

func TestGeminiClassifier_MissingFieldsDefault(t *testing.T) {
	gc := &GeminiClassifier{gen: &fakeGenerator{reply: `{"issue_type": "Electrical"}`}}

	result, err := gc.Classify(context.Background(), "socket sparking")
	require.NoError(t, err)

	assert.Equal(t, "Electrical", result.IssueType)
	assert.Equal(t, models.PriorityMedium, result.Priority)
	assert.Equal(t, 500.0, result.EstimatedCost)
	assert.False(t, result.NeedsClarification)
	assert.Empty(t, result.ClarificationQuestion)
}

func TestGeminiClassifier_NegativeCostRejected(t *testing.T) {
	gc := &GeminiClassifier{gen: &fakeGenerator{reply: `{"issue_type": "AC", "estimated_cost": -200}`}}

	result, err := gc.Classify(context.Background(), "AC broken")
	require.NoError(t, err)
	assert.Equal(t, 500.0, result.EstimatedCost)
}

func TestGeminiClassifier_ClarificationWithoutQuestion(t *testing.T) {
	gc := &GeminiClassifier{gen: &fakeGenerator{reply: `{"issue_type": "Other", "needs_clarification": true}`}}

	result, err := gc.Classify(context.Background(), "broken")
	require.NoError(t, err)
	assert.True(t, result.NeedsClarification)
	assert.Equal(t, fallbackClarificationQuestion, result.ClarificationQuestion)
}

func TestGeminiClassifier_QuestionDroppedWhenNotNeeded(t *testing.T) {
	gc := &GeminiClassifier{gen: &fakeGenerator{reply: `{"issue_type": "AC", "needs_clarification": false, "clarification_question": "Which unit?"}`}}

	result, err := gc.Classify(context.Background(), "AC broken")
	require.NoError(t, err)
	assert.False(t, result.NeedsClarification)
	assert.Empty(t, result.ClarificationQuestion)
}

func TestGeminiClassifier_TransportErrorPropagates(t *testing.T) {
	transportErr := &TransportError{Err: errors.New("rate limited")}
	gc := &GeminiClassifier{gen: &fakeGenerator{err: transportErr}}

	_, err := gc.Classify(context.Background(), "AC broken")
	require.Error(t, err)

	var te *TransportError
	assert.ErrorAs(t, err, &te)
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, models.PriorityHigh, normalizePriority("HIGH"))
	assert.Equal(t, models.PriorityHigh, normalizePriority(" high "))
	assert.Equal(t, models.PriorityLow, normalizePriority("low"))
	assert.Equal(t, models.PriorityMedium, normalizePriority("MEDIUM"))
	assert.Equal(t, models.PriorityMedium, normalizePriority("urgent"))
	assert.Equal(t, models.PriorityMedium, normalizePriority(""))
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"```json{\"a\":1}```", `{"a":1}`},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, stripCodeFence(tc.in), tc.in)
	}
}
