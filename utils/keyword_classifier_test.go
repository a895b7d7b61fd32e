package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-chatbot-backend/models"
)

func TestKeywordClassifier_Plumbing(t *testing.T) {
	kc := NewKeywordClassifier()

	inputs := []string{
		"Water leaking from the ceiling in bathroom",
		"my TOILET is blocked",
		"the kitchen sink drain smells",
	}

	for _, input := range inputs {
		result, err := kc.Classify(context.Background(), input)
		require.NoError(t, err, input)
		assert.Equal(t, models.IssuePlumbingLeak, result.IssueType, input)
		assert.Equal(t, models.PriorityHigh, result.Priority, input)
		assert.Equal(t, 1500.0, result.EstimatedCost, input)
		assert.False(t, result.NeedsClarification, input)
	}
}

func TestKeywordClassifier_AC(t *testing.T) {
	kc := NewKeywordClassifier()

	result, err := kc.Classify(context.Background(), "AC not cooling")
	require.NoError(t, err)
	assert.Equal(t, models.IssueACMaintenance, result.IssueType)
	assert.Equal(t, models.PriorityMedium, result.Priority)
	assert.Equal(t, 600.0, result.EstimatedCost)
}

func TestKeywordClassifier_Electrical(t *testing.T) {
	kc := NewKeywordClassifier()

	result, err := kc.Classify(context.Background(), "Power outlet not working in the bedroom")
	require.NoError(t, err)
	assert.Equal(t, models.IssueElectrical, result.IssueType)
	assert.Equal(t, models.PriorityHigh, result.Priority)
	assert.Equal(t, 1200.0, result.EstimatedCost)
}

func TestKeywordClassifier_Default(t *testing.T) {
	kc := NewKeywordClassifier()

	result, err := kc.Classify(context.Background(), "Door handle broken")
	require.NoError(t, err)
	assert.Equal(t, models.IssueGeneralMaintenance, result.IssueType)
	assert.Equal(t, models.PriorityLow, result.Priority)
	assert.Equal(t, 300.0, result.EstimatedCost)
}

func TestKeywordClassifier_PlumbingWinsOverAC(t *testing.T) {
	kc := NewKeywordClassifier()

	// "water" (plumbing) and "hot" (AC) both match; rule order decides
	result, err := kc.Classify(context.Background(), "the hot water is leaking")
	require.NoError(t, err)
	assert.Equal(t, models.IssuePlumbingLeak, result.IssueType)
}

func TestKeywordClassifier_SubstringMatching(t *testing.T) {
	kc := NewKeywordClassifier()

	// "ac" matches inside "cracked". Documented imprecision of the
	// substring rules, asserted so a change to token matching is noticed.
	result, err := kc.Classify(context.Background(), "the tile is cracked")
	require.NoError(t, err)
	assert.Equal(t, models.IssueACMaintenance, result.IssueType)
}

func TestKeywordClassifier_EmptyInput(t *testing.T) {
	kc := NewKeywordClassifier()

	result, err := kc.Classify(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.IssueGeneralMaintenance, result.IssueType)
}
