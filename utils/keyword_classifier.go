package utils

import (
	"context"
	"strings"

	"maintenance-chatbot-backend/models"
)

// keywordRule maps a keyword set to its fixed classification. Rules are
// evaluated in order and the first match wins, so the sets don't need to
// be disjoint in the text even though the keyword lists themselves are.
type keywordRule struct {
	keywords []string
	result   models.RawClassification
}

// KeywordClassifier is the deterministic classifier strategy. It never
// fails and never blocks, which makes it the safe default deployment mode.
type KeywordClassifier struct {
	rules        []keywordRule
	defaultClass models.RawClassification
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		rules: []keywordRule{
			{
				keywords: []string{"leak", "water", "plumbing", "pipe", "drain", "toilet", "sink"},
				result: models.RawClassification{
					IssueType:     models.IssuePlumbingLeak,
					Priority:      models.PriorityHigh,
					EstimatedCost: 1500,
				},
			},
			{
				// Substring matching means short keywords like "ac" or
				// "hot" can hit inside unrelated words. Known imprecision,
				// kept for parity with the production rule set.
				keywords: []string{"ac", "air", "cool", "conditioning", "temperature", "hot", "cold"},
				result: models.RawClassification{
					IssueType:     models.IssueACMaintenance,
					Priority:      models.PriorityMedium,
					EstimatedCost: 600,
				},
			},
			{
				keywords: []string{"electric", "power", "light", "socket", "outlet", "switch"},
				result: models.RawClassification{
					IssueType:     models.IssueElectrical,
					Priority:      models.PriorityHigh,
					EstimatedCost: 1200,
				},
			},
		},
		defaultClass: models.RawClassification{
			IssueType:     models.IssueGeneralMaintenance,
			Priority:      models.PriorityLow,
			EstimatedCost: 300,
		},
	}
}

// Classify matches the lower-cased text against the ordered rule sets.
// The context is accepted to satisfy the classifier contract; keyword
// matching never blocks.
func (kc *KeywordClassifier) Classify(_ context.Context, text string) (models.RawClassification, error) {
	text = strings.ToLower(text)

	for _, rule := range kc.rules {
		if containsAnyKeyword(text, rule.keywords) {
			return rule.result, nil
		}
	}

	return kc.defaultClass, nil
}

func containsAnyKeyword(message string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}
