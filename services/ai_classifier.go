package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"maintenance-chatbot-backend/config"
	"maintenance-chatbot-backend/models"
)

// systemPrompt defines the classification task, the calibration bands,
// the exact output schema, and a few worked examples. The examples exist
// to bias the model toward the schema and realistic values; they are not
// matched literally. The six field names are a compatibility surface:
// parseClassification depends on them.
const systemPrompt = `You are a professional property maintenance manager for residential properties in Dubai, UAE.

Your job is to analyze tenant maintenance requests and provide structured assessments.

## Your Responsibilities:
1. Understand the maintenance issue from the tenant's description
2. Classify the issue type (Plumbing, AC, Electrical, General Maintenance, or Other)
3. Assess priority level (LOW, MEDIUM, HIGH)
4. Estimate repair cost in AED (United Arab Emirates Dirham)

## Classification Guidelines:

**HIGH Priority** (Usually >1000 AED):
- Water leaks, burst pipes, sewage issues
- Electrical hazards, power outages
- AC completely broken in summer
- Structural damage or safety hazards

**MEDIUM Priority** (Usually 400-1000 AED):
- AC not cooling well but working
- Minor plumbing issues (slow drains, dripping taps)
- Door/window issues, appliance repairs

**LOW Priority** (Usually <400 AED):
- Light bulbs, minor fixtures
- Small cosmetic issues, non-urgent general maintenance

## Cost Estimation (Important):
Be realistic and slightly conservative. Dubai typical costs:
- Plumber emergency: 800-2000 AED
- AC repair: 400-1500 AED
- Electrician: 500-1500 AED
- Handyman: 200-600 AED
- Parts can add 200-1000 AED

## Output Format (CRITICAL):
You must respond with a valid JSON object with these exact keys:
{
  "issue_type": "Plumbing | AC | Electrical | General Maintenance | Other",
  "priority": "LOW | MEDIUM | HIGH",
  "estimated_cost": <number in AED>,
  "reasoning": "<brief explanation>",
  "needs_clarification": <true|false>,
  "clarification_question": "<question if needs_clarification is true, else null>"
}

## Behavior:
- Be professional, calm, and concise
- If the description is vague or missing critical details, set needs_clarification to true
- Never make up information - if uncertain, ask for clarification
- Always provide reasoning for your assessment

## Example Inputs and Expected Outputs:

Input: "Water leaking from the ceiling in bathroom"
Output: {"issue_type": "Plumbing", "priority": "HIGH", "estimated_cost": 1500, "reasoning": "Ceiling leak indicates pipe issue, requires immediate attention", "needs_clarification": false, "clarification_question": null}

Input: "AC not cooling"
Output: {"issue_type": "AC", "priority": "MEDIUM", "estimated_cost": 600, "reasoning": "AC cooling issue, likely gas refill or filter", "needs_clarification": false, "clarification_question": null}

Input: "Something is broken"
Output: {"issue_type": "General Maintenance", "priority": "LOW", "estimated_cost": 300, "reasoning": "Vague description", "needs_clarification": true, "clarification_question": "Could you please describe what is broken and share a photo if possible?"}`

const fallbackClarificationQuestion = "Could you please provide more details about the issue?"

// contentGenerator is the slice of GeminiService the classifier needs.
// Tests substitute a fake.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiClassifier is the AI-backed classifier strategy
type GeminiClassifier struct {
	gen contentGenerator
}

// NewGeminiClassifier builds the AI classifier. A missing API key is a
// configuration error caught here, before any request is made.
func NewGeminiClassifier(cfg config.AIConfig) (*GeminiClassifier, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &GeminiClassifier{gen: NewGeminiService(cfg)}, nil
}

// Classify sends the tenant's text to the model and parses the reply.
// Transport failures propagate to the caller. A reply that cannot be
// parsed as the expected JSON is recovered locally with a fixed fallback
// classification that asks the tenant for more details.
func (c *GeminiClassifier) Classify(ctx context.Context, text string) (models.RawClassification, error) {
	prompt := systemPrompt + "\n\nTenant Message: " + text + "\n\nProvide your analysis as JSON:"

	reply, err := c.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return models.RawClassification{}, err
	}

	result, err := parseClassification(reply)
	if err != nil {
		log.Printf("Failed to parse Gemini response as JSON: %v", err)
		log.Printf("Raw response: %s", reply)
		return models.RawClassification{
			IssueType:             models.IssueGeneralMaintenance,
			Priority:              models.PriorityMedium,
			EstimatedCost:         500,
			Reasoning:             "AI response parsing failed, using default classification",
			NeedsClarification:    true,
			ClarificationQuestion: fallbackClarificationQuestion,
		}, nil
	}

	log.Printf("Gemini analysis: %+v", result)
	return result, nil
}

// parseClassification cleans and parses the model reply. Missing fields
// in an otherwise valid object fall back to safe defaults.
func parseClassification(reply string) (models.RawClassification, error) {
	cleaned := stripCodeFence(reply)

	// Pointer fields distinguish "absent" from zero values
	var parsed struct {
		IssueType             *string  `json:"issue_type"`
		Priority              *string  `json:"priority"`
		EstimatedCost         *float64 `json:"estimated_cost"`
		Reasoning             string   `json:"reasoning"`
		NeedsClarification    *bool    `json:"needs_clarification"`
		ClarificationQuestion *string  `json:"clarification_question"`
	}

	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return models.RawClassification{}, err
	}

	result := models.RawClassification{
		IssueType:     models.IssueGeneralMaintenance,
		Priority:      models.PriorityMedium,
		EstimatedCost: 500,
		Reasoning:     parsed.Reasoning,
	}

	if parsed.IssueType != nil && *parsed.IssueType != "" {
		result.IssueType = *parsed.IssueType
	}
	if parsed.Priority != nil {
		result.Priority = normalizePriority(*parsed.Priority)
	}
	if parsed.EstimatedCost != nil && *parsed.EstimatedCost >= 0 {
		result.EstimatedCost = *parsed.EstimatedCost
	}
	if parsed.NeedsClarification != nil {
		result.NeedsClarification = *parsed.NeedsClarification
	}

	// The clarification question travels only with a clarification request
	if result.NeedsClarification {
		if parsed.ClarificationQuestion != nil && *parsed.ClarificationQuestion != "" {
			result.ClarificationQuestion = *parsed.ClarificationQuestion
		} else {
			result.ClarificationQuestion = fallbackClarificationQuestion
		}
	}

	return result, nil
}

func normalizePriority(p string) models.IssuePriority {
	switch models.IssuePriority(strings.ToUpper(strings.TrimSpace(p))) {
	case models.PriorityLow:
		return models.PriorityLow
	case models.PriorityHigh:
		return models.PriorityHigh
	default:
		return models.PriorityMedium
	}
}

// stripCodeFence removes markdown code fences the model sometimes wraps
// around its JSON reply.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}

	return strings.TrimSpace(s)
}
