package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-chatbot-backend/models"
)

func newTestGeminiService(baseURL string) *GeminiService {
	return &GeminiService{
		apiKey:     "test-key",
		baseURL:    baseURL,
		model:      "gemini-1.5-flash",
		maxTokens:  1000,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func geminiEnvelope(text string) string {
	return fmt.Sprintf(`{"candidates": [{"content": {"parts": [{"text": %q}]}}]}`, text)
}

func TestGeminiService_GenerateContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, geminiEnvelope("hello from the model"))
	}))
	defer srv.Close()

	s := newTestGeminiService(srv.URL)

	text, err := s.GenerateContent(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "hello from the model", text)
}

func TestGeminiService_HTTPErrorIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := newTestGeminiService(srv.URL)

	_, err := s.GenerateContent(context.Background(), "prompt")
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "429")
}

func TestGeminiService_EmptyCandidatesIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"candidates": []}`)
	}))
	defer srv.Close()

	s := newTestGeminiService(srv.URL)

	_, err := s.GenerateContent(context.Background(), "prompt")
	var te *TransportError
	require.ErrorAs(t, err, &te)
}

func TestGeminiService_UnreachableHost(t *testing.T) {
	// RFC 5737 TEST-NET, should fail to connect
	s := newTestGeminiService("http://192.0.2.1:1")
	s.httpClient.Timeout = 500 * time.Millisecond

	_, err := s.GenerateContent(context.Background(), "prompt")
	var te *TransportError
	require.ErrorAs(t, err, &te)
}

func TestGeminiClassifier_AgainstFakeUpstream(t *testing.T) {
	reply := "```json\n{\"issue_type\": \"Plumbing\", \"priority\": \"HIGH\", \"estimated_cost\": 1500, \"reasoning\": \"pipe burst\", \"needs_clarification\": false, \"clarification_question\": null}\n```"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, geminiEnvelope(reply))
	}))
	defer srv.Close()

	gc := &GeminiClassifier{gen: newTestGeminiService(srv.URL)}

	result, err := gc.Classify(context.Background(), "Water leaking from the ceiling")
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", result.IssueType)
	assert.Equal(t, models.PriorityHigh, result.Priority)
	assert.Equal(t, 1500.0, result.EstimatedCost)
}
