package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"maintenance-chatbot-backend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultApprovalThreshold is the cost (AED) above which a request always
// waits for human approval.
const DefaultApprovalThreshold = 1000

// vendorCategories maps classifier issue types (lower-cased) to vendor
// directory categories. Electrical work is dispatched through the General
// pool. Anything unrecognized also resolves to General.
var vendorCategories = map[string]string{
	"plumbing":            "Plumbing",
	"plumbing leak":       "Plumbing",
	"ac":                  "AC",
	"ac maintenance":      "AC",
	"electrical":          "General",
	"electrical issue":    "General",
	"general":             "General",
	"general maintenance": "General",
}

// Decide applies the business rules to a classification and produces the
// final decision. Pure and total: vendor resolution falls back to a
// sentinel, never an error.
//
// The approval status is recomputed here from the estimated cost alone.
// The AI prompt asks the model for a status suggestion too, but it is
// deliberately ignored: a classifier must not be able to self-approve
// work above the threshold.
func Decide(raw models.RawClassification, directory *VendorDirectory, threshold float64) models.Decision {
	status := models.StatusAutoAssigned
	if raw.EstimatedCost > threshold {
		status = models.StatusAwaitingApproval
	}

	category, ok := vendorCategories[strings.ToLower(raw.IssueType)]
	if !ok {
		category = "General"
	}

	vendor, found := directory.FindByCategory(category)
	if !found {
		vendor = models.VendorUnassigned
	}

	return models.Decision{
		RawClassification: raw,
		Status:            status,
		Vendor:            vendor,
	}
}

// TriageService runs the intake pipeline: classify the complaint, apply
// the decision policy, persist the record, and format the reply. Each
// call is an independent unit of work; the service holds no per-request
// state.
type TriageService struct {
	classifier Classifier
	vendors    *VendorDirectory
	threshold  float64
	requests   *mongo.Collection // nil when persistence is disabled
}

func NewTriageService(classifier Classifier, vendors *VendorDirectory, threshold float64, db *mongo.Database) *TriageService {
	if threshold <= 0 {
		threshold = DefaultApprovalThreshold
	}

	s := &TriageService{
		classifier: classifier,
		vendors:    vendors,
		threshold:  threshold,
	}
	if db != nil {
		s.requests = db.Collection("maintenance_requests")
	}
	return s
}

// ProcessMessage handles one tenant message end to end. It always yields
// a decision: a classifier failure degrades to the processing_error
// decision rather than surfacing an error into the conversation.
func (s *TriageService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	log.Printf("Processing maintenance request (session=%s channel=%s)", req.SessionID, req.Channel)

	var decision models.Decision

	raw, err := s.classifier.Classify(ctx, req.Message)
	if err != nil {
		log.Printf("Classifier failed: %v", err)
		decision = processingErrorDecision()
	} else {
		decision = Decide(raw, s.vendors, s.threshold)
	}

	record := &models.MaintenanceRequest{
		RequestID:   uuid.NewString(),
		SessionID:   req.SessionID,
		UserID:      req.UserID,
		Channel:     req.Channel,
		Description: req.Message,
		Decision:    decision,
		CreatedAt:   time.Now(),
	}

	// Best effort: a persistence failure must never break the conversation
	if err := s.saveRequest(ctx, record); err != nil {
		log.Printf("Failed to save maintenance request %s: %v", record.RequestID, err)
	}

	return &models.ChatResponse{
		Response:  s.FormatDecision(decision),
		Decision:  &decision,
		RequestID: record.RequestID,
	}, nil
}

// processingErrorDecision is the pipeline's only user-visible failure
// path: fixed safe defaults with no classifier fields populated.
func processingErrorDecision() models.Decision {
	return models.Decision{
		RawClassification: models.RawClassification{
			IssueType:     models.IssueGeneralMaintenance,
			Priority:      models.PriorityMedium,
			EstimatedCost: 500,
		},
		Status: models.StatusProcessingError,
		Vendor: models.VendorUnassigned,
	}
}

// FormatDecision renders a decision as the Markdown reply shown to the
// tenant.
func (s *TriageService) FormatDecision(d models.Decision) string {
	var b strings.Builder

	b.WriteString("🛠 *Issue Received*\n\n")
	b.WriteString(fmt.Sprintf("*Type:* %s\n", d.IssueType))
	b.WriteString(fmt.Sprintf("*Priority:* %s\n", d.Priority))
	b.WriteString(fmt.Sprintf("*Estimated Cost:* AED %s\n\n", formatCost(d.EstimatedCost)))
	b.WriteString(fmt.Sprintf("*Status:* %s\n", s.statusText(d.Status)))

	if d.Status == models.StatusAutoAssigned && d.Vendor != "" {
		b.WriteString(fmt.Sprintf("*Vendor:* %s\n", d.Vendor))
	}

	// A clarification request does not block assignment; the question is
	// simply appended so the tenant can answer in the same conversation.
	if d.NeedsClarification && d.ClarificationQuestion != "" {
		b.WriteString(fmt.Sprintf("\n❓ %s\n", d.ClarificationQuestion))
	}

	return b.String()
}

func (s *TriageService) statusText(status models.RequestStatus) string {
	switch status {
	case models.StatusAwaitingApproval:
		return fmt.Sprintf("Waiting for human approval (cost > %s AED)", formatCost(s.threshold))
	case models.StatusAutoAssigned:
		return "Vendor auto-assigned"
	default:
		return "Processing error - please try again or contact support"
	}
}

func formatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'f', -1, 64)
}

func (s *TriageService) saveRequest(ctx context.Context, record *models.MaintenanceRequest) error {
	if s.requests == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.requests.InsertOne(ctx, record)
	return err
}

// GetRequestHistory returns recent requests for a session, newest first.
// With persistence disabled it returns an empty list.
func (s *TriageService) GetRequestHistory(ctx context.Context, sessionID string, limit int) ([]models.MaintenanceRequest, error) {
	if s.requests == nil {
		return []models.MaintenanceRequest{}, nil
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.requests.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("query request history: %w", err)
	}
	defer cursor.Close(ctx)

	requests := []models.MaintenanceRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("decode request history: %w", err)
	}

	return requests, nil
}
