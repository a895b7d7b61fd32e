package models

// IssuePriority is the urgency band assigned to a maintenance request
type IssuePriority string

const (
	PriorityLow    IssuePriority = "LOW"
	PriorityMedium IssuePriority = "MEDIUM"
	PriorityHigh   IssuePriority = "HIGH"
)

// RequestStatus is the outcome of the triage decision
type RequestStatus string

const (
	StatusAwaitingApproval RequestStatus = "awaiting_human_approval"
	StatusAutoAssigned     RequestStatus = "auto_assigned"
	StatusProcessingError  RequestStatus = "processing_error"
)

// Issue type labels produced by the classifiers. The AI path may return
// free text; anything it produces is normalized to a vendor category at
// decision time, so these are the canonical labels, not a closed enum.
const (
	IssuePlumbingLeak       = "Plumbing Leak"
	IssueACMaintenance      = "AC Maintenance"
	IssueElectrical         = "Electrical Issue"
	IssueGeneralMaintenance = "General Maintenance"
)

// VendorUnassigned is the sentinel used when no vendor in the directory
// matches the resolved category.
const VendorUnassigned = "Auto-assigned vendor"

// RawClassification is the output contract shared by both classifier
// strategies. Field names are part of the Gemini response schema and must
// not change.
type RawClassification struct {
	IssueType             string        `json:"issue_type" bson:"issue_type"`
	Priority              IssuePriority `json:"priority" bson:"priority"`
	EstimatedCost         float64       `json:"estimated_cost" bson:"estimated_cost"`
	Reasoning             string        `json:"reasoning,omitempty" bson:"reasoning,omitempty"`
	NeedsClarification    bool          `json:"needs_clarification" bson:"needs_clarification"`
	ClarificationQuestion string        `json:"clarification_question,omitempty" bson:"clarification_question,omitempty"`
}

// Decision is the final triage record: the classification plus the
// policy-derived status and vendor assignment
type Decision struct {
	RawClassification `bson:",inline"`

	Status RequestStatus `json:"status" bson:"status"`
	Vendor string        `json:"vendor,omitempty" bson:"vendor,omitempty"`
}

// AwaitingApproval reports whether the request is held for a human
func (d Decision) AwaitingApproval() bool {
	return d.Status == StatusAwaitingApproval
}

// Vendor is a single vendor directory entry
type Vendor struct {
	Category string `json:"category" bson:"category"`
	Name     string `json:"name" bson:"name"`
}
