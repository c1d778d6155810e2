// internal/models/submission.go
package models

// IntakeSubmission is the durable record of one sales-intake submission.
// Immutable once written; Status is reserved for downstream review tooling.
type IntakeSubmission struct {
	SubmissionID    string `json:"submissionId" dynamodbav:"submissionId"`
	SubmittedAt     string `json:"submittedAt" dynamodbav:"submittedAt"`
	FirstName       string `json:"firstName" dynamodbav:"firstName"`
	LastName        string `json:"lastName" dynamodbav:"lastName"`
	Email           string `json:"email" dynamodbav:"email"`
	Company         string `json:"company" dynamodbav:"company"`
	Title           string `json:"title" dynamodbav:"title"`
	Engagement      string `json:"engagement" dynamodbav:"engagement"`
	EngagementLabel string `json:"engagementLabel" dynamodbav:"engagementLabel"`
	CompanySize     string `json:"companySize" dynamodbav:"companySize"`
	Industry        string `json:"industry" dynamodbav:"industry"`
	Message         string `json:"message" dynamodbav:"message"`
	Source          string `json:"source" dynamodbav:"source"`
	Status          string `json:"status" dynamodbav:"status"`
}

// StatusNew is the initial lifecycle tag of every submission.
const StatusNew = "new"

// DefaultSource is recorded when the caller omits the source field.
const DefaultSource = "portal"

// EngagementTier is one fixed service package in the catalog.
type EngagementTier struct {
	Label    string `json:"label"`
	Duration string `json:"duration"`
	Range    string `json:"range"`
}

// EngagementTiers is the static tier catalog. Process-wide, read-only,
// never mutated at runtime; labels are denormalized into submissions at
// write time and do not update retroactively.
var EngagementTiers = map[string]EngagementTier{
	"diagnostic":     {Label: "Diagnostic Assessment", Duration: "21 days", Range: "$85K-$110K"},
	"deployment":     {Label: "Governance Deployment", Duration: "90 days", Range: "$125K-$175K"},
	"transformation": {Label: "Enterprise Transformation", Duration: "180 days", Range: "$250K-$500K"},
	"advisory":       {Label: "Ongoing Advisory", Duration: "Monthly", Range: "$25K-$100K/mo"},
}

// SubmitRequest is the POST /intake body.
type SubmitRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	Engagement  string `json:"engagement"`
	CompanySize string `json:"companySize"`
	Industry    string `json:"industry"`
	Message     string `json:"message"`
	Source      string `json:"source"`
}

// SubmitResponse is the 201 body: the id, a fixed acknowledgment, and the
// resolved tier so the caller can render a quote without a second lookup.
type SubmitResponse struct {
	Success      bool           `json:"success"`
	SubmissionID string         `json:"submissionId"`
	Message      string         `json:"message"`
	Engagement   EngagementTier `json:"engagement"`
}

// ListResponse is the GET /submissions body.
type ListResponse struct {
	Submissions []IntakeSubmission `json:"submissions"`
	Count       int                `json:"count"`
}
