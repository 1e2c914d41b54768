package cases

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies which party is acting on a case.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAgent    Role = "agent"
	RoleHospital Role = "hospital"
	RoleFinance  Role = "finance"
	RoleClient   Role = "client"
)

// AgentType splits the agent pool between the two case tracks.
type AgentType string

const (
	AgentTypeHospital   AgentType = "hospital"
	AgentTypeUniversity AgentType = "university"
)

// Priority orders cases for work queues.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var validPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// DocumentType classifies an uploaded case document.
type DocumentType string

const (
	DocPassportCopy       DocumentType = "passport_copy"
	DocMedicalReports     DocumentType = "medical_reports"
	DocAcademicRecords    DocumentType = "academic_records"
	DocTreatmentPlan      DocumentType = "treatment_plan"
	DocAdmissionLetter    DocumentType = "admission_letter"
	DocTravelItinerary    DocumentType = "travel_itinerary"
	DocVisaApplication    DocumentType = "visa_application_form"
	DocFinancialGuarantee DocumentType = "financial_guarantee"
	DocVisaPaymentReceipt DocumentType = "visa_payment_receipt"
	DocVisaCopy           DocumentType = "visa_copy"
	DocCreditPaymentProof DocumentType = "credit_payment_proof"
	DocInvoice            DocumentType = "invoice"
	DocFlightTicket       DocumentType = "flight_ticket"
	DocFinalReport        DocumentType = "final_report"
	DocDischargeSummary   DocumentType = "discharge_summary"
)

// VisaStatus tracks the visa sub-record lifecycle.
type VisaStatus string

const (
	VisaNotStarted VisaStatus = "not_started"
	VisaInProgress VisaStatus = "in_progress"
	VisaApproved   VisaStatus = "approved"
	VisaRejected   VisaStatus = "rejected"
	VisaReapplied  VisaStatus = "reapplied"
	VisaTerminated VisaStatus = "terminated"
)

// StatusHistoryEntry is one immutable step of the case's status trail.
type StatusHistoryEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// Document holds metadata for an uploaded file. Content lives in the blob
// store; the case only keeps a reference.
type Document struct {
	ID            string       `json:"id"`
	Type          DocumentType `json:"type"`
	Name          string       `json:"name"`
	UploadedBy    string       `json:"uploaded_by"`
	UploadedAt    time.Time    `json:"uploaded_at"`
	Size          int64        `json:"size"`
	MimeType      string       `json:"mime_type"`
	BlobRef       string       `json:"blob_ref"`
	ExtractedText string       `json:"extracted_text,omitempty"`
	Verification  string       `json:"verification_status,omitempty"`
}

// ClientInfo carries the case subject's demographics. After normalization all
// required fields are non-empty (placeholder sentinels when unknown).
type ClientInfo struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
	Passport    string `json:"passport"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Condition   string `json:"condition"`
}

// AttenderInfo describes an accompanying person, when one travels.
type AttenderInfo struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Passport     string `json:"passport"`
	Phone        string `json:"phone"`
}

// TreatmentPlan is the receiving institution's plan for the case.
type TreatmentPlan struct {
	Summary       string    `json:"summary"`
	EstimatedCost float64   `json:"estimated_cost"`
	Currency      string    `json:"currency"`
	DurationDays  int       `json:"duration_days"`
	PreparedBy    string    `json:"prepared_by"`
	PreparedAt    time.Time `json:"prepared_at"`
}

// Visa is the visa sub-record attached to every case.
type Visa struct {
	Status          VisaStatus `json:"status"`
	ApplicationDate *time.Time `json:"application_date,omitempty"`
	VisaNumber      string     `json:"visa_number,omitempty"`
	IssueDate       *time.Time `json:"issue_date,omitempty"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// Payment records one payment event against the case.
type Payment struct {
	ID         string    `json:"id"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Purpose    string    `json:"purpose"`
	Reference  string    `json:"reference,omitempty"`
	RecordedBy string    `json:"recorded_by"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Comment is a free-text remark on the case.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityEntry is one immutable record of a tracked mutation, finer grained
// than the status history.
type ActivityEntry struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"case_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	UserRole  Role      `json:"user_role"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Activity log action values.
const (
	ActionCaseCreated      = "case_created"
	ActionStatusChanged    = "status_changed"
	ActionDocumentUploaded = "document_uploaded"
	ActionDocumentRemoved  = "document_removed"
	ActionPaymentRecorded  = "payment_recorded"
	ActionCommentAdded     = "comment_added"
	ActionPlanSaved        = "treatment_plan_saved"
	ActionVisaUpdated      = "visa_updated"
	ActionCaseAssigned     = "case_assigned"
)

// Case is one patient or student journey through the approval pipeline.
type Case struct {
	ID                 string               `json:"id"`
	ClientID           string               `json:"client_id"`
	AgentID            string               `json:"agent_id"`
	Status             Status               `json:"status"`
	Priority           Priority             `json:"priority"`
	ClientInfo         ClientInfo           `json:"client_info"`
	AttenderInfo       *AttenderInfo        `json:"attender_info,omitempty"`
	TreatmentPlan      *TreatmentPlan       `json:"treatment_plan,omitempty"`
	Visa               Visa                 `json:"visa"`
	AssignedHospital   string               `json:"assigned_hospital,omitempty"`
	AssignedUniversity string               `json:"assigned_university,omitempty"`
	StatusHistory      []StatusHistoryEntry `json:"status_history"`
	Documents          []Document           `json:"documents"`
	Payments           []Payment            `json:"payments"`
	Comments           []Comment            `json:"comments"`
	ActivityLog        []ActivityEntry      `json:"activity_log"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// UniversityTrack reports whether the case runs through a university rather
// than a hospital. Assignment wins over agent typing; an unassigned case is
// hospital-track by default.
func (c *Case) UniversityTrack() bool {
	return c.AssignedUniversity != "" && c.AssignedHospital == ""
}

// DocumentTypes returns the set of document types already uploaded.
func (c *Case) DocumentTypes() map[DocumentType]bool {
	out := make(map[DocumentType]bool, len(c.Documents))
	for _, d := range c.Documents {
		out[d.Type] = true
	}
	return out
}

// Actor is the authenticated user a request acts as. Directory lookups
// resolve the hospital/university bindings and agent type.
type Actor struct {
	ID            string
	Name          string
	Role          Role
	AgentType     AgentType
	HospitalIDs   []string
	UniversityIDs []string
}

// BoundToHospital reports whether the actor is bound to hospital id.
func (a Actor) BoundToHospital(id string) bool {
	for _, h := range a.HospitalIDs {
		if h == id {
			return true
		}
	}
	return false
}

// BoundToUniversity reports whether the actor is bound to university id.
func (a Actor) BoundToUniversity(id string) bool {
	for _, u := range a.UniversityIDs {
		if u == id {
			return true
		}
	}
	return false
}

// NewID returns a fresh case-scoped identifier.
func NewID() string { return uuid.New().String() }
