package cases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound         = errors.New("case not found")
	ErrConflict         = errors.New("case id already exists")
	ErrNoteRequired     = errors.New("a note is required for this transition")
	ErrTransitionDenied = errors.New("transition not permitted")
	ErrUploadNotAllowed = errors.New("document type not permitted at this stage")
)

// noteRequired lists the transitions that must carry a free-text reason.
var noteRequired = map[Status]bool{
	StatusCaseRejected:  true,
	StatusVisaRejected:  true,
	StatusVisaTerminate: true,
}

// Service drives the case lifecycle: creation, transitions, document and
// sub-record mutations, with audit entries appended on every tracked change.
type Service struct {
	repo CaseRepository
	log  zerolog.Logger
}

func NewService(repo CaseRepository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateCase normalizes the input and persists it. A persistence conflict is
// retried exactly once with a fresh id; a second failure is logged and
// swallowed so case creation never surfaces a hard failure.
func (s *Service) CreateCase(ctx context.Context, c *Case, actor Actor) *Case {
	c = Normalize(c)
	appendActivity(c, actor, ActionCaseCreated, "case created by "+string(actor.Role))

	err := s.repo.Create(ctx, c)
	if errors.Is(err, ErrConflict) {
		c.ID = uuid.New().String()
		for i := range c.ActivityLog {
			c.ActivityLog[i].CaseID = c.ID
		}
		err = s.repo.Create(ctx, c)
	}
	if err != nil {
		s.log.Error().Err(err).Str("case_id", c.ID).Msg("case create failed; continuing")
	}
	return c
}

// GetCase loads one case.
func (s *Service) GetCase(ctx context.Context, id string) (*Case, error) {
	return s.repo.GetByID(ctx, id)
}

// LegalNextStatuses resolves the actor's legal moves for a case, feeding the
// document gate's verdict into the transition context.
func (s *Service) LegalNextStatuses(ctx context.Context, id string, actor Actor) ([]Status, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.legalFor(c, actor), nil
}

func (s *Service) legalFor(c *Case, actor Actor) []Status {
	return LegalNextStatuses(TransitionContext{
		Case:            c,
		Actor:           actor,
		MissingRequired: MissingRequired(actor.Role, c.Status, c.DocumentTypes()),
	})
}

// ApplyTransition moves the case to next on behalf of the actor. The status
// write and the audit appends are bundled in one conceptual operation, though
// the store may still perform them as separate writes.
func (s *Service) ApplyTransition(ctx context.Context, id string, actor Actor, next Status, note string) (*Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if noteRequired[next] && strings.TrimSpace(note) == "" {
		return nil, ErrNoteRequired
	}
	legal := s.legalFor(c, actor)
	allowed := false
	for _, st := range legal {
		if st == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s as %s", ErrTransitionDenied, c.Status, next, actor.Role)
	}

	prev := c.Status
	c.Status = next
	s.applyVisaSideEffects(c, next)
	appendHistory(c, next, actor, note)
	appendActivity(c, actor, ActionStatusChanged, fmt.Sprintf("%s -> %s", prev, next))
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("persist transition: %w", err)
	}
	return c, nil
}

// applyVisaSideEffects keeps the visa sub-record in step with visa-segment
// transitions. Approval fills the full record, generating a visa number when
// none exists.
func (s *Service) applyVisaSideEffects(c *Case, next Status) {
	now := time.Now().UTC()
	switch next {
	case StatusVisaProcessingDocs:
		if c.Visa.Status == VisaNotStarted {
			c.Visa.Status = VisaInProgress
		}
	case StatusVisaApproved:
		c.Visa.Status = VisaApproved
		if c.Visa.ApplicationDate == nil {
			c.Visa.ApplicationDate = &now
		}
		if c.Visa.VisaNumber == "" {
			c.Visa.VisaNumber = generateVisaNumber()
		}
		issue := now
		expiry := now.AddDate(0, 0, 365)
		c.Visa.IssueDate = &issue
		c.Visa.ExpiryDate = &expiry
	case StatusVisaRejected:
		c.Visa.Status = VisaRejected
	case StatusVisaReapply:
		c.Visa.Status = VisaReapplied
	case StatusVisaTerminate:
		c.Visa.Status = VisaTerminated
	}
}

func generateVisaNumber() string {
	return "VN-" + strings.ToUpper(uuid.New().String()[:8])
}

// DocumentPermissionsFor returns what the actor may and must upload at the
// case's current status, with the still-missing required types.
func (s *Service) DocumentPermissionsFor(ctx context.Context, id string, actor Actor) (DocumentPermissions, []DocumentType, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return DocumentPermissions{}, nil, err
	}
	perms := DocumentGate(actor.Role, c.Status)
	return perms, MissingRequired(actor.Role, c.Status, c.DocumentTypes()), nil
}

// AddDocument records document metadata on the case. The blob itself lives in
// the blob store; only the reference is kept here.
func (s *Service) AddDocument(ctx context.Context, id string, actor Actor, doc Document) (*Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !MayUpload(actor.Role, c.Status, doc.Type) {
		return nil, fmt.Errorf("%w: %s at %s", ErrUploadNotAllowed, doc.Type, c.Status)
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	doc.UploadedBy = actor.ID
	doc.UploadedAt = time.Now().UTC()
	c.Documents = append(c.Documents, doc)
	appendActivity(c, actor, ActionDocumentUploaded, fmt.Sprintf("%s (%s)", doc.Name, doc.Type))
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("persist document: %w", err)
	}
	return c, nil
}

// RemoveDocument drops a document's metadata. The activity log keeps the
// removal; the blob store is cleaned up by the caller.
func (s *Service) RemoveDocument(ctx context.Context, id string, actor Actor, docID string) (*Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	kept := c.Documents[:0]
	var removed *Document
	for i := range c.Documents {
		if c.Documents[i].ID == docID {
			d := c.Documents[i]
			removed = &d
			continue
		}
		kept = append(kept, c.Documents[i])
	}
	if removed == nil {
		return nil, fmt.Errorf("document %s: %w", docID, ErrNotFound)
	}
	c.Documents = kept
	appendActivity(c, actor, ActionDocumentRemoved, fmt.Sprintf("%s (%s)", removed.Name, removed.Type))
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("persist document removal: %w", err)
	}
	return c, nil
}

// AddPayment appends one payment event.
func (s *Service) AddPayment(ctx context.Context, id string, actor Actor, p Payment) (*Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.RecordedBy = actor.ID
	p.RecordedAt = time.Now().UTC()
	c.Payments = append(c.Payments, p)
	appendActivity(c, actor, ActionPaymentRecorded, fmt.Sprintf("%.2f %s (%s)", p.Amount, p.Currency, p.Purpose))
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("persist payment: %w", err)
	}
	return c, nil
}

// AddComment appends one free-text comment.
func (s *Service) AddComment(ctx context.Context, id string, actor Actor, body string) (*Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Comments = append(c.Comments, Comment{
		ID:        uuid.New().String(),
		AuthorID:  actor.ID,
		Author:    actor.Name,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	})
	appendActivity(c, actor, ActionCommentAdded, "")
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("persist comment: %w", err)
	}
	return c, nil
}

// SaveTreatmentPlan stores the receiving institution's plan.
func (s *Service) SaveTreatmentPlan(ctx context.Context, id string, actor Actor, plan TreatmentPlan) (*Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.PreparedBy = actor.ID
	plan.PreparedAt = time.Now().UTC()
	c.TreatmentPlan = &plan
	appendActivity(c, actor, ActionPlanSaved, plan.Summary)
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("persist treatment plan: %w", err)
	}
	return c, nil
}

// UpdateVisa overwrites the visa sub-record. The write is separate from any
// status write; an interruption can leave the two out of step (accepted
// behavior of the store model).
func (s *Service) UpdateVisa(ctx context.Context, id string, actor Actor, visa Visa) (*Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visa.Status == "" {
		visa.Status = c.Visa.Status
	}
	c.Visa = visa
	appendActivity(c, actor, ActionVisaUpdated, string(visa.Status))
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("persist visa: %w", err)
	}
	return c, nil
}

// AssignHospital binds the case to a receiving hospital. Nothing clears a
// university assignment here; mutual exclusivity is a downstream convention.
func (s *Service) AssignHospital(ctx context.Context, id string, actor Actor, hospitalID string) (*Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.AssignedHospital = hospitalID
	appendActivity(c, actor, ActionCaseAssigned, "hospital "+hospitalID)
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("persist assignment: %w", err)
	}
	return c, nil
}

// AssignUniversity binds the case to a receiving university.
func (s *Service) AssignUniversity(ctx context.Context, id string, actor Actor, universityID string) (*Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.AssignedUniversity = universityID
	appendActivity(c, actor, ActionCaseAssigned, "university "+universityID)
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("persist assignment: %w", err)
	}
	return c, nil
}

// ListByClient and friends expose the store's secondary indexes.
func (s *Service) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*Case, int, error) {
	return s.repo.ListByClient(ctx, clientID, limit, offset)
}

func (s *Service) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]*Case, int, error) {
	return s.repo.ListByAgent(ctx, agentID, limit, offset)
}

func (s *Service) ListByHospital(ctx context.Context, hospitalID string, limit, offset int) ([]*Case, int, error) {
	return s.repo.ListByHospital(ctx, hospitalID, limit, offset)
}

func (s *Service) ListByUniversity(ctx context.Context, universityID string, limit, offset int) ([]*Case, int, error) {
	return s.repo.ListByUniversity(ctx, universityID, limit, offset)
}

func (s *Service) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Case, int, error) {
	return s.repo.ListByStatus(ctx, status, limit, offset)
}
