// internal/intake/service.go
package intake

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"intake-gateway/internal/common/auth"
	"intake-gateway/internal/common/errors"
	"intake-gateway/internal/common/logger"
	"intake-gateway/internal/common/metrics"
	"intake-gateway/internal/models"
)

// ackMessage is the fixed acknowledgment returned on every accepted
// submission. Part of the API contract with the dashboard.
const ackMessage = "Thank you. A member of the CIAG team will be in touch within one business day."

// Intentionally loose: non-whitespace local part, "@", non-whitespace domain
// containing a dot. Rejects only obviously malformed addresses.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var requiredFields = []string{"firstName", "lastName", "email", "company", "engagement"}

// Service implements the intake submission flow: validate, persist, then
// best-effort notify. Persistence is the source of truth; notification is a
// side channel that may silently degrade.
type Service struct {
	store    Store
	notifier Notifier
	logger   logger.Logger
}

func NewService(store Store, notifier Notifier, log logger.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   log,
	}
}

// Submit validates the payload, persists a new submission, and fires the
// notification. Validation order is fixed: missing fields, then email shape,
// then engagement key. Nothing is written before validation completes.
func (s *Service) Submit(ctx context.Context, req *models.SubmitRequest) (*models.SubmitResponse, error) {
	if missing := missingFields(req); len(missing) > 0 {
		return nil, errors.NewValidationError("Missing: " + strings.Join(missing, ", "))
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, errors.NewValidationError("Invalid email")
	}
	tier, ok := models.EngagementTiers[req.Engagement]
	if !ok {
		return nil, errors.NewValidationError("Invalid engagement type")
	}

	source := req.Source
	if source == "" {
		source = models.DefaultSource
	}

	sub := models.IntakeSubmission{
		SubmissionID:    uuid.NewString(),
		SubmittedAt:     time.Now().UTC().Format(time.RFC3339),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Company:         req.Company,
		Title:           req.Title,
		Engagement:      req.Engagement,
		EngagementLabel: tier.Label,
		CompanySize:     req.CompanySize,
		Industry:        req.Industry,
		Message:         req.Message,
		Source:          source,
		Status:          models.StatusNew,
	}

	// The write must complete before any success response; a failed put is
	// fatal to the request with no partial success reported.
	if err := s.store.Put(ctx, sub); err != nil {
		s.logger.Error("submission persist failed", map[string]interface{}{
			"submissionId": sub.SubmissionID,
			"error":        err.Error(),
		})
		return nil, errors.NewPersistenceError(err)
	}
	metrics.SubmissionsPersisted.Inc()

	s.logger.Info("submission persisted", map[string]interface{}{
		"submissionId": sub.SubmissionID,
		"company":      sub.Company,
		"engagement":   sub.Engagement,
	})

	// Fire-and-isolate: the record is durable, so whatever happens in the
	// notifier stays in the notifier.
	s.notifier.Notify(ctx, sub, tier)

	return &models.SubmitResponse{
		Success:      true,
		SubmissionID: sub.SubmissionID,
		Message:      ackMessage,
		Engagement:   tier,
	}, nil
}

// List returns the bounded triage view. Only administrators may call it;
// the store is never touched on a rejected request.
func (s *Service) List(ctx context.Context, caller *auth.Principal) (*models.ListResponse, error) {
	if !caller.IsAdmin() {
		return nil, errors.NewAuthorizationError("Admin access required")
	}

	subs, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError(err)
	}
	return &models.ListResponse{Submissions: subs, Count: len(subs)}, nil
}

func missingFields(req *models.SubmitRequest) []string {
	values := map[string]string{
		"firstName":  req.FirstName,
		"lastName":   req.LastName,
		"email":      req.Email,
		"company":    req.Company,
		"engagement": req.Engagement,
	}

	var missing []string
	for _, f := range requiredFields {
		if values[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}
