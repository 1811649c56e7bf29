package waitlist

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/luxuryconcept/storefront-backend/pkg/db"
	"github.com/luxuryconcept/storefront-backend/pkg/db/models"
	pkgerrors "github.com/luxuryconcept/storefront-backend/pkg/errors"
	"github.com/luxuryconcept/storefront-backend/pkg/logger"
	"github.com/luxuryconcept/storefront-backend/pkg/metrics"
)

const emailConstraint = "waitlist_email_key"

// Service records waitlist signups.
type Service interface {
	Join(ctx context.Context, email string) error
}

type service struct {
	repo    *Repository
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
}

// NewService constructs a waitlist service. logg and m may be nil.
func NewService(repo *Repository, logg *logger.Logger, m *metrics.StoreMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("waitlist repository required")
	}
	return &service{repo: repo, logg: logg, metrics: m}, nil
}

// Join stores email once. Addresses are compared case-insensitively.
func (s *service) Join(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		s.metrics.IncWaitlist(metrics.ResultRejected)
		return pkgerrors.New(pkgerrors.CodeValidation, "Email is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		s.metrics.IncWaitlist(metrics.ResultRejected)
		return pkgerrors.New(pkgerrors.CodeValidation, "Email is invalid")
	}

	if err := s.repo.Create(ctx, &models.WaitlistEntry{Email: email}); err != nil {
		if db.IsUniqueViolation(err, emailConstraint) || db.IsUniqueViolation(err, "waitlist.email") {
			s.metrics.IncWaitlist(metrics.ResultConflict)
			return pkgerrors.New(pkgerrors.CodeConflict, "Email already exists")
		}
		s.metrics.IncWaitlist(metrics.ResultFailure)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to join waitlist")
	}

	s.metrics.IncWaitlist(metrics.ResultSuccess)
	if s.logg != nil {
		s.logg.Info(ctx, "waitlist.joined")
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
