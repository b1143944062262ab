package validation

import (
	"context"
	"regexp"

	"github.com/uzineck/sep-backend/internal/core/domain"
	"github.com/uzineck/sep-backend/internal/core/ports"
)

// Only gmail addresses are accepted. A product constraint, not a general
// email validator.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@gmail\.com$`)

// EmailPatternRule enforces the fixed-domain address format.
type EmailPatternRule struct{}

func (EmailPatternRule) Validate(_ context.Context, email string, _ *string) error {
	if !emailPattern.MatchString(email) {
		return domain.ErrEmailPattern
	}
	return nil
}

// SimilarOldAndNewEmailRule rejects an unchanged address. No-ops when the
// old email was not supplied.
type SimilarOldAndNewEmailRule struct{}

func (SimilarOldAndNewEmailRule) Validate(_ context.Context, email string, oldEmail *string) error {
	if oldEmail != nil && email == *oldEmail {
		return domain.ErrEmailsSimilar
	}
	return nil
}

// ExistenceChecker is the slice of the client service the uniqueness rule
// needs.
type ExistenceChecker interface {
	CheckClientExists(ctx context.Context, email string) (bool, error)
}

// EmailAlreadyInUseRule consults the persistence boundary and rejects an
// address that already belongs to an account.
type EmailAlreadyInUseRule struct {
	clients ExistenceChecker
}

func NewEmailAlreadyInUseRule(clients ExistenceChecker) *EmailAlreadyInUseRule {
	return &EmailAlreadyInUseRule{clients: clients}
}

func (r *EmailAlreadyInUseRule) Validate(ctx context.Context, email string, _ *string) error {
	exists, err := r.clients.CheckClientExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrClientExists
	}
	return nil
}

// ComposedEmailValidator runs its rules in declared order and stops at the
// first violation.
type ComposedEmailValidator struct {
	rules []ports.EmailValidator
}

func NewComposedEmailValidator(rules ...ports.EmailValidator) *ComposedEmailValidator {
	return &ComposedEmailValidator{rules: rules}
}

func (v *ComposedEmailValidator) Validate(ctx context.Context, email string, oldEmail *string) error {
	for _, rule := range v.rules {
		if err := rule.Validate(ctx, email, oldEmail); err != nil {
			return err
		}
	}
	return nil
}
