package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/octobees/lead-capture/internal/entity"
)

// ErrCRMUnavailable marks failures talking to the CRM. A lookup that fails is
// never reported as "not found".
var ErrCRMUnavailable = errors.New("crm unavailable")

// CRM is the subset of the CRM client used by the services.
type CRM interface {
	FindCustomersByEmail(ctx context.Context, email string) ([]entity.Record, error)
	FindCustomersByPhone(ctx context.Context, phone string) ([]entity.Record, error)
	FindLeadsByEmail(ctx context.Context, email string) ([]entity.Record, error)
	FindLeadsByPhone(ctx context.Context, phone string) ([]entity.Record, error)
	CreateLead(ctx context.Context, lead entity.NewLead) (any, error)
}

// LookupResult is either Found or NotFound.
type LookupResult interface {
	isLookupResult()
}

// Found reports the collection and identifier of the first exact match.
type Found struct {
	Where entity.Collection
	ID    any
}

// NotFound reports that no collection holds an exact match.
type NotFound struct{}

func (Found) isLookupResult()    {}
func (NotFound) isLookupResult() {}

// matcher fetches candidates from one collection and re-checks them for an exact match.
type matcher struct {
	where  entity.Collection
	fetch  func(ctx context.Context, value string) ([]entity.Record, error)
	fields []string
	equal  func(candidate, value string) bool
}

// LookupService checks whether an email or phone already exists in the CRM.
type LookupService struct {
	byEmail []matcher
	byPhone []matcher
}

// NewLookupService wires the ordered matchers: customers first, then leads.
func NewLookupService(crm CRM) *LookupService {
	return &LookupService{
		byEmail: []matcher{
			{where: entity.CollectionCustomer, fetch: crm.FindCustomersByEmail, fields: []string{"main_email", "email"}, equal: emailsEqual},
			{where: entity.CollectionLead, fetch: crm.FindLeadsByEmail, fields: []string{"email"}, equal: emailsEqual},
		},
		byPhone: []matcher{
			{where: entity.CollectionCustomer, fetch: crm.FindCustomersByPhone, fields: []string{"phone"}, equal: phonesEqual},
			{where: entity.CollectionLead, fetch: crm.FindLeadsByPhone, fields: []string{"phone"}, equal: phonesEqual},
		},
	}
}

// LookupEmail searches for a case-insensitive exact email match.
func (s *LookupService) LookupEmail(ctx context.Context, email string) (LookupResult, error) {
	return s.lookup(ctx, s.byEmail, normalizeEmail(email))
}

// LookupPhone searches for a digit-for-digit phone match.
func (s *LookupService) LookupPhone(ctx context.Context, phone string) (LookupResult, error) {
	return s.lookup(ctx, s.byPhone, phone)
}

func (s *LookupService) lookup(ctx context.Context, matchers []matcher, value string) (LookupResult, error) {
	for _, m := range matchers {
		records, err := m.fetch(ctx, value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s lookup: %w", ErrCRMUnavailable, m.where, err)
		}
		if record, ok := m.first(records, value); ok {
			return Found{Where: m.where, ID: record.ID()}, nil
		}
	}
	return NotFound{}, nil
}

func (m matcher) first(records []entity.Record, value string) (entity.Record, bool) {
	for _, record := range records {
		for _, field := range m.fields {
			if m.equal(record.String(field), value) {
				return record, true
			}
		}
	}
	return nil, false
}
