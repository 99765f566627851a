package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/octobees/lead-capture/internal/entity"
)

const defaultCreateError = "Could not create lead"

// CreateLeadError describes a lead the CRM refused to create. Details holds
// the decoded CRM body, or nil when the CRM did not answer with JSON.
type CreateLeadError struct {
	Message string
	Details any
}

// Error implements the error interface.
func (e *CreateLeadError) Error() string {
	return e.Message
}

// CreatedLead is a lead accepted by the CRM.
type CreatedLead struct {
	ID  any
	URL string
}

// LeadInput carries the fields collected by the form.
type LeadInput struct {
	Email   string
	Phone   string
	Address string
}

// LeadsService creates leads in the CRM. It does not deduplicate; callers run a lookup first.
type LeadsService struct {
	crm       CRM
	adminURL  string
	firstName string
	lastName  string
}

// NewLeadsService constructs a LeadsService. adminURL is the lead view prefix used to build links.
func NewLeadsService(crm CRM, adminURL, firstName, lastName string) *LeadsService {
	return &LeadsService{
		crm:       crm,
		adminURL:  strings.TrimRight(adminURL, "/"),
		firstName: firstName,
		lastName:  lastName,
	}
}

// Create submits the lead and maps the CRM answer to a created lead or a *CreateLeadError.
func (s *LeadsService) Create(ctx context.Context, input LeadInput) (CreatedLead, error) {
	if input.Email == "" || input.Phone == "" || input.Address == "" {
		return CreatedLead{}, errors.New("email, phone and address are required")
	}

	body, err := s.crm.CreateLead(ctx, entity.NewLead{
		FirstName: s.firstName,
		LastName:  s.lastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
	})
	if err != nil {
		return CreatedLead{}, fmt.Errorf("%w: create lead: %w", ErrCRMUnavailable, err)
	}

	if fields, ok := body.(map[string]any); ok {
		record := entity.Record(fields)
		if record.HasID() {
			return CreatedLead{
				ID:  record.ID(),
				URL: s.adminURL + "/" + record.IDString(),
			}, nil
		}
	}

	return CreatedLead{}, &CreateLeadError{
		Message: crmMessage(body),
		Details: body,
	}
}

// crmMessage pulls a human readable message out of a CRM error body. The CRM
// answers validation failures with either an object or a list of objects.
func crmMessage(body any) string {
	switch v := body.(type) {
	case map[string]any:
		for _, key := range []string{"message", "error"} {
			if msg, ok := v[key].(string); ok && strings.TrimSpace(msg) != "" {
				return msg
			}
		}
	case []any:
		for _, item := range v {
			if msg := crmMessage(item); msg != defaultCreateError {
				return msg
			}
		}
	}
	return defaultCreateError
}
