package passticket

import (
	"context"
	"fmt"
)

// DefaultApplicationID is the application PassTickets are generated for when
// a Provider is created without one.
const DefaultApplicationID = "ZWECHATP"

// RefusedError reports a request the security authority answered without a
// ticket.
type RefusedError struct {
	UserID         string
	SAFReturnCode  uint32
	RACFReturnCode uint32
	RACFReasonCode uint32
}

func (e *RefusedError) Error() string {
	return fmt.Sprintf("PassTicket refused for user %q: safRc=%d racfRc=%d racfReason=%d",
		e.UserID, e.SAFReturnCode, e.RACFReturnCode, e.RACFReasonCode)
}

// Provider hands out PassTickets for one application, for callers that use
// them as per-user credentials to downstream services.
type Provider struct {
	gen           *Generator
	applicationID string
}

// NewProvider creates a provider for applicationID.
func NewProvider(gen *Generator, applicationID string) *Provider {
	if applicationID == "" {
		applicationID = DefaultApplicationID
	}
	return &Provider{gen: gen, applicationID: applicationID}
}

// ApplicationID returns the application tickets are generated for.
func (p *Provider) ApplicationID() string {
	return p.applicationID
}

// Credential returns a fresh PassTicket for userID. Every call asks the
// security authority again; tickets are single use.
func (p *Provider) Credential(ctx context.Context, userID string) (string, error) {
	outcome, err := p.gen.Generate(ctx, userID, p.applicationID)
	if err != nil {
		return "", err
	}
	if !outcome.Granted() {
		return "", &RefusedError{
			UserID:         userID,
			SAFReturnCode:  outcome.SAFReturnCode,
			RACFReturnCode: outcome.RACFReturnCode,
			RACFReasonCode: outcome.RACFReasonCode,
		}
	}
	return outcome.Ticket.String(), nil
}
