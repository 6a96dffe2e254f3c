package passticket

import (
	"context"
	"errors"
	"testing"

	"github.com/redhat-et/zos-passticket/pkg/racf"
)

func TestProviderCredential(t *testing.T) {
	authority := racf.NewMockAuthority(racf.MockResponse{Ticket: []byte("ABCDEFGH")})
	p := NewProvider(NewGenerator(authority), "")

	if p.ApplicationID() != DefaultApplicationID {
		t.Fatalf("Expected default application %s, got %s", DefaultApplicationID, p.ApplicationID())
	}

	ticket, err := p.Credential(context.Background(), "IBMUSER")
	if err != nil {
		t.Fatalf("Credential failed: %v", err)
	}
	if ticket != "ABCDEFGH" {
		t.Fatalf("Expected ABCDEFGH, got %q", ticket)
	}
	if got := string(authority.Requests()[0].Application.Bytes()); got != DefaultApplicationID {
		t.Fatalf("Expected request for %s, got %s", DefaultApplicationID, got)
	}
}

func TestProviderCredentialRefused(t *testing.T) {
	authority := racf.NewMockAuthority(racf.MockResponse{SAFReturnCode: 8, RACFReturnCode: 8, RACFReasonCode: 16})
	p := NewProvider(NewGenerator(authority), "CICSPROD")

	_, err := p.Credential(context.Background(), "IBMUSER")
	var refused *RefusedError
	if !errors.As(err, &refused) {
		t.Fatalf("Expected RefusedError, got %v", err)
	}
	if refused.SAFReturnCode != 8 || refused.RACFReturnCode != 8 || refused.RACFReasonCode != 16 {
		t.Fatalf("Expected codes 8/8/16, got %+v", refused)
	}
}

func TestProviderCredentialFreshEachCall(t *testing.T) {
	authority := racf.NewMockAuthority()
	p := NewProvider(NewGenerator(authority), "APPL")

	for i := 0; i < 3; i++ {
		if _, err := p.Credential(context.Background(), "IBMUSER"); err != nil {
			t.Fatalf("Credential failed: %v", err)
		}
	}
	if authority.Calls() != 3 {
		t.Fatalf("Expected one authority call per credential, got %d", authority.Calls())
	}
}
