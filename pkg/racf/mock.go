package racf

import (
	"crypto/rand"
	"sync"
)

// MockResponse is one canned answer of a MockAuthority.
type MockResponse struct {
	ReturnCode     uint32
	SAFReturnCode  uint32
	RACFReturnCode uint32
	RACFReasonCode uint32

	// Ticket is written into the request's ticket buffer. When empty and
	// SAFReturnCode is zero, a random ticket is generated.
	Ticket []byte
}

// MockAuthority simulates the security authority for local development and
// tests. Responses are consumed in order; the last one repeats.
type MockAuthority struct {
	mu        sync.Mutex
	responses []MockResponse
	requests  []*TicketRequest
}

// NewMockAuthority creates a simulated authority. With no responses it
// grants every request.
func NewMockAuthority(responses ...MockResponse) *MockAuthority {
	if len(responses) == 0 {
		responses = []MockResponse{{}}
	}
	return &MockAuthority{responses: responses}
}

// Invoke behaves like a call to the real service: it overwrites the request's
// ticket buffer and reports the canned status words.
func (m *MockAuthority) Invoke(req *TicketRequest) (*RawResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	r := m.responses[min(len(m.requests), len(m.responses)-1)]
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	clear(req.Ticket.Data)
	switch {
	case len(r.Ticket) > 0:
		copy(req.Ticket.Data, r.Ticket)
	case r.SAFReturnCode == 0:
		randomTicket(req.Ticket.Data)
	}

	resp := &RawResponse{
		ReturnCode:     r.ReturnCode,
		SAFReturnCode:  r.SAFReturnCode,
		RACFReturnCode: r.RACFReturnCode,
		RACFReasonCode: r.RACFReasonCode,
	}
	copy(resp.Ticket[:], req.Ticket.Data)
	return resp, nil
}

// Requests returns the requests seen so far.
func (m *MockAuthority) Requests() []*TicketRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*TicketRequest(nil), m.requests...)
}

// Calls returns the number of invocations.
func (m *MockAuthority) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

const ticketAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomTicket(dst []byte) {
	rand.Read(dst)
	for i, b := range dst {
		dst[i] = ticketAlphabet[int(b)%len(ticketAlphabet)]
	}
}
