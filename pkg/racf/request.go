package racf

import (
	"errors"
	"fmt"
)

// SubFunctionGenerate selects PassTicket generation within PassTicket services.
const SubFunctionGenerate uint32 = 1

// ErrMalformedRequest is returned by Validate when a request does not have
// the shape the callable service requires.
var ErrMalformedRequest = errors.New("racf: malformed ticket request")

// TicketRequest is the payload of one generate call. The four function
// parameters are passed to the service in field order: sub-function,
// ticket output, user, application.
type TicketRequest struct {
	SubFunction uint32
	Ticket      StringDescriptor
	User        StringDescriptor
	Application StringDescriptor
}

// BuildRequest assembles a generate request for userID and applicationID.
// Each call allocates its own zeroed ticket buffer; requests are never
// reused.
func BuildRequest(userID, applicationID []byte) *TicketRequest {
	return &TicketRequest{
		SubFunction: SubFunctionGenerate,
		Ticket: StringDescriptor{
			Length: TicketLength,
			Data:   make([]byte, TicketLength),
		},
		User:        NewStringDescriptor(userID),
		Application: NewStringDescriptor(applicationID),
	}
}

// Validate checks the request against the fixed call contract.
func (r *TicketRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil request", ErrMalformedRequest)
	}
	if r.SubFunction != SubFunctionGenerate {
		return fmt.Errorf("%w: unsupported sub-function %d", ErrMalformedRequest, r.SubFunction)
	}
	if r.Ticket.Length != TicketLength || len(r.Ticket.Data) != TicketLength {
		return fmt.Errorf("%w: ticket buffer must be %d bytes", ErrMalformedRequest, TicketLength)
	}
	if err := checkIdentifier("user", r.User); err != nil {
		return err
	}
	if err := checkIdentifier("application", r.Application); err != nil {
		return err
	}
	if r.Ticket.Reserved != 0 || r.User.Reserved != 0 || r.Application.Reserved != 0 {
		return fmt.Errorf("%w: reserved word set", ErrMalformedRequest)
	}
	return nil
}

func checkIdentifier(name string, d StringDescriptor) error {
	if d.Length > MaxIdentifierLength || int(d.Length) > len(d.Data) {
		return fmt.Errorf("%w: %s descriptor length %d", ErrMalformedRequest, name, d.Length)
	}
	return nil
}
