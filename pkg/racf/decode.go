package racf

import "bytes"

// Ticket is a generated PassTicket.
type Ticket [TicketLength]byte

// String renders the ticket for display, stopping at the first NUL.
func (t Ticket) String() string {
	if i := bytes.IndexByte(t[:], 0); i >= 0 {
		return string(t[:i])
	}
	return string(t[:])
}

// ServiceOutcome is the decoded result of one generate call.
// Ticket is non-nil if and only if SAFReturnCode is zero.
type ServiceOutcome struct {
	ReturnCode     uint32
	SAFReturnCode  uint32
	RACFReturnCode uint32
	RACFReasonCode uint32
	Ticket         *Ticket
}

// Granted reports whether the authority issued a ticket.
func (o *ServiceOutcome) Granted() bool {
	return o.Ticket != nil
}

// Decode interprets a raw response. The SAF return code is the only success
// discriminant; the RACF return and reason codes are passed through
// unchecked. A refusal is an ordinary outcome, not an error.
func Decode(raw *RawResponse) *ServiceOutcome {
	out := &ServiceOutcome{
		ReturnCode:     raw.ReturnCode,
		SAFReturnCode:  raw.SAFReturnCode,
		RACFReturnCode: raw.RACFReturnCode,
		RACFReasonCode: raw.RACFReasonCode,
	}
	if raw.SAFReturnCode == 0 {
		t := Ticket(raw.Ticket)
		out.Ticket = &t
	}
	return out
}
