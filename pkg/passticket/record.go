package passticket

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/redhat-et/zos-passticket/pkg/racf"
)

// Record is the JSON document genptkt writes to stdout. PassTicket is absent,
// not null, when the security authority refused the request.
type Record struct {
	SAFReturnCode  uint32  `json:"safRc"`
	RACFReturnCode uint32  `json:"racfRc"`
	RACFReasonCode uint32  `json:"racfReason"`
	PassTicket     *string `json:"passticket,omitempty"`
}

// NewRecord renders an outcome. The call return code is not part of the
// record; it becomes the process exit status.
func NewRecord(outcome *racf.ServiceOutcome) Record {
	rec := Record{
		SAFReturnCode:  outcome.SAFReturnCode,
		RACFReturnCode: outcome.RACFReturnCode,
		RACFReasonCode: outcome.RACFReasonCode,
	}
	if outcome.Ticket != nil {
		ticket := outcome.Ticket.String()
		rec.PassTicket = &ticket
	}
	return rec
}

// WriteRecord writes the record for outcome to w in one piece.
func WriteRecord(w io.Writer, outcome *racf.ServiceOutcome) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(NewRecord(outcome)); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// ParseRecord reads a record produced by genptkt.
func ParseRecord(r io.Reader) (*Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to parse PassTicket record: %w", err)
	}
	return &rec, nil
}

// Ticket returns the PassTicket, if the record carries one.
func (r *Record) Ticket() (string, bool) {
	if r.PassTicket == nil {
		return "", false
	}
	return *r.PassTicket, true
}
