// Package racf adapts the RACF R_GenSec callable service (IRRSGS64) for
// PassTicket generation.
//
// Everything that knows about the callable service's parameter list lives in
// this package: the string descriptors, the generate request, the invoker at
// the trust boundary, and the decoding of the three status words the
// security authority returns. Callers work with BuildRequest, an Invoker and
// Decode and never touch raw memory layout.
package racf

const (
	// MaxIdentifierLength is the width of the user and application fields.
	MaxIdentifierLength = 8

	// TicketLength is the size of a generated PassTicket.
	TicketLength = 8
)

// StringDescriptor is a length-prefixed view over caller-owned bytes, laid out
// as the callable service expects: a 32-bit length, a reserved 32-bit word
// and the data address.
type StringDescriptor struct {
	Length   uint32
	Reserved uint32
	Data     []byte
}

// NewStringDescriptor borrows at most MaxIdentifierLength bytes of b.
// Longer input is truncated silently; empty input yields a zero-length
// descriptor and is left for the security authority to reject.
func NewStringDescriptor(b []byte) StringDescriptor {
	n := min(len(b), MaxIdentifierLength)
	return StringDescriptor{
		Length: uint32(n),
		Data:   b[:n:n],
	}
}

// Bytes returns the described bytes.
func (d StringDescriptor) Bytes() []byte {
	return d.Data[:d.Length]
}
