package racf

import "errors"

// Fixed values of the R_GenSec parameter list for PassTicket generation.
const (
	ParmCount           uint32 = 12
	FunctionPassTicket  uint16 = 3
	FunctionParmCount   uint32 = 4
	PrimaryAddressSpace uint32 = 0
	WorkAreaSize               = 1024
)

// ErrUnavailable is returned by invokers that cannot reach a security
// authority, such as the one NewInvoker returns off z/OS.
var ErrUnavailable = errors.New("racf: PassTicket services are not available on this platform")

// RawResponse holds the raw outputs of one service call.
type RawResponse struct {
	// ReturnCode is the return code of the call itself.
	ReturnCode uint32

	// SAFReturnCode, RACFReturnCode and RACFReasonCode are the status words
	// written by the security authority, from coarse to detailed.
	SAFReturnCode  uint32
	RACFReturnCode uint32
	RACFReasonCode uint32

	// Ticket is whatever the authority left in the ticket output buffer.
	// It is meaningful only when SAFReturnCode is zero.
	Ticket [TicketLength]byte
}

// Invoker calls the security authority with a generate request.
//
// An error means the call could not be made at all. Once the authority has
// been reached, every outcome, including a refusal, is a RawResponse.
type Invoker interface {
	Invoke(req *TicketRequest) (*RawResponse, error)
}
