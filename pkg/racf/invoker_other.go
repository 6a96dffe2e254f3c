//go:build !zos || !cgo

package racf

// NewInvoker returns the platform invoker. Without z/OS there is no security
// authority to call, so every invocation fails with ErrUnavailable.
func NewInvoker() Invoker {
	return unavailableInvoker{}
}

type unavailableInvoker struct{}

func (unavailableInvoker) Invoke(req *TicketRequest) (*RawResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return nil, ErrUnavailable
}
