//go:build zos && cgo

package racf

/*
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

#pragma linkage(IRRSGS64, OS)
uint32_t IRRSGS64(uint32_t *pnParms,
                  void *workArea,
                  uint32_t *palet1,
                  uint32_t *psafRc,
                  uint32_t *palet2,
                  uint32_t *pracfRc,
                  uint32_t *palet3,
                  uint32_t *pracfReason,
                  uint32_t *poptionWord,
                  uint16_t *pfnCode,
                  uint32_t *pfnParmCount,
                  void **fnParm);

typedef struct {
	uint32_t length;
	uint32_t reserved;
	uint8_t *address;
} ptkt_string;

// One generate call. Allocated zeroed per call and scrubbed before release.
typedef struct {
	uint32_t    n_parms;
	uint32_t    alet_saf;
	uint32_t    saf_rc;
	uint32_t    alet_racf;
	uint32_t    racf_rc;
	uint32_t    alet_reason;
	uint32_t    racf_reason;
	uint32_t    option_word;
	uint16_t    fn_code;
	uint32_t    fn_parm_count;
	uint32_t    sub_fn_code;
	ptkt_string ticket;
	ptkt_string user;
	ptkt_string appl;
	void       *fn_parm[4];
	uint8_t     ticket_data[8];
	uint8_t     user_data[8];
	uint8_t     appl_data[8];
	uint8_t     work_area[1024];
} ptkt_call;

static uint32_t ptkt_generate(ptkt_call *c) {
	c->ticket.address = c->ticket_data;
	c->user.address = c->user_data;
	c->appl.address = c->appl_data;

	// Order and count are part of the service contract.
	c->fn_parm[0] = &c->sub_fn_code;
	c->fn_parm[1] = &c->ticket;
	c->fn_parm[2] = &c->user;
	c->fn_parm[3] = &c->appl;

	return IRRSGS64(&c->n_parms,
	                c->work_area,
	                &c->alet_saf, &c->saf_rc,
	                &c->alet_racf, &c->racf_rc,
	                &c->alet_reason, &c->racf_reason,
	                &c->option_word,
	                &c->fn_code,
	                &c->fn_parm_count,
	                c->fn_parm);
}

static void ptkt_release(ptkt_call *c) {
	memset(c, 0, sizeof(ptkt_call));
	free(c);
}
*/
import "C"

import (
	"errors"
	"unsafe"
)

// NewInvoker returns an invoker that calls IRRSGS64 in the primary address
// space.
func NewInvoker() Invoker {
	return nativeInvoker{}
}

type nativeInvoker struct{}

// Invoke builds the C parameter list outside the Go heap, so the service
// never sees Go pointers, and copies the results back before releasing it.
func (nativeInvoker) Invoke(req *TicketRequest) (*RawResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := (*C.ptkt_call)(C.calloc(1, C.size_t(C.sizeof_ptkt_call)))
	if c == nil {
		return nil, errors.New("racf: cannot allocate service parameter list")
	}
	defer C.ptkt_release(c)

	c.n_parms = C.uint32_t(ParmCount)
	c.alet_saf = C.uint32_t(PrimaryAddressSpace)
	c.alet_racf = C.uint32_t(PrimaryAddressSpace)
	c.alet_reason = C.uint32_t(PrimaryAddressSpace)
	c.option_word = 0
	c.fn_code = C.uint16_t(FunctionPassTicket)
	c.fn_parm_count = C.uint32_t(FunctionParmCount)
	c.sub_fn_code = C.uint32_t(req.SubFunction)

	c.ticket.length = C.uint32_t(req.Ticket.Length)
	c.user.length = C.uint32_t(toEBCDIC(cBytes(unsafe.Pointer(&c.user_data)), req.User.Bytes()))
	c.appl.length = C.uint32_t(toEBCDIC(cBytes(unsafe.Pointer(&c.appl_data)), req.Application.Bytes()))

	rc := C.ptkt_generate(c)

	resp := &RawResponse{
		ReturnCode:     uint32(rc),
		SAFReturnCode:  uint32(c.saf_rc),
		RACFReturnCode: uint32(c.racf_rc),
		RACFReasonCode: uint32(c.racf_reason),
	}
	fromEBCDIC(resp.Ticket[:], cBytes(unsafe.Pointer(&c.ticket_data)))
	copy(req.Ticket.Data, resp.Ticket[:])
	return resp, nil
}

// cBytes views one of the fixed 8-byte fields of ptkt_call.
func cBytes(p unsafe.Pointer) []byte {
	return unsafe.Slice((*byte)(p), MaxIdentifierLength)
}
