package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/redhat-et/zos-passticket"

// Span attribute keys for PassTicket generation.
var (
	AttrUserID        = attribute.Key("passticket.user.id")
	AttrApplicationID = attribute.Key("passticket.application.id")
	AttrTruncated     = attribute.Key("passticket.identifier.truncated")
	AttrReturnCode    = attribute.Key("passticket.call.return_code")
	AttrSAFRc         = attribute.Key("passticket.saf.rc")
	AttrRACFRc        = attribute.Key("passticket.racf.rc")
	AttrRACFReason    = attribute.Key("passticket.racf.reason")
	AttrGranted       = attribute.Key("passticket.granted")
	AttrDecision      = attribute.Key("passticket.policy.decision")
	AttrReason        = attribute.Key("passticket.policy.reason")
)

// Tracer returns the project-wide OTel tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartSpan creates a new span with the given name and optional attributes.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := Tracer().Start(ctx, name)
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	return ctx, span
}

// SetSpanError records an error on the span and sets its status to Error.
func SetSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanOK sets the span status to OK.
func SetSpanOK(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}
