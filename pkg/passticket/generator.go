// Package passticket runs the PassTicket generation pipeline: an optional
// policy check, then request building, the security authority call and
// result decoding.
package passticket

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/redhat-et/zos-passticket/pkg/logger"
	"github.com/redhat-et/zos-passticket/pkg/metrics"
	"github.com/redhat-et/zos-passticket/pkg/policy"
	"github.com/redhat-et/zos-passticket/pkg/racf"
	"github.com/redhat-et/zos-passticket/pkg/telemetry"
)

// ErrPolicy is returned when the pre-flight policy cannot be evaluated.
// The request is treated as denied.
var ErrPolicy = errors.New("policy evaluation failed")

// DeniedError is returned when the pre-flight policy refuses a request.
// The security authority is not called.
type DeniedError struct {
	UserID        string
	ApplicationID string
	Reason        string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("policy denied PassTicket for user %q application %q: %s", e.UserID, e.ApplicationID, e.Reason)
}

// Generator produces PassTickets through a security authority.
type Generator struct {
	invoker racf.Invoker
	gate    *policy.Gate
	log     *logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default discards.
func WithLogger(log *logger.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// WithPolicy requires every request to pass gate first.
func WithPolicy(gate *policy.Gate) Option {
	return func(g *Generator) { g.gate = gate }
}

// NewGenerator creates a generator calling invoker.
func NewGenerator(invoker racf.Invoker, opts ...Option) *Generator {
	g := &Generator{
		invoker: invoker,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate requests a PassTicket for userID and applicationID.
//
// A refusal by the security authority is a normal outcome with no ticket.
// An error means no call was made: the policy denied the request, or the
// authority could not be reached.
func (g *Generator) Generate(ctx context.Context, userID, applicationID string) (*racf.ServiceOutcome, error) {
	truncated := len(userID) > racf.MaxIdentifierLength || len(applicationID) > racf.MaxIdentifierLength
	ctx, span := telemetry.StartSpan(ctx, "passticket.generate",
		telemetry.AttrUserID.String(userID),
		telemetry.AttrApplicationID.String(applicationID),
		telemetry.AttrTruncated.Bool(truncated),
	)
	defer span.End()

	g.log.Section("GENERATE PASSTICKET")
	if truncated {
		g.log.Debug("Identifier longer than field width, truncating",
			"user", userID, "application", applicationID, "width", racf.MaxIdentifierLength)
	}

	if g.gate != nil {
		if err := g.checkPolicy(ctx, userID, applicationID); err != nil {
			telemetry.SetSpanError(span, err)
			return nil, err
		}
	}

	req := racf.BuildRequest([]byte(userID), []byte(applicationID))

	racfLog := g.log.For(logger.ComponentRACF)
	racfLog.Debug("Calling security authority",
		"user", string(req.User.Bytes()), "application", string(req.Application.Bytes()))

	start := time.Now()
	raw, err := g.invoker.Invoke(req)
	elapsed := time.Since(start)
	metrics.CallDuration.Observe(elapsed.Seconds())
	if err != nil {
		metrics.Generations.WithLabelValues(resultForError(err), applicationID).Inc()
		telemetry.SetSpanError(span, err)
		racfLog.Error("Security authority call failed", "error", err)
		return nil, fmt.Errorf("failed to call security authority: %w", err)
	}

	outcome := racf.Decode(raw)
	racfLog.Debug("Security authority returned",
		"returnCode", outcome.ReturnCode, "safRc", outcome.SAFReturnCode, "duration", elapsed)
	span.SetAttributes(
		telemetry.AttrReturnCode.Int64(int64(outcome.ReturnCode)),
		telemetry.AttrSAFRc.Int64(int64(outcome.SAFReturnCode)),
		telemetry.AttrRACFRc.Int64(int64(outcome.RACFReturnCode)),
		telemetry.AttrRACFReason.Int64(int64(outcome.RACFReasonCode)),
		telemetry.AttrGranted.Bool(outcome.Granted()),
	)
	metrics.AuthorityStatus.WithLabelValues(strconv.FormatUint(uint64(outcome.SAFReturnCode), 10)).Inc()

	codes := []any{
		"returnCode", outcome.ReturnCode,
		"safRc", outcome.SAFReturnCode,
		"racfRc", outcome.RACFReturnCode,
		"racfReason", outcome.RACFReasonCode,
	}
	if outcome.Granted() {
		metrics.Generations.WithLabelValues(metrics.ResultIssued, applicationID).Inc()
		g.log.Success("PassTicket generated", append([]any{"user", userID, "application", applicationID}, codes...)...)
	} else {
		metrics.Generations.WithLabelValues(metrics.ResultRefused, applicationID).Inc()
		g.log.Deny("PassTicket refused", append([]any{"user", userID, "application", applicationID}, codes...)...)
	}
	telemetry.SetSpanOK(span)
	return outcome, nil
}

func (g *Generator) checkPolicy(ctx context.Context, userID, applicationID string) error {
	span := trace.SpanFromContext(ctx)
	decision, err := g.gate.Evaluate(ctx, policy.Input{UserID: userID, ApplicationID: applicationID})
	if err != nil {
		span.SetAttributes(telemetry.AttrDecision.String("error"))
		metrics.PolicyDecisions.WithLabelValues("error").Inc()
		metrics.Generations.WithLabelValues(metrics.ResultError, applicationID).Inc()
		g.log.Error("Policy evaluation failed", "error", err)
		return fmt.Errorf("%w: %w", ErrPolicy, err)
	}
	span.SetAttributes(
		telemetry.AttrDecision.String(decisionLabel(decision.Allow)),
		telemetry.AttrReason.String(decision.Reason),
	)
	if !decision.Allow {
		metrics.PolicyDecisions.WithLabelValues(decisionLabel(false)).Inc()
		metrics.Generations.WithLabelValues(metrics.ResultDenied, applicationID).Inc()
		g.log.Deny("Policy denied request", "user", userID, "application", applicationID, "reason", decision.Reason)
		return &DeniedError{UserID: userID, ApplicationID: applicationID, Reason: decision.Reason}
	}
	metrics.PolicyDecisions.WithLabelValues(decisionLabel(true)).Inc()
	return nil
}

func decisionLabel(allow bool) string {
	if allow {
		return "allow"
	}
	return "deny"
}

func resultForError(err error) string {
	if errors.Is(err, racf.ErrUnavailable) {
		return metrics.ResultUnavailable
	}
	return metrics.ResultError
}
