// Package policy evaluates an optional Rego policy before a PassTicket is
// requested. The policy decides whether a user may obtain a ticket for an
// application; RACF still makes the final call.
package policy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/redhat-et/zos-passticket/pkg/logger"
)

// Query is the rule every policy must define.
const Query = "data.passticket.authorization.decision"

// Input is the document the policy sees as `input`.
type Input struct {
	UserID        string `json:"user_id"`
	ApplicationID string `json:"application_id"`
}

// Decision is the policy result.
type Decision struct {
	Allow  bool   `json:"allow"`
	Reason string `json:"reason"`
}

// Gate is a prepared policy query.
type Gate struct {
	query rego.PreparedEvalQuery
	log   *logger.Logger
}

// Load reads and prepares the policy at path.
func Load(ctx context.Context, path string, log *logger.Logger) (*Gate, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy %s: %w", path, err)
	}
	log.Info("Loading policy", "file", path)
	return New(ctx, filepath.Base(path), string(src), log)
}

// New prepares a policy from source.
func New(ctx context.Context, name, source string, log *logger.Logger) (*Gate, error) {
	query, err := rego.New(
		rego.Query(Query),
		rego.Module(name, source),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare policy %s: %w", name, err)
	}
	return &Gate{query: query, log: log}, nil
}

// Evaluate runs the policy for in. A policy that yields no decision, or a
// malformed one, denies.
func (g *Gate) Evaluate(ctx context.Context, in Input) (*Decision, error) {
	results, err := g.query.Eval(ctx, rego.EvalInput(map[string]any{
		"user_id":        in.UserID,
		"application_id": in.ApplicationID,
	}))
	if err != nil {
		return nil, fmt.Errorf("evaluation error: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return &Decision{Reason: "No policy decision available"}, nil
	}

	resultMap, ok := results[0].Expressions[0].Value.(map[string]any)
	if !ok {
		return &Decision{Reason: "Invalid policy result format"}, nil
	}

	decision := &Decision{}
	if allow, ok := resultMap["allow"].(bool); ok {
		decision.Allow = allow
	}
	if reason, ok := resultMap["reason"].(string); ok {
		decision.Reason = reason
	}

	g.log.Debug("Policy evaluated",
		"user", in.UserID,
		"application", in.ApplicationID,
		"allow", decision.Allow,
		"reason", decision.Reason)
	return decision, nil
}
