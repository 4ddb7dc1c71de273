// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify checks whether a single email address is likely to be
// deliverable. The check is a fixed sequence of stages:
//
//	Syntax -> DomainExists -> MXValid -> Mailbox -> Done
//
// Each stage either hands off to the next or ends the run with a result
// naming the stage. Network failures end the run as a failed stage; they
// are never returned as errors, so callers can move on to the next
// candidate.
package verify

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/lead-engine/pkg/types"
)

// MXResolver looks up the mail exchangers of a domain, most preferred first.
type MXResolver interface {
	LookupMX(ctx context.Context, domain string) ([]string, error)
}

// MailboxProber reports whether a mail exchanger will accept mail for email
// without any message being sent.
type MailboxProber interface {
	ProbeMailbox(ctx context.Context, email string, mxHosts []string) (bool, error)
}

// Verifier checks one address. *Pipeline implements it.
type Verifier interface {
	Verify(ctx context.Context, email string) types.VerificationResult
}

// State is a stage of the verification state machine.
type State int

const (
	StateSyntax State = iota
	StateDomainExists
	StateMXValid
	StateMailbox
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSyntax:
		return "syntax"
	case StateDomainExists:
		return "domain_exists"
	case StateMXValid:
		return "mx_valid"
	case StateMailbox:
		return "mailbox"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Step returns the stable step number reported for results produced in s.
func (s State) Step() types.VerificationStep {
	switch s {
	case StateSyntax:
		return types.StepSyntax
	case StateDomainExists:
		return types.StepDomainExists
	case StateMXValid:
		return types.StepMXValid
	default:
		return types.StepMailbox
	}
}

// syntaxRe is a permissive RFC 5322 dot-atom local part and a
// letters-digits-hyphens hostname.
var syntaxRe = regexp.MustCompile("(?i)^[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$")

// Run carries the data accumulated while an address moves through the stages.
type Run struct {
	Email  string
	Domain string

	// Records holds the raw MX hosts found by the domain stage.
	Records []string

	// Hosts holds the usable exchangers kept by the MX validity stage.
	Hosts []string

	Result types.VerificationResult
}

// Pipeline is the verification state machine wired to its collaborators.
type Pipeline struct {
	Resolver MXResolver
	Prober   MailboxProber
}

// New returns a Pipeline using resolver and prober.
func New(resolver MXResolver, prober MailboxProber) *Pipeline {
	return &Pipeline{Resolver: resolver, Prober: prober}
}

// Verify runs email through every stage until one fails or all pass.
func (p *Pipeline) Verify(ctx context.Context, email string) types.VerificationResult {
	r := &Run{Email: strings.TrimSpace(email)}
	s := StateSyntax
	for s != StateDone {
		s = p.Transition(ctx, s, r)
	}
	zap.L().Debug("verify: finished",
		zap.String("email", r.Email),
		zap.Bool("success", r.Result.Success),
		zap.Stringer("step", r.Result.Step),
		zap.String("reason", r.Result.Reason))
	return r.Result
}

// Transition executes stage s against r and returns the next stage. A
// stage that ends the run records its result in r and returns StateDone.
func (p *Pipeline) Transition(ctx context.Context, s State, r *Run) State {
	switch s {
	case StateSyntax:
		return p.checkSyntax(r)
	case StateDomainExists:
		return p.checkDomain(ctx, r)
	case StateMXValid:
		return p.checkMX(r)
	case StateMailbox:
		return p.checkMailbox(ctx, r)
	default:
		return StateDone
	}
}

func fail(r *Run, s State, reason string) State {
	r.Result = types.VerificationResult{Success: false, Step: s.Step(), Reason: reason}
	return StateDone
}

func (p *Pipeline) checkSyntax(r *Run) State {
	if !syntaxRe.MatchString(r.Email) {
		return fail(r, StateSyntax, "invalid email syntax")
	}
	_, domain, _ := strings.Cut(r.Email, "@")
	r.Domain = strings.ToLower(domain)
	return StateDomainExists
}

func (p *Pipeline) checkDomain(ctx context.Context, r *Run) State {
	records, err := p.Resolver.LookupMX(ctx, r.Domain)
	if err != nil {
		return fail(r, StateDomainExists, fmt.Sprintf("mx lookup failed: %v", err))
	}
	if len(records) == 0 {
		return fail(r, StateDomainExists, "domain has no mx records")
	}
	r.Records = records
	return StateMXValid
}

// checkMX re-examines the records found by checkDomain rather than issuing
// a second lookup. A null MX (".") or empty host does not count.
func (p *Pipeline) checkMX(r *Run) State {
	r.Hosts = r.Hosts[:0]
	for _, h := range r.Records {
		h = strings.TrimSuffix(strings.TrimSpace(h), ".")
		if h == "" {
			continue
		}
		r.Hosts = append(r.Hosts, h)
	}
	if len(r.Hosts) == 0 {
		return fail(r, StateMXValid, "no usable mx records")
	}
	return StateMailbox
}

func (p *Pipeline) checkMailbox(ctx context.Context, r *Run) State {
	ok, err := p.Prober.ProbeMailbox(ctx, r.Email, r.Hosts)
	if err != nil {
		return fail(r, StateMailbox, fmt.Sprintf("mailbox probe failed: %v", err))
	}
	if !ok {
		return fail(r, StateMailbox, "mailbox rejected")
	}
	r.Result = types.VerificationResult{Success: true, Step: types.StepMailbox, Reason: "mailbox accepted"}
	return StateDone
}
