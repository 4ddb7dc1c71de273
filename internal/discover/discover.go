// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover finds work emails, phones and web presence for a person
// at a company. It prefers contacts already known for the person, then the
// company cache, and only then live search. Candidate emails are verified
// one at a time and the first that passes wins.
package discover

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/lead-engine/internal/extract"
	"github.com/pdiddy/lead-engine/internal/links"
	"github.com/pdiddy/lead-engine/internal/pattern"
	"github.com/pdiddy/lead-engine/internal/search"
	"github.com/pdiddy/lead-engine/internal/store"
	"github.com/pdiddy/lead-engine/internal/verify"
	"github.com/pdiddy/lead-engine/pkg/types"
)

// ErrInvalidInput is returned when the company or person name is missing.
var ErrInvalidInput = eris.New("invalid discovery input")

// Store is the persistence the orchestrator reads and writes.
type Store interface {
	GetCompany(ctx context.Context, key string) (*types.CompanyRecord, error)
	PutCompany(ctx context.Context, rec *types.CompanyRecord) error
	FindKnownContacts(ctx context.Context, identityID string) ([]types.KnownContact, error)
}

// Orchestrator runs discoveries. It holds no per-request state and is safe
// for concurrent use.
type Orchestrator struct {
	Searcher search.Searcher
	Verifier verify.Verifier
	Store    Store

	// AdminOwner is the owner whose known contacts are preferred.
	AdminOwner string

	// Timeout bounds a whole Discover call.
	Timeout time.Duration
}

// New returns an Orchestrator with cfg defaults applied.
func New(s search.Searcher, v verify.Verifier, st Store, cfg types.DiscoveryConfig) *Orchestrator {
	cfg = cfg.WithDefaults()
	return &Orchestrator{
		Searcher:   s,
		Verifier:   v,
		Store:      st,
		AdminOwner: cfg.AdminOwner,
		Timeout:    cfg.Timeout,
	}
}

// run carries one discovery's inputs and logger.
type run struct {
	req    types.DiscoveryRequest
	key    string
	logger *zap.Logger
}

// Discover finds contacts for req. Search, DNS and SMTP failures only make
// the result thinner; the returned error is either ErrInvalidInput or a
// store failure.
func (o *Orchestrator) Discover(ctx context.Context, req types.DiscoveryRequest) (types.DiscoveryResult, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.PersonName = strings.TrimSpace(req.PersonName)
	if req.CompanyName == "" {
		return types.DiscoveryResult{}, eris.Wrap(ErrInvalidInput, "company name is required")
	}
	if req.PersonName == "" {
		return types.DiscoveryResult{}, eris.Wrap(ErrInvalidInput, "person name is required")
	}

	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	r := &run{
		req: req,
		key: store.CompanyKey(req.CompanyName, req.CompanyURL),
		logger: zap.L().With(
			zap.String("run_id", uuid.NewString()),
			zap.String("company", req.CompanyName),
			zap.String("person", req.PersonName),
		),
	}
	r.logger.Info("discover: start", zap.String("key", r.key))

	known, err := o.knownContacts(ctx, r)
	if err != nil {
		return types.DiscoveryResult{}, err
	}

	rec, err := o.Store.GetCompany(ctx, r.key)
	if err != nil {
		return types.DiscoveryResult{}, eris.Wrap(err, "discover: cache lookup")
	}

	var res types.DiscoveryResult
	if rec != nil {
		res = o.fromCache(ctx, r, rec, known)
	} else {
		res, err = o.fromSearch(ctx, r, known)
		if err != nil {
			return types.DiscoveryResult{}, err
		}
	}

	res.Emails = exclude(res.Emails, req.ExcludeEmail)
	res.Phones = mergePhones(known.Phones, res.Phones)
	normalize(&res)

	r.logger.Info("discover: done",
		zap.Bool("cache_hit", res.CacheHit),
		zap.Int("emails", len(res.Emails)),
		zap.Int("phones", len(res.Phones)),
		zap.Int("links", len(res.Links)))
	return res, nil
}

// fromCache assembles a result from a cached company record.
func (o *Orchestrator) fromCache(ctx context.Context, r *run, rec *types.CompanyRecord, known knownData) types.DiscoveryResult {
	res := types.DiscoveryResult{
		Links:       rec.Links,
		Phones:      rec.Phones,
		Location:    rec.Location,
		CompanySize: rec.CompanySize,
		Founded:     rec.Founded,
		CacheHit:    true,
	}
	if len(known.Emails) > 0 {
		res.Emails = known.Emails
		return res
	}
	domain := links.OfficialDomain(rec.Links)
	res.Emails = o.funnel(ctx, r, rec.EmailPatterns, domain, pattern.CachedThresholds)
	return res
}

// fromSearch runs live discovery and caches the company when at least one
// email pattern was found.
func (o *Orchestrator) fromSearch(ctx context.Context, r *run, known knownData) (types.DiscoveryResult, error) {
	var (
		phones []types.Phone
		info   CompanyInfo
	)

	// Phones and descriptive info do not feed the email funnel.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		phones = FindPhones(gctx, o.Searcher, r.req.CompanyName)
		return nil
	})
	g.Go(func() error {
		info = FindInfo(gctx, o.Searcher, r.req.CompanyName)
		return nil
	})

	classified := o.searchLinks(ctx, r)
	patterns := o.searchPatterns(ctx, r)

	res := types.DiscoveryResult{Links: classified}
	if len(known.Emails) > 0 {
		res.Emails = known.Emails
	} else {
		res.Emails = o.funnel(ctx, r, patterns, links.OfficialDomain(classified), pattern.ExtractionThresholds)
	}

	_ = g.Wait()
	res.Phones = phones
	res.Location = info.Location
	res.CompanySize = info.CompanySize
	res.Founded = info.Founded

	if len(patterns) == 0 {
		r.logger.Debug("discover: no patterns found, not caching")
		return res, nil
	}

	rec := &types.CompanyRecord{
		Key:           r.key,
		Name:          r.req.CompanyName,
		EmailPatterns: patterns,
		Phones:        phones,
		Links:         classified,
		Location:      info.Location,
		CompanySize:   info.CompanySize,
		Founded:       info.Founded,
	}
	// The record is already assembled; an expired run deadline must not
	// discard it.
	if err := o.Store.PutCompany(context.WithoutCancel(ctx), rec); err != nil {
		return types.DiscoveryResult{}, eris.Wrap(err, "discover: cache write")
	}
	return res, nil
}

func (o *Orchestrator) searchLinks(ctx context.Context, r *run) []types.ClassifiedLink {
	query := quote(r.req.CompanyName) + " official website"
	resp, err := o.Searcher.Search(ctx, query)
	if err != nil {
		r.logger.Warn("discover: link search failed", zap.String("query", query), zap.Error(err))
		return links.ClassifyAll(nil, r.req.CompanyName, r.req.CompanyURL)
	}
	return links.ClassifyAll(resp.Links(), r.req.CompanyName, r.req.CompanyURL)
}

func (o *Orchestrator) searchPatterns(ctx context.Context, r *run) []types.EmailPattern {
	query := quote(r.req.CompanyName) + " email format"
	resp, err := o.Searcher.Search(ctx, query)
	if err != nil {
		r.logger.Warn("discover: pattern search failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	patterns := extract.Patterns(resp.Snippets())
	r.logger.Debug("discover: extracted patterns", zap.Int("count", len(patterns)))
	return patterns
}

// funnel generates candidates from patterns and verifies them in order,
// stopping at the first success. When none verifies it tries the naming
// conventions on domain the same way. It returns at most one email.
func (o *Orchestrator) funnel(ctx context.Context, r *run, patterns []types.EmailPattern, domain string, th pattern.Thresholds) []types.CandidateEmail {
	candidates := pattern.Generate(bindDomain(patterns, domain), r.req.PersonName, th)
	if c, ok := o.firstVerified(ctx, r, candidates); ok {
		return []types.CandidateEmail{c}
	}

	if domain == "" {
		r.logger.Debug("discover: no official domain, skipping naming conventions")
		return nil
	}
	fallback := pattern.Generate(pattern.Conventions(domain), r.req.PersonName, th)
	if c, ok := o.firstVerified(ctx, r, fallback); ok {
		return []types.CandidateEmail{c}
	}
	return nil
}

func (o *Orchestrator) firstVerified(ctx context.Context, r *run, candidates []types.CandidateEmail) (types.CandidateEmail, bool) {
	for _, c := range candidates {
		if ctx.Err() != nil {
			return types.CandidateEmail{}, false
		}
		res := o.Verifier.Verify(ctx, c.Email)
		if res.Success {
			r.logger.Info("discover: verified", zap.String("email", c.Email))
			return pattern.MarkVerified(c), true
		}
		r.logger.Debug("discover: candidate rejected",
			zap.String("email", c.Email),
			zap.Stringer("step", res.Step),
			zap.String("reason", res.Reason))
	}
	return types.CandidateEmail{}, false
}

// bindDomain completes patterns such as "first.last" with "@"+domain.
// Patterns without "@" are dropped when domain is unknown.
func bindDomain(patterns []types.EmailPattern, domain string) []types.EmailPattern {
	out := make([]types.EmailPattern, 0, len(patterns))
	for _, p := range patterns {
		if !strings.Contains(p.Pattern, "@") {
			if domain == "" {
				continue
			}
			p.Pattern += "@" + domain
		}
		out = append(out, p)
	}
	return out
}

func exclude(emails []types.CandidateEmail, email string) []types.CandidateEmail {
	email = strings.TrimSpace(email)
	if email == "" {
		return emails
	}
	out := emails[:0:0]
	for _, e := range emails {
		if strings.EqualFold(e.Email, email) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// normalize replaces nil slices with empty ones.
func normalize(res *types.DiscoveryResult) {
	if res.Emails == nil {
		res.Emails = []types.CandidateEmail{}
	}
	if res.Links == nil {
		res.Links = []types.ClassifiedLink{}
	}
	if res.Phones == nil {
		res.Phones = []types.Phone{}
	}
}

func quote(s string) string {
	return `"` + s + `"`
}
