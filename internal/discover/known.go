// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pdiddy/lead-engine/pkg/types"
)

// knownData is what the known-contact lookup contributes to a result.
type knownData struct {
	Emails []types.CandidateEmail
	Phones []types.Phone
}

// knownContacts looks up contacts recorded for the request's identity,
// picks the best one and keeps only the emails that still verify.
func (o *Orchestrator) knownContacts(ctx context.Context, r *run) (knownData, error) {
	if strings.TrimSpace(r.req.IdentityKey) == "" {
		return knownData{}, nil
	}
	contacts, err := o.Store.FindKnownContacts(ctx, r.req.IdentityKey)
	if err != nil {
		return knownData{}, eris.Wrap(err, "discover: known contacts")
	}
	best, ok := pickContact(contacts, o.AdminOwner)
	if !ok {
		return knownData{}, nil
	}
	r.logger.Debug("discover: using known contact",
		zap.String("owner", best.Owner), zap.Int("size", best.Size()))

	var out knownData
	for _, email := range best.Emails {
		res := o.Verifier.Verify(ctx, email)
		if !res.Success {
			r.logger.Debug("discover: known email no longer verifies",
				zap.String("email", email), zap.Stringer("step", res.Step))
			continue
		}
		out.Emails = append(out.Emails, types.CandidateEmail{
			Email:            strings.ToLower(email),
			ValidationStatus: types.StatusHigh,
			Valid:            true,
			Type:             types.EmailDirect,
		})
	}
	out.Phones = best.Phones
	return out, nil
}

// pickContact prefers the admin owner's contact, otherwise the one with
// the most emails and phones. Earlier entries win ties.
func pickContact(contacts []types.KnownContact, adminOwner string) (types.KnownContact, bool) {
	var (
		best  types.KnownContact
		found bool
	)
	for _, c := range contacts {
		if c.Size() == 0 {
			continue
		}
		if adminOwner != "" && c.Owner == adminOwner {
			return c, true
		}
		if !found || c.Size() > best.Size() {
			best, found = c, true
		}
	}
	return best, found
}

var nonDigitRe = regexp.MustCompile(`\D`)

// mergePhones appends extra to known, skipping numbers already present.
// Numbers compare by digits only.
func mergePhones(known, extra []types.Phone) []types.Phone {
	seen := make(map[string]bool, len(known)+len(extra))
	out := make([]types.Phone, 0, len(known)+len(extra))
	for _, list := range [][]types.Phone{known, extra} {
		for _, p := range list {
			k := nonDigitRe.ReplaceAllString(p.Phone, "")
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, p)
		}
	}
	return out
}
