// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package links

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/pdiddy/lead-engine/pkg/types"
)

// OfficialDomain returns the registrable domain (eTLD+1) of the official
// link in set, e.g. "acme.co.uk" for https://www.shop.acme.co.uk/.
// It returns "" when there is no official link.
func OfficialDomain(set []types.ClassifiedLink) string {
	for _, l := range set {
		if l.Type == types.LinkOfficial {
			return Domain(l.Link)
		}
	}
	return ""
}

// Domain returns the registrable domain of raw, falling back to the bare
// host when the public suffix list cannot place it.
func Domain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return ""
	}
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil && etld1 != "" {
		return etld1
	}
	return host
}
