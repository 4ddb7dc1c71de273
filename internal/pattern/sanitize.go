// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pattern

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrInvalidEmail is returned when a string cannot be sanitized into an
// address of the form local@domain.tld.
var ErrInvalidEmail = eris.New("invalid email address")

var (
	strictEmailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	commaRunRe    = regexp.MustCompile(`,+`)
	localStripRe  = regexp.MustCompile(`[^A-Za-z0-9._-]`)
	domainStripRe = regexp.MustCompile(`[^A-Za-z0-9.-]`)
	unsafeChars   = strings.NewReplacer(`"`, "", `'`, "", `\`, "", "/", "", ":", "", ";", "", "&", "")
)

// SanitizeEmail strips quoting and separator noise from s, checks it has
// the shape of an address, and removes characters outside the safe sets of
// the local part ([A-Za-z0-9._-]) and domain ([A-Za-z0-9.-]).
// Sanitizing an already sanitized address returns it unchanged.
func SanitizeEmail(s string) (string, error) {
	s = unsafeChars.Replace(s)
	s = commaRunRe.ReplaceAllString(s, ",")
	s = strings.Trim(s, ", ")

	if !strictEmailRe.MatchString(s) {
		return "", eris.Wrapf(ErrInvalidEmail, "%q", s)
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok {
		return "", eris.Wrapf(ErrInvalidEmail, "%q has no @", s)
	}
	local = localStripRe.ReplaceAllString(local, "")
	domain = domainStripRe.ReplaceAllString(domain, "")
	if local == "" {
		return "", eris.Wrapf(ErrInvalidEmail, "%q has an empty local part", s)
	}
	return local + "@" + domain, nil
}
