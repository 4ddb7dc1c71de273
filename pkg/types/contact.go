// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the lead-engine
// discovery pipeline: email patterns and candidates, classified company
// links, company cache records, known contacts, verification results, and
// the assembled discovery result.
package types

import "time"

// EmailPattern is an email-format statistic extracted from search snippets,
// e.g. {Pattern: "first.last@acme.com", Percentage: "35.2%"}.
type EmailPattern struct {
	// Pattern is the local-part template, usually followed by @domain.
	// Recognized tokens: first_initial, last_initial, first, last, '.'.
	Pattern string `json:"pattern" yaml:"pattern"`

	// Percentage is the share of addresses using this pattern as authored
	// in the source text (e.g. "90%").
	Percentage string `json:"percentage" yaml:"percentage"`
}

// ValidationStatus grades a candidate email. Lower is more trustworthy.
type ValidationStatus int

const (
	StatusHigh   ValidationStatus = 1
	StatusMedium ValidationStatus = 2
	StatusLow    ValidationStatus = 3
)

func (s ValidationStatus) String() string {
	switch s {
	case StatusHigh:
		return "high"
	case StatusMedium:
		return "medium"
	case StatusLow:
		return "low"
	default:
		return "unknown"
	}
}

// EmailType distinguishes a company mailbox from a personal one.
type EmailType string

const (
	EmailWork   EmailType = "Work"
	EmailDirect EmailType = "Direct"
)

// CandidateEmail is an address produced by pattern substitution or naming
// convention, together with its confidence grading.
type CandidateEmail struct {
	Email string `json:"email" yaml:"email"`

	// SourcePattern is the template that produced the address, empty when
	// the address came from known data.
	SourcePattern string `json:"source_pattern,omitempty" yaml:"source_pattern,omitempty"`

	// ConfidencePercentage is 0-100; nil when no statistic was available.
	ConfidencePercentage *float64 `json:"confidence_percentage,omitempty" yaml:"confidence_percentage,omitempty"`

	ValidationStatus ValidationStatus `json:"validation_status" yaml:"validation_status"`
	Valid            bool             `json:"valid" yaml:"valid"`
	Type             EmailType        `json:"type" yaml:"type"`
}

// LinkType categorizes a company touchpoint URL.
type LinkType string

const (
	LinkOfficial  LinkType = "official"
	LinkFacebook  LinkType = "facebook"
	LinkTwitter   LinkType = "twitter"
	LinkInstagram LinkType = "instagram"
	LinkYouTube   LinkType = "youtube"
	LinkLinkedIn  LinkType = "linkedin"
	LinkUnknown   LinkType = "unknown"
)

// ClassifiedLink is a URL tagged with its touchpoint category.
type ClassifiedLink struct {
	Link string   `json:"link" yaml:"link"`
	Type LinkType `json:"type" yaml:"type"`
}

// Phone is a company or personal phone number.
type Phone struct {
	Phone   string `json:"phone" yaml:"phone"`
	Type    string `json:"type" yaml:"type"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

// CompanyRecord is a cached result of a successful company discovery.
// Records are created once per key and never updated in place.
type CompanyRecord struct {
	// Key is the canonical company URL (normally its LinkedIn page), or a
	// "name:" key derived from the company name when no URL is known.
	Key string `json:"key" yaml:"key"`

	Name          string           `json:"name" yaml:"name"`
	EmailPatterns []EmailPattern   `json:"email_patterns" yaml:"email_patterns"`
	Phones        []Phone          `json:"phones" yaml:"phones"`
	Links         []ClassifiedLink `json:"links" yaml:"links"`
	Location      string           `json:"location,omitempty" yaml:"location,omitempty"`
	CompanySize   string           `json:"company_size,omitempty" yaml:"company_size,omitempty"`
	Founded       string           `json:"founded,omitempty" yaml:"founded,omitempty"`
	CreatedAt     time.Time        `json:"created_at" yaml:"created_at"`
}

// OfficialLink returns the record's official website link, or "".
func (r *CompanyRecord) OfficialLink() string {
	for _, l := range r.Links {
		if l.Type == LinkOfficial {
			return l.Link
		}
	}
	return ""
}

// KnownContact is the contact data one owner holds for an external identity.
type KnownContact struct {
	Owner      string   `json:"owner" yaml:"owner"`
	IdentityID string   `json:"identity_id" yaml:"identity_id"`
	Emails     []string `json:"emails" yaml:"emails"`
	Phones     []Phone  `json:"phones" yaml:"phones"`
}

// Size returns the number of emails plus phones held.
func (k KnownContact) Size() int {
	return len(k.Emails) + len(k.Phones)
}

// Lead is a stored person record owned by a user of the system.
type Lead struct {
	ID         int64     `json:"id" yaml:"id"`
	Owner      string    `json:"owner" yaml:"owner"`
	IdentityID string    `json:"identity_id" yaml:"identity_id"`
	Name       string    `json:"name" yaml:"name"`
	Company    string    `json:"company" yaml:"company"`
	Emails     []string  `json:"emails" yaml:"emails"`
	Phones     []Phone   `json:"phones" yaml:"phones"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// VerificationStep identifies the stage that produced a verification
// result. The values have gaps for stages that no longer exist; consumers
// rely on the numbers.
type VerificationStep int

const (
	StepSyntax       VerificationStep = 1
	StepDomainExists VerificationStep = 3
	StepMXValid      VerificationStep = 4
	StepMailbox      VerificationStep = 6
)

func (s VerificationStep) String() string {
	switch s {
	case StepSyntax:
		return "syntax"
	case StepDomainExists:
		return "domain_exists"
	case StepMXValid:
		return "mx_valid"
	case StepMailbox:
		return "mailbox"
	default:
		return "unknown"
	}
}

// VerificationResult is the terminal outcome of checking one address.
type VerificationResult struct {
	Success bool             `json:"success" yaml:"success"`
	Step    VerificationStep `json:"step" yaml:"step"`
	Reason  string           `json:"reason" yaml:"reason"`
}

// DiscoveryRequest holds the inputs to a company contact discovery.
type DiscoveryRequest struct {
	CompanyName string `json:"company_name" yaml:"company_name"`
	PersonName  string `json:"person_name" yaml:"person_name"`

	// CompanyURL is the canonical company URL (its LinkedIn page). It is the
	// cache key and is appended to the result links as the linkedin entry.
	CompanyURL string `json:"company_url,omitempty" yaml:"company_url,omitempty"`

	// IdentityKey is an external identity such as a LinkedIn profile id.
	IdentityKey string `json:"identity_key,omitempty" yaml:"identity_key,omitempty"`

	// ExcludeEmail is an address the caller already has from another source.
	ExcludeEmail string `json:"exclude_email,omitempty" yaml:"exclude_email,omitempty"`
}

// DiscoveryResult is the assembled output of a discovery. Slices are never
// nil so that JSON output always carries arrays.
type DiscoveryResult struct {
	Emails      []CandidateEmail `json:"emails" yaml:"emails"`
	Links       []ClassifiedLink `json:"links" yaml:"links"`
	Phones      []Phone          `json:"phones" yaml:"phones"`
	Location    string           `json:"location" yaml:"location"`
	CompanySize string           `json:"company_size" yaml:"company_size"`
	Founded     string           `json:"founded" yaml:"founded"`

	// CacheHit reports whether the company record came from the cache.
	CacheHit bool `json:"cache_hit" yaml:"cache_hit"`
}
