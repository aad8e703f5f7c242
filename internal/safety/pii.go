package safety

import "regexp"

// EntityKind names a class of personally identifiable information.
type EntityKind string

const (
	EntityEmail        EntityKind = "email"
	EntityPhone        EntityKind = "phone"
	EntityCreditCard   EntityKind = "credit_card"
	EntityGovernmentID EntityKind = "government_id"
)

// PIIMatch is one detected span.
type PIIMatch struct {
	Text string
	Kind EntityKind
}

// PIIDetector scans text for sensitive entities and can mask them.
type PIIDetector interface {
	Scan(text string) []PIIMatch
	Redact(text string) (redacted string, changed bool)
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?[0-9][0-9\-() ]{7,}[0-9]`)
	cardPattern  = regexp.MustCompile(`\b(?:\d[ -]*?){13,19}\b`)
	ssnPattern   = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
)

// RegexDetector matches common high-risk PII patterns.
type RegexDetector struct{}

func NewRegexDetector() *RegexDetector { return &RegexDetector{} }

func (d *RegexDetector) Scan(text string) []PIIMatch {
	var matches []PIIMatch
	for _, m := range emailPattern.FindAllString(text, -1) {
		matches = append(matches, PIIMatch{Text: m, Kind: EntityEmail})
	}
	for _, m := range ssnPattern.FindAllString(text, -1) {
		matches = append(matches, PIIMatch{Text: m, Kind: EntityGovernmentID})
	}
	// Card numbers would also satisfy the phone pattern, so scan them first
	// and strip them before looking for phones.
	stripped := ssnPattern.ReplaceAllString(text, "")
	for _, m := range cardPattern.FindAllString(stripped, -1) {
		matches = append(matches, PIIMatch{Text: m, Kind: EntityCreditCard})
	}
	stripped = cardPattern.ReplaceAllString(stripped, "")
	for _, m := range phonePattern.FindAllString(stripped, -1) {
		matches = append(matches, PIIMatch{Text: m, Kind: EntityPhone})
	}
	return matches
}

// Redact masks every detected span. The input is never modified in place.
func (d *RegexDetector) Redact(input string) (redacted string, changed bool) {
	out := input

	next := emailPattern.ReplaceAllString(out, "[REDACTED_EMAIL]")
	changed = changed || next != out
	out = next

	next = ssnPattern.ReplaceAllString(out, "[REDACTED_ID]")
	changed = changed || next != out
	out = next

	// Run card redaction before phone to avoid card numbers being classified as phone.
	next = cardPattern.ReplaceAllString(out, "[REDACTED_CARD]")
	changed = changed || next != out
	out = next

	next = phonePattern.ReplaceAllString(out, "[REDACTED_PHONE]")
	changed = changed || next != out
	out = next

	return out, changed
}
