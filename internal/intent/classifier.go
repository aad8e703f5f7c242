package intent

import "strings"

// Label is the result of the fast pre-validation scan.
type Label string

const (
	LabelConfidentialInfo Label = "confidential_info"
	LabelNormal           Label = "normal"
)

// confidentialKeywords are matched as case-insensitive substrings. A single
// hit classifies the whole query; there is no scoring.
var confidentialKeywords = []string{
	"api key", "password", "secret", "credential", "token",
	"employee", "salary", "internal", "confidential", "private",
	"database", "system", "admin", "backend", "server",
}

// Classifier flags queries fishing for confidential information before any
// of the heavier validators run. Deliberately crude: substring matching
// only, no external calls.
type Classifier struct{}

func NewClassifier() *Classifier { return &Classifier{} }

func (c *Classifier) Classify(raw string) Label {
	lower := strings.ToLower(raw)
	for _, kw := range confidentialKeywords {
		if strings.Contains(lower, kw) {
			return LabelConfidentialInfo
		}
	}
	return LabelNormal
}
