package safety

import (
	"context"
	"fmt"
	"strings"
)

// Policy selects how a validator reacts to a firing detector.
type Policy int

const (
	// PolicyBlock fails fast on the first detector that fires. Used on the
	// input side so unsafe queries never reach retrieval or generation.
	PolicyBlock Policy = iota
	// PolicyFix transforms violating text where possible (PII redaction) and
	// degrades to a failure only when no safe transformation exists.
	PolicyFix
)

// Validator runs the configured detectors over text under one policy.
// The same type serves both pipeline sides; only the policy differs.
type Validator struct {
	policy    Policy
	pii       PIIDetector
	toxicity  ToxicityScorer
	threshold float64
}

func NewValidator(policy Policy, pii PIIDetector, toxicity ToxicityScorer, threshold float64) *Validator {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultToxicityThreshold
	}
	return &Validator{
		policy:    policy,
		pii:       pii,
		toxicity:  toxicity,
		threshold: threshold,
	}
}

// Validate judges text and returns a new value; the input is never mutated.
// A non-nil error is a *ValidatorError: a detector itself broke, and the
// text was not judged at all.
func (v *Validator) Validate(ctx context.Context, text string) (Outcome, error) {
	out := text

	if v.pii != nil {
		matches := v.pii.Scan(out)
		if len(matches) > 0 {
			switch v.policy {
			case PolicyBlock:
				return failed(CategoryPIIDetected, describeMatches(matches)), nil
			case PolicyFix:
				redacted, changed := v.pii.Redact(out)
				if !changed {
					// Detected but unredactable: never emit the raw text.
					return failed(CategoryOffTopic, describeMatches(matches)), nil
				}
				out = redacted
			}
		}
	}

	if v.toxicity != nil {
		score, err := v.toxicity.Score(ctx, out)
		if err != nil {
			return Outcome{}, &ValidatorError{Detector: "toxicity", Err: err}
		}
		if score >= v.threshold {
			evidence := fmt.Sprintf("toxicity score %.2f >= %.2f", score, v.threshold)
			if v.policy == PolicyBlock {
				return failed(CategoryToxicLanguage, evidence), nil
			}
			// No rewrite capability for toxic output; degrade so the caller
			// substitutes a safe message.
			return failed(CategoryOffTopic, evidence), nil
		}
	}

	return passed(out), nil
}

func describeMatches(matches []PIIMatch) string {
	kinds := make([]string, 0, len(matches))
	seen := map[EntityKind]bool{}
	for _, m := range matches {
		if seen[m.Kind] {
			continue
		}
		seen[m.Kind] = true
		kinds = append(kinds, string(m.Kind))
	}
	return "pii entities: " + strings.Join(kinds, ", ")
}
