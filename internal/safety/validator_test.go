package safety

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestBlockPolicyFailsOnPII(t *testing.T) {
	v := NewValidator(PolicyBlock, NewRegexDetector(), NewLexiconScorer(), 0.5)
	out, err := v.Validate(context.Background(), "my email is sam@example.com")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if out.Passed {
		t.Fatalf("outcome passed, want failed")
	}
	if out.Category != CategoryPIIDetected {
		t.Fatalf("category = %q, want %q", out.Category, CategoryPIIDetected)
	}
	if !strings.Contains(out.Evidence, "email") {
		t.Fatalf("evidence %q should name the entity kind", out.Evidence)
	}
}

func TestBlockPolicyFailsOnToxicity(t *testing.T) {
	v := NewValidator(PolicyBlock, NewRegexDetector(), NewLexiconScorer(), 0.5)
	out, err := v.Validate(context.Background(), "you are a stupid idiot")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if out.Passed {
		t.Fatalf("outcome passed, want failed")
	}
	if out.Category != CategoryToxicLanguage {
		t.Fatalf("category = %q, want %q", out.Category, CategoryToxicLanguage)
	}
}

func TestLexiconScoresWholeWordsOnly(t *testing.T) {
	s := NewLexiconScorer()
	cases := []struct {
		name  string
		text  string
		toxic bool
	}{
		{"diet is not die", "Is this fridge good for my diet plan?", false},
		{"skills is not kill", "What smart skills does the SmartChill have?", false},
		{"ingredients is not die", "Does the crisper keep ingredients fresh?", false},
		{"stupidity is not stupid", "The stupidity of my old fridge's layout wasted space.", false},
		{"bare insult", "this fridge is stupid garbage", true},
		{"phrase term", "shut up and show me the price", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, err := s.Score(context.Background(), tc.text)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if tc.toxic && score < DefaultToxicityThreshold {
				t.Fatalf("score = %v, want >= %v for %q", score, DefaultToxicityThreshold, tc.text)
			}
			if !tc.toxic && score >= DefaultToxicityThreshold {
				t.Fatalf("score = %v, want < %v for %q", score, DefaultToxicityThreshold, tc.text)
			}
		})
	}
}

func TestBlockPolicyPassesBenignProductQuestions(t *testing.T) {
	v := NewValidator(PolicyBlock, NewRegexDetector(), NewLexiconScorer(), DefaultToxicityThreshold)
	for _, input := range []string{
		"Is this fridge good for my diet plan?",
		"What smart skills does the SmartChill have?",
		"Does the crisper keep ingredients fresh?",
	} {
		out, err := v.Validate(context.Background(), input)
		if err != nil {
			t.Fatalf("Validate(%q) error = %v", input, err)
		}
		if !out.Passed {
			t.Fatalf("benign question declined: %q -> %+v", input, out)
		}
	}
}

func TestBlockPolicyPassesCleanText(t *testing.T) {
	v := NewValidator(PolicyBlock, NewRegexDetector(), NewLexiconScorer(), 0.5)
	input := "which fridge suits a family of four?"
	out, err := v.Validate(context.Background(), input)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !out.Passed {
		t.Fatalf("outcome failed: %+v", out)
	}
	if out.Text != input {
		t.Fatalf("passed text = %q, want unchanged input", out.Text)
	}
}

func TestFixPolicyRedactsPII(t *testing.T) {
	v := NewValidator(PolicyFix, NewRegexDetector(), NewLexiconScorer(), 0.5)
	out, err := v.Validate(context.Background(), "Reach our team at support@cooltech.com for specs.")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !out.Passed {
		t.Fatalf("outcome failed: %+v", out)
	}
	if strings.Contains(out.Text, "support@cooltech.com") {
		t.Fatalf("output still contains the raw address: %q", out.Text)
	}
	if !strings.Contains(out.Text, "[REDACTED_EMAIL]") {
		t.Fatalf("output missing redaction marker: %q", out.Text)
	}
}

func TestFixPolicyDegradesOnToxicOutput(t *testing.T) {
	v := NewValidator(PolicyFix, NewRegexDetector(), NewLexiconScorer(), 0.5)
	out, err := v.Validate(context.Background(), "That model is garbage and so are you, idiot.")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if out.Passed {
		t.Fatalf("toxic output must not pass the fix policy")
	}
	if out.Category != CategoryOffTopic {
		t.Fatalf("category = %q, want %q", out.Category, CategoryOffTopic)
	}
}

type erroringScorer struct{}

func (erroringScorer) Score(context.Context, string) (float64, error) {
	return 0, errors.New("classifier unreachable")
}

func TestValidatorErrorSurfacedDistinctly(t *testing.T) {
	v := NewValidator(PolicyBlock, NewRegexDetector(), erroringScorer{}, 0.5)
	_, err := v.Validate(context.Background(), "hello there")
	if err == nil {
		t.Fatalf("expected a validator error")
	}
	var verr *ValidatorError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %T, want *ValidatorError", err)
	}
	if verr.Detector != "toxicity" {
		t.Fatalf("detector = %q, want toxicity", verr.Detector)
	}
}

func TestRegexDetectorScanKinds(t *testing.T) {
	d := NewRegexDetector()
	cases := []struct {
		name string
		text string
		kind EntityKind
	}{
		{"email", "write to sam@example.com please", EntityEmail},
		{"phone", "call +1 (555) 123-9876 today", EntityPhone},
		{"card", "pay with 4242 4242 4242 4242 now", EntityCreditCard},
		{"government id", "my ssn is 123-45-6789", EntityGovernmentID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			matches := d.Scan(tc.text)
			if len(matches) == 0 {
				t.Fatalf("no matches in %q", tc.text)
			}
			found := false
			for _, m := range matches {
				if m.Kind == tc.kind {
					found = true
				}
			}
			if !found {
				t.Fatalf("kind %q not found in %+v", tc.kind, matches)
			}
		})
	}
}

func TestRedactMasksAllKinds(t *testing.T) {
	d := NewRegexDetector()
	input := "Email sam@example.com or +1 (555) 123-9876, card 4242 4242 4242 4242, ssn 123-45-6789."
	out, changed := d.Redact(input)
	if !changed {
		t.Fatalf("changed = false, want true")
	}
	for _, marker := range []string{"[REDACTED_EMAIL]", "[REDACTED_PHONE]", "[REDACTED_CARD]", "[REDACTED_ID]"} {
		if !strings.Contains(out, marker) {
			t.Fatalf("output missing marker %q: %q", marker, out)
		}
	}
}
