package safety

import "fmt"

// Category labels the reason a piece of text was declined.
type Category string

const (
	CategoryConfidentialInfo Category = "confidential_info"
	CategoryPIIDetected      Category = "pii_detected"
	CategoryToxicLanguage    Category = "toxic_language"
	CategoryOffTopic         Category = "off_topic"
)

// Outcome is the result of running a validator over one piece of text.
// Exactly one of the Passed/Failed shapes applies: a passed outcome carries
// the (possibly transformed) text, a failed outcome carries the category and
// the evidence that triggered it.
type Outcome struct {
	Passed   bool
	Text     string
	Category Category
	Evidence string
}

func passed(text string) Outcome {
	return Outcome{Passed: true, Text: text}
}

func failed(category Category, evidence string) Outcome {
	return Outcome{Category: category, Evidence: evidence}
}

// ValidatorError reports a detector that failed to run at all. This is an
// operational fault, distinct from a decline: the text was never judged.
type ValidatorError struct {
	Detector string
	Err      error
}

func (e *ValidatorError) Error() string {
	return fmt.Sprintf("validator %s failed: %v", e.Detector, e.Err)
}

func (e *ValidatorError) Unwrap() error { return e.Err }
