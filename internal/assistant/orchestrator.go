package assistant

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/cooltech/alex/internal/intent"
	"github.com/cooltech/alex/internal/memory"
	"github.com/cooltech/alex/internal/observability"
	"github.com/cooltech/alex/internal/safety"
	"github.com/cooltech/alex/internal/session"
	"github.com/cooltech/alex/internal/variation"
)

// ReplyKind classifies how a turn completed.
type ReplyKind string

const (
	KindDelivered ReplyKind = "delivered"
	KindDeclined  ReplyKind = "declined"
	KindFallback  ReplyKind = "fallback"
)

// fallbackReply is the apologetic answer for operational failures: engine
// errors, timeouts, crashed validators. It is never used for declines.
const fallbackReply = "I hit a small snag processing that request. " +
	"Could you rephrase what you're looking for? " +
	"I'm here to help you find the perfect refrigerator!"

// DefaultStarterProbability is the chance a delivered answer gets a friendly
// opener prefixed to it.
const DefaultStarterProbability = 0.3

const defaultHistoryLimit = 20

// Reply is the outcome of one processed message.
type Reply struct {
	Text     string          `json:"text"`
	Kind     ReplyKind       `json:"kind"`
	Category safety.Category `json:"category,omitempty"`
}

// OutcomeLabel renders the reply for metrics and logs: "delivered",
// "fallback", or "declined:<category>".
func (r Reply) OutcomeLabel() string {
	if r.Kind == KindDeclined && r.Category != "" {
		return string(r.Kind) + ":" + string(r.Category)
	}
	return string(r.Kind)
}

// Assistant runs the full turn pipeline: intent scan, input validation,
// catalog-grounded generation, output validation, response variation.
type Assistant struct {
	registry   *session.Registry
	transcript memory.Store
	generator  *Generator
	classifier *intent.Classifier
	input      *safety.Validator
	output     *safety.Validator
	metrics    *observability.Metrics

	starterProb  float64
	historyLimit int

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Params struct {
	Registry   *session.Registry
	Transcript memory.Store
	Generator  *Generator
	Classifier *intent.Classifier
	Input      *safety.Validator
	Output     *safety.Validator
	Metrics    *observability.Metrics

	// StarterProbability below zero means "use the default"; zero disables
	// starters entirely.
	StarterProbability float64
	HistoryLimit       int
	StarterSeed        int64
}

func New(p Params) *Assistant {
	if p.StarterProbability < 0 {
		p.StarterProbability = DefaultStarterProbability
	}
	if p.HistoryLimit <= 0 {
		p.HistoryLimit = defaultHistoryLimit
	}
	seed := p.StarterSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Assistant{
		registry:     p.Registry,
		transcript:   p.Transcript,
		generator:    p.Generator,
		classifier:   p.Classifier,
		input:        p.Input,
		output:       p.Output,
		metrics:      p.Metrics,
		starterProb:  p.StarterProbability,
		historyLimit: p.HistoryLimit,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// SendMessage processes one customer message. The returned session snapshot
// reflects the state after the turn. Turns within a session are serialized;
// the transcript is only extended when the reply was actually delivered.
func (a *Assistant) SendMessage(ctx context.Context, sessionID, message string) (Reply, *session.Session, error) {
	s := a.registry.GetOrCreate(sessionID)

	var reply Reply
	err := a.registry.WithTurn(s.ID, func(live *session.Session, declines *variation.Store) error {
		start := time.Now()
		reply = a.runTurn(ctx, live, declines, message)
		a.observeStage(observability.StageTurnTotal, time.Since(start))
		live.TurnCount++
		live.LastActivityAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return Reply{}, nil, err
	}

	a.recordTurn(reply)

	after, err := a.registry.Get(s.ID)
	if err != nil {
		return Reply{}, nil, err
	}
	return reply, after, nil
}

func (a *Assistant) runTurn(ctx context.Context, live *session.Session, declines *variation.Store, message string) Reply {
	// Fast keyword scan first. A confidential-info hit skips every other
	// stage, including the safety validators.
	if a.classifier.Classify(message) == intent.LabelConfidentialInfo {
		return decline(declines, safety.CategoryConfidentialInfo)
	}

	inStart := time.Now()
	inOutcome, err := a.input.Validate(ctx, message)
	a.observeStage(observability.StageInputValidation, time.Since(inStart))
	if err != nil {
		// A validator that could not run is an operational fault, not a
		// judgment on the message.
		return Reply{Text: fallbackReply, Kind: KindFallback}
	}
	if !inOutcome.Passed {
		return decline(declines, inOutcome.Category)
	}

	history, err := a.transcript.Transcript(ctx, live.ID, a.historyLimit)
	if err != nil {
		return Reply{Text: fallbackReply, Kind: KindFallback}
	}

	start := time.Now()
	answer, err := a.generator.Generate(ctx, inOutcome.Text, history)
	if a.metrics != nil {
		a.metrics.ObserveGenerationLatency(time.Since(start))
	}
	a.observeStage(observability.StageGeneration, time.Since(start))
	if err != nil {
		a.recordEngineError(err)
		return Reply{Text: fallbackReply, Kind: KindFallback}
	}

	outStart := time.Now()
	outOutcome, err := a.output.Validate(ctx, answer)
	a.observeStage(observability.StageOutputValidation, time.Since(outStart))
	if err != nil {
		return Reply{Text: fallbackReply, Kind: KindFallback}
	}
	if !outOutcome.Passed {
		return decline(declines, safety.CategoryOffTopic)
	}
	final := outOutcome.Text
	redacted := final != answer

	if a.roll() < a.starterProb {
		final = declines.SelectStarter() + " " + final
	}

	// Transcript updates happen only on the delivered path so declines and
	// fallbacks never pollute future prompts. Both turns land in one atomic
	// write: a half-saved exchange would leak an undelivered message into
	// later prompts.
	if err := a.transcript.SaveExchange(ctx,
		memory.TurnRecord{
			SessionID: live.ID,
			Role:      memory.RoleUser,
			Content:   message,
		},
		memory.TurnRecord{
			SessionID:   live.ID,
			Role:        memory.RoleAssistant,
			Content:     final,
			PIIRedacted: redacted,
		},
	); err != nil {
		return Reply{Text: fallbackReply, Kind: KindFallback}
	}

	return Reply{Text: final, Kind: KindDelivered}
}

func decline(declines *variation.Store, category safety.Category) Reply {
	return Reply{
		Text:     declines.SelectDecline(category),
		Kind:     KindDeclined,
		Category: category,
	}
}

func (a *Assistant) roll() float64 {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return a.rng.Float64()
}

func (a *Assistant) recordTurn(reply Reply) {
	if a.metrics == nil {
		return
	}
	a.metrics.TurnsTotal.WithLabelValues(string(reply.Kind)).Inc()
	if reply.Kind == KindDeclined {
		a.metrics.DeclinesTotal.WithLabelValues(string(reply.Category)).Inc()
	}
	a.metrics.Pipeline.ObserveIndicator(reply.OutcomeLabel())
	a.metrics.ActiveSessions.Set(float64(a.registry.Count()))
}

func (a *Assistant) recordEngineError(err error) {
	if a.metrics == nil {
		return
	}
	reason := "error"
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		reason = "timeout"
	case errors.Is(err, context.Canceled):
		reason = "canceled"
	}
	a.metrics.EngineErrors.WithLabelValues(reason).Inc()
}

func (a *Assistant) observeStage(stage string, d time.Duration) {
	if a.metrics == nil {
		return
	}
	a.metrics.Pipeline.Observe(stage, d)
}

// CreateSession opens a fresh session with no transcript.
func (a *Assistant) CreateSession() *session.Session {
	s := a.registry.GetOrCreate("")
	if a.metrics != nil {
		a.metrics.ActiveSessions.Set(float64(a.registry.Count()))
	}
	return s
}

// GetSession returns a snapshot of one session.
func (a *Assistant) GetSession(sessionID string) (*session.Session, error) {
	return a.registry.Get(sessionID)
}

// ListSessions snapshots all live sessions. It never mutates state.
func (a *Assistant) ListSessions() []*session.Session {
	return a.registry.List()
}

// ClearSession wipes a session's transcript, counters, and response history
// while keeping the session itself usable.
func (a *Assistant) ClearSession(ctx context.Context, sessionID string) error {
	if err := a.registry.Clear(sessionID); err != nil {
		return err
	}
	return a.transcript.ClearSession(ctx, sessionID)
}

// RemoveSession deletes a session and its transcript entirely.
func (a *Assistant) RemoveSession(ctx context.Context, sessionID string) error {
	if err := a.registry.Remove(sessionID); err != nil {
		return err
	}
	if err := a.transcript.ClearSession(ctx, sessionID); err != nil {
		return err
	}
	if a.metrics != nil {
		a.metrics.ActiveSessions.Set(float64(a.registry.Count()))
	}
	return nil
}

// RemoveAllSessions clears every live session and returns how many were
// removed.
func (a *Assistant) RemoveAllSessions(ctx context.Context) (int, error) {
	sessions := a.registry.List()
	for _, s := range sessions {
		if err := a.RemoveSession(ctx, s.ID); err != nil {
			return 0, err
		}
	}
	return len(sessions), nil
}
