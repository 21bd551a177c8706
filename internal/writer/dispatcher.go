package writer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/josemlopez/Write-Properly/internal/ai"
	"github.com/josemlopez/Write-Properly/internal/metrics"
)

// Dispatcher turns a Request into a single completion call. It holds no
// per-request state; every call derives its own Sampling from base.
type Dispatcher struct {
	provider ai.Provider
	base     ai.Sampling
	sessions *Sessions
}

func NewDispatcher(p ai.Provider, base ai.Sampling) *Dispatcher {
	return &Dispatcher{provider: p, base: base}
}

// WithSessions enables continuation from a session's last answer.
func (d *Dispatcher) WithSessions(s *Sessions) *Dispatcher {
	d.sessions = s
	return d
}

func (d *Dispatcher) Base() ai.Sampling { return d.base }

func (d *Dispatcher) Run(ctx context.Context, req Request) (Result, error) {
	if _, err := ParseFunction(string(req.Function)); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return Result{}, ErrEmptyText
	}
	if req.Function == AnswerEmail && req.Continuation == Continue && req.PreviousText == "" {
		return Result{}, ErrNothingToContinue
	}

	s, points := Resolve(d.base, req.Mood, req.Verbosity, req.Points)
	req.Points = points
	prompt, err := BuildPrompt(req)
	if err != nil {
		return Result{}, err
	}

	log.Debug().
		Str("function", string(req.Function)).
		Str("mood", string(req.Mood)).
		Str("verbosity", string(req.Verbosity)).
		Float64("temperature", s.Temperature).
		Int("maxTokens", s.MaxTokens).
		Msg("sampling resolved")

	fn := string(req.Function)
	start := time.Now()
	choices, err := d.provider.Complete(ctx, prompt, s)
	metrics.CompletionDuration.WithLabelValues(fn).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Outcomes.WithLabelValues(fn, "error").Inc()
		return Result{}, fmt.Errorf("%s: %w", fn, err)
	}

	res := Result{Prompt: prompt, Sampling: s, Candidates: len(choices)}
	if len(choices) == 0 {
		res.Outcome = NoAnswer
	} else {
		res.Outcome = Answered
		res.Text = strings.TrimSpace(choices[0])
	}
	metrics.Outcomes.WithLabelValues(fn, string(res.Outcome)).Inc()
	return res, nil
}

// RunSession is Run scoped to a UI session: a Continue without previous text
// picks up the session's last answer, and an answer becomes the new one.
func (d *Dispatcher) RunSession(ctx context.Context, sessionID string, req Request) (Result, error) {
	if d.sessions != nil && req.Continuation == Continue && req.PreviousText == "" {
		if last, ok := d.sessions.Last(sessionID); ok {
			req.PreviousText = last
		}
	}
	res, err := d.Run(ctx, req)
	if err != nil {
		return res, err
	}
	if d.sessions != nil && res.Outcome == Answered {
		d.sessions.Remember(sessionID, res.Text)
	}
	return res, nil
}
