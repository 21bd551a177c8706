package writer

import (
	"errors"
	"fmt"

	"github.com/josemlopez/Write-Properly/internal/ai"
)

var (
	ErrUnknownFunction     = errors.New("unrecognized function")
	ErrUnknownMood         = errors.New("unrecognized mood")
	ErrUnknownVerbosity    = errors.New("unrecognized verbosity")
	ErrUnknownContinuation = errors.New("unrecognized continuation choice")
	ErrEmptyText           = errors.New("text is required")
	ErrNothingToContinue   = errors.New("nothing to continue")
)

// Function is one of the fixed writing operations. Its value is the label
// shown in the UI.
type Function string

const (
	WriteProperly      Function = "Write Properly"
	FixGrammar         Function = "Write the same with Grammar Fixed"
	AnswerEmail        Function = "Answer the Email"
	AnswerQuestion     Function = "Answer a question"
	RemovePassiveVoice Function = "Remove Passive Voice"
	Summarize          Function = "Summarize"
)

// Functions lists every operation in display order.
var Functions = []Function{WriteProperly, FixGrammar, AnswerEmail, AnswerQuestion, RemovePassiveVoice, Summarize}

// ParseFunction matches a display label exactly (case-sensitive).
func ParseFunction(label string) (Function, error) {
	for _, f := range Functions {
		if string(f) == label {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFunction, label)
}

type Mood string

const (
	MoodDefault  Mood = ""
	MoodFactual  Mood = "Factual"
	MoodCreative Mood = "Creative"
)

var Moods = []Mood{MoodFactual, MoodCreative}

func ParseMood(s string) (Mood, error) {
	switch s {
	case "", "normal":
		return MoodDefault, nil
	case string(MoodFactual):
		return MoodFactual, nil
	case string(MoodCreative):
		return MoodCreative, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMood, s)
}

type Verbosity string

const (
	VerbosityDefault Verbosity = ""
	VerbosityNormal  Verbosity = "Normal"
	VerbosityVerbose Verbosity = "Verbose"
)

var Verbosities = []Verbosity{VerbosityNormal, VerbosityVerbose}

// ParseVerbosity accepts "Succinct" as the older name for Normal.
func ParseVerbosity(s string) (Verbosity, error) {
	switch s {
	case "", "normal":
		return VerbosityDefault, nil
	case string(VerbosityNormal), "Succinct":
		return VerbosityNormal, nil
	case string(VerbosityVerbose):
		return VerbosityVerbose, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVerbosity, s)
}

type Continuation string

const (
	New      Continuation = "New"
	Continue Continuation = "Continue"
)

var Continuations = []Continuation{New, Continue}

func ParseContinuation(s string) (Continuation, error) {
	switch s {
	case "", string(New):
		return New, nil
	case string(Continue):
		return Continue, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownContinuation, s)
}

// Request is one user interaction. Points carries the optional
// "include these points" text.
type Request struct {
	Function     Function
	Text         string
	Points       string
	Continuation Continuation
	PreviousText string
	Mood         Mood
	Verbosity    Verbosity
}

type Outcome string

const (
	Answered Outcome = "answered"
	// NoAnswer means the provider rejected the prompt or returned no candidates.
	NoAnswer Outcome = "no_answer"
)

type Result struct {
	Outcome    Outcome     `json:"outcome"`
	Text       string      `json:"output"`
	Prompt     string      `json:"prompt"`
	Sampling   ai.Sampling `json:"sampling"`
	Candidates int         `json:"candidates"`
}
