package writer

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxTextLength is counted in characters (runes), not bytes.
const MaxTextLength = 10000

var ErrTextTooLong = errors.New("text too long")

// Form is the raw, label-based input shared by the web, socket and CLI
// front ends.
type Form struct {
	Function     string `json:"function"`
	Text         string `json:"text"`
	Points       string `json:"points"`
	Continuation string `json:"continuation"`
	PreviousText string `json:"previousText"`
	Mood         string `json:"mood"`
	Verbosity    string `json:"verbosity"`
}

// Request validates the labels and returns the typed request.
func (f Form) Request() (Request, error) {
	fn, err := ParseFunction(f.Function)
	if err != nil {
		return Request{}, err
	}
	mood, err := ParseMood(f.Mood)
	if err != nil {
		return Request{}, err
	}
	verbosity, err := ParseVerbosity(f.Verbosity)
	if err != nil {
		return Request{}, err
	}
	cont, err := ParseContinuation(f.Continuation)
	if err != nil {
		return Request{}, err
	}
	if n := utf8.RuneCountInString(f.Text); n > MaxTextLength {
		return Request{}, fmt.Errorf("%w: %d characters (max %d)", ErrTextTooLong, n, MaxTextLength)
	}
	return Request{
		Function:     fn,
		Text:         f.Text,
		Points:       f.Points,
		Continuation: cont,
		PreviousText: f.PreviousText,
		Mood:         mood,
		Verbosity:    verbosity,
	}, nil
}

// IsInvalidInput reports whether err was caused by the caller's input rather
// than by the completion provider.
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		ErrUnknownFunction, ErrUnknownMood, ErrUnknownVerbosity, ErrUnknownContinuation,
		ErrEmptyText, ErrTextTooLong, ErrNothingToContinue,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
