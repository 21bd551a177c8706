package writer

import "github.com/josemlopez/Write-Properly/internal/ai"

// Resolve applies the mood and verbosity presets to a copy of base and
// returns it together with the effective points text.
func Resolve(base ai.Sampling, mood Mood, verbosity Verbosity, points string) (ai.Sampling, string) {
	s := base
	switch mood {
	case MoodFactual:
		s.Temperature = 0.01
	case MoodCreative:
		s.Temperature = 0.7
	}
	switch verbosity {
	case VerbosityVerbose:
		s.MaxTokens = 400
		points += verboseSuffix
	case VerbosityNormal:
		s.MaxTokens = 150
	}
	return s, points
}
