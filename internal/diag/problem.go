// Package diag defines the diagnostic record the parser, typed view, and
// type checker all emit through, and its deterministic ordering.
//
// Grounded on internal/syntax/types.go's Diagnostic/Severity shape
// (github.com/kpumuk/thrift-weaver), trimmed to the bit-exact field set
// spec'd for the bridge: start/end as line/column points, a severity tag,
// a source label, and a message.
package diag

import "github.com/felix-lang/felixcore/internal/text"

// Severity classifies a Problem. ERROR is currently the only value in use;
// the type is kept open for future extension (e.g. WARNING).
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String renders the SCREAMING_SNAKE_CASE tag the bridge serializes.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

// Source identifies which stage of the pipeline raised a Problem.
type Source string

// Source values used across the pipeline.
const (
	SourceLexer   Source = "lexer"
	SourceParser  Source = "parser"
	SourceChecker Source = "checker"
)

// Problem is a single diagnostic with a source-location range expressed in
// line/column points, matching the bridge's bit-exact serialization.
type Problem struct {
	Start    text.Point
	End      text.Point
	Severity Severity
	Source   Source
	Message  string
}

// New builds a Problem from a byte span, resolving it to line/column
// points with m.
func New(m *text.Mapper, span text.Span, sev Severity, src Source, message string) Problem {
	return Problem{
		Start:    m.SrcLoc(span.Start),
		End:      m.SrcLoc(span.End),
		Severity: sev,
		Source:   src,
		Message:  message,
	}
}

// Less orders Problems by start location, then end location, then source,
// then message — a total, deterministic order independent of emission
// order, so two runs over the same input always report diagnostics in the
// same sequence regardless of which rule or pass produced them first.
func Less(a, b Problem) bool {
	if a.Start.Line != b.Start.Line {
		return a.Start.Line < b.Start.Line
	}
	if a.Start.Column != b.Start.Column {
		return a.Start.Column < b.Start.Column
	}
	if a.End.Line != b.End.Line {
		return a.End.Line < b.End.Line
	}
	if a.End.Column != b.End.Column {
		return a.End.Column < b.End.Column
	}
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	return a.Message < b.Message
}

// Sort orders problems in place per Less, using a simple insertion sort —
// diagnostic lists are small enough that clarity wins over asymptotics.
func Sort(problems []Problem) {
	for i := 1; i < len(problems); i++ {
		for j := i; j > 0 && Less(problems[j], problems[j-1]); j-- {
			problems[j], problems[j-1] = problems[j-1], problems[j]
		}
	}
}
