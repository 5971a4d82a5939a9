package ingredient

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode selects how Extractor splits and parses its input
type Mode int

const (
	// ModeStructured treats each line as one ingredient and decomposes it into
	// quantity, unit, name and notes.
	ModeStructured Mode = iota
	// ModeNames splits a run-on sentence on commas and spaced hyphens and keeps
	// only normalized names.
	ModeNames
)

func (m Mode) String() string {
	switch m {
	case ModeStructured:
		return "structured"
	case ModeNames:
		return "names"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a user supplied mode name to a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "structured", "lines":
		return ModeStructured, nil
	case "names", "sentence":
		return ModeNames, nil
	default:
		return ModeStructured, fmt.Errorf("unknown extraction mode %q", s)
	}
}

var (
	// quantity (integer, fraction or range), unit token, name, optional ", notes"
	linePattern   = regexp.MustCompile(`(?i)^(\d+(?:\s*[/-]\s*\d+)?)\s*([a-z]*)\s+(.+?)(?:\s*,\s*(.+))?$`)
	bulletPattern = regexp.MustCompile(`^[-•*]\s*`)
	lineBreaks    = regexp.MustCompile(`\r\n|\r|\n`)
	// comma, hyphen surrounded by whitespace, or a line break
	sentenceSeparators = regexp.MustCompile(`,|\s+-\s+|\r\n|\r|\n`)
)

// DefaultUnits is the known measurement vocabulary
var DefaultUnits = []string{
	"g", "kg", "mg", "oz", "lb", "ml", "l", "tsp", "tbsp",
	"cup", "cups", "pint", "quart", "gallon", "pinch", "dash",
	"clove", "cloves", "slice", "slices", "piece", "pieces",
	"can", "jar", "package",
}

// DefaultStopwords are dropped by sentence-oriented extraction
var DefaultStopwords = []string{"and", "or"}

// Extractor parses ingredient text. It holds no mutable state and is safe for
// concurrent use.
type Extractor struct {
	units     map[string]struct{}
	stopwords map[string]struct{}
}

// Option configures an Extractor
type Option func(*Extractor)

// WithUnits replaces the known unit vocabulary
func WithUnits(units ...string) Option {
	return func(e *Extractor) {
		e.units = toSet(units)
	}
}

// WithStopwords replaces the stopword set used by ModeNames
func WithStopwords(words ...string) Option {
	return func(e *Extractor) {
		e.stopwords = toSet(words)
	}
}

// NewExtractor creates an Extractor with the default vocabulary
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		units:     toSet(DefaultUnits),
		stopwords: toSet(DefaultStopwords),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses line-oriented text, one ingredient per non-blank line. Every
// line that still has text after bullet stripping yields exactly one record.
func (e *Extractor) Extract(text string) []Record {
	records := []Record{}
	for _, line := range lineBreaks.Split(text, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rec, ok := e.parseLine(line); ok {
			records = append(records, rec)
		}
	}
	return records
}

// ExtractNames parses a run-on sentence such as "tomatoes, basil - garlic"
// into lowercase ingredient names.
func (e *Extractor) ExtractNames(text string) []string {
	names := []string{}
	for _, fragment := range sentenceSeparators.Split(text, -1) {
		name := strings.ToLower(strings.TrimSpace(fragment))
		if name == "" {
			continue
		}
		if _, stop := e.stopwords[name]; stop {
			continue
		}
		names = append(names, name)
	}
	return names
}

// ExtractMode runs the extraction selected by mode. Names mode records carry
// only a name and the default quantity.
func (e *Extractor) ExtractMode(mode Mode, text string) []Record {
	if mode != ModeNames {
		return e.Extract(text)
	}
	names := e.ExtractNames(text)
	records := make([]Record, 0, len(names))
	for _, name := range names {
		records = append(records, Record{Name: name, Quantity: DefaultQuantity})
	}
	return records
}

// KnownUnit reports whether unit is part of the measurement vocabulary
func (e *Extractor) KnownUnit(unit string) bool {
	_, ok := e.units[strings.ToLower(unit)]
	return ok
}

func (e *Extractor) parseLine(line string) (Record, bool) {
	line = strings.TrimSpace(bulletPattern.ReplaceAllString(line, ""))
	if line == "" {
		return Record{}, false
	}

	if m := linePattern.FindStringSubmatch(line); m != nil {
		name := strings.TrimSpace(m[3])
		if name != "" {
			return Record{
				Quantity: m[1],
				Unit:     strings.ToLower(m[2]),
				Name:     name,
				Notes:    strings.TrimSpace(m[4]),
			}, true
		}
	}

	return Record{Name: line, Quantity: DefaultQuantity}, true
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
