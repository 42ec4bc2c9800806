package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/tartampluch/go-hijri-date/internal/config"
)

// ErrFormatting is the single failure class of the formatter. Format never
// returns it; Render does, wrapped around the underlying cause.
var ErrFormatting = errors.New(config.ErrFormatting)

// Formatter turns the current instant and a preferences snapshot into the
// indicator label. It holds no mutable state and is safe for concurrent use.
type Formatter struct {
	Clock    Clock
	Resolver PartsResolver
}

// NewFormatter returns a Formatter backed by the system clock and the
// Umm al-Qura resolver.
func NewFormatter() *Formatter {
	return &Formatter{
		Clock:    RealClock{},
		Resolver: UmmAlQuraResolver{},
	}
}

// Format renders the label for the formatter's clock reading.
// It always returns a non-empty string; failures yield config.FallbackDate.
func (f *Formatter) Format(prefs DisplayPreferences) string {
	var now time.Time
	if f.Clock != nil {
		now = f.Clock.Now()
	} else {
		now = time.Now()
	}
	return f.FormatAt(now, prefs)
}

// FormatAt renders the label for an explicit instant.
func (f *Formatter) FormatAt(now time.Time, prefs DisplayPreferences) string {
	out, err := f.Render(now, prefs)
	if err != nil {
		slog.Debug(config.MsgFormatFallback,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyTemplate, prefs.FormatTemplate,
			config.LogKeyError, err,
		)
		return config.FallbackDate
	}
	return out
}

// Render is FormatAt without the fallback substitution. The returned error
// always wraps ErrFormatting. A successful result is never empty.
func (f *Formatter) Render(now time.Time, prefs DisplayPreferences) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = fmt.Errorf("%w: %s: %v", ErrFormatting, config.ErrFormatPanic, r)
		}
	}()

	if f.Resolver == nil {
		return "", fmt.Errorf("%w: %w", ErrFormatting, errNoResolver)
	}

	parts, err := f.Resolver.Resolve(now, prefs.Language, prefs.NumberLanguage)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFormatting, err)
	}

	out = Normalize(Substitute(prefs.FormatTemplate, parts, prefs.ShowYear, prefs.YearSuffixStyle))
	if out == "" {
		return "", fmt.Errorf("%w: empty result for template %q", ErrFormatting, prefs.FormatTemplate)
	}
	return out, nil
}

// Substitute replaces the template tokens. Day and month are skipped when
// unresolved, leaving the token in place; year and suffix are always replaced.
// The order of replacement is day, month, year, suffix.
func Substitute(template string, parts HijriParts, showYear bool, suffix YearSuffixStyle) string {
	out := template
	if parts.Day != "" {
		out = strings.ReplaceAll(out, config.TokenDay, parts.Day)
	}
	if parts.Month != "" {
		out = strings.ReplaceAll(out, config.TokenMonth, parts.Month)
	}

	year, suffixText := "", ""
	if showYear {
		year = parts.Year
		suffixText = suffix.Text()
	}
	out = strings.ReplaceAll(out, config.TokenYear, year)
	out = strings.ReplaceAll(out, config.TokenSuffix, suffixText)
	return out
}

// ws matches any Unicode space. RE2's \s is ASCII only, and templates typed
// on RTL layouts often carry no-break spaces.
const ws = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var (
	reSpaces      = regexp.MustCompile(ws + `+`)
	reCommaRun    = regexp.MustCompile(`,` + ws + `*,+`)
	reCommas      = regexp.MustCompile(`,+`)
	reCommaSpaces = regexp.MustCompile(ws + `*,` + ws + `*`)
	reEdges       = regexp.MustCompile(`^` + ws + `+|` + ws + `+$|,+$|,+` + ws + `+$`)
)

// maxNormalizePasses bounds the fixed-point loop in Normalize. Real templates
// settle after one or two passes.
const maxNormalizePasses = 8

// Normalize cleans up separators left behind by empty substitutions:
// whitespace runs become one space, comma runs become one comma followed by
// a space, and leading/trailing whitespace and trailing commas are removed.
// The cleanup is repeated until the string is stable, so Normalize is idempotent.
func Normalize(s string) string {
	for i := 0; i < maxNormalizePasses; i++ {
		next := normalizeOnce(s)
		if next == s {
			return next
		}
		s = next
	}
	return s
}

func normalizeOnce(s string) string {
	s = reSpaces.ReplaceAllString(s, " ")
	s = reCommaRun.ReplaceAllString(s, ",")
	s = reCommas.ReplaceAllString(s, ", ")
	s = reCommaSpaces.ReplaceAllString(s, ", ")
	s = reEdges.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
