package engine

import (
	"strings"

	"github.com/tartampluch/go-hijri-date/internal/config"
)

// Language selects the locale used for month names.
type Language int

const (
	English Language = iota
	Arabic
)

// NumberLanguage selects the digit glyphs, independently of Language.
type NumberLanguage int

const (
	WesternDigits NumberLanguage = iota
	ArabicDigits
)

// YearSuffixStyle selects the era suffix printed when the year is shown.
type YearSuffixStyle int

const (
	SuffixAH YearSuffixStyle = iota
	SuffixHEH
)

// Position is where the indicator sits in the panel.
// The formatter ignores it.
type Position int

const (
	FarLeft Position = iota
	Left
	Center
	Right
	FarRight
)

// Positions lists every Position in display order.
var Positions = []Position{FarLeft, Left, Center, Right, FarRight}

// Code returns the ISO 639-1 code used for UI translations.
func (l Language) Code() string {
	if l == Arabic {
		return "ar"
	}
	return config.DefaultLanguage
}

// Valid reports whether l is a known language.
func (l Language) Valid() bool { return l == English || l == Arabic }

// Valid reports whether n is a known number language.
func (n NumberLanguage) Valid() bool { return n == WesternDigits || n == ArabicDigits }

// Valid reports whether s is a known suffix style.
func (s YearSuffixStyle) Valid() bool { return s == SuffixAH || s == SuffixHEH }

// Valid reports whether p is a known position.
func (p Position) Valid() bool { return p >= FarLeft && p <= FarRight }

// Text returns the suffix inserted for {suffix}, including its leading space.
func (s YearSuffixStyle) Text() string {
	if s == SuffixHEH {
		return config.SuffixHEH
	}
	return config.SuffixAH
}

// DisplayPreferences is an immutable snapshot of the user's display settings.
type DisplayPreferences struct {
	Language        Language
	NumberLanguage  NumberLanguage
	ShowYear        bool
	YearSuffixStyle YearSuffixStyle
	FormatTemplate  string

	// Position and TextColor are consumed by the display surface only.
	Position  Position
	TextColor string
}

// DefaultPreferences returns the settings used on first launch.
func DefaultPreferences() DisplayPreferences {
	return DisplayPreferences{
		Language:        English,
		NumberLanguage:  WesternDigits,
		ShowYear:        false,
		YearSuffixStyle: SuffixAH,
		FormatTemplate:  config.DefaultDateFormat,
		Position:        Left,
	}
}

var templateTokens = []string{config.TokenDay, config.TokenMonth, config.TokenYear, config.TokenSuffix}

// Tokens returns the recognized template tokens in quick-insert order.
func Tokens() []string {
	out := make([]string, len(templateTokens))
	copy(out, templateTokens)
	return out
}

// ValidTemplate reports whether the trimmed template contains at least one token.
// Templates failing this check are not saved by the settings window.
func ValidTemplate(template string) bool {
	t := strings.TrimSpace(template)
	for _, tok := range templateTokens {
		if strings.Contains(t, tok) {
			return true
		}
	}
	return false
}

// InsertToken inserts token into text at rune offset pos and returns the new
// text along with the cursor offset just after the inserted token.
// Out of range offsets are clamped.
func InsertToken(text string, pos int, token string) (string, int) {
	runes := []rune(text)
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	out := string(runes[:pos]) + token + string(runes[pos:])
	return out, pos + len([]rune(token))
}
