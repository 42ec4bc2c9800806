package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits. Arabic-Indic digits
// typed on an Arabic keyboard are stored as their ASCII equivalents.
type NumericalEntry struct {
	widget.Entry
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune filters keystrokes down to digits.
// Pasted text bypasses this filter; the Validator catches it.
func (e *NumericalEntry) TypedRune(r rune) {
	if d, ok := asciiDigit(r); ok {
		e.Entry.TypedRune(d)
	}
}

// Keyboard requests the numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// IntValue parses the current text, accepting either digit set.
func (e *NumericalEntry) IntValue() (int, error) {
	return strconv.Atoi(strings.Map(func(r rune) rune {
		if d, ok := asciiDigit(r); ok {
			return d
		}
		return r
	}, strings.TrimSpace(e.Text)))
}

func asciiDigit(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r, true
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠'), true
	}
	return 0, false
}
