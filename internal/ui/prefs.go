package ui

import (
	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-hijri-date/internal/config"
	"github.com/tartampluch/go-hijri-date/internal/engine"
)

// LoadPreferences maps the flat preference store onto a DisplayPreferences
// snapshot. Unknown enum values fall back to the defaults.
func LoadPreferences(p fyne.Preferences) engine.DisplayPreferences {
	def := engine.DefaultPreferences()

	out := engine.DisplayPreferences{
		Language:        engine.Language(p.IntWithFallback(config.PrefLanguage, int(def.Language))),
		NumberLanguage:  engine.NumberLanguage(p.IntWithFallback(config.PrefNumberLanguage, int(def.NumberLanguage))),
		ShowYear:        p.BoolWithFallback(config.PrefShowYear, def.ShowYear),
		YearSuffixStyle: engine.YearSuffixStyle(p.IntWithFallback(config.PrefYearSuffixStyle, int(def.YearSuffixStyle))),
		FormatTemplate:  p.StringWithFallback(config.PrefDateFormat, def.FormatTemplate),
		Position:        engine.Position(p.IntWithFallback(config.PrefPosition, int(def.Position))),
		TextColor:       p.String(config.PrefTextColor),
	}

	if !out.Language.Valid() {
		out.Language = def.Language
	}
	if !out.NumberLanguage.Valid() {
		out.NumberLanguage = def.NumberLanguage
	}
	if !out.YearSuffixStyle.Valid() {
		out.YearSuffixStyle = def.YearSuffixStyle
	}
	if !out.Position.Valid() {
		out.Position = def.Position
	}
	if _, err := ParseHexColor(out.TextColor); err != nil {
		out.TextColor = ""
	}
	return out
}

// SavePreferences writes every field of d to the preference store.
func SavePreferences(p fyne.Preferences, d engine.DisplayPreferences) {
	p.SetInt(config.PrefLanguage, int(d.Language))
	p.SetInt(config.PrefNumberLanguage, int(d.NumberLanguage))
	p.SetBool(config.PrefShowYear, d.ShowYear)
	p.SetInt(config.PrefYearSuffixStyle, int(d.YearSuffixStyle))
	p.SetString(config.PrefDateFormat, d.FormatTemplate)
	p.SetInt(config.PrefPosition, int(d.Position))
	p.SetString(config.PrefTextColor, d.TextColor)
}

// ExportDays returns the stored feed length, clamped to the allowed range.
func ExportDays(p fyne.Preferences) int {
	days := p.IntWithFallback(config.PrefExportDays, config.DefaultExportDays)
	if days < config.MinExportDays {
		return config.MinExportDays
	}
	if days > config.MaxExportDays {
		return config.MaxExportDays
	}
	return days
}
