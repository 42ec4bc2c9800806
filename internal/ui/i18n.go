package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-hijri-date/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeExt    = ".json"
)

// SetupI18n loads the embedded message files. A file only counts as a UI
// language when its name parses as a BCP 47 tag and the date formatter can
// render that language too.
func (app *HijriDateApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detected []string
	for _, entry := range entries {
		tag, ok := localeTagFromFile(entry.Name())
		if !ok {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, path.Join(localeDir, entry.Name())); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, entry.Name(),
				config.LogKeyError, err,
			)
			continue
		}
		detected = append(detected, tag.String())
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, tag.String(),
			config.LogKeyFile, entry.Name(),
		)
	}

	app.SupportedLanguages = detected
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// localeTagFromFile extracts the language of "active.<tag>.json" and checks
// it against the display languages.
func localeTagFromFile(name string) (language.Tag, bool) {
	if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeExt) {
		slog.Debug(config.MsgLocaleSkip,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyFile, name,
		)
		return language.Und, false
	}

	tag, err := language.Parse(strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeExt))
	if err != nil || !isDisplayLanguage(tag) {
		slog.Warn(config.MsgLocaleBadName,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyFile, name,
		)
		return language.Und, false
	}
	return tag, true
}

func isDisplayLanguage(tag language.Tag) bool {
	base, _ := tag.Base()
	for _, code := range config.SupportedLanguages {
		if base.String() == code {
			return true
		}
	}
	return false
}

// UpdateLocalizer refreshes the translator. The UI speaks the same language
// as the date it displays, falling back to English.
func (app *HijriDateApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	lang := app.CurrentPreferences().Language.Code()
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang, config.DefaultLanguage)
}

// GetMsg is a helper to translate a key safely.
func (app *HijriDateApp) GetMsg(key string) string {
	return app.GetMsgData(key, nil)
}

// GetMsgData translates a key whose message uses template fields such as
// {{.Path}}. Missing keys come back unchanged.
func (app *HijriDateApp) GetMsgData(key string, data map[string]interface{}) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
