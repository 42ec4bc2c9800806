package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-hijri-date/internal/config"
	"github.com/tartampluch/go-hijri-date/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockTray implements minimal system tray functionality for headless testing.
type MockTray struct {
	Menu *fyne.Menu
}

func (m *MockTray) SetSystemTrayMenu(menu *fyne.Menu) {
	m.Menu = menu
}

func (m *MockTray) SetSystemTrayIcon(icon fyne.Resource) {}
func (m *MockTray) SetSystemTrayWindow(w fyne.Window)    {}
func (m *MockTray) Run()                                 {}
func (m *MockTray) Quit()                                {}

// stubResolver answers with fixed parts for 15 Ramadan 1446 in both scripts.
var stubResolver = engine.ResolverFunc(func(t time.Time, lang engine.Language, num engine.NumberLanguage) (engine.HijriParts, error) {
	p := engine.HijriParts{Day: "15", Month: "Ramadan", Year: "1446"}
	if lang == engine.Arabic {
		p.Month = "رمضان"
	}
	if num == engine.ArabicDigits {
		p.Day, p.Year = "١٥", "١٤٤٦"
	}
	return p, nil
})

var testNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

// setupTestApp initializes a headless Fyne app with a deterministic formatter.
func setupTestApp(t *testing.T) (*HijriDateApp, *MockTray) {
	a := test.NewApp()
	t.Cleanup(a.Quit)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	formatter := &engine.Formatter{Clock: engine.FixedClock(testNow), Resolver: stubResolver}
	app := NewHijriDateApp(a, ctx, formatter)

	mockTray := &MockTray{}
	app.Tray = mockTray

	// The year is hidden on first launch; most tests want the full label.
	app.Preferences.SetBool(config.PrefShowYear, true)

	// Manually load I18n as Run() is skipped
	app.SetupI18n()

	return app, mockTray
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _ := setupTestApp(t)

	app.Preferences.SetInt(config.PrefLanguage, int(engine.English))
	app.UpdateLocalizer()
	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyMenuSettings))

	app.Preferences.SetInt(config.PrefLanguage, int(engine.Arabic))
	app.UpdateLocalizer()
	assert.Equal(t, "الإعدادات...", app.GetMsg(config.TKeyMenuSettings))
}

func TestLocalization_SupportedLanguages(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.ElementsMatch(t, []string{"en", "ar"}, app.SupportedLanguages)
}

func TestLocalization_TemplateData(t *testing.T) {
	app, _ := setupTestApp(t)
	msg := app.GetMsgData(config.TKeyNotifExported, map[string]interface{}{"Path": "/tmp/x.ics"})
	assert.Contains(t, msg, "/tmp/x.ics")
}

func TestLocalization_MissingKey(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.Equal(t, "no_such_key", app.GetMsg("no_such_key"))
}

// -----------------------------------------------------------------------------
// Label Tests
// -----------------------------------------------------------------------------

func TestRefreshLabel_Default(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.Equal(t, config.FallbackDate, app.Label(), "label starts as the placeholder")

	app.RefreshLabel()
	assert.Equal(t, "15 Ramadan 1446 AH", app.Label())
}

func TestRefreshLabel_UpdatesTray(t *testing.T) {
	app, mockTray := setupTestApp(t)
	app.setupTrayMenu()
	require.NotNil(t, mockTray.Menu)

	app.RefreshLabel()
	assert.Equal(t, "15 Ramadan 1446 AH", app.TrayStatusItem.Label)
	assert.Same(t, app.TrayStatusItem, mockTray.Menu.Items[0])
}

func TestRefreshLabel_ArabicPreferences(t *testing.T) {
	app, _ := setupTestApp(t)
	SavePreferences(app.Preferences, engine.DisplayPreferences{
		Language:        engine.Arabic,
		NumberLanguage:  engine.ArabicDigits,
		ShowYear:        true,
		YearSuffixStyle: engine.SuffixHEH,
		FormatTemplate:  config.DefaultDateFormat,
	})

	app.RefreshLabel()
	assert.Equal(t, "١٥ رمضان ١٤٤٦ هـ", app.Label())
}

func TestRefreshLabel_ResolverFailure(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Formatter.Resolver = engine.ResolverFunc(func(time.Time, engine.Language, engine.NumberLanguage) (engine.HijriParts, error) {
		return engine.HijriParts{}, errors.New("boom")
	})

	app.RefreshLabel()
	assert.Equal(t, config.FallbackDate, app.Label())
}

func TestRefreshLabel_UpdatesHeadline(t *testing.T) {
	app, _ := setupTestApp(t)
	var got string
	app.daysHeadline = func(text string) { got = text }

	app.RefreshLabel()
	assert.Equal(t, "15 Ramadan 1446 AH", got)
}

func TestPreferences_ChangeRefreshesLabel(t *testing.T) {
	app, _ := setupTestApp(t)
	app.watchPreferences()
	app.RefreshLabel()

	app.Preferences.SetBool(config.PrefShowYear, false)

	assert.Eventually(t, func() bool {
		return app.Label() == "15 Ramadan"
	}, time.Second, 10*time.Millisecond)
}

// TestSaveSettings_RendersOnce checks that writing a whole settings batch
// re-renders the label once, not once per key.
func TestSaveSettings_RendersOnce(t *testing.T) {
	app, _ := setupTestApp(t)
	app.setupTrayMenu()
	sw := app.newSettingsWidgets(app.CurrentPreferences())
	sw.langSelect.SetSelectedIndex(int(engine.Arabic))
	sw.checkShowYear.SetChecked(false)

	var renders atomic.Int32
	app.Formatter.Resolver = engine.ResolverFunc(func(t time.Time, lang engine.Language, num engine.NumberLanguage) (engine.HijriParts, error) {
		renders.Add(1)
		return stubResolver(t, lang, num)
	})
	app.watchPreferences()

	app.saveSettings(sw)

	assert.Equal(t, "15 رمضان", app.Label())
	assert.Equal(t, "الإعدادات...", app.TraySettingsItem.Label)
	assert.Never(t, func() bool { return renders.Load() > 1 }, 200*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, int32(1), renders.Load())
}

func TestApplyPreferences_SkipsUnchanged(t *testing.T) {
	app, _ := setupTestApp(t)

	var renders atomic.Int32
	app.Formatter.Resolver = engine.ResolverFunc(func(t time.Time, lang engine.Language, num engine.NumberLanguage) (engine.HijriParts, error) {
		renders.Add(1)
		return stubResolver(t, lang, num)
	})

	app.applyPreferences()
	app.applyPreferences()
	assert.Equal(t, int32(1), renders.Load())

	app.Preferences.SetBool(config.PrefShowYear, false)
	app.applyPreferences()
	assert.Equal(t, int32(2), renders.Load())
	assert.Equal(t, "15 Ramadan", app.Label())
}

// -----------------------------------------------------------------------------
// Tray Menu Tests
// -----------------------------------------------------------------------------

func TestTrayMenu_Labels(t *testing.T) {
	app, mockTray := setupTestApp(t)
	app.setupTrayMenu()

	require.NotNil(t, mockTray.Menu)
	require.Len(t, mockTray.Menu.Items, 5)
	assert.True(t, mockTray.Menu.Items[1].IsSeparator)
	assert.Equal(t, "Upcoming days...", app.TrayDaysItem.Label)
	assert.Equal(t, "Export calendar...", app.TrayExportItem.Label)
	assert.Equal(t, "Settings...", app.TraySettingsItem.Label)

	app.Preferences.SetInt(config.PrefLanguage, int(engine.Arabic))
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	assert.Equal(t, "الإعدادات...", app.TraySettingsItem.Label)
}

func TestRefreshTrayMenu_NoMenu(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.NotPanics(t, app.RefreshTrayMenu)
}

// -----------------------------------------------------------------------------
// Export Tests
// -----------------------------------------------------------------------------

func TestExportFeed(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetInt(config.PrefExportDays, 3)

	var buf bytes.Buffer
	require.NoError(t, app.ExportFeed(context.Background(), &buf))

	cal, err := ical.NewDecoder(&buf).Decode()
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 3)

	summary, err := events[0].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "15 Ramadan 1446 AH", summary)
}

func TestExportFeed_CancelledContext(t *testing.T) {
	app, _ := setupTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := app.ExportFeed(ctx, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExportFeed_WriteError(t *testing.T) {
	app, _ := setupTestApp(t)
	err := app.ExportFeed(context.Background(), failingWriter{})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), config.ErrExportWrite))
}

// -----------------------------------------------------------------------------
// Window Tests
// -----------------------------------------------------------------------------

func TestSettingsWindow_Singleton(t *testing.T) {
	app, _ := setupTestApp(t)

	app.ShowSettingsWindow()
	require.NotNil(t, app.Window)
	first := app.Window

	app.ShowSettingsWindow()
	assert.Same(t, first, app.Window, "second call focuses the open window")

	first.Close()
	assert.Nil(t, app.Window)
}

func TestSettingsWidgets_PendingAndSave(t *testing.T) {
	app, _ := setupTestApp(t)
	sw := app.newSettingsWidgets(app.CurrentPreferences())

	assert.Equal(t, "15 Ramadan 1446 AH", sw.preview.Text)

	sw.langSelect.SetSelectedIndex(int(engine.Arabic))
	sw.numSelect.SetSelectedIndex(int(engine.ArabicDigits))
	sw.suffixRadio.SetSelected(suffixOptions[engine.SuffixHEH])
	sw.formatEntry.SetText("  {day} {month}  ")
	sw.entryDays.SetText("7")

	app.updatePreview(sw)
	p := sw.pending()
	assert.Equal(t, engine.Arabic, p.Language)
	assert.Equal(t, engine.ArabicDigits, p.NumberLanguage)
	assert.Equal(t, engine.SuffixHEH, p.YearSuffixStyle)
	assert.Equal(t, "١٥ رمضان", sw.preview.Text, "preview follows pending values")

	app.saveSettings(sw)
	saved := app.CurrentPreferences()
	assert.Equal(t, engine.Arabic, saved.Language)
	assert.Equal(t, "{day} {month}", saved.FormatTemplate)
	assert.Equal(t, 7, ExportDays(app.Preferences))
}

func TestSettingsWidgets_SuffixFollowsShowYear(t *testing.T) {
	app, _ := setupTestApp(t)
	sw := app.newSettingsWidgets(app.CurrentPreferences())

	assert.False(t, sw.suffixRadio.Disabled())
	sw.checkShowYear.SetChecked(false)
	assert.True(t, sw.suffixRadio.Disabled())
	assert.Equal(t, "15 Ramadan", sw.preview.Text)
}

func TestSettingsWidgets_Validators(t *testing.T) {
	app, _ := setupTestApp(t)
	sw := app.newSettingsWidgets(app.CurrentPreferences())

	sw.formatEntry.SetText("no tokens here")
	assert.Error(t, sw.formatEntry.Validate())
	sw.formatEntry.SetText("{month}")
	assert.NoError(t, sw.formatEntry.Validate())

	sw.entryDays.SetText("0")
	assert.Error(t, sw.entryDays.Validate())
	sw.entryDays.SetText("3661")
	assert.Error(t, sw.entryDays.Validate())
	sw.entryDays.SetText("30")
	assert.NoError(t, sw.entryDays.Validate())
}

func TestSettingsWidgets_PendingColor(t *testing.T) {
	app, _ := setupTestApp(t)
	sw := app.newSettingsWidgets(app.CurrentPreferences())

	app.setPendingColor(sw, "#ff0000")
	assert.Equal(t, "#ff0000", sw.pending().TextColor)
	assert.Equal(t, sw.swatch.FillColor, sw.preview.Color)

	app.setPendingColor(sw, "")
	assert.Empty(t, sw.pending().TextColor)
}

func TestPositionLabels(t *testing.T) {
	app, _ := setupTestApp(t)
	labels := app.positionLabels()
	require.Len(t, labels, len(engine.Positions))
	assert.Equal(t, "Far Left", labels[engine.FarLeft])
	assert.Equal(t, "Far Right", labels[engine.FarRight])
}

func TestDaysWindow_Singleton(t *testing.T) {
	app, _ := setupTestApp(t)
	app.RefreshLabel()

	app.ShowDaysWindow()
	require.NotNil(t, app.daysWindow)
	require.NotNil(t, app.daysHeadline)
	first := app.daysWindow

	app.ShowDaysWindow()
	assert.Same(t, first, app.daysWindow)

	first.Close()
	assert.Nil(t, app.daysWindow)
	assert.Nil(t, app.daysHeadline)
}
