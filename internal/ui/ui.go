package ui

import (
	"context"
	_ "embed"
	"log/slog"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-hijri-date/internal/config"
	"github.com/tartampluch/go-hijri-date/internal/engine"
)

//go:embed Icon.svg
var appIconData []byte

// HijriDateApp encapsulates the UI state, preferences, and the refresh loop.
// It is the display surface: it owns the mutable preference store and asks
// the stateless formatter for a new label whenever time or settings change.
type HijriDateApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Formatter *engine.Formatter
	Feed      *engine.FeedGenerator
	Clock     engine.Clock // Injected clock for testability
	Refresher *Refresher

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayDaysItem     *fyne.MenuItem
	TrayExportItem   *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string

	// Label State
	labelMut sync.RWMutex
	label    string

	// applied is the snapshot last pushed to the UI; saving mutes the
	// change listener while a batch of keys is written.
	applied engine.DisplayPreferences
	saving  atomic.Bool

	daysWindow   fyne.Window
	daysHeadline func(text string)
}

// NewHijriDateApp constructs the application and wires dependencies.
func NewHijriDateApp(a fyne.App, ctx context.Context, formatter *engine.Formatter) *HijriDateApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	clock := formatter.Clock
	if clock == nil {
		clock = engine.RealClock{}
	}

	return &HijriDateApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Formatter:          formatter,
		Feed:               &engine.FeedGenerator{Formatter: formatter, Clock: clock},
		Clock:              clock,
		SupportedLanguages: config.SupportedLanguages,
		label:              config.FallbackDate,
	}
}

// Run launches the refresh scheduler and the main UI loop.
func (app *HijriDateApp) Run() error {
	app.SetupI18n()
	app.watchPreferences()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.RefreshLabel()

	r, err := NewRefresher(config.RefreshSchedule, func() {
		fyne.Do(app.RefreshLabel)
	})
	if err != nil {
		return err
	}
	app.Refresher = r
	r.Start()
	defer r.Stop()

	app.App.Run()
	return nil
}

// watchPreferences re-renders the label immediately after any settings change.
func (app *HijriDateApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		if app.saving.Load() {
			return
		}
		app.applyPreferences()
	})
}

// applyPreferences refreshes the localizer, menu and label when the stored
// snapshot differs from the one last applied.
func (app *HijriDateApp) applyPreferences() {
	prefs := app.CurrentPreferences()

	app.labelMut.Lock()
	if prefs == app.applied {
		app.labelMut.Unlock()
		return
	}
	app.applied = prefs
	app.labelMut.Unlock()

	slog.Debug(config.MsgPrefsChanged, config.LogKeyComponent, config.CompUI)
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.RefreshLabel()
}

// setupTrayMenu constructs the system tray menu.
func (app *HijriDateApp) setupTrayMenu() {
	// The status item shows the date and opens the upcoming days window.
	app.TrayStatusItem = fyne.NewMenuItem(app.Label(), func() {
		app.ShowDaysWindow()
	})

	app.TrayDaysItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuDays), func() {
		app.ShowDaysWindow()
	})

	app.TrayExportItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuExport), func() {
		app.ShowExportDialog()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayDaysItem,
		app.TrayExportItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *HijriDateApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayDaysItem.Label = app.GetMsg(config.TKeyMenuDays)
	app.TrayExportItem.Label = app.GetMsg(config.TKeyMenuExport)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// Label returns the text currently displayed by the indicator.
func (app *HijriDateApp) Label() string {
	app.labelMut.RLock()
	defer app.labelMut.RUnlock()
	return app.label
}

// RefreshLabel formats the date with the current preferences and pushes the
// result to every surface showing it.
func (app *HijriDateApp) RefreshLabel() {
	prefs := app.CurrentPreferences()
	text := app.Formatter.Format(prefs)

	app.labelMut.Lock()
	app.label = text
	app.labelMut.Unlock()

	slog.Debug(config.MsgLabelRefreshed,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyLabel, text)

	if app.TrayStatusItem != nil && app.Menu != nil {
		app.TrayStatusItem.Label = text
		app.Menu.Refresh()
	}
	if app.daysHeadline != nil {
		app.daysHeadline(text)
	}
}

// CurrentPreferences reads an immutable snapshot from the preference store.
func (app *HijriDateApp) CurrentPreferences() engine.DisplayPreferences {
	return LoadPreferences(app.Preferences)
}
