package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/tartampluch/go-hijri-date/internal/config"
)

// ExportFeed writes the iCalendar feed for the configured number of days to w.
func (app *HijriDateApp) ExportFeed(ctx context.Context, w io.Writer) error {
	days := ExportDays(app.Preferences)
	data, err := app.Feed.Generate(ctx, days, app.CurrentPreferences())
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
	}
	return nil
}

// ShowExportDialog asks for a destination file and writes the feed there.
// The tray has no window of its own, so the dialog gets a short-lived parent.
func (app *HijriDateApp) ShowExportDialog() {
	parent := app.App.NewWindow(app.GetMsg(config.TKeyMenuExport))
	parent.Resize(fyne.NewSize(config.DaysWinWidth, config.DaysWinHeight))

	save := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		defer parent.Close()
		if err != nil {
			slog.Error(config.ErrExportWrite,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			return
		}
		if wc == nil {
			return // cancelled
		}
		defer wc.Close()

		if err := app.ExportFeed(app.Ctx, wc); err != nil {
			slog.Error(config.ErrExportWrite,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			return
		}

		path := wc.URI().Path()
		slog.Info(config.MsgExported,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyPath, path)
		app.App.SendNotification(fyne.NewNotification(config.AppName,
			app.GetMsgData(config.TKeyNotifExported, map[string]interface{}{"Path": path})))
	}, parent)

	save.SetFileName(config.ExportFileName)
	save.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtICS}))
	parent.Show()
	save.Show()
}
