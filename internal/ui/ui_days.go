package ui

import (
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-hijri-date/internal/config"
	"github.com/tartampluch/go-hijri-date/internal/engine"
)

// sortDays orders entries in place. The Gregorian column sorts by date, the
// Hijri column alphabetically by label with the date as secondary key.
func sortDays(entries []engine.DayEntry, col int, asc bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		var less bool
		switch col {
		case config.ColIDHijri:
			la, lb := strings.ToLower(a.Hijri), strings.ToLower(b.Hijri)
			if la == lb {
				less = a.Gregorian.Before(b.Gregorian)
			} else {
				less = la < lb
			}
		default: // config.ColIDGregorian
			less = a.Gregorian.Before(b.Gregorian)
		}
		if !asc {
			return !less
		}
		return less
	})
}

// ShowDaysWindow displays today's date as a headline above a table of the
// upcoming days. If the window is already open, it requests focus.
func (app *HijriDateApp) ShowDaysWindow() {
	if app.daysWindow != nil {
		app.daysWindow.RequestFocus()
		return
	}

	prefs := app.CurrentPreferences()
	entries, err := app.Formatter.UpcomingDays(app.Ctx, app.Clock.Now(), ExportDays(app.Preferences), prefs)
	if err != nil {
		slog.Error(config.ErrExportDays,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}

	slog.Info(config.MsgOpenDays,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(entries))

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinDays))
	w.Resize(fyne.NewSize(config.DaysWinWidth, config.DaysWinHeight))
	app.daysWindow = w

	headline := canvas.NewText(app.Label(), textColor(prefs.TextColor))
	headline.TextSize = config.HeadlineTextSize
	headline.TextStyle = fyne.TextStyle{Bold: true}
	headline.Alignment = fyne.TextAlignCenter
	app.daysHeadline = func(text string) {
		headline.Text = text
		headline.Color = textColor(app.CurrentPreferences().TextColor)
		headline.Refresh()
	}

	currentSortCol := config.ColIDGregorian
	sortAsc := true

	table := widget.NewTable(
		func() (int, int) {
			return len(entries), 2
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(entries) {
				return
			}
			e := entries[id.Row]
			switch id.Col {
			case config.ColIDGregorian:
				label.SetText(e.Gregorian.Format(config.DateFormatDisplay))
			case config.ColIDHijri:
				label.SetText(e.Hijri)
			}
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		titleKey := config.TKeyColGregorian
		if id.Col == config.ColIDHijri {
			titleKey = config.TKeyColHijri
		}
		text := app.GetMsg(titleKey)
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			sortDays(entries, currentSortCol, sortAsc)
			slog.Debug(config.MsgSorted,
				config.LogKeyComponent, config.CompUI,
				config.LogKeySortCol, currentSortCol,
				config.LogKeySortAsc, sortAsc)
			table.Refresh()
		}
	}

	table.SetColumnWidth(config.ColIDGregorian, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDHijri, config.ColWidthHijri)

	w.SetContent(container.NewBorder(container.NewPadded(headline), nil, nil, nil, table))
	w.SetOnClosed(func() {
		app.daysWindow = nil
		app.daysHeadline = nil
	})
	w.Show()
}
