package ui

import (
	"errors"
	"image/color"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-hijri-date/internal/config"
	"github.com/tartampluch/go-hijri-date/internal/engine"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	numSelect     *widget.Select
	posSelect     *widget.Select
	formatEntry   *widget.Entry
	checkShowYear *widget.Check
	suffixRadio   *widget.RadioGroup
	entryDays     *NumericalEntry
	preview       *canvas.Text
	swatch        *canvas.Rectangle

	// textColor is "" for the theme foreground, otherwise "#rrggbb[aa]".
	textColor string
}

// suffixOptions are shown verbatim in both UI languages.
var suffixOptions = []string{"AH", "هـ"}

// ShowSettingsWindow displays the configuration dialog.
func (app *HijriDateApp) ShowSettingsWindow() {
	if app.Window != nil {
		slog.Debug(config.MsgFocusSettings, config.LogKeyComponent, config.CompUISet)
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenSettings, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.Window = w

	current := app.CurrentPreferences()
	sw := app.newSettingsWidgets(current)

	generalCard := app.buildGeneralCard(sw)
	yearCard := app.buildYearCard(sw)

	saveAction := func() {
		if err := sw.formatEntry.Validate(); err != nil {
			slog.Info(config.MsgBadTemplate,
				config.LogKeyComponent, config.CompUISet,
				config.LogKeyTemplate, sw.formatEntry.Text)
			dialog.ShowError(err, w)
			return
		}
		if err := sw.entryDays.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(app.GetMsgData(config.TKeyLblFooter, map[string]interface{}{"Version": config.Version}))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		generalCard,
		yearCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetOnClosed(func() { app.Window = nil })
	w.Show()
}

// newSettingsWidgets creates the form controls, pre-filled from prefs.
func (app *HijriDateApp) newSettingsWidgets(prefs engine.DisplayPreferences) *settingsWidgets {
	sw := &settingsWidgets{textColor: prefs.TextColor}

	langOptions := []string{app.GetMsg(config.TKeyOptEnglish), app.GetMsg(config.TKeyOptArabic)}

	sw.langSelect = widget.NewSelect(langOptions, nil)
	sw.langSelect.SetSelectedIndex(int(prefs.Language))

	sw.numSelect = widget.NewSelect(langOptions, nil)
	sw.numSelect.SetSelectedIndex(int(prefs.NumberLanguage))

	sw.posSelect = widget.NewSelect(app.positionLabels(), nil)
	sw.posSelect.SetSelectedIndex(int(prefs.Position))

	sw.formatEntry = widget.NewEntry()
	sw.formatEntry.SetPlaceHolder(config.DefaultDateFormat)
	sw.formatEntry.SetText(prefs.FormatTemplate)
	sw.formatEntry.Validator = func(s string) error {
		if !engine.ValidTemplate(s) {
			return errors.New(app.GetMsg(config.TKeyErrTemplate))
		}
		return nil
	}

	sw.checkShowYear = widget.NewCheck(app.GetMsg(config.TKeyLblShowYear), nil)
	sw.checkShowYear.SetChecked(prefs.ShowYear)

	sw.suffixRadio = widget.NewRadioGroup(suffixOptions, nil)
	sw.suffixRadio.Horizontal = true
	sw.suffixRadio.Required = true
	sw.suffixRadio.SetSelected(suffixOptions[prefs.YearSuffixStyle])

	sw.entryDays = NewNumericalEntry()
	sw.entryDays.SetText(strconv.Itoa(ExportDays(app.Preferences)))
	sw.entryDays.Validator = func(string) error {
		v, err := sw.entryDays.IntValue()
		if err != nil || v < config.MinExportDays || v > config.MaxExportDays {
			return errors.New(app.GetMsg(config.TKeyErrExportDays))
		}
		return nil
	}

	sw.preview = canvas.NewText("", textColor(prefs.TextColor))
	sw.preview.TextSize = config.PreviewTextSize
	sw.swatch = canvas.NewRectangle(textColor(prefs.TextColor))
	sw.swatch.SetMinSize(fyne.NewSize(config.PreviewTextSize*2, config.PreviewTextSize))

	// Any change re-renders the preview with the pending values.
	update := func() { app.updatePreview(sw) }
	sw.langSelect.OnChanged = func(string) { update() }
	sw.numSelect.OnChanged = func(string) { update() }
	sw.formatEntry.OnChanged = func(string) { update() }
	sw.suffixRadio.OnChanged = func(string) { update() }
	sw.checkShowYear.OnChanged = func(bool) {
		app.updateSuffixSensitivity(sw)
		update()
	}

	app.updateSuffixSensitivity(sw)
	update()
	return sw
}

// buildGeneralCard lays out language, position and the date format editor.
func (app *HijriDateApp) buildGeneralCard(sw *settingsWidgets) *widget.Card {
	tokenButtons := container.NewHBox()
	for _, tok := range engine.Tokens() {
		tok := tok
		tokenButtons.Add(widget.NewButton(tok, func() {
			text, pos := engine.InsertToken(sw.formatEntry.Text, sw.formatEntry.CursorColumn, tok)
			sw.formatEntry.SetText(text)
			sw.formatEntry.CursorColumn = pos
			sw.formatEntry.Refresh()
		}))
	}
	btnReset := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnReset), theme.ViewRefreshIcon(), func() {
		sw.formatEntry.SetText(config.DefaultDateFormat)
	})
	tokenButtons.Add(btnReset)

	helpTokens := widget.NewLabel(app.GetMsg(config.TKeyHelpTokens))
	helpTokens.Wrapping = fyne.TextWrapWord
	helpOrder := widget.NewLabel(app.GetMsg(config.TKeyHelpArabicOrder))
	helpOrder.Wrapping = fyne.TextWrapWord
	helpOrder.TextStyle = fyne.TextStyle{Italic: true}

	formatBox := container.NewVBox(sw.formatEntry, tokenButtons, helpTokens, helpOrder)

	colorRow := container.NewHBox(
		sw.swatch,
		widget.NewButton(app.GetMsg(config.TKeyBtnPickColor), func() { app.showColorPicker(sw) }),
		widget.NewButton(app.GetMsg(config.TKeyBtnResetColor), func() { app.setPendingColor(sw, "") }),
	)

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblNumberLang), sw.numSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPosition), sw.posSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblDateFormat), formatBox),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPreview), sw.preview),
		widget.NewFormItem(app.GetMsg(config.TKeyLblTextColor), colorRow),
		widget.NewFormItem(app.GetMsg(config.TKeyLblExportDays), sw.entryDays),
	)
	return widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", form)
}

// buildYearCard lays out the show-year switch and the suffix style.
func (app *HijriDateApp) buildYearCard(sw *settingsWidgets) *widget.Card {
	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblSuffixStyle), sw.suffixRadio),
	)
	return widget.NewCard(app.GetMsg(config.TKeyLblYearDisplay), "", container.NewVBox(sw.checkShowYear, form))
}

// showColorPicker opens the advanced (color wheel) picker.
func (app *HijriDateApp) showColorPicker(sw *settingsWidgets) {
	if app.Window == nil {
		return
	}
	picker := dialog.NewColorPicker(app.GetMsg(config.TKeyLblTextColor), "", func(c color.Color) {
		app.setPendingColor(sw, FormatHexColor(c))
	}, app.Window)
	picker.Advanced = true
	if sw.textColor != "" {
		picker.SetColor(textColor(sw.textColor))
	}
	picker.Show()
}

// setPendingColor records a color choice that is persisted on save.
func (app *HijriDateApp) setPendingColor(sw *settingsWidgets, hex string) {
	sw.textColor = hex
	c := textColor(hex)
	sw.swatch.FillColor = c
	sw.swatch.Refresh()
	sw.preview.Color = c
	sw.preview.Refresh()
}

// updateSuffixSensitivity greys out the suffix choice while the year is hidden.
func (app *HijriDateApp) updateSuffixSensitivity(sw *settingsWidgets) {
	if sw.checkShowYear.Checked {
		sw.suffixRadio.Enable()
	} else {
		sw.suffixRadio.Disable()
	}
}

// updatePreview renders the pending settings without saving them.
func (app *HijriDateApp) updatePreview(sw *settingsWidgets) {
	if sw.preview == nil {
		return
	}
	sw.preview.Text = app.Formatter.Format(sw.pending())
	sw.preview.Refresh()
}

// pending converts the widget state into a preferences snapshot.
func (sw *settingsWidgets) pending() engine.DisplayPreferences {
	p := engine.DisplayPreferences{
		Language:        engine.Language(sw.langSelect.SelectedIndex()),
		NumberLanguage:  engine.NumberLanguage(sw.numSelect.SelectedIndex()),
		ShowYear:        sw.checkShowYear.Checked,
		YearSuffixStyle: engine.SuffixAH,
		FormatTemplate:  sw.formatEntry.Text,
		Position:        engine.Position(sw.posSelect.SelectedIndex()),
		TextColor:       sw.textColor,
	}
	if sw.suffixRadio.Selected == suffixOptions[engine.SuffixHEH] {
		p.YearSuffixStyle = engine.SuffixHEH
	}
	def := engine.DefaultPreferences()
	if !p.Language.Valid() {
		p.Language = def.Language
	}
	if !p.NumberLanguage.Valid() {
		p.NumberLanguage = def.NumberLanguage
	}
	if !p.Position.Valid() {
		p.Position = def.Position
	}
	return p
}

// saveSettings persists the pending values as one batch, then refreshes
// every surface once.
func (app *HijriDateApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgPrefsSaved, config.LogKeyComponent, config.CompUISet)

	p := sw.pending()
	p.FormatTemplate = strings.TrimSpace(p.FormatTemplate)

	app.saving.Store(true)
	SavePreferences(app.Preferences, p)
	if days, err := sw.entryDays.IntValue(); err == nil {
		app.Preferences.SetInt(config.PrefExportDays, days)
	}
	app.saving.Store(false)

	app.applyPreferences()
}

// positionLabels returns the localized position names in enum order.
func (app *HijriDateApp) positionLabels() []string {
	keys := map[engine.Position]string{
		engine.FarLeft:  config.TKeyPosFarLeft,
		engine.Left:     config.TKeyPosLeft,
		engine.Center:   config.TKeyPosCenter,
		engine.Right:    config.TKeyPosRight,
		engine.FarRight: config.TKeyPosFarRight,
	}
	out := make([]string, 0, len(engine.Positions))
	for _, p := range engine.Positions {
		out = append(out, app.GetMsg(keys[p]))
	}
	return out
}
