package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go Hijri Date"
	AppID       = "com.github.tartampluch.go-hijri-date"
	LogFileName = "app.log"
	IconFile    = "Icon.svg"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// FilePermExport represents -rw-r--r--. Exported calendars are meant to be shared.
	FilePermExport fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagPrint        = "print"
	FlagExport       = "export"
	FlagDays         = "days"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescPrint    = "Print the Hijri date using the saved preferences and exit"
	FlagDescExport   = "Write an iCalendar feed of Hijri dates to this path and exit"
	FlagDescDays     = "Number of days covered by -export"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Preference Keys
// -----------------------------------------------------------------------------

// Keys mirror the GSettings schema of the GNOME extension so that the
// semantics of every stored value stay the same.
const (
	PrefLanguage        = "language"
	PrefNumberLanguage  = "number-language"
	PrefShowYear        = "show-year"
	PrefYearSuffixStyle = "year-suffix-style"
	PrefDateFormat      = "date-format"
	PrefPosition        = "position"
	PrefTextColor       = "text-color"
	PrefExportDays      = "export-days"
	PrefLastRun         = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "ar"}

// -----------------------------------------------------------------------------
// Formatting
// -----------------------------------------------------------------------------

const (
	DefaultDateFormat = "{day} {month} {year} {suffix}"
	FallbackDate      = "(Hijri Date)"

	TokenDay    = "{day}"
	TokenMonth  = "{month}"
	TokenYear   = "{year}"
	TokenSuffix = "{suffix}"

	// Suffixes carry their own leading space.
	SuffixAH  = " AH"
	SuffixHEH = " هـ"

	// Locale tags as understood by CLDR-based platforms.
	LocaleEnglish   = "en-US"
	LocaleArabic    = "ar-SA"
	CalendarKey     = "ca"
	CalendarUmmQura = "islamic-umalqura"
	NumberingKey    = "nu"
	NumberingLatin  = "latn"
	NumberingArabic = "arab"

	// FormatLocaleTag expects base, calendar key/type, numbering key/type.
	FormatLocaleTag = "%s-u-%s-%s-%s-%s"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultLanguage   = "en"
	DefaultExportDays = 30
	MinExportDays     = 1
	MaxExportDays     = 3660
	UIDSalt           = "go-hijri-date-v1-"
	UIDHashLength     = 16
	FormatUID         = "%s@%s"
	FormatHashInput   = "%s|%s"

	// RefreshSchedule fires at the start of every minute.
	RefreshSchedule = "* * * * *"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Hijri Date//Engine//EN"
	ICalCalName = "Hijri Dates"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gohijridate"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	DefaultICalRefresh = 24 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when no events are produced.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	ExtICS = ".ics"
)

// -----------------------------------------------------------------------------
// UI Constants
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 560
	DaysWinWidth        = 480
	DaysWinHeight       = 420
	HeadlineTextSize    = 22
	PreviewTextSize     = 16
	LabelColumnWidth    = 80

	// Table Column IDs
	ColIDGregorian = 0
	ColIDHijri     = 1
	ColWidthDate   = 140
	ColWidthHijri  = 300

	DateFormatDisplay = "2006-01-02"
	TablePlaceholder  = "Cell Content"
	SortIconAsc       = " ▲"
	SortIconDesc      = " ▼"

	LayoutColumnsDouble = 2
	ExportFileName      = "hijri-dates.ics"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinSettings     = "win_settings_title"
	TKeyWinDays         = "win_days_title"
	TKeyMenuDays        = "menu_days"
	TKeyMenuExport      = "menu_export"
	TKeyMenuSettings    = "menu_settings"
	TKeyLblLanguage     = "lbl_language"
	TKeyLblNumberLang   = "lbl_number_language"
	TKeyLblPosition     = "lbl_position"
	TKeyLblDateFormat   = "lbl_date_format"
	TKeyHelpTokens      = "help_tokens"
	TKeyHelpArabicOrder = "help_arabic_order"
	TKeyLblPreview      = "lbl_preview"
	TKeyLblShowYear     = "lbl_show_year"
	TKeyLblSuffixStyle  = "lbl_year_suffix_style"
	TKeyLblTextColor    = "lbl_text_color"
	TKeyBtnPickColor    = "btn_pick_color"
	TKeyBtnResetColor   = "btn_reset_color"
	TKeyLblExportDays   = "lbl_export_days"
	TKeyLblGeneral      = "lbl_general"
	TKeyLblYearDisplay  = "lbl_year_display"
	TKeyBtnSave         = "btn_save"
	TKeyBtnCancel       = "btn_cancel"
	TKeyBtnReset        = "btn_reset"
	TKeyLblFooter       = "lbl_footer"
	TKeyOptEnglish      = "opt_english"
	TKeyOptArabic       = "opt_arabic"
	TKeyPosFarLeft      = "pos_far_left"
	TKeyPosLeft         = "pos_left"
	TKeyPosCenter       = "pos_center"
	TKeyPosRight        = "pos_right"
	TKeyPosFarRight     = "pos_far_right"
	TKeyColGregorian    = "col_gregorian"
	TKeyColHijri        = "col_hijri"
	TKeyNotifExported   = "notif_exported"
	TKeyErrTemplate     = "err_template_no_token"
	TKeyErrExportDays   = "err_export_days"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrFormatting       = "hijri date formatting failed"
	ErrUnsupportedLang  = "unsupported display language"
	ErrUnsupportedNum   = "unsupported number language"
	ErrUnsupportedCal   = "unsupported calendar in locale tag"
	ErrLocaleTag        = "invalid locale tag"
	ErrConversion       = "umm al-qura conversion failed"
	ErrMonthRange       = "hijri month out of range"
	ErrResolverMissing  = "internal error: parts resolver is not initialized"
	ErrFormatPanic      = "recovered panic while formatting"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrExportWrite      = "failed to write exported calendar"
	ErrExportDays       = "export day count out of range"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrScheduleAdd      = "failed to schedule refresh job"
	ErrColorParse       = "invalid text color"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgFormatFallback = "Falling back to placeholder date"
	MsgLabelRefreshed = "Date label refreshed"
	MsgRefresherStart = "Refresh scheduler started"
	MsgRefresherStop  = "Refresh scheduler stopped"
	MsgPrefsChanged   = "Preferences changed, refreshing label"
	MsgPrefsSaved     = "Saving preferences"
	MsgFeedGenerated  = "Calendar feed generated"
	MsgExported       = "Calendar exported"
	MsgOpenSettings   = "Opening settings window"
	MsgFocusSettings  = "Settings window already open, requesting focus"
	MsgOpenDays       = "Opening upcoming days window"
	MsgSorted         = "Upcoming days sorted"
	MsgBadTemplate    = "Rejected date format without tokens"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyValue     = "value"
	LogKeyTemplate  = "template"
	LogKeyLabel     = "label"
	LogKeyTag       = "locale_tag"
	LogKeyDays      = "days"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeySchedule  = "schedule"
	LogKeySortAsc   = "sort_asc"
	LogKeySortCol   = "sort_column"
	LogKeyCount     = "count"
	LogKeyPath      = "path"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompEngine    = "engine"
	CompResolver  = "resolver"
	CompFeed      = "feed"
	CompRefresher = "refresher"
	CompMain      = "main"
	CompI18n      = "i18n"
)
