package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hablullah/go-hijri"
	"github.com/tartampluch/go-hijri-date/internal/config"
	"golang.org/x/text/language"
)

// HijriParts holds the display-ready components of a Hijri date.
// An empty field means the component could not be resolved.
type HijriParts struct {
	Day   string
	Month string
	Year  string
}

// PartsResolver converts an instant into localized Hijri date components.
// It abstracts the platform calendar so the formatter can be tested with stubs.
type PartsResolver interface {
	Resolve(t time.Time, lang Language, num NumberLanguage) (HijriParts, error)
}

// ResolverFunc adapts an ordinary function to the PartsResolver interface.
type ResolverFunc func(t time.Time, lang Language, num NumberLanguage) (HijriParts, error)

// Resolve calls f(t, lang, num).
func (f ResolverFunc) Resolve(t time.Time, lang Language, num NumberLanguage) (HijriParts, error) {
	return f(t, lang, num)
}

// Month names follow CLDR "format/wide" for the islamic calendars.
var monthNames = map[string][12]string{
	"en": {
		"Muharram", "Safar", "Rabiʻ I", "Rabiʻ II", "Jumada I", "Jumada II",
		"Rajab", "Shaʻban", "Ramadan", "Shawwal", "Dhuʻl-Qiʻdah", "Dhuʻl-Hijjah",
	},
	"ar": {
		"محرم", "صفر", "ربيع الأول", "ربيع الآخر", "جمادى الأولى", "جمادى الآخرة",
		"رجب", "شعبان", "رمضان", "شوال", "ذو القعدة", "ذو الحجة",
	},
}

// LocaleTag builds the BCP 47 tag describing how a date is rendered,
// e.g. "ar-SA-u-ca-islamic-umalqura-nu-arab".
func LocaleTag(lang Language, num NumberLanguage) (language.Tag, error) {
	var base string
	switch lang {
	case English:
		base = config.LocaleEnglish
	case Arabic:
		base = config.LocaleArabic
	default:
		return language.Und, fmt.Errorf("%s: %d", config.ErrUnsupportedLang, lang)
	}

	var nu string
	switch num {
	case WesternDigits:
		nu = config.NumberingLatin
	case ArabicDigits:
		nu = config.NumberingArabic
	default:
		return language.Und, fmt.Errorf("%s: %d", config.ErrUnsupportedNum, num)
	}

	raw := fmt.Sprintf(config.FormatLocaleTag, base,
		config.CalendarKey, config.CalendarUmmQura,
		config.NumberingKey, nu)
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, fmt.Errorf("%s: %q: %w", config.ErrLocaleTag, raw, err)
	}
	return tag, nil
}

// UmmAlQuraResolver resolves dates with the Umm al-Qura tables.
type UmmAlQuraResolver struct{}

// Resolve implements PartsResolver.
func (UmmAlQuraResolver) Resolve(t time.Time, lang Language, num NumberLanguage) (HijriParts, error) {
	tag, err := LocaleTag(lang, num)
	if err != nil {
		return HijriParts{}, err
	}
	return ResolveTag(t, tag)
}

// ResolveTag resolves t for an explicit locale tag. The tag's calendar
// extension must be islamic-umalqura; its numbering extension selects digits.
func ResolveTag(t time.Time, tag language.Tag) (HijriParts, error) {
	if ca := unicodeType(tag, config.CalendarKey); ca != config.CalendarUmmQura {
		return HijriParts{}, fmt.Errorf("%s: %q", config.ErrUnsupportedCal, ca)
	}

	base, _ := tag.Base()
	names, ok := monthNames[base.String()]
	if !ok {
		return HijriParts{}, fmt.Errorf("%s: %s", config.ErrUnsupportedLang, base)
	}

	// The calendar day is the one on the user's wall clock.
	y, m, d := t.Date()
	civil := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)

	date, err := hijri.CreateUmmAlQuraDate(civil)
	if err != nil {
		return HijriParts{}, fmt.Errorf("%s: %w", config.ErrConversion, err)
	}

	month := int(date.Month)
	if month < 1 || month > len(names) {
		return HijriParts{}, fmt.Errorf("%s: %d", config.ErrMonthRange, month)
	}

	digits := unicodeType(tag, config.NumberingKey)
	return HijriParts{
		Day:   localizeDigits(strconv.Itoa(int(date.Day)), digits),
		Month: names[month-1],
		Year:  localizeDigits(strconv.Itoa(int(date.Year)), digits),
	}, nil
}

// unicodeType returns the full value of key in the tag's -u- extension.
// Tag.TypeForKey stops at the first subtag, so "ca-islamic-umalqura"
// would read back as "islamic".
func unicodeType(tag language.Tag, key string) string {
	ext, ok := tag.Extension('u')
	if !ok {
		return ""
	}

	var value []string
	inKey := false
	// Skip the leading singleton; keys are two characters, types 3 to 8.
	for _, sub := range strings.Split(ext.String(), "-")[1:] {
		if len(sub) == 2 {
			if inKey {
				break
			}
			inKey = sub == key
			continue
		}
		if inKey {
			value = append(value, sub)
		}
	}
	return strings.Join(value, "-")
}

// localizeDigits rewrites ASCII digits for the given CLDR numbering system.
// Unknown systems leave the input untouched.
func localizeDigits(s, numbering string) string {
	if numbering != config.NumberingArabic {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return '٠' + (r - '0')
		}
		return r
	}, s)
}

var errNoResolver = errors.New(config.ErrResolverMissing)
