package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-hijri-date/internal/config"
)

// DayEntry pairs a Gregorian day with its rendered Hijri label.
type DayEntry struct {
	Gregorian time.Time
	Hijri     string
}

// UpcomingDays renders count consecutive days starting with the day of now.
// Days are local calendar days in now's location.
func (f *Formatter) UpcomingDays(ctx context.Context, now time.Time, count int, prefs DisplayPreferences) ([]DayEntry, error) {
	if count < 0 {
		return nil, fmt.Errorf("%s: %d", config.ErrExportDays, count)
	}

	y, m, d := now.Date()
	loc := now.Location()

	entries := make([]DayEntry, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// time.Date normalizes day overflow across months and years.
		day := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		entries = append(entries, DayEntry{
			Gregorian: day,
			Hijri:     f.FormatAt(day, prefs),
		})
	}
	return entries, nil
}

// FeedGenerator builds an iCalendar document with one all-day event per day
// whose summary is the Hijri date.
type FeedGenerator struct {
	Formatter *Formatter
	Clock     Clock
}

// Generate renders the feed for days days starting today.
func (g *FeedGenerator) Generate(ctx context.Context, days int, prefs DisplayPreferences) ([]byte, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompFeed)

	if days < 0 || days > config.MaxExportDays {
		return nil, fmt.Errorf("%s: %d", config.ErrExportDays, days)
	}

	clock := g.Clock
	if clock == nil {
		clock = RealClock{}
	}
	now := clock.Now()

	entries, err := g.Formatter.UpcomingDays(ctx, now, days, prefs)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		var buf bytes.Buffer
		buf.WriteString(config.StubVCalendar)
		return buf.Bytes(), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: the labels change once a day.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, e := range entries {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, eventUID(e.Gregorian))
		event.Props.SetText(config.PropSummary, e.Hijri)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(e.Gregorian)
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	log.Info(config.MsgFeedGenerated,
		config.LogKeyEvents, len(entries),
		config.LogKeySizeBytes, buf.Len(),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// eventUID derives a UID that is stable across exports of the same day.
func eventUID(day time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, day.Format(config.DateFormatDisplay), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}
