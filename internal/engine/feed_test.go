package engine_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-hijri-date/internal/config"
	"github.com/tartampluch/go-hijri-date/internal/engine"
)

// dayCounter returns a resolver whose day part is the Gregorian day of month,
// which keeps expectations readable without a real calendar.
func dayCounter() engine.PartsResolver {
	return engine.ResolverFunc(func(t time.Time, _ engine.Language, _ engine.NumberLanguage) (engine.HijriParts, error) {
		return engine.HijriParts{Day: t.Format("2"), Month: "Shawwal", Year: "1446"}, nil
	})
}

func TestUpcomingDays_CrossesMonthBoundary(t *testing.T) {
	f := &engine.Formatter{Resolver: dayCounter()}
	now := time.Date(2025, 1, 30, 18, 45, 0, 0, time.UTC)

	entries, err := f.UpcomingDays(context.Background(), now, 4, engine.DefaultPreferences())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC), entries[0].Gregorian)
	assert.Equal(t, time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), entries[3].Gregorian)
	assert.Equal(t, "30 Shawwal", entries[0].Hijri)
	assert.Equal(t, "2 Shawwal", entries[3].Hijri)
}

func TestUpcomingDays_ZeroAndNegative(t *testing.T) {
	f := &engine.Formatter{Resolver: dayCounter()}

	entries, err := f.UpcomingDays(context.Background(), time.Now(), 0, engine.DefaultPreferences())
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = f.UpcomingDays(context.Background(), time.Now(), -1, engine.DefaultPreferences())
	assert.Error(t, err)
}

func TestUpcomingDays_ContextCancelled(t *testing.T) {
	f := &engine.Formatter{Resolver: dayCounter()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.UpcomingDays(ctx, time.Now(), 10, engine.DefaultPreferences())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFeedGenerator_Generate(t *testing.T) {
	now := time.Date(2025, 3, 30, 10, 0, 0, 0, time.UTC)
	gen := &engine.FeedGenerator{
		Formatter: &engine.Formatter{Resolver: dayCounter()},
		Clock:     engine.FixedClock(now),
	}

	p := engine.DefaultPreferences()
	p.ShowYear = true

	data, err := gen.Generate(context.Background(), 3, p)
	require.NoError(t, err)

	icsStr := string(data)
	assert.True(t, strings.HasPrefix(icsStr, "BEGIN:VCALENDAR"), "Should start with VCALENDAR")
	assert.Contains(t, icsStr, "SUMMARY:30 Shawwal 1446 AH")
	assert.Contains(t, icsStr, "SUMMARY:1 Shawwal 1446 AH")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250401")

	// The output must round-trip through a decoder.
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 3)
}

func TestFeedGenerator_StableUIDs(t *testing.T) {
	now := time.Date(2025, 3, 30, 10, 0, 0, 0, time.UTC)
	gen := &engine.FeedGenerator{
		Formatter: &engine.Formatter{Resolver: dayCounter()},
		Clock:     engine.FixedClock(now),
	}

	first, err := gen.Generate(context.Background(), 2, engine.DefaultPreferences())
	require.NoError(t, err)

	gen.Clock = engine.FixedClock(now.Add(time.Hour))
	second, err := gen.Generate(context.Background(), 2, engine.DefaultPreferences())
	require.NoError(t, err)

	uids := func(data []byte) []string {
		cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
		require.NoError(t, err)
		var out []string
		for _, e := range cal.Events() {
			out = append(out, e.Props.Get(ical.PropUID).Value)
		}
		return out
	}
	assert.Equal(t, uids(first), uids(second))
}

func TestFeedGenerator_EmptyRange(t *testing.T) {
	gen := &engine.FeedGenerator{Formatter: &engine.Formatter{Resolver: dayCounter()}}

	data, err := gen.Generate(context.Background(), 0, engine.DefaultPreferences())
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestFeedGenerator_RejectsHugeRange(t *testing.T) {
	gen := &engine.FeedGenerator{Formatter: &engine.Formatter{Resolver: dayCounter()}}

	_, err := gen.Generate(context.Background(), config.MaxExportDays+1, engine.DefaultPreferences())
	assert.Error(t, err)
}
