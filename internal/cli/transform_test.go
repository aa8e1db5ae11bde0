package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icsreport/internal/config"
)

var transformFixture = strings.ReplaceAll(`BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:one@example.com
SUMMARY:Flight to NYC
DTSTART:20250301T100000
END:VEVENT
END:VCALENDAR
`, "\n", "\r\n")

func TestTransformOnceWritesNestedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(transformFixture))
	}))
	defer srv.Close()

	output := filepath.Join(t.TempDir(), "calendars", "nested", "out.ics")
	err := transformOnce(context.Background(), config.DefaultConfig(), srv.URL, output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DTSTART:20250301T100000Z")
	assert.Contains(t, string(data), "DTEND:20250301T110000Z")
}

func TestTransformOnceFetchFailureWritesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	output := filepath.Join(dir, "calendars", "out.ics")
	err := transformOnce(context.Background(), config.DefaultConfig(), srv.URL, output)
	require.Error(t, err)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
	// The failed run does not even create the parent directory.
	_, statErr = os.Stat(filepath.Dir(output))
	assert.True(t, os.IsNotExist(statErr))
}

func TestTransformOnceParseFailureWritesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a calendar"))
	}))
	defer srv.Close()

	output := filepath.Join(t.TempDir(), "out.ics")
	err := transformOnce(context.Background(), config.DefaultConfig(), srv.URL, output)
	require.Error(t, err)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWatchCronSkipsOverlappingRuns(t *testing.T) {
	var running, maxRunning, runs int32

	c, err := newWatchCron("@every 100ms", func() {
		cur := atomic.AddInt32(&running, 1)
		for {
			prev := atomic.LoadInt32(&maxRunning)
			if cur <= prev || atomic.CompareAndSwapInt32(&maxRunning, prev, cur) {
				break
			}
		}
		time.Sleep(300 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		atomic.AddInt32(&runs, 1)
	})
	require.NoError(t, err)

	c.Start()
	time.Sleep(650 * time.Millisecond)
	c.Stop()

	assert.GreaterOrEqual(t, atomic.LoadInt32(&runs), int32(1))
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxRunning), "overlapping transforms must be skipped")
}

func TestWatchCronRejectsBadSchedule(t *testing.T) {
	_, err := newWatchCron("every now and then", func() {})
	assert.Error(t, err)
}
