package reconcile

import (
	"testing"
	"time"

	"github.com/clinicshift/clinicshift-api/pkg/timeutil"
)

func TestSplitSingleDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)

	segs := Split("cov", start, end, time.UTC)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if !segs[0].Start.Equal(start) || !segs[0].End.Equal(end) {
		t.Errorf("segment = [%v, %v], want [%v, %v]", segs[0].Start, segs[0].End, start, end)
	}
	if segs[0].DayKey != "2026-03-02" {
		t.Errorf("dayKey = %q, want 2026-03-02", segs[0].DayKey)
	}
}

func TestSplitAcrossMidnight(t *testing.T) {
	// Sat 22:00 -> Sun 06:00 must yield exactly two segments.
	start := time.Date(2026, 3, 7, 22, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 8, 6, 0, 0, 0, time.UTC)

	segs := Split("cov", start, end, time.UTC)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}

	satEnd := time.Date(2026, 3, 7, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if segs[0].DayKey != "2026-03-07" || !segs[0].Start.Equal(start) || !segs[0].End.Equal(satEnd) {
		t.Errorf("first segment = %s [%v, %v], want 2026-03-07 [%v, %v]",
			segs[0].DayKey, segs[0].Start, segs[0].End, start, satEnd)
	}

	sunStart := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	if segs[1].DayKey != "2026-03-08" || !segs[1].Start.Equal(sunStart) || !segs[1].End.Equal(end) {
		t.Errorf("second segment = %s [%v, %v], want 2026-03-08 [%v, %v]",
			segs[1].DayKey, segs[1].Start, segs[1].End, sunStart, end)
	}
}

func TestSplitRoundTrip(t *testing.T) {
	intervals := []struct {
		name       string
		start, end time.Time
	}{
		{"one day", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)},
		{"two days", time.Date(2026, 3, 7, 22, 0, 0, 0, time.UTC), time.Date(2026, 3, 8, 6, 0, 0, 0, time.UTC)},
		{"four days", time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), time.Date(2026, 3, 5, 4, 30, 0, 0, time.UTC)},
		{"ends at midnight", time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC), time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range intervals {
		t.Run(tt.name, func(t *testing.T) {
			segs := Split("x", tt.start, tt.end, time.UTC)
			if len(segs) == 0 {
				t.Fatal("no segments")
			}
			if !segs[0].Start.Equal(tt.start) {
				t.Errorf("first start = %v, want %v", segs[0].Start, tt.start)
			}
			for i, seg := range segs {
				// Day containment: both endpoints on the same local day.
				if got := timeutil.DayKey(seg.End, time.UTC); got != seg.DayKey {
					t.Errorf("segment %d end day = %q, want %q", i, got, seg.DayKey)
				}
				if i == 0 {
					continue
				}
				// No gaps, no overlaps: each segment resumes 1ms after
				// the previous one ends.
				if want := segs[i-1].End.Add(time.Millisecond); !seg.Start.Equal(want) {
					t.Errorf("segment %d start = %v, want %v", i, seg.Start, want)
				}
			}
			last := segs[len(segs)-1]
			if !last.End.Equal(tt.end) && !last.End.Add(time.Millisecond).Equal(tt.end) {
				t.Errorf("last end = %v, does not close out %v", last.End, tt.end)
			}
		})
	}
}

func TestSplitIdempotent(t *testing.T) {
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 5, 4, 30, 0, 0, time.UTC)

	segs := Split("x", start, end, time.UTC)
	for i, seg := range segs {
		again := Split(seg.Source, seg.Start, seg.End, time.UTC)
		if len(again) != 1 {
			t.Fatalf("segment %d re-split into %d parts, want 1", i, len(again))
		}
		if !again[0].Start.Equal(seg.Start) || !again[0].End.Equal(seg.End) || again[0].DayKey != seg.DayKey {
			t.Errorf("segment %d changed on re-split: [%v, %v] %s -> [%v, %v] %s",
				i, seg.Start, seg.End, seg.DayKey, again[0].Start, again[0].End, again[0].DayKey)
		}
	}
}

func TestSplitDegenerateIntervals(t *testing.T) {
	at := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	if segs := Split("x", at, at, time.UTC); segs != nil {
		t.Errorf("zero-length interval produced %d segments", len(segs))
	}
	if segs := Split("x", at, at.Add(-time.Hour), time.UTC); segs != nil {
		t.Errorf("inverted interval produced %d segments", len(segs))
	}
	if segs := Split("x", time.Time{}, at, time.UTC); segs != nil {
		t.Errorf("missing start produced %d segments", len(segs))
	}
}

func TestSplitAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// US spring-forward is 2026-03-08; the local day is only 23h long.
	// Boundaries stay wall-clock anchored regardless.
	start := time.Date(2026, 3, 7, 22, 0, 0, 0, loc)
	end := time.Date(2026, 3, 8, 6, 0, 0, 0, loc)

	segs := Split("x", start, end, loc)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[1].DayKey != "2026-03-08" {
		t.Errorf("second dayKey = %q, want 2026-03-08", segs[1].DayKey)
	}
	wantStart := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)
	if !segs[1].Start.Equal(wantStart) {
		t.Errorf("second start = %v, want local midnight %v", segs[1].Start, wantStart)
	}
	if !segs[1].End.Equal(end) {
		t.Errorf("second end = %v, want %v", segs[1].End, end)
	}
}
