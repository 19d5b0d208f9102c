package time

import (
	"testing"
	"time"

	perr "dltally/internal/platform/errors"
)

func TestDayTruncatesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2025, 3, 10, 2, 30, 0, 0, loc) // 2025-03-09 17:30 UTC
	got := Day(in)
	if want := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC); !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("Day = %v, want %v", got, want)
	}
	if FormatDay(in) != "2025-03-09" {
		t.Fatalf("FormatDay = %q", FormatDay(in))
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-02-29")
	if err != nil || d.Day() != 29 || d.Month() != time.February {
		t.Fatalf("ParseDay leap day = %v, %v", d, err)
	}
	if _, err := ParseDay("2025-02-30"); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestDaysBetweenAndAddDays(t *testing.T) {
	a := time.Date(2025, 2, 27, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 3 {
		t.Fatalf("DaysBetween = %d, want 3", got)
	}
	if got := DaysBetween(b, a); got != -3 {
		t.Fatalf("DaysBetween reversed = %d, want -3", got)
	}
	if got := FormatDay(AddDays(a, 2)); got != "2025-03-01" {
		t.Fatalf("AddDays = %q", got)
	}
	if Ptr(time.Time{}) != nil || Ptr(a) == nil {
		t.Fatalf("Ptr zero handling")
	}
}
