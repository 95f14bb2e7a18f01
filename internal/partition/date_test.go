package partition

import (
	"errors"
	"testing"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) error = %v, want nil", s, err)
	}
	return d
}

func TestNextRollsOverCalendarBoundaries(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2020-07-01", "2020-07-02"},
		{"2020-06-30", "2020-07-01"},
		{"2020-02-28", "2020-02-29"}, // leap year
		{"2020-02-29", "2020-03-01"},
		{"2021-02-28", "2021-03-01"}, // non-leap year
		{"2019-12-31", "2020-01-01"},
		{"2020-04-30", "2020-05-01"},
	}

	for _, tc := range cases {
		got := mustDate(t, tc.in).Next().String()
		if got != tc.want {
			t.Errorf("Next(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "2020-13-01", "2020-02-30", "07/01/2020", "2020-7-1", "yesterday"} {
		if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", s, err)
		}
	}
}

func TestAfterAndEqual(t *testing.T) {
	a := mustDate(t, "2020-07-01")
	b := mustDate(t, "2020-07-02")

	if !b.After(a) {
		t.Error("After() = false for a later date, want true")
	}
	if a.After(b) {
		t.Error("After() = true for an earlier date, want false")
	}
	if a.After(a) {
		t.Error("After() = true for the same date, want false")
	}
	if !a.Equal(mustDate(t, "2020-07-01")) {
		t.Error("Equal() = false for the same date, want true")
	}
}
