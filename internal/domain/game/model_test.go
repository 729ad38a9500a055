package game

import "testing"

func TestClassifyStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want Status
	}{
		{"Final", StatusFinal},
		{"F", StatusFinal},
		{"Final Overtime", StatusFinal},
		{"InProgress", StatusInProgress},
		{"Q3", StatusInProgress},
		{"Halftime", StatusInProgress},
		{"OT", StatusInProgress},
		{"Live", StatusInProgress},
		{"Scheduled", StatusScheduled},
		{"Postponed", StatusScheduled},
		{"", StatusScheduled},
	}

	for _, tc := range cases {
		if got := ClassifyStatus(tc.raw); got != tc.want {
			t.Errorf("ClassifyStatus(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestMapSeasonType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code int
		want SeasonType
	}{
		{1, SeasonTypePre},
		{2, SeasonTypeReg},
		{3, SeasonTypePost},
		{0, SeasonTypeReg},
		{9, SeasonTypeReg},
	}

	for _, tc := range cases {
		if got := MapSeasonType(tc.code); got != tc.want {
			t.Errorf("MapSeasonType(%d) = %s, want %s", tc.code, got, tc.want)
		}
	}
}

func TestParseSeasonType(t *testing.T) {
	t.Parallel()

	if got, ok := ParseSeasonType(" reg "); !ok || got != SeasonTypeReg {
		t.Fatalf("ParseSeasonType(reg) = %s, %v", got, ok)
	}
	if _, ok := ParseSeasonType("SPRING"); ok {
		t.Fatalf("ParseSeasonType accepted unknown value")
	}
}
