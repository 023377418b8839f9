package sheetimport

import "testing"

func TestParsePropertyLabel(t *testing.T) {
	name, capacity := ParsePropertyLabel("Villa Ana (8)")
	if name != "Villa Ana" {
		t.Errorf("name = %q, want %q", name, "Villa Ana")
	}
	if capacity == nil || *capacity != 8 {
		t.Errorf("capacity = %v, want 8", capacity)
	}

	name, capacity = ParsePropertyLabel("  Skipper Boat  ")
	if name != "Skipper Boat" {
		t.Errorf("name = %q, want %q", name, "Skipper Boat")
	}
	if capacity != nil {
		t.Errorf("capacity = %v, want nil", *capacity)
	}
}

func TestParseWeekLabel(t *testing.T) {
	start, end := ParseWeekLabel("05.06.-12.06.", 2026)
	if start == nil || end == nil {
		t.Fatal("expected both dates for a valid label")
	}
	if got := start.Format("2006-01-02"); got != "2026-06-05" {
		t.Errorf("start = %s, want 2026-06-05", got)
	}
	if got := end.Format("2006-01-02"); got != "2026-06-12" {
		t.Errorf("end = %s, want 2026-06-12", got)
	}
}

func TestParseWeekLabelYearBoundary(t *testing.T) {
	start, end := ParseWeekLabel("27.12. - 03.01.", 2026)
	if start == nil || end == nil {
		t.Fatal("expected both dates for a valid label")
	}
	if got := start.Format("2006-01-02"); got != "2025-12-27" {
		t.Errorf("start = %s, want 2025-12-27", got)
	}
	if got := end.Format("2006-01-02"); got != "2026-01-03" {
		t.Errorf("end = %s, want 2026-01-03", got)
	}
}

func TestParseWeekLabelInvalid(t *testing.T) {
	for _, label := range []string{"", "Week 23", "32.13.-01.01.", "5.6"} {
		start, end := ParseWeekLabel(label, 2026)
		if start != nil || end != nil {
			t.Errorf("label %q: expected nil dates", label)
		}
	}
}

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", StatusUnknown},
		{"-", StatusUnknown},
		{"–", StatusUnknown},
		{"Owner", StatusOwner},
		{"belegt", StatusOwner},
		{"RESERVIERT", StatusOwner},
		{"a.A", StatusOnRequest},
		{"auf Anfrage", StatusOnRequest},
		{"on request", StatusOnRequest},
		{"4.500", StatusAvailable},
		{"3200", StatusAvailable},
		{"booked", StatusBooked},
		{"GEBUCHT", StatusBooked},
		{"???", StatusUnknown},
	}
	for _, tc := range cases {
		if got := ClassifyStatus(tc.raw); got != tc.want {
			t.Errorf("ClassifyStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

// Owner cells annotated with "a.a" stay owner cells.
func TestClassifyStatusOwnerWins(t *testing.T) {
	if got := ClassifyStatus("owner - a.a"); got != StatusOwner {
		t.Errorf("ClassifyStatus(\"owner - a.a\") = %q, want %q", got, StatusOwner)
	}
}
