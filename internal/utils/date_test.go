package utils

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.July, 4)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2026-07-04"` {
		t.Errorf("marshal = %s, want \"2026-07-04\"", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("2026-07-04"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.Format("2006-01-02") != "2026-07-04" {
		t.Errorf("scan string = %v", d)
	}

	var fromTime Date
	if err := fromTime.Scan(time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if fromTime.Format("2006-01-02") != "2026-07-04" {
		t.Errorf("scan time = %v", fromTime)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Villa Ana", "villa-ana"},
		{"  Villa  Ana II ", "villa-ana-ii"},
		{"Häuschen am Meer", "h-uschen-am-meer"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
