package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	got := New(2024, time.February, 30)
	want := New(2024, time.March, 1)
	if got != want {
		t.Errorf("New(2024, 2, 30) = %v, want %v", got, want)
	}
}

func TestDaysSince(t *testing.T) {
	testCases := []struct {
		name string
		d, x Date
		want int
	}{
		{"same day", New(2023, 1, 10), New(2023, 1, 10), 0},
		{"later", New(2023, 2, 9), New(2023, 1, 10), 30},
		{"earlier", New(2023, 1, 10), New(2023, 2, 9), -30},
		{"leap year", New(2024, 3, 1), New(2024, 2, 28), 2},
		{"across years", New(2024, 1, 5), New(2023, 12, 20), 16},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.DaysSince(tc.x); got != tc.want {
				t.Errorf("%v.DaysSince(%v) = %d, want %d", tc.d, tc.x, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		layout  string
		in      string
		want    Date
		wantErr bool
	}{
		{readDateFormat, "2025-7-1", New(2025, 7, 1), false},
		{readDateFormat, "2025-07-01", New(2025, 7, 1), false},
		{USFormat, "03/15/2023", New(2023, 3, 15), false},
		{"01/02/06", "03/15/23", New(2023, 3, 15), false},
		{USFormat, "2023-03-15", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLayout(tc.layout, tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseLayout(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseLayout(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestJSON(t *testing.T) {
	d := New(2023, 11, 2)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2023-11-02"` {
		t.Errorf("json.Marshal() = %s, want %q", b, "2023-11-02")
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("json.Unmarshal() = %v, want %v", back, d)
	}
}
