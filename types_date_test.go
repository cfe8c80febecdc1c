package harvest

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2022-05-27", want: NewDate(2022, time.May, 27)},
		{in: "2022-5-2", want: NewDate(2022, time.May, 2)},
		{in: "not-a-date", wantErr: true},
		{in: "2022-13-01", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParseDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2022, time.May, 20)
	b := NewDate(2022, time.May, 27)

	if !a.Before(b) {
		t.Errorf("%v.Before(%v) = false, want true", a, b)
	}
	if a.After(b) {
		t.Errorf("%v.After(%v) = true, want false", a, b)
	}
	if a.Before(a) || a.After(a) {
		t.Errorf("date %v should be neither before nor after itself", a)
	}
}

func TestDate_Add(t *testing.T) {
	d := NewDate(2022, time.May, 30)
	if got, want := d.Add(3), NewDate(2022, time.June, 2); got != want {
		t.Errorf("Add(3) = %v, want %v", got, want)
	}
	if got, want := d.Add(-30), NewDate(2022, time.April, 30); got != want {
		t.Errorf("Add(-30) = %v, want %v", got, want)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2022, time.May, 27)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `"2022-05-27"` {
		t.Errorf("Marshal() = %s, want %q", b, "2022-05-27")
	}

	var got Date
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("round trip = %v, want %v", got, d)
	}
}
