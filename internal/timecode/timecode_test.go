package timecode

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "zero", seconds: 0, want: "00:00:00,000"},
		{name: "truncates milliseconds", seconds: 61.2345, want: "00:01:01,234"},
		{name: "half second", seconds: 5.5, want: "00:00:05,500"},
		{name: "one hour", seconds: 3600, want: "01:00:00,000"},
		{name: "mixed fields", seconds: 3723.25, want: "01:02:03,250"},
		{name: "hours grow past two digits", seconds: 100 * 3600, want: "100:00:00,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.seconds); got != tt.want {
				t.Fatalf("Format(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatMonotonic(t *testing.T) {
	values := []float64{0, 0.001, 0.5, 1, 59.999, 60, 61.2345, 599.5, 3599.999, 3600, 7200.25}
	prev := Format(values[0])
	for _, v := range values[1:] {
		cur := Format(v)
		if cur < prev {
			t.Fatalf("expected %q >= %q for %v", cur, prev, v)
		}
		prev = cur
	}
}

func TestRange(t *testing.T) {
	if got := Range(2, 5.5); got != "00:00:02,000 --> 00:00:05,500" {
		t.Fatalf("unexpected range %q", got)
	}
}
