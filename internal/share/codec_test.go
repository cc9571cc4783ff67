package share

import (
	"net/url"
	"testing"

	"github.com/woozymasta/mapview/internal/geo"
)

var bounds = geo.MapBounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}

func TestEncode(t *testing.T) {
	q := Encode(geo.Point{X: 10.4, Y: 59.5}, geo.Point{X: 99.9, Y: 0.2}, bounds)
	if got := q.Get(ParamFrom); got != "10-60" {
		t.Errorf("from = %q, want 10-60", got)
	}
	if got := q.Get(ParamTo); got != "100-0" {
		t.Errorf("to = %q, want 100-0", got)
	}
}

func TestRoundTrip(t *testing.T) {
	from := geo.Point{X: 12.34, Y: 56.78}
	to := geo.Point{X: 87.65, Y: 4.32}

	got, ok := Decode(Encode(from, to, bounds), bounds)
	if !ok {
		t.Fatal("expected encoded state to decode")
	}

	want := State{From: from, To: to}.Rounded(bounds)
	if got != want {
		t.Errorf("Decode = %+v, want %+v", got, want)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"absent", ""},
		{"missing to", "from=10-10"},
		{"out of bounds", "from=9999-9999&to=10-10"},
		{"to out of bounds", "from=10-10&to=10-101"},
		{"not a number", "from=ab-10&to=10-10"},
		{"three parts", "from=1-2-3&to=10-10"},
		{"one part", "from=12&to=10-10"},
		{"negative", "from=-5-10&to=10-10"},
		{"empty value", "from=-&to=10-10"},
		{"infinite", "from=Inf-10&to=10-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("bad test query: %v", err)
			}
			if s, ok := Decode(q, bounds); ok {
				t.Errorf("expected rejection, got %+v", s)
			}
		})
	}
}

func TestDecodeAcceptsDecimals(t *testing.T) {
	s, ok := DecodeURL("https://example.test/map?from=10.5-20&to=0-100", bounds)
	if !ok {
		t.Fatal("expected decimal coordinates to decode")
	}
	if s.From != (geo.Point{X: 10.5, Y: 20}) || s.To != (geo.Point{X: 0, Y: 100}) {
		t.Errorf("unexpected state %+v", s)
	}
}

func TestWithStateAndCleared(t *testing.T) {
	raw := "https://example.test/viewer?map=x&from=1-1&to=2-2#top"

	got, err := WithState(raw, State{From: geo.Point{X: 10, Y: 10}, To: geo.Point{X: 10, Y: 60}}, bounds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "https://example.test/viewer?from=10-10&to=10-60#top"; got != want {
		t.Errorf("WithState = %q, want %q", got, want)
	}

	got, err = Cleared(got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "https://example.test/viewer#top"; got != want {
		t.Errorf("Cleared = %q, want %q", got, want)
	}
}

func TestEncodeStaysInsideFractionalBounds(t *testing.T) {
	frac := geo.MapBounds{MinX: 0.4, MinY: 0.4, MaxX: 100.4, MaxY: 100.4}

	tests := []struct {
		name     string
		from, to geo.Point
		wantFrom string
		wantTo   string
	}{
		{"near min edge", geo.Point{X: 0.45, Y: 50}, geo.Point{X: 60, Y: 60}, "1-50", "60-60"},
		{"near max edge", geo.Point{X: 100.4, Y: 0.4}, geo.Point{X: 50.2, Y: 100.3}, "100-1", "50-100"},
		{"interior", geo.Point{X: 10.6, Y: 20.4}, geo.Point{X: 99.5, Y: 1.5}, "11-20", "100-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Encode(tt.from, tt.to, frac)
			if got := q.Get(ParamFrom); got != tt.wantFrom {
				t.Errorf("from = %q, want %q", got, tt.wantFrom)
			}
			if got := q.Get(ParamTo); got != tt.wantTo {
				t.Errorf("to = %q, want %q", got, tt.wantTo)
			}

			got, ok := Decode(q, frac)
			if !ok {
				t.Fatalf("link %q does not decode on its own map", q.Encode())
			}
			if want := (State{From: tt.from, To: tt.to}).Rounded(frac); got != want {
				t.Errorf("Decode = %+v, want %+v", got, want)
			}
		})
	}
}

func TestEncodeNarrowBoundsRoundsPlainly(t *testing.T) {
	narrow := geo.MapBounds{MinX: 0.2, MinY: 0, MaxX: 0.8, MaxY: 10}

	q := Encode(geo.Point{X: 0.3, Y: 5}, geo.Point{X: 0.7, Y: 5}, narrow)
	if got := q.Get(ParamFrom); got != "0-5" {
		t.Errorf("from = %q, want 0-5", got)
	}
	if got := q.Get(ParamTo); got != "1-5" {
		t.Errorf("to = %q, want 1-5", got)
	}
}
