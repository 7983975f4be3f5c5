package pattern

import (
	"reflect"
	"testing"
)

func TestMarkAsRest(t *testing.T) {
	tests := []struct {
		in    Envelope
		index int
		want  Envelope
	}{
		{
			in:    Envelope{Attack, Sustain, Sustain, Sustain, Release},
			index: 2,
			want:  Envelope{Attack, Release, Full, Attack, Release},
		},
		{
			in:    Envelope{Attack, Sustain, Release},
			index: 1,
			want:  Envelope{Full, Full, Full},
		},
		{
			in:    Envelope{Attack, Release},
			index: 0,
			want:  Envelope{Full, Full},
		},
		{
			in:    Envelope{Attack, Sustain},
			index: 1,
			want:  Envelope{Full, Full},
		},
		{
			in:    Envelope{Full, Attack, Full},
			index: 0,
			want:  Envelope{Full, Attack, Full},
		},
		{
			in:    Envelope{Sustain},
			index: 0,
			want:  Envelope{Full},
		},
		{
			in:    Envelope{Attack, Release},
			index: 5,
			want:  Envelope{Attack, Release},
		},
	}
	for _, test := range tests {
		got := append(Envelope(nil), test.in...)
		MarkAsRest(got, test.index)
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("rest at %d in %v:\nwant: %v\ngot:  %v", test.index, test.in, test.want, got)
		}
	}
}

func TestReverseEnvelope(t *testing.T) {
	in := Envelope{Full, Attack, Sustain, Release, Attack}
	want := Envelope{Release, Attack, Sustain, Release, Full}
	if got := ReverseEnvelope(in); !reflect.DeepEqual(want, got) {
		t.Errorf("wrong envelope:\nwant: %v\ngot:  %v", want, got)
	}
	if got := ReverseEnvelope(nil); got != nil {
		t.Errorf("want nil, got %v", got)
	}
}

func TestParseTag(t *testing.T) {
	for _, s := range []string{"attack", "1"} {
		if tag, err := ParseTag(s); err != nil || tag != Attack {
			t.Errorf("ParseTag(%q) = %v, %v", s, tag, err)
		}
	}
	if _, err := ParseTag("swell"); err == nil {
		t.Error("expected error for unknown tag")
	}
	if _, err := TagOf(4); err == nil {
		t.Error("expected error for tag 4")
	}
}
