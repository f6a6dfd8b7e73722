package typing_test

import (
	"testing"

	"ferroc/typing"
)

func TestEquals_PrimitivesAndContainers(t *testing.T) {
	tests := []struct {
		name string
		a, b typing.DataType
		want bool
	}{
		{"same primitive", typing.Int, typing.Int, true},
		{"different primitive", typing.Int, typing.Float, false},
		{"equal sequences", typing.Sequence{Elem: typing.Int}, typing.Sequence{Elem: typing.Int}, true},
		{"sequences of different elem", typing.Sequence{Elem: typing.Int}, typing.Sequence{Elem: typing.String}, false},
		{"equal optionals", typing.Optional{Inner: typing.Int}, typing.Optional{Inner: typing.Int}, true},
		{"optional vs bare", typing.Optional{Inner: typing.Int}, typing.Int, false},
		{"equal fallibles", typing.Fallible{Ok: typing.Int, Err: typing.String}, typing.Fallible{Ok: typing.Int, Err: typing.String}, true},
		{"fallibles with different err", typing.Fallible{Ok: typing.Int, Err: typing.String}, typing.Fallible{Ok: typing.Int, Err: typing.Int}, false},
		{"equal named", typing.Named{Path: "Widget"}, typing.Named{Path: "Widget"}, true},
		{"different named", typing.Named{Path: "Widget"}, typing.Named{Path: "Gadget"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := typing.Equals(tt.a, tt.b); got != tt.want {
				t.Errorf("Equals(%s, %s) = %v, want %v", tt.a.Repr(), tt.b.Repr(), got, tt.want)
			}
		})
	}
}

func TestIsUnknown(t *testing.T) {
	tests := []struct {
		name string
		dt   typing.DataType
		want bool
	}{
		{"bare unknown", typing.Unknown{Label: "x"}, true},
		{"bare int", typing.Int, false},
		{"sequence of unknown", typing.Sequence{Elem: typing.Unknown{Label: "x"}}, true},
		{"sequence of int", typing.Sequence{Elem: typing.Int}, false},
		{"optional of unknown", typing.Optional{Inner: typing.Unknown{Label: "x"}}, true},
		{"fallible with unknown err", typing.Fallible{Ok: typing.Int, Err: typing.Unknown{Label: "x"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := typing.IsUnknown(tt.dt); got != tt.want {
				t.Errorf("IsUnknown(%s) = %v, want %v", tt.dt.Repr(), got, tt.want)
			}
		})
	}
}
