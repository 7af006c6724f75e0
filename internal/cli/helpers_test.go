package cli

import (
	"reflect"
	"testing"
)

func TestParseIDs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []int
		ok   bool
	}{
		{"separate args", []string{"18", "25", "42"}, []int{18, 25, 42}, true},
		{"comma separated", []string{"18,25,42"}, []int{18, 25, 42}, true},
		{"mixed", []string{"18,25", "42"}, []int{18, 25, 42}, true},
		{"duplicates collapsed", []string{"7", "7,7"}, []int{7}, true},
		{"spaces around commas", []string{"1, 2"}, []int{1, 2}, true},
		{"not a number", []string{"abc"}, nil, false},
		{"zero id", []string{"0"}, nil, false},
		{"negative id", []string{"-3"}, nil, false},
		{"empty", []string{","}, nil, false},
	}
	for _, tt := range tests {
		got, err := parseIDs(tt.args)
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("%s: expected error, got %v", tt.name, got)
			}
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: parseIDs = %v, want %v", tt.name, got, tt.want)
		}
	}
}
