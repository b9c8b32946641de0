package core

import (
	"reflect"
	"testing"
)

func TestNormalizeGenres(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "regular list",
			input: []string{"Action", "RPG"},
			want:  []string{"Action", "RPG"},
		},
		{
			name:  "comma joined single string",
			input: []string{"Action, RPG, Indie"},
			want:  []string{"Action", "RPG", "Indie"},
		},
		{
			name:  "comma joined inside a list element",
			input: []string{"Action,RPG", "Strategy"},
			want:  []string{"Action", "RPG", "Strategy"},
		},
		{
			name:  "whitespace and empties dropped",
			input: []string{"  Action ", "", " ,, "},
			want:  []string{"Action"},
		},
		{
			name:  "duplicates keep first occurrence order",
			input: []string{"RPG", "Action, RPG", "Action"},
			want:  []string{"RPG", "Action"},
		},
		{
			name:  "empty input",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeGenres(tt.input...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeGenres(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenresFromAny(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "string", input: "Action, RPG", want: []string{"Action", "RPG"}},
		{name: "string slice", input: []string{"Action", "RPG"}, want: []string{"Action", "RPG"}},
		{name: "any slice from json", input: []any{"Action", "RPG", 42}, want: []string{"Action", "RPG"}},
		{name: "unsupported type", input: 3.14, want: nil},
		{name: "nil", input: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenresFromAny(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenresFromAny(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
