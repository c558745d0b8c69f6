package poll

import (
	"reflect"
	"testing"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name       string
		seen       map[string]struct{}
		candidates []string
		want       []string
	}{
		{
			name:       "nothing seen",
			seen:       map[string]struct{}{},
			candidates: []string{"a", "b", "c"},
			want:       []string{"a", "b", "c"},
		},
		{
			name:       "seen ids dropped, order preserved",
			seen:       map[string]struct{}{"b": {}},
			candidates: []string{"a", "b", "c"},
			want:       []string{"a", "c"},
		},
		{
			name:       "all seen",
			seen:       map[string]struct{}{"a": {}, "b": {}},
			candidates: []string{"a", "b"},
			want:       []string{},
		},
		{
			name:       "in-batch repeats collapse to the first occurrence",
			seen:       map[string]struct{}{},
			candidates: []string{"a", "b", "a", "c", "b"},
			want:       []string{"a", "b", "c"},
		},
		{
			name:       "empty ids dropped",
			seen:       map[string]struct{}{},
			candidates: []string{"", "a", ""},
			want:       []string{"a"},
		},
		{
			name:       "nil seen set",
			seen:       nil,
			candidates: []string{"a"},
			want:       []string{"a"},
		},
		{
			name:       "empty candidates",
			seen:       map[string]struct{}{"a": {}},
			candidates: nil,
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedupe(tt.seen, tt.candidates)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dedupe() = %v, want %v", got, tt.want)
			}
		})
	}
}
