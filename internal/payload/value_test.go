package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAt(t *testing.T) {
	tests := []struct {
		name   string
		rec    Record
		path   string
		want   float64
		wantOK bool
	}{
		{
			name:   "direct_descent",
			rec:    Record{"a": map[string]any{"b": 7.25}},
			path:   "a.b",
			want:   7.25,
			wantOK: true,
		},
		{
			name:   "thousands_separator_string",
			rec:    Record{"a": map[string]any{"b": "1,234.50"}},
			path:   "a.b",
			want:   1234.5,
			wantOK: true,
		},
		{
			name:   "null_leaf",
			rec:    Record{"a": map[string]any{"b": nil}},
			path:   "a.b",
			wantOK: false,
		},
		{
			name:   "missing_leaf_no_fallback_match",
			rec:    Record{"a": map[string]any{"c": 1.0}},
			path:   "a.b",
			wantOK: false,
		},
		{
			name:   "case_insensitive_fallback",
			rec:    Record{"Data": map[string]any{"Total_Fuel_Consumed": 42.0}},
			path:   "data.total_fuel_consumed",
			want:   42.0,
			wantOK: true,
		},
		{
			name:   "duplicate_list_paths_first_match_wins",
			rec:    Record{"A": []any{map[string]any{"b": 5.0}, map[string]any{"b": 9.0}}},
			path:   "a.b",
			want:   5.0,
			wantOK: true,
		},
		{
			name:   "fallback_loses_prefix_below_failure_point",
			rec:    Record{"a": []any{map[string]any{"x": 1.0}, map[string]any{"b": 9.0}}},
			path:   "a.b",
			wantOK: false,
		},
		{
			name:   "empty_string",
			rec:    Record{"fuel": "   "},
			path:   "fuel",
			wantOK: false,
		},
		{
			name:   "unparsable_string",
			rec:    Record{"fuel": "n/a"},
			path:   "fuel",
			wantOK: false,
		},
		{
			name:   "whitespace_padded_number",
			rec:    Record{"fuel": "  99.5  "},
			path:   "fuel",
			want:   99.5,
			wantOK: true,
		},
		{
			name:   "leaf_is_container",
			rec:    Record{"fuel": map[string]any{"x": 1.0}},
			path:   "fuel",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ValueAt(tt.rec, tt.path)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{name: "float", in: 3.5, want: 3.5, wantOK: true},
		{name: "int", in: 12, want: 12, wantOK: true},
		{name: "string_number", in: "10", want: 10, wantOK: true},
		{name: "string_commas", in: "12,000", want: 12000, wantOK: true},
		{name: "zero", in: 0.0, want: 0, wantOK: true},
		{name: "nil", in: nil, wantOK: false},
		{name: "bool", in: true, wantOK: false},
		{name: "empty_string", in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Coerce(tt.in)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}
