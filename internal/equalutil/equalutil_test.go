package equalutil_test

import (
	"math"
	"testing"

	"github.com/pipelinetools/concoursemerge/internal/equalutil"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestEqualPtr_float64(t *testing.T) {
	tests := []struct {
		name string
		a    *float64
		b    *float64
		want bool
	}{
		{name: "both nil", a: nil, b: nil, want: true},
		{name: "a nil, b non-nil", a: nil, b: ptr(3.14), want: false},
		{name: "a non-nil, b nil", a: ptr(3.14), b: nil, want: false},
		{name: "both same value", a: ptr(3.14), b: ptr(3.14), want: true},
		{name: "both different values", a: ptr(3.14), b: ptr(2.71), want: false},
		{name: "both NaN", a: ptr(math.NaN()), b: ptr(math.NaN()), want: false}, // NaN != NaN per IEEE 754
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.EqualPtr(tt.a, tt.b))
		})
	}
}

func TestEqualPtr_int(t *testing.T) {
	tests := []struct {
		name string
		a    *int
		b    *int
		want bool
	}{
		{name: "both nil", a: nil, b: nil, want: true},
		{name: "a nil, b non-nil", a: nil, b: ptr(42), want: false},
		{name: "both same value", a: ptr(42), b: ptr(42), want: true},
		{name: "both different values", a: ptr(42), b: ptr(100), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.EqualPtr(tt.a, tt.b))
		})
	}
}

func TestEqualStringSet(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want bool
	}{
		{name: "both nil", a: nil, b: nil, want: true},
		{name: "same order", a: []string{"a", "b"}, b: []string{"a", "b"}, want: true},
		{name: "different order", a: []string{"a", "b"}, b: []string{"b", "a"}, want: true},
		{name: "different length", a: []string{"a"}, b: []string{"a", "b"}, want: false},
		{name: "different contents", a: []string{"a", "b"}, b: []string{"a", "c"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.EqualStringSet(tt.a, tt.b))
		})
	}
}
