package core

import "testing"

func TestIsEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		expected bool
	}{
		{name: "identical", a: 1.0, b: 1.0, expected: true},
		{name: "within absolute epsilon near zero", a: 0.0, b: 1e-13, expected: true},
		{name: "outside absolute epsilon near zero", a: 0.0, b: 1e-6, expected: false},
		{name: "within relative epsilon for large values", a: 1e10, b: 1e10 + 1, expected: true},
		{name: "outside relative epsilon for large values", a: 1e10, b: 1e10 + 1e4, expected: false},
		{name: "clearly different", a: 1.0, b: 2.0, expected: false},
		{name: "negative values within tolerance", a: -3.0, b: -3.0 - 1e-13, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEqual(tt.a, tt.b); got != tt.expected {
				t.Errorf("IsEqual(%v, %v) = %t, expected %t", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestLessThan(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		expected bool
	}{
		{name: "strictly less", a: 1.0, b: 2.0, expected: true},
		{name: "strictly greater", a: 2.0, b: 1.0, expected: false},
		{name: "equal", a: 1.0, b: 1.0, expected: false},
		{name: "less but within tolerance", a: 1.0, b: 1.0 + 1e-13, expected: false},
		{name: "negative less than zero", a: -1e-6, b: 0.0, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LessThan(tt.a, tt.b); got != tt.expected {
				t.Errorf("LessThan(%v, %v) = %t, expected %t", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestIsEqualVec3(t *testing.T) {
	a := NewVec3(1, 2, 3)
	if !IsEqualVec3(a, NewVec3(1, 2+1e-13, 3)) {
		t.Error("Expected vectors within tolerance to compare equal")
	}
	if IsEqualVec3(a, NewVec3(1, 2.1, 3)) {
		t.Error("Expected vectors outside tolerance to compare unequal")
	}
}
