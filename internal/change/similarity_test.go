package change

import (
	"math"
	"strings"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRatio_Identical(t *testing.T) {
	if got := Ratio("hello world", "hello world"); !almostEqual(got, 1.0) {
		t.Errorf("expected 1.0 for identical strings, got %f", got)
	}
}

func TestRatio_BothEmpty(t *testing.T) {
	if got := Ratio("", ""); !almostEqual(got, 1.0) {
		t.Errorf("expected 1.0 for two empty strings, got %f", got)
	}
}

func TestRatio_OneEmpty(t *testing.T) {
	if got := Ratio("content", ""); !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0 against empty string, got %f", got)
	}
}

func TestRatio_Disjoint(t *testing.T) {
	if got := Ratio("aaaa", "bbbb"); !almostEqual(got, 0.0) {
		t.Errorf("expected 0.0 for disjoint strings, got %f", got)
	}
}

func TestRatio_KnownValue(t *testing.T) {
	// "abcd" vs "bcde": longest common block "bcd" (3 chars),
	// ratio = 2*3 / (4+4) = 0.75
	if got := Ratio("abcd", "bcde"); !almostEqual(got, 0.75) {
		t.Errorf("expected 0.75, got %f", got)
	}
}

func TestRatio_OrderSensitive(t *testing.T) {
	a := "first second third"
	b := "third second first"
	got := Ratio(a, b)
	if got >= 1.0 {
		t.Errorf("reordered content must score below 1.0, got %f", got)
	}
	if got <= 0.0 {
		t.Errorf("reordered content with shared vocabulary must score above 0.0, got %f", got)
	}
}

func TestRatio_SmallEdit(t *testing.T) {
	a := strings.Repeat("stable content line. ", 50)
	b := a + "one new sentence."
	if got := Ratio(a, b); got < 0.95 {
		t.Errorf("small append should stay highly similar, got %f", got)
	}
}
