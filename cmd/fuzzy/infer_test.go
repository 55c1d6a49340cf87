package main

import (
	"errors"
	"testing"

	"github.com/boshu2/fuzzy/internal/types"
)

func TestParseInputFlags(t *testing.T) {
	inputs, err := parseInputFlags([]string{"service=40", "food=60.5"})
	if err != nil {
		t.Fatalf("parseInputFlags failed: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(inputs))
	}
	if inputs["service"] != 40 {
		t.Errorf("service = %v, want 40", inputs["service"])
	}
	if inputs["food"] != 60.5 {
		t.Errorf("food = %v, want 60.5", inputs["food"])
	}
}

func TestParseInputFlags_Malformed(t *testing.T) {
	cases := []string{"service", "=40", "service=forty"}
	for _, c := range cases {
		if _, err := parseInputFlags([]string{c}); err == nil {
			t.Errorf("expected error for %q", c)
		}
	}
}

func TestParseInputFlags_Empty(t *testing.T) {
	inputs, err := parseInputFlags(nil)
	if err != nil {
		t.Fatalf("parseInputFlags failed: %v", err)
	}
	if len(inputs) != 0 {
		t.Errorf("expected no inputs, got %d", len(inputs))
	}
}

func TestExitCodeError(t *testing.T) {
	base := errors.New("definitions: boom")
	err := exitWith(exitDefinitions, base)

	var ec *exitCodeError
	if !errors.As(err, &ec) {
		t.Fatal("expected exitCodeError")
	}
	if ec.code != exitDefinitions {
		t.Errorf("code = %d, want %d", ec.code, exitDefinitions)
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should match with errors.Is")
	}
}

func TestFormatAntecedent(t *testing.T) {
	terms := []types.Term{
		{Name: "LowService", Op: types.OpNone},
		{Name: "BadFood", Op: types.OpAnd},
		{Name: "GreatFood", Op: types.OpOr},
	}
	got := formatAntecedent(terms)
	want := "LowService AND BadFood OR GreatFood"
	if got != want {
		t.Errorf("formatAntecedent = %q, want %q", got, want)
	}
}

func TestSortedKeys(t *testing.T) {
	keys := sortedKeys(map[string]float64{"c": 1, "a": 2, "b": 3})
	want := []string{"a", "b", "c"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("sortedKeys = %v, want %v", keys, want)
		}
	}
}
