package berg

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func evalString(t *testing.T, src string) string {
	t.Helper()
	_, v, cerr := Eval("<test>", []byte(src), nil)
	if cerr != nil {
		return "ERROR: " + cerr.Error()
	}
	return v.String()
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"addition", "1 + 2", "3"},
		{"precedence", "1 + 2 * 3", "7"},
		{"parens", "(1 + 2) * 3", "9"},
		{"comparison", "3 < 5", "true"},
		{"equality", "3 == 3", "true"},
		{"inequality", "3 != 3", "false"},
		{"boolean and", "true && false", "false"},
		{"boolean or", "false || true", "true"},
		{"negative", "-5 + 2", "-3"},
		{"increment", "x: 1; ++x", "2"},
		{"decrement postfix", "x: 5; x--\nx", "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalString(t, tt.source)
			if got != tt.want {
				t.Errorf("eval(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestEvalDivideByZero(t *testing.T) {
	got := evalString(t, "1 / 0")
	if got == "3" || got == "" {
		t.Fatalf("expected a divide-by-zero error, got %q", got)
	}
}

func TestEvalIfElse(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"if true", "if true {1} else {2}", "1"},
		{"if false", "if false {1} else {2}", "2"},
		{"if no else", "if true {42}", "42"},
		{"else if chain", "x: 2\nif x == 1 {10} else if x == 2 {20} else {30}", "20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalString(t, tt.source)
			if got != tt.want {
				t.Errorf("eval(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestEvalWhileLoop(t *testing.T) {
	source := `
i: 0
sum: 0
while { i < 5 } {
	sum = sum + i
	i = i + 1
}
sum
`
	got := evalString(t, source)
	if got != "10" {
		t.Errorf("eval(while loop) = %q, want %q", got, "10")
	}
}

func TestEvalBreakContinue(t *testing.T) {
	source := `
i: 0
sum: 0
while { i < 10 } {
	i = i + 1
	if i == 6 { break }
	sum = sum + i
}
sum
`
	got := evalString(t, source)
	if got != "15" {
		t.Errorf("eval(while with break) = %q, want %q", got, "15")
	}
}

func TestEvalTryCatch(t *testing.T) {
	source := `
result: 0
try { 1 / 0 } catch {
	result = 99
}
result
`
	got := evalString(t, source)
	if got != "99" {
		t.Errorf("eval(try/catch) = %q, want %q", got, "99")
	}
}

func TestEvalThrowWithoutException(t *testing.T) {
	got := evalString(t, "throw")
	if got[:6] != "ERROR:" {
		t.Errorf("eval(bare throw) = %q, want an error", got)
	}
}

func TestEvalSnapshot(t *testing.T) {
	sources := []string{
		"1 + 2 * 3",
		"if 2 < 3 { 10 } else { 20 }",
		"i: 0\nwhile { i < 3 } { i = i + 1 }\ni",
	}
	for i, src := range sources {
		snaps.MatchSnapshot(t, map[string]string{
			"source": src,
			"result": evalString(t, src),
		})
		_ = i
	}
}
