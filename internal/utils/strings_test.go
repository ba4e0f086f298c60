package utils

import "testing"

func TestNormalizeSpace(t *testing.T) {
	casos := []struct {
		entrada string
		saida   string
	}{
		{"  Maria   Souza ", "Maria Souza"},
		{"Carlos\tLima", "Carlos Lima"},
		{"único", "único"},
		{"   ", ""},
	}
	for _, c := range casos {
		if got := NormalizeSpace(c.entrada); got != c.saida {
			t.Errorf("NormalizeSpace(%q) = %q, want %q", c.entrada, got, c.saida)
		}
	}
}
