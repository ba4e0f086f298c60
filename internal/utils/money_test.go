package utils

import "testing"

func TestParseBRL(t *testing.T) {
	casos := []struct {
		entrada string
		saida   int64
	}{
		{"R$ 1.234,56", 123456},
		{"r$ 25,00", 2500},
		{"1234,56", 123456},
		{"1234.56", 123456},
		{"1234.5", 123450},
		{"150", 15000},
		{"0,99", 99},
		{"-10,50", -1050},
	}
	for _, c := range casos {
		got, err := ParseBRL(c.entrada)
		if err != nil {
			t.Errorf("ParseBRL(%q): unexpected error %v", c.entrada, err)
			continue
		}
		if got != c.saida {
			t.Errorf("ParseBRL(%q) = %d, want %d", c.entrada, got, c.saida)
		}
	}
}

func TestParseBRLRejeita(t *testing.T) {
	for _, entrada := range []string{"", "R$", "abc", "10,505", "12.345"} {
		if _, err := ParseBRL(entrada); err == nil {
			t.Errorf("ParseBRL(%q): expected error", entrada)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	casos := []struct {
		centavos int64
		saida    string
	}{
		{123456, "R$ 1.234,56"},
		{2500, "R$ 25,00"},
		{99, "R$ 0,99"},
		{-1050, "-R$ 10,50"},
		{100000000, "R$ 1.000.000,00"},
	}
	for _, c := range casos {
		if got := FormatBRL(c.centavos); got != c.saida {
			t.Errorf("FormatBRL(%d) = %q, want %q", c.centavos, got, c.saida)
		}
	}
}
