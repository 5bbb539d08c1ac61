package formula

import (
	"errors"
	"testing"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		want    string // canonical rendering
	}{
		{"water", "H2O", "H2O"},
		{"betaine cation", "C5H12NO2", "C5H12NO2"},
		{"parenthesized group", "(COOH)2", "C2H2O4"},
		{"bracketed group", "[CO]12", "C12O12"},
		{"braced group with abbreviation", "{PPh3}2", "C36H30P2"},
		{"isotope label", "[13C]O2", "[13C]O2"},
		{"labeled water", "[2H]2O", "[2H]2O"},
		{"deuterium shorthand", "D2O", "[2H]2O"},
		{"hydrate", "CuSO4.5H2O", "CuH10O9S"},
		{"additive fragment", "C28H30N2O3 + H", "C28H31N2O3"},
		{"subtractive fragment", "H2O - H", "HO"},
		{"triethylamine", "Et3N", "C6H15N"},
		{"spaces between groups", "(CH3SiOCH3)8 NH4", "C16H52NO8Si8"},
		{"nested groups", "Ag(NH3)2", "AgH6N2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp, err := Parse(tt.formula)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.formula, err)
			}
			if got := comp.String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.formula, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		formula string
	}{
		{"empty", ""},
		{"lowercase start", "h2o"},
		{"unknown symbol", "Xx2"},
		{"unbalanced paren", "(COOH"},
		{"dangling plus", "C5H12NO2 +"},
		{"negative after subtraction", "C - H2"},
		{"label without element", "[13]O"},
		{"unterminated label", "[13C O2"},
		{"zero count", "C0H2"},
		{"stray character", "C5;H12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.formula)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.formula)
			}
			if !errors.Is(err, ErrInvalidFormula) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidFormula", tt.formula, err)
			}
		})
	}
}

func TestCompositionCounts(t *testing.T) {
	comp, err := Parse("CuSO4.5H2O")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	checks := []struct {
		atom Atom
		want int
	}{
		{Atom{Element: "Cu"}, 1},
		{Atom{Element: "S"}, 1},
		{Atom{Element: "O"}, 9},
		{Atom{Element: "H"}, 10},
		{Atom{Element: "N"}, 0},
	}
	for _, c := range checks {
		if got := comp.Count(c.atom); got != c.want {
			t.Errorf("Count(%s) = %d, want %d", c.atom, got, c.want)
		}
	}
	if got := comp.NumAtoms(); got != 21 {
		t.Errorf("NumAtoms() = %d, want 21", got)
	}
}

func TestIsotopeLabels(t *testing.T) {
	labeled, err := Parse("[13C]O2")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !labeled.HasIsotopeLabels() {
		t.Error("[13C]O2 should report isotope labels")
	}
	if got := labeled.Count(Atom{Element: "C", MassNumber: 13}); got != 1 {
		t.Errorf("Count([13C]) = %d, want 1", got)
	}
	if got := labeled.Count(Atom{Element: "C"}); got != 0 {
		t.Errorf("Count(C) = %d, want 0; labels are distinct atoms", got)
	}

	natural, err := Parse("CO2")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if natural.HasIsotopeLabels() {
		t.Error("CO2 should not report isotope labels")
	}
}

func TestAtomsHillOrder(t *testing.T) {
	comp, err := Parse("O2NH12C5")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	atoms := comp.Atoms()
	var order []string
	for _, ac := range atoms {
		order = append(order, ac.Atom.Element)
	}
	want := []string{"C", "H", "N", "O"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Hill order = %v, want %v", order, want)
		}
	}
}
