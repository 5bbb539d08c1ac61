package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/ChrisMcGann/msquery/pkg/formula"
	"github.com/ChrisMcGann/msquery/pkg/isotope"
)

var enum = isotope.Enumerator{}

func TestFineSpectrumWaterCation(t *testing.T) {
	table, err := FineSpectrum(enum, "H2O", 1, 6, 1e-3)
	if err != nil {
		t.Fatalf("FineSpectrum failed: %v", err)
	}
	if len(table) == 0 {
		t.Fatal("empty table")
	}

	// Lightest row: monoisotopic mass minus one electron.
	wantTMZ := RoundFloat(18.0105646859-ElectronMass, 6)
	if got := table[0].TMZ; got != wantTMZ {
		t.Errorf("lightest tmz = %.6f, want %.6f", got, wantTMZ)
	}

	// Dominant isotopologue scales near 1,000,000.
	if got := table[0].TRI; got < 990000 || got > 1000000 {
		t.Errorf("dominant tri = %d, want near 1e6", got)
	}

	// Strictly sorted, no duplicate tmz after rounding.
	for i := 1; i < len(table); i++ {
		if table[i].TMZ <= table[i-1].TMZ {
			t.Errorf("tmz not strictly ascending at row %d", i)
		}
	}
	if !table.Sorted() {
		t.Error("Sorted() = false on a fresh table")
	}
}

func TestFineSpectrumChargeCorrection(t *testing.T) {
	tests := []struct {
		name   string
		charge int
		want   func(rawMass float64) float64
	}{
		{"neutral keeps raw mass", 0, func(m float64) float64 { return m }},
		{"single positive charge", 1, func(m float64) float64 { return m - ElectronMass }},
		{"double positive charge", 2, func(m float64) float64 { return (m - 2*ElectronMass) / 2 }},
		{"single negative charge", -1, func(m float64) float64 { return m + ElectronMass }},
	}

	const rawMass = 18.0105646859 // monoisotopic H2O
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := FineSpectrum(enum, "H2O", tt.charge, 6, 1e-3)
			if err != nil {
				t.Fatalf("FineSpectrum failed: %v", err)
			}
			want := RoundFloat(tt.want(rawMass), 6)
			if got := table[0].TMZ; got != want {
				t.Errorf("charge %d: tmz = %.6f, want %.6f", tt.charge, got, want)
			}
		})
	}
}

func TestFineSpectrumThresholdSuperset(t *testing.T) {
	loose, err := FineSpectrum(enum, "C6H12O6", 1, 6, 1e-3)
	if err != nil {
		t.Fatalf("FineSpectrum failed: %v", err)
	}
	strict, err := FineSpectrum(enum, "C6H12O6", 1, 6, 1e-2)
	if err != nil {
		t.Fatalf("FineSpectrum failed: %v", err)
	}
	if len(loose) < len(strict) {
		t.Fatalf("threshold 1e-3 kept %d rows, 1e-2 kept %d", len(loose), len(strict))
	}
	for _, s := range strict {
		found := false
		for _, l := range loose {
			if l.TMZ == s.TMZ {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("tmz %.6f missing from looser-threshold table", s.TMZ)
		}
	}
}

func TestFineSpectrumIntensitiesNonNegative(t *testing.T) {
	table, err := FineSpectrum(enum, "C6H5Br", 1, 6, 1e-3)
	if err != nil {
		t.Fatalf("FineSpectrum failed: %v", err)
	}
	for i, l := range table {
		if l.TRI < 0 {
			t.Errorf("row %d: negative tri %d", i, l.TRI)
		}
	}
}

func TestFineSpectrumFailures(t *testing.T) {
	if _, err := FineSpectrum(enum, "not a formula!", 1, 6, 1e-3); !errors.Is(err, formula.ErrInvalidFormula) {
		t.Errorf("malformed formula error = %v, want ErrInvalidFormula", err)
	}
	// Parses, but the fine path cannot handle isotope labels.
	if _, err := FineSpectrum(enum, "[13C]O2", 1, 6, 1e-3); !errors.Is(err, isotope.ErrUnsupportedIsotope) {
		t.Errorf("labeled formula error = %v, want ErrUnsupportedIsotope", err)
	}
}

func TestCoarseSpectrumWater(t *testing.T) {
	table, err := CoarseSpectrum(enum, "H2O", 1, 5, 1e-4)
	if err != nil {
		t.Fatalf("CoarseSpectrum failed: %v", err)
	}

	line, ok := table.Line(18)
	if !ok {
		t.Fatal("no row for mass number 18")
	}
	want := RoundFloat(18.0105646859-ElectronMass, 5)
	if line.TMZ != want {
		t.Errorf("bin 18 tmz = %.5f, want %.5f", line.TMZ, want)
	}
	if line.TRI < 990000 || line.TRI > 1000000 {
		t.Errorf("bin 18 tri = %d, want near 1e6", line.TRI)
	}

	if _, ok := table.Line(19); !ok {
		t.Error("no row for mass number 19")
	}
}

func TestCoarseSpectrumWeightedMean(t *testing.T) {
	// The M+1 bin of the trimethylglycine cation averages the 13C, 15N,
	// 17O and 2H isotopologues by abundance; the reference value is
	// 119.0893 m/z.
	table, err := CoarseSpectrum(enum, "C5H12NO2", 1, 6, 1e-4)
	if err != nil {
		t.Fatalf("CoarseSpectrum failed: %v", err)
	}
	line, ok := table.Line(119)
	if !ok {
		t.Fatal("no row for mass number 119")
	}
	if math.Abs(line.TMZ-119.0893) > 1e-4 {
		t.Errorf("bin 119 tmz = %.6f, want ~119.0893", line.TMZ)
	}
}

func TestCoarseSpectrumHandlesLabels(t *testing.T) {
	table, err := CoarseSpectrum(enum, "[2H]2O", 0, 5, 1e-4)
	if err != nil {
		t.Fatalf("CoarseSpectrum failed: %v", err)
	}
	line, ok := table.Line(20)
	if !ok {
		t.Fatal("no row for mass number 20")
	}
	want := RoundFloat(2*2.0141017780+15.9949146221, 5)
	if line.TMZ != want {
		t.Errorf("bin 20 tmz = %.5f, want %.5f", line.TMZ, want)
	}
}

func TestMZWindow(t *testing.T) {
	low, high, err := MZWindow(enum, "C28H30N2O3 + H", 1, 20)
	if err != nil {
		t.Fatalf("MZWindow failed: %v", err)
	}
	if low >= high {
		t.Fatalf("low %.6f >= high %.6f", low, high)
	}

	table, err := FineSpectrum(enum, "C28H30N2O3 + H", 1, DefaultFinePrecision, DefaultFineThreshold)
	if err != nil {
		t.Fatalf("FineSpectrum failed: %v", err)
	}
	m := table[0].TMZ
	if m < low || m > high {
		t.Errorf("lightest tmz %.6f outside window [%.6f, %.6f]", m, low, high)
	}
}

func TestMZWindowFailures(t *testing.T) {
	if _, _, err := MZWindow(enum, "bogus(", 1, 10); err == nil {
		t.Error("malformed formula should fail")
	}
	if _, _, err := MZWindow(enum, "H2O", 1, 0); err == nil {
		t.Error("zero tolerance should fail")
	}
	if _, _, err := MZWindow(enum, "[13C]O2", 1, 10); err == nil {
		t.Error("label-only fine path should fail")
	}
}

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		name      string
		val       float64
		precision int
		want      float64
	}{
		{"six decimals", 18.01056468, 6, 18.010565},
		{"five decimals", 18.01056468, 5, 18.01056},
		{"zero decimals", 3.6, 0, 4.0},
		{"negative value", -3.14159, 2, -3.14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundFloat(tt.val, tt.precision); got != tt.want {
				t.Errorf("RoundFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}
