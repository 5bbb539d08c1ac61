// Package spectrum simulates theoretical mass spectra for molecular
// formulas: fine isotopic distributions, coarse per-mass-number spectra,
// and m/z tolerance windows.
//
// All m/z values are charge-corrected: the electron mass gained or lost by
// the ion is subtracted before dividing by the absolute charge. Intensities
// are rescaled to a 0-1,000,000 integer scale; the fine path keeps the
// pre-correction probability distribution (no renormalization).
package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ChrisMcGann/msquery/pkg/formula"
	"github.com/ChrisMcGann/msquery/pkg/isotope"
)

// ElectronMass is the electron rest mass in atomic mass units.
const ElectronMass = 0.00054858

// Default simulation parameters.
const (
	DefaultFinePrecision   = 6    // decimal places, fine m/z
	DefaultCoarsePrecision = 5    // decimal places, coarse m/z
	DefaultFineThreshold   = 1e-3 // unassigned probability mass, fine path
	DefaultMinFraction     = 1e-4 // per-bin abundance floor, coarse path
	DefaultTolerancePPM    = 10   // m/z window half-width, parts per million
)

// intensityScale maps probability 1.0 to a relative intensity of 1,000,000.
const intensityScale = 1e6

// Enumerator is the isotope-physics engine the simulation delegates to.
// isotope.Enumerator is the in-tree implementation.
type Enumerator interface {
	Isotopologues(c formula.Composition, threshold float64) ([]isotope.Isotopologue, error)
	MassSpectrum(c formula.Composition, minFraction float64) ([]isotope.MassBin, error)
}

// Line is one row of a fine isotope table: theoretical m/z and relative
// intensity on the 0-1,000,000 scale. Column names tmz and tri are fixed
// for downstream consumers.
type Line struct {
	TMZ float64
	TRI int32
}

// IsotopeTable is a fine isotopic distribution, sorted ascending by TMZ.
type IsotopeTable []Line

// Sorted reports whether the table is sorted ascending by TMZ.
func (t IsotopeTable) Sorted() bool {
	for i := 1; i < len(t); i++ {
		if t[i].TMZ < t[i-1].TMZ {
			return false
		}
	}
	return true
}

// MassLine is one row of a coarse spectrum, keyed by nominal mass number.
type MassLine struct {
	MassNumber int
	TMZ        float64
	TRI        int32
}

// MassSpectrumTable is a coarse spectrum, sorted ascending by mass number.
type MassSpectrumTable []MassLine

// Line returns the row for a mass number.
func (t MassSpectrumTable) Line(massNumber int) (MassLine, bool) {
	for _, l := range t {
		if l.MassNumber == massNumber {
			return l, true
		}
	}
	return MassLine{}, false
}

// FineSpectrum simulates a high-resolution spectrum with fine isotopic
// detail. threshold is the probability mass the enumeration may leave
// unassigned (1e-3 keeps isotopologues until 99.9% is covered). The formula
// is interpreted first; formulas that parse but carry isotope labels fail
// with isotope.ErrUnsupportedIsotope, since fine enumeration is stricter
// than the formula grammar.
func FineSpectrum(enum Enumerator, f string, charge, precision int, threshold float64) (IsotopeTable, error) {
	comp, err := formula.Parse(f)
	if err != nil {
		return nil, err
	}

	isos, err := enum.Isotopologues(comp, threshold)
	if err != nil {
		return nil, fmt.Errorf("simulate %q: %w", f, err)
	}

	table := make(IsotopeTable, len(isos))
	for i, iso := range isos {
		table[i] = Line{
			TMZ: RoundFloat(chargeCorrect(iso.Mass, charge), precision),
			TRI: int32(math.Round(iso.Probability * intensityScale)),
		}
	}
	sort.Slice(table, func(i, j int) bool { return table[i].TMZ < table[j].TMZ })
	return table, nil
}

// CoarseSpectrum simulates a low-resolution spectrum: one row per nominal
// mass number holding the abundance-weighted mean m/z of the isotopologues
// sharing that mass number. Mass numbers below minFraction of the total
// abundance are dropped. Unlike FineSpectrum, isotope-labeled formulas are
// handled.
func CoarseSpectrum(enum Enumerator, f string, charge, precision int, minFraction float64) (MassSpectrumTable, error) {
	comp, err := formula.Parse(f)
	if err != nil {
		return nil, err
	}

	bins, err := enum.MassSpectrum(comp, minFraction)
	if err != nil {
		return nil, fmt.Errorf("simulate %q: %w", f, err)
	}

	table := make(MassSpectrumTable, len(bins))
	for i, b := range bins {
		table[i] = MassLine{
			MassNumber: b.MassNumber,
			TMZ:        RoundFloat(chargeCorrect(b.Mass, charge), precision),
			TRI:        int32(math.Round(b.Fraction * intensityScale)),
		}
	}
	return table, nil
}

// MZWindow returns the m/z interval around the lightest isotopologue of f:
// m*(1-ppm*1e-6) to m*(1+ppm*1e-6), both rounded to 6 decimal places. It
// fails if the fine spectrum is unavailable or empty.
func MZWindow(enum Enumerator, f string, charge int, tolerancePPM float64) (low, high float64, err error) {
	if tolerancePPM <= 0 {
		return 0, 0, fmt.Errorf("tolerance must be positive: %v ppm", tolerancePPM)
	}

	table, err := FineSpectrum(enum, f, charge, DefaultFinePrecision, DefaultFineThreshold)
	if err != nil {
		return 0, 0, err
	}
	if len(table) == 0 {
		return 0, 0, errors.New("empty fine spectrum")
	}

	m := table[0].TMZ
	low = RoundFloat(m*(1-tolerancePPM*1e-6), 6)
	high = RoundFloat(m*(1+tolerancePPM*1e-6), 6)
	return low, high, nil
}

// chargeCorrect converts a neutral mass to the m/z of an ion that gained or
// lost charge electrons. Charge 0 leaves the mass untouched.
func chargeCorrect(mass float64, charge int) float64 {
	if charge == 0 {
		return mass
	}
	return (mass - ElectronMass*float64(charge)) / math.Abs(float64(charge))
}

// RoundFloat rounds a float to n decimal places.
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
