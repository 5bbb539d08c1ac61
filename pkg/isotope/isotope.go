// Package isotope computes isotope distributions from elemental
// compositions using built-in natural-abundance tables.
//
// Two views are produced: fine isotopologue enumeration (one entry per
// distinct isotope combination, cut off by cumulative probability) and a
// coarse per-mass-number spectrum (abundance-weighted mean mass per nominal
// mass). The fine path rejects isotope-labeled compositions; the coarse
// path handles them.
package isotope

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ChrisMcGann/msquery/pkg/formula"
)

// ErrUnsupportedIsotope is returned when a composition parses but cannot be
// simulated: fine enumeration of isotope-labeled atoms, or an element with
// no abundance data.
var ErrUnsupportedIsotope = errors.New("unsupported isotope notation")

// pruneFloor drops enumeration states below this joint probability to keep
// the convolution bounded for large formulas.
const pruneFloor = 1e-13

// Isotopologue is one distinct isotope combination of a composition.
type Isotopologue struct {
	Mass        float64 // exact neutral mass, atomic mass units
	Probability float64 // joint natural abundance
}

// MassBin is one nominal-mass row of a coarse spectrum.
type MassBin struct {
	MassNumber int
	Mass       float64 // abundance-weighted mean mass of the bin
	Fraction   float64 // summed abundance of the bin
}

// Enumerator is the reference isotope-distribution engine. It is stateless;
// the zero value is ready to use.
type Enumerator struct{}

// Isotopologues enumerates distinct isotopologues of c, keeping the most
// probable entries until at least 1-threshold of the total probability mass
// is covered. Results are sorted ascending by mass.
func (Enumerator) Isotopologues(c formula.Composition, threshold float64) ([]Isotopologue, error) {
	if threshold < 0 || threshold >= 1 {
		return nil, fmt.Errorf("threshold must be in [0, 1): %v", threshold)
	}
	if c.HasIsotopeLabels() {
		return nil, fmt.Errorf("%w: fine enumeration cannot handle labels in %s", ErrUnsupportedIsotope, c)
	}

	states := []fineState{{mass: 0, p: 1}}
	for _, ac := range c.Atoms() {
		ns, ok := lookup(ac.Atom.Element)
		if !ok {
			return nil, fmt.Errorf("%w: no isotope data for element %s", ErrUnsupportedIsotope, ac.Atom.Element)
		}
		single := make([]fineState, len(ns))
		for i, n := range ns {
			single[i] = fineState{mass: n.Mass, p: n.Abundance}
		}
		for i := 0; i < ac.N; i++ {
			states = convolveFine(states, single)
		}
	}

	// Cumulative cutoff: most probable states first, stop once 1-threshold
	// of the probability mass is covered.
	sort.Slice(states, func(i, j int) bool { return states[i].p > states[j].p })
	covered := 0.0
	kept := 0
	for _, s := range states {
		covered += s.p
		kept++
		if covered >= 1-threshold {
			break
		}
	}
	states = states[:kept]

	out := make([]Isotopologue, len(states))
	for i, s := range states {
		out[i] = Isotopologue{Mass: s.mass, Probability: s.p}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mass < out[j].Mass })
	return out, nil
}

// MassSpectrum aggregates the distribution of c by nominal mass number,
// returning the abundance-weighted mean mass and summed abundance per bin.
// Bins below minFraction of the total abundance are discarded. Isotope
// labels contribute their fixed nuclide exactly.
func (Enumerator) MassSpectrum(c formula.Composition, minFraction float64) ([]MassBin, error) {
	if minFraction < 0 {
		return nil, fmt.Errorf("minFraction must be non-negative: %v", minFraction)
	}

	bins := map[int]*binAcc{0: {p: 1}}
	for _, ac := range c.Atoms() {
		var single []Nuclide
		if ac.Atom.Labeled() {
			n, ok := lookupFixed(ac.Atom.Element, ac.Atom.MassNumber)
			if !ok {
				return nil, fmt.Errorf("%w: no nuclide data for %s", ErrUnsupportedIsotope, ac.Atom)
			}
			single = []Nuclide{{MassNumber: n.MassNumber, Mass: n.Mass, Abundance: 1}}
		} else {
			ns, ok := lookup(ac.Atom.Element)
			if !ok {
				return nil, fmt.Errorf("%w: no isotope data for element %s", ErrUnsupportedIsotope, ac.Atom.Element)
			}
			single = ns
		}
		for i := 0; i < ac.N; i++ {
			bins = convolveBins(bins, single)
		}
	}

	total := 0.0
	for _, b := range bins {
		total += b.p
	}

	out := make([]MassBin, 0, len(bins))
	for nominal, b := range bins {
		if total > 0 && b.p/total < minFraction {
			continue
		}
		out = append(out, MassBin{MassNumber: nominal, Mass: b.pm / b.p, Fraction: b.p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MassNumber < out[j].MassNumber })
	return out, nil
}

type fineState struct {
	mass float64
	p    float64
}

// convolveFine adds one atom's distribution to the running states, merging
// states of equal mass (same isotope composition).
func convolveFine(states, single []fineState) []fineState {
	merged := make(map[int64]fineState, len(states)*len(single))
	for _, s := range states {
		for _, a := range single {
			p := s.p * a.p
			if p < pruneFloor {
				continue
			}
			mass := s.mass + a.mass
			key := int64(math.Round(mass * 1e9))
			m := merged[key]
			m.mass = mass
			m.p += p
			merged[key] = m
		}
	}
	out := make([]fineState, 0, len(merged))
	for _, s := range merged {
		out = append(out, s)
	}
	return out
}

// binAcc accumulates probability and probability-weighted mass for one
// nominal mass number.
type binAcc struct {
	p  float64
	pm float64
}

func (b *binAcc) mean() float64 {
	return b.pm / b.p
}

// convolveBins adds one atom's nuclide distribution to the running
// per-nominal-mass bins. Tracking the conditional mean mass per nominal bin
// is exact: expectation is linear and merging paths into a bin is a
// probability-weighted mean.
func convolveBins(bins map[int]*binAcc, single []Nuclide) map[int]*binAcc {
	next := make(map[int]*binAcc, len(bins)+len(single))
	for nominal, b := range bins {
		mean := 0.0
		if b.p > 0 {
			mean = b.mean()
		}
		for _, n := range single {
			p := b.p * n.Abundance
			if p < pruneFloor {
				continue
			}
			key := nominal + n.MassNumber
			acc := next[key]
			if acc == nil {
				acc = &binAcc{}
				next[key] = acc
			}
			acc.p += p
			acc.pm += p * (mean + n.Mass)
		}
	}
	return next
}
