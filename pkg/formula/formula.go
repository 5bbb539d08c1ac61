// Package formula parses condensed molecular formulas into elemental
// compositions.
//
// The accepted grammar covers standard condensed formulas (C5H12NO2),
// bracketed isotope labels ([13C]O2, [2H]2O), repeat groups in any of the
// three bracket styles ((COOH)2, [CO]12, {PPh3}2), additive and subtractive
// fragment notation (C28H30N2O3 + H), hydrate notation with a leading
// multiplier (CuSO4.5H2O), and a handful of organic shorthand symbols
// (D, T, Me, Et, Ph, Bu).
package formula

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidFormula is returned for any formula string that cannot be
// interpreted. Parsing never yields a partial composition.
var ErrInvalidFormula = errors.New("invalid formula")

// Atom identifies an element, optionally pinned to a specific isotope.
// MassNumber 0 means natural isotopic abundance.
type Atom struct {
	Element    string
	MassNumber int
}

// Labeled reports whether the atom is pinned to a specific isotope.
func (a Atom) Labeled() bool {
	return a.MassNumber != 0
}

func (a Atom) String() string {
	if a.Labeled() {
		return fmt.Sprintf("[%d%s]", a.MassNumber, a.Element)
	}
	return a.Element
}

// AtomCount is one entry of a composition.
type AtomCount struct {
	Atom Atom
	N    int
}

// Composition is the elemental composition of a parsed formula. It is
// immutable once returned by Parse.
type Composition struct {
	counts map[Atom]int
}

// Count returns the number of atoms matching a, or 0.
func (c Composition) Count(a Atom) int {
	return c.counts[a]
}

// Atoms returns the composition entries in Hill order: carbon first, then
// hydrogen, then the remaining elements alphabetically. Within one element,
// natural-abundance atoms precede isotope-labeled ones.
func (c Composition) Atoms() []AtomCount {
	out := make([]AtomCount, 0, len(c.counts))
	for a, n := range c.counts {
		out = append(out, AtomCount{Atom: a, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].Atom, out[j].Atom
		if ai.Element != aj.Element {
			return hillRank(ai.Element, c.hasCarbon()) < hillRank(aj.Element, c.hasCarbon())
		}
		return ai.MassNumber < aj.MassNumber
	})
	return out
}

// HasIsotopeLabels reports whether any atom is pinned to a specific isotope.
func (c Composition) HasIsotopeLabels() bool {
	for a := range c.counts {
		if a.Labeled() {
			return true
		}
	}
	return false
}

// NumAtoms returns the total atom count.
func (c Composition) NumAtoms() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// String renders the canonical (Hill order) formula, e.g. "C5H12NO2" or
// "[13C]O2". This canonical form is what downstream isotope calculations
// receive, and may differ syntactically from the parsed input.
func (c Composition) String() string {
	var b strings.Builder
	for _, ac := range c.Atoms() {
		b.WriteString(ac.Atom.String())
		if ac.N > 1 {
			fmt.Fprintf(&b, "%d", ac.N)
		}
	}
	return b.String()
}

func (c Composition) hasCarbon() bool {
	for a := range c.counts {
		if a.Element == "C" {
			return true
		}
	}
	return false
}

// hillRank orders element symbols for canonical output.
func hillRank(element string, carbon bool) string {
	if carbon {
		switch element {
		case "C":
			return "0"
		case "H":
			return "1"
		}
	}
	return "2" + element
}

// Parse interprets a formula string. On any malformed input it returns an
// error wrapping ErrInvalidFormula; it never returns a partial composition.
func Parse(s string) (Composition, error) {
	p := &parser{input: s}
	counts, err := p.parseFormula()
	if err != nil {
		return Composition{}, fmt.Errorf("%w %q: %v", ErrInvalidFormula, s, err)
	}
	return Composition{counts: counts}, nil
}

type parser struct {
	input string
	pos   int
}

// parseFormula handles top-level additive/subtractive fragment notation.
func (p *parser) parseFormula() (map[Atom]int, error) {
	counts, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		op, ok := p.peek()
		if !ok {
			break
		}
		if op != '+' && op != '-' {
			return nil, fmt.Errorf("unexpected character %q at position %d", op, p.pos)
		}
		p.pos++
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		for a, n := range term {
			if op == '+' {
				counts[a] += n
			} else {
				counts[a] -= n
			}
			if counts[a] < 0 {
				return nil, fmt.Errorf("subtraction leaves negative count for %s", a)
			}
			if counts[a] == 0 {
				delete(counts, a)
			}
		}
	}
	if len(counts) == 0 {
		return nil, errors.New("empty composition")
	}
	return counts, nil
}

// parseTerm handles hydrate notation: dot-joined parts, each with an
// optional leading multiplier.
func (p *parser) parseTerm() (map[Atom]int, error) {
	counts, err := p.parsePart()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if ch, ok := p.peek(); !ok || ch != '.' {
			break
		}
		p.pos++
		part, err := p.parsePart()
		if err != nil {
			return nil, err
		}
		for a, n := range part {
			counts[a] += n
		}
	}
	return counts, nil
}

// parsePart parses an optional leading multiplier followed by one or more
// units (elements, labels, groups, shorthand symbols).
func (p *parser) parsePart() (map[Atom]int, error) {
	p.skipSpace()
	mult := 1
	if ch, ok := p.peek(); ok && isDigit(ch) {
		mult = p.readCount()
		if mult == 0 {
			return nil, errors.New("zero multiplier")
		}
	}
	counts, err := p.parseUnits(0)
	if err != nil {
		return nil, err
	}
	if mult != 1 {
		for a := range counts {
			counts[a] *= mult
		}
	}
	return counts, nil
}

// parseUnits parses a run of units until end of input, a top-level
// delimiter, or the given group closer.
func (p *parser) parseUnits(closer byte) (map[Atom]int, error) {
	counts := make(map[Atom]int)
	for {
		p.skipSpace()
		ch, ok := p.peek()
		if !ok {
			break
		}
		if closer != 0 && ch == closer {
			break
		}
		if closer == 0 && (ch == '+' || ch == '-' || ch == '.') {
			break
		}
		unit, err := p.parseUnit()
		if err != nil {
			return nil, err
		}
		for a, n := range unit {
			counts[a] += n
		}
	}
	if len(counts) == 0 {
		return nil, errors.New("empty group or formula")
	}
	return counts, nil
}

func (p *parser) parseUnit() (map[Atom]int, error) {
	ch, _ := p.peek()
	switch {
	case ch == '(' || ch == '{':
		return p.parseGroup(ch)
	case ch == '[':
		// Brackets are ambiguous: [13C] is an isotope label, [CO]12 a group.
		if p.pos+1 < len(p.input) && isDigit(p.input[p.pos+1]) {
			return p.parseIsotopeLabel()
		}
		return p.parseGroup(ch)
	case ch >= 'A' && ch <= 'Z':
		return p.parseSymbol()
	default:
		return nil, fmt.Errorf("unexpected character %q at position %d", ch, p.pos)
	}
}

func (p *parser) parseGroup(open byte) (map[Atom]int, error) {
	closer := map[byte]byte{'(': ')', '[': ']', '{': '}'}[open]
	p.pos++
	counts, err := p.parseUnits(closer)
	if err != nil {
		return nil, err
	}
	if ch, ok := p.peek(); !ok || ch != closer {
		return nil, fmt.Errorf("unbalanced %q", string(open))
	}
	p.pos++
	n, err := p.readOptionalCount()
	if err != nil {
		return nil, err
	}
	for a := range counts {
		counts[a] *= n
	}
	return counts, nil
}

// parseIsotopeLabel parses [13C]-style atoms: mass number plus element
// symbol inside square brackets, with an optional trailing count.
func (p *parser) parseIsotopeLabel() (map[Atom]int, error) {
	p.pos++ // consume '['
	mass := p.readCount()
	if mass == 0 {
		return nil, errors.New("isotope label without mass number")
	}
	sym := p.readElementSymbol()
	if !isElement(sym) {
		return nil, fmt.Errorf("unknown element %q in isotope label", sym)
	}
	if ch, ok := p.peek(); !ok || ch != ']' {
		return nil, errors.New("unterminated isotope label")
	}
	p.pos++
	n, err := p.readOptionalCount()
	if err != nil {
		return nil, err
	}
	return map[Atom]int{{Element: sym, MassNumber: mass}: n}, nil
}

// parseSymbol parses an element symbol or a shorthand abbreviation with an
// optional trailing count. Element symbols win over abbreviations of the
// same spelling.
func (p *parser) parseSymbol() (map[Atom]int, error) {
	start := p.pos
	upper := p.input[p.pos]
	p.pos++
	lower := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= 'a' && p.input[p.pos] <= 'z' {
		p.pos++
	}
	tail := p.input[lower:p.pos]

	// Longest match first: try symbol+lowercase-run, then shrink.
	for l := len(tail); l >= 0; l-- {
		sym := string(upper) + tail[:l]
		p.pos = lower + l
		if isElement(sym) {
			n, err := p.readOptionalCount()
			if err != nil {
				return nil, err
			}
			return map[Atom]int{{Element: sym}: n}, nil
		}
		if exp, ok := abbreviations[sym]; ok {
			n, err := p.readOptionalCount()
			if err != nil {
				return nil, err
			}
			counts := make(map[Atom]int, len(exp))
			for a, c := range exp {
				counts[a] = c * n
			}
			return counts, nil
		}
	}
	p.pos = start
	return nil, fmt.Errorf("unknown symbol at position %d", start)
}

func (p *parser) readElementSymbol() string {
	start := p.pos
	if p.pos < len(p.input) && p.input[p.pos] >= 'A' && p.input[p.pos] <= 'Z' {
		p.pos++
		for p.pos < len(p.input) && p.input[p.pos] >= 'a' && p.input[p.pos] <= 'z' {
			p.pos++
		}
	}
	return p.input[start:p.pos]
}

func (p *parser) readCount() int {
	n := 0
	for p.pos < len(p.input) && isDigit(p.input[p.pos]) {
		n = n*10 + int(p.input[p.pos]-'0')
		p.pos++
	}
	return n
}

// readOptionalCount reads a repeat count if one follows; an explicit zero
// is malformed.
func (p *parser) readOptionalCount() (int, error) {
	if ch, ok := p.peek(); ok && isDigit(ch) {
		n := p.readCount()
		if n == 0 {
			return 0, errors.New("zero repeat count")
		}
		return n, nil
	}
	return 1, nil
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// abbreviations expands common organic shorthand. Symbols that collide with
// element symbols (e.g. Ac, Pr) are deliberately absent.
var abbreviations = map[string]map[Atom]int{
	"D":  {{Element: "H", MassNumber: 2}: 1},
	"T":  {{Element: "H", MassNumber: 3}: 1},
	"Me": {{Element: "C"}: 1, {Element: "H"}: 3},
	"Et": {{Element: "C"}: 2, {Element: "H"}: 5},
	"Ph": {{Element: "C"}: 6, {Element: "H"}: 5},
	"Bu": {{Element: "C"}: 4, {Element: "H"}: 9},
}
