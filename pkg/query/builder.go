package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidParameter is returned for malformed filter parameters: empty or
// unsafe identifier lists, inverted or wrong-arity ranges, negative window
// sizes, unknown MS levels.
var ErrInvalidParameter = errors.New("invalid parameter")

// Default optional-parameter values for the MS1 feature neighborhood query.
const (
	DefaultMinMS1Intensity = 10   // corrected-intensity floor for MS1 signals
	DefaultRTWindow        = 10.0 // retention time window diameter, seconds
	DefaultSpectrumWindow  = 5    // scan window diameter
	DefaultTOFWindow       = 3    // TOF window radius
)

// Range is a closed numeric interval [Low, High].
type Range struct {
	Low  float64
	High float64
}

// NewRange builds a Range, rejecting inverted bounds.
func NewRange(low, high float64) (Range, error) {
	if low > high {
		return Range{}, fmt.Errorf("%w: inverted range [%v, %v]", ErrInvalidParameter, low, high)
	}
	return Range{Low: low, High: high}, nil
}

// RangeFromSlice builds a Range from exactly two values. Wrong arity is a
// hard failure, never a silent ignore: a truncated range must not reach a
// filter clause.
func RangeFromSlice(vals []float64) (Range, error) {
	if len(vals) != 2 {
		return Range{}, fmt.Errorf("%w: range needs exactly 2 values, got %d", ErrInvalidParameter, len(vals))
	}
	return NewRange(vals[0], vals[1])
}

// ChromatogramParams selects frame overviews by run and MS level.
type ChromatogramParams struct {
	MSRunIDs []string
	MSLevel  int // 1 or 2; 0 defaults to 1
}

// Chromatograms builds the frame-by-frame overview query for one or more
// runs.
func Chromatograms(p ChromatogramParams) (Query, error) {
	ids, err := sanitizeIDs(p.MSRunIDs)
	if err != nil {
		return Query{}, err
	}
	level, err := msLevel(p.MSLevel)
	if err != nil {
		return Query{}, err
	}

	tpl, err := Template("get_chromatograms")
	if err != nil {
		return Query{}, err
	}
	text := strings.NewReplacer(
		"{msrun_ids}", ids,
		"{ms_level}", strconv.Itoa(level),
	).Replace(tpl)
	return New(text), nil
}

// MS1FeatureParams selects MS1 features and their neighborhood signals.
// Optional filters are nil when absent; zero-valued windows take the
// package defaults.
type MS1FeatureParams struct {
	MSRunIDs        []string
	FeatureID       *int64  // exact feature match
	MZRange         *Range  // feature apex m/z
	RTRange         *Range  // feature apex retention time
	MinMS1Intensity float64 // corrected-intensity floor; 0 = default
	RTWindow        float64 // window diameter around the apex RT; 0 = default
	SpectrumWindow  int     // window diameter around the apex scan; 0 = default
	TOFWindow       int     // window radius around the apex TOF bin; 0 = default
}

// MS1Features builds the MS1 feature neighborhood query. Filter clauses are
// emitted in a fixed order (exact feature match, m/z range, RT range) so
// the generated text is deterministic for a given parameter set.
func MS1Features(p MS1FeatureParams) (Query, error) {
	ids, err := sanitizeIDs(p.MSRunIDs)
	if err != nil {
		return Query{}, err
	}
	filters, err := filterClauses(p.FeatureID, "feature_id", p.MZRange, "mz", p.RTRange, "rt")
	if err != nil {
		return Query{}, err
	}

	minIntensity := p.MinMS1Intensity
	if minIntensity == 0 {
		minIntensity = DefaultMinMS1Intensity
	}
	rtWindow := p.RTWindow
	if rtWindow == 0 {
		rtWindow = DefaultRTWindow
	}
	spectrumWindow := p.SpectrumWindow
	if spectrumWindow == 0 {
		spectrumWindow = DefaultSpectrumWindow
	}
	tofWindow := p.TOFWindow
	if tofWindow == 0 {
		tofWindow = DefaultTOFWindow
	}
	if minIntensity < 0 || rtWindow < 0 || spectrumWindow < 0 || tofWindow < 0 {
		return Query{}, fmt.Errorf("%w: negative window or intensity floor", ErrInvalidParameter)
	}

	tpl, err := Template("get_ms1_features")
	if err != nil {
		return Query{}, err
	}
	text := strings.NewReplacer(
		"{msrun_ids}", ids,
		"{filter_clauses}", filters,
		"{min_ms1_intensity}", formatNumber(minIntensity),
		"{rt_window}", formatNumber(rtWindow),
		"{spectrum_window}", strconv.Itoa(spectrumWindow),
		"{tof_window}", strconv.Itoa(tofWindow),
	).Replace(tpl)
	return New(text), nil
}

// XICParams selects extracted-ion-chromatogram points by run, with optional
// m/z and retention time filters.
type XICParams struct {
	MSRunIDs []string
	MZRange  *Range // cluster centroid m/z
	RTRange  *Range
}

// XIC builds the extracted ion chromatogram query.
func XIC(p XICParams) (Query, error) {
	ids, err := sanitizeIDs(p.MSRunIDs)
	if err != nil {
		return Query{}, err
	}
	filters, err := filterClauses(nil, "", p.MZRange, "xic.mz", p.RTRange, "xic.rt")
	if err != nil {
		return Query{}, err
	}

	tpl, err := Template("get_xic")
	if err != nil {
		return Query{}, err
	}
	text := strings.NewReplacer(
		"{msrun_ids}", ids,
		"{filter_clauses}", filters,
	).Replace(tpl)
	return New(text), nil
}

// MSMSParams selects fragmentation events and their feature links.
type MSMSParams struct {
	MSRunIDs       []string
	FeatureID      *int64 // exact feature match via the peak-MSMS link
	PrecursorRange *Range // precursor m/z
	RTRange        *Range
}

// MSMSEvents builds the fragmentation event query.
func MSMSEvents(p MSMSParams) (Query, error) {
	ids, err := sanitizeIDs(p.MSRunIDs)
	if err != nil {
		return Query{}, err
	}
	filters, err := filterClauses(p.FeatureID, "peak_msms.feature_id", p.PrecursorRange, "msms.precursor_mz", p.RTRange, "msms.rt")
	if err != nil {
		return Query{}, err
	}

	tpl, err := Template("get_msms")
	if err != nil {
		return Query{}, err
	}
	text := strings.NewReplacer(
		"{msrun_ids}", ids,
		"{filter_clauses}", filters,
	).Replace(tpl)
	return New(text), nil
}

// identifier characters safe for literal single-quoted SQL substitution
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// sanitizeIDs renders an identifier list for an IN match: one element gives
// ('X'), more give ('A', 'B', ...). The list must be non-empty and every
// identifier must match idPattern; substitution performs no escaping, so
// this check is the injection boundary.
func sanitizeIDs(ids []string) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: empty identifier list", ErrInvalidParameter)
	}
	quoted := make([]string, len(ids))
	for i, id := range ids {
		if !idPattern.MatchString(id) {
			return "", fmt.Errorf("%w: unsafe identifier %q", ErrInvalidParameter, id)
		}
		quoted[i] = "'" + id + "'"
	}
	return "(" + strings.Join(quoted, ", ") + ")", nil
}

// filterClauses renders the optional filter clauses in their fixed order:
// exact feature match, then m/z range, then RT range. Each clause appears
// only if its parameter was supplied; a malformed range fails hard.
func filterClauses(featureID *int64, featureCol string, mzRange *Range, mzCol string, rtRange *Range, rtCol string) (string, error) {
	var b strings.Builder
	if featureID != nil {
		fmt.Fprintf(&b, "\n\tAND %s = %d", featureCol, *featureID)
	}
	for _, f := range []struct {
		col string
		r   *Range
	}{{mzCol, mzRange}, {rtCol, rtRange}} {
		if f.r == nil {
			continue
		}
		if f.r.Low > f.r.High {
			return "", fmt.Errorf("%w: inverted range [%v, %v] for %s", ErrInvalidParameter, f.r.Low, f.r.High, f.col)
		}
		fmt.Fprintf(&b, "\n\tAND %s BETWEEN %s AND %s", f.col, formatNumber(f.r.Low), formatNumber(f.r.High))
	}
	return b.String(), nil
}

func msLevel(level int) (int, error) {
	if level == 0 {
		return 1, nil
	}
	if level != 1 && level != 2 {
		return 0, fmt.Errorf("%w: ms_level must be 1 or 2, got %d", ErrInvalidParameter, level)
	}
	return level, nil
}

// formatNumber renders a float without a trailing .0 for whole values,
// matching what a hand-written SQL literal would look like.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
