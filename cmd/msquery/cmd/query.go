package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/msquery/pkg/query"
	"github.com/ChrisMcGann/msquery/pkg/registry"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run an analytical query against the data store",
	Long: `Run a named analytical query against the partitioned parquet datasets
under --data-root. Each subdirectory of the data root is registered as one
relation.

Examples:
  # frame-by-frame overview of one run
  msquery query chromatograms --msrun-ids LIPID6950

  # MS1 features in an m/z band, row count only
  msquery query ms1-features --msrun-ids LIPID6950 --mz-range 100,200 --count`,
}

var chromatogramsCmd = &cobra.Command{
	Use:   "chromatograms",
	Short: "Frame-by-frame overview per run and MS level",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(func() (query.Query, error) {
			return query.Chromatograms(query.ChromatogramParams{
				MSRunIDs: splitIDs(msrunIDs),
				MSLevel:  msLevel,
			})
		})
	},
}

var ms1FeaturesCmd = &cobra.Command{
	Use:   "ms1-features",
	Short: "MS1 features and their neighborhood signals",
	RunE: func(cmd *cobra.Command, args []string) error {
		mz, err := parseRangeFlag(mzRange)
		if err != nil {
			return err
		}
		rt, err := parseRangeFlag(rtRange)
		if err != nil {
			return err
		}
		return runQuery(func() (query.Query, error) {
			return query.MS1Features(query.MS1FeatureParams{
				MSRunIDs:        splitIDs(msrunIDs),
				FeatureID:       featureIDFilter(),
				MZRange:         mz,
				RTRange:         rt,
				MinMS1Intensity: minIntensity,
				RTWindow:        rtWindow,
				SpectrumWindow:  spectrumWindow,
				TOFWindow:       tofWindow,
			})
		})
	},
}

var xicCmd = &cobra.Command{
	Use:   "xic",
	Short: "Extracted ion chromatogram points",
	RunE: func(cmd *cobra.Command, args []string) error {
		mz, err := parseRangeFlag(mzRange)
		if err != nil {
			return err
		}
		rt, err := parseRangeFlag(rtRange)
		if err != nil {
			return err
		}
		return runQuery(func() (query.Query, error) {
			return query.XIC(query.XICParams{
				MSRunIDs: splitIDs(msrunIDs),
				MZRange:  mz,
				RTRange:  rt,
			})
		})
	},
}

var msmsCmd = &cobra.Command{
	Use:   "msms",
	Short: "Fragmentation events and their feature links",
	RunE: func(cmd *cobra.Command, args []string) error {
		mz, err := parseRangeFlag(mzRange)
		if err != nil {
			return err
		}
		rt, err := parseRangeFlag(rtRange)
		if err != nil {
			return err
		}
		return runQuery(func() (query.Query, error) {
			return query.MSMSEvents(query.MSMSParams{
				MSRunIDs:       splitIDs(msrunIDs),
				FeatureID:      featureIDFilter(),
				PrecursorRange: mz,
				RTRange:        rt,
			})
		})
	},
}

// runQuery builds the query, opens the registry, executes, and prints the
// result as tab-separated values.
func runQuery(build func() (query.Query, error)) error {
	q, err := build()
	if err != nil {
		return err
	}
	if countOnly {
		q = q.RowCount()
	}
	footer := ""
	if rowLimit > 0 {
		footer = fmt.Sprintf("LIMIT %d", rowLimit)
	}

	reg, err := registry.Open(dataRoot)
	if err != nil {
		return err
	}
	defer reg.Close()

	res, err := query.NewRunner(reg.DB()).Run(q, footer)
	if err != nil {
		return err
	}

	fmt.Println(strings.Join(res.Columns, "\t"))
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%v", v)
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
	return nil
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseRangeFlag parses "low,high" into a Range; an empty flag means no
// filter.
func parseRangeFlag(s string) (*query.Range, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid range value %q: %w", p, err)
		}
		vals = append(vals, v)
	}
	r, err := query.RangeFromSlice(vals)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func featureIDFilter() *int64 {
	if featureID < 0 {
		return nil
	}
	id := featureID
	return &id
}
