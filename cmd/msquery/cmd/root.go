// Package cmd provides CLI command implementations
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Flags for simulate and window commands
	formulaArg  string
	charge      int
	precision   int
	coarse      bool
	threshold   float64
	minFraction float64
	ppm         float64

	// Flags for query commands
	dataRoot       string
	msrunIDs       string
	msLevel        int
	featureID      int64
	mzRange        string
	rtRange        string
	minIntensity   float64
	rtWindow       float64
	spectrumWindow int
	tofWindow      int
	countOnly      bool
	rowLimit       int
)

var rootCmd = &cobra.Command{
	Use:   "msquery",
	Short: "MSQuery - mass spectrometry exploration tool",
	Long: `MSQuery simulates theoretical isotope distributions for molecular
formulas and runs parameterized analytical queries against partitioned
parquet datasets of MS data.

Simulation supports fine isotopic detail and coarse per-mass-number
spectra, with charge/electron-mass correction. Queries cover chromatogram
overviews, MS1 feature neighborhoods, extracted ion chromatograms, and
fragmentation events.`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(queryCmd)

	simulateCmd.Flags().StringVarP(&formulaArg, "formula", "f", "", "Molecular formula, e.g. C5H12NO2 (required)")
	simulateCmd.Flags().IntVarP(&charge, "charge", "z", 1, "Ion charge")
	simulateCmd.Flags().IntVarP(&precision, "precision", "p", 0, "Decimal places for m/z (default 6 fine, 5 coarse)")
	simulateCmd.Flags().BoolVar(&coarse, "coarse", false, "Per-mass-number spectrum instead of fine isotopic detail")
	simulateCmd.Flags().Float64Var(&threshold, "threshold", 1e-3, "Unassigned probability mass cutoff (fine)")
	simulateCmd.Flags().Float64Var(&minFraction, "min-fraction", 1e-4, "Minimum abundance fraction per mass number (coarse)")
	simulateCmd.MarkFlagRequired("formula")

	windowCmd.Flags().StringVarP(&formulaArg, "formula", "f", "", "Molecular formula (required)")
	windowCmd.Flags().IntVarP(&charge, "charge", "z", 1, "Ion charge")
	windowCmd.Flags().Float64Var(&ppm, "ppm", 10, "Tolerance in parts per million")
	windowCmd.MarkFlagRequired("formula")

	queryCmd.PersistentFlags().StringVar(&dataRoot, "data-root", "data", "Root directory of partitioned parquet datasets")
	queryCmd.PersistentFlags().StringVar(&msrunIDs, "msrun-ids", "", "Comma-separated run identifiers (required)")
	queryCmd.PersistentFlags().BoolVar(&countOnly, "count", false, "Return the row count instead of the rows")
	queryCmd.PersistentFlags().IntVar(&rowLimit, "limit", 0, "Append a LIMIT clause (0 = no limit)")

	queryCmd.AddCommand(chromatogramsCmd)
	chromatogramsCmd.Flags().IntVar(&msLevel, "ms-level", 1, "MS level: 1 or 2")

	queryCmd.AddCommand(ms1FeaturesCmd)
	ms1FeaturesCmd.Flags().Int64Var(&featureID, "feature-id", -1, "Filter by feature ID (-1 = no filter)")
	ms1FeaturesCmd.Flags().StringVar(&mzRange, "mz-range", "", "Feature m/z range as low,high")
	ms1FeaturesCmd.Flags().StringVar(&rtRange, "rt-range", "", "Feature retention time range as low,high")
	ms1FeaturesCmd.Flags().Float64Var(&minIntensity, "min-intensity", 0, "MS1 corrected-intensity floor (0 = default 10)")
	ms1FeaturesCmd.Flags().Float64Var(&rtWindow, "rt-window", 0, "RT window diameter in seconds (0 = default 10)")
	ms1FeaturesCmd.Flags().IntVar(&spectrumWindow, "spectrum-window", 0, "Scan window diameter (0 = default 5)")
	ms1FeaturesCmd.Flags().IntVar(&tofWindow, "tof-window", 0, "TOF window radius (0 = default 3)")

	queryCmd.AddCommand(xicCmd)
	xicCmd.Flags().StringVar(&mzRange, "mz-range", "", "Cluster m/z range as low,high")
	xicCmd.Flags().StringVar(&rtRange, "rt-range", "", "Retention time range as low,high")

	queryCmd.AddCommand(msmsCmd)
	msmsCmd.Flags().Int64Var(&featureID, "feature-id", -1, "Filter by linked feature ID (-1 = no filter)")
	msmsCmd.Flags().StringVar(&mzRange, "mz-range", "", "Precursor m/z range as low,high")
	msmsCmd.Flags().StringVar(&rtRange, "rt-range", "", "Retention time range as low,high")
}
