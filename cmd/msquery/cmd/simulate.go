package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/msquery/pkg/isotope"
	"github.com/ChrisMcGann/msquery/pkg/spectrum"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a theoretical isotope distribution",
	Long: `Simulate the theoretical isotope distribution of a molecular formula
as a table of m/z / relative-intensity pairs.

The default fine mode enumerates distinct isotopologues; --coarse averages
them per nominal mass number, which also handles isotope-labeled formulas
such as [13C]O2.

Examples:
  # fine isotopic distribution of protonated water
  msquery simulate --formula "H2O + H" --charge 1

  # coarse spectrum of a deuterated solvent
  msquery simulate --formula "[2H]2O" --coarse`,
	RunE: runSimulate,
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Compute an m/z tolerance window for a formula",
	Long: `Compute the m/z interval around the lightest isotopologue of a formula
within a ppm tolerance, for matching experimental signals against theory.

Example:
  msquery window --formula "C28H30N2O3 + H" --ppm 20`,
	RunE: runWindow,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	enum := isotope.Enumerator{}

	if coarse {
		p := precision
		if p == 0 {
			p = spectrum.DefaultCoarsePrecision
		}
		table, err := spectrum.CoarseSpectrum(enum, formulaArg, charge, p, minFraction)
		if err != nil {
			return err
		}
		fmt.Println("mass_number\ttmz\ttri")
		for _, l := range table {
			fmt.Printf("%d\t%.*f\t%d\n", l.MassNumber, p, l.TMZ, l.TRI)
		}
		return nil
	}

	p := precision
	if p == 0 {
		p = spectrum.DefaultFinePrecision
	}
	table, err := spectrum.FineSpectrum(enum, formulaArg, charge, p, threshold)
	if err != nil {
		return err
	}
	fmt.Println("tmz\ttri")
	for _, l := range table {
		fmt.Printf("%.*f\t%d\n", p, l.TMZ, l.TRI)
	}
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	enum := isotope.Enumerator{}
	low, high, err := spectrum.MZWindow(enum, formulaArg, charge, ppm)
	if err != nil {
		return err
	}
	fmt.Printf("%.6f\t%.6f\n", low, high)
	return nil
}
