package main

import (
	"os"

	"github.com/rookeryos/rookpkg/internal/config"
	"github.com/rookeryos/rookpkg/internal/convert"
	"github.com/rookeryos/rookpkg/internal/recipe"
	"github.com/spf13/cobra"
)

var convertOutputDir string
var convertAll bool

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert upstream package recipes into .rook recipes",
}

var convertArchCmd = &cobra.Command{
	Use:   "arch [package]",
	Short: "Convert an Arch Linux PKGBUILD into a .rook recipe",
	Long: `Convert fetches a PKGBUILD from Arch Linux's packaging mirror, parses
it, and emits an equivalent .rook recipe.

With a package name, converts that single package. With --all, paginates
Arch's Core and Extra repositories and converts every package not on the
skip list, isolating per-package failures so one bad recipe never aborts
the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvertArch,
}

func init() {
	convertArchCmd.Flags().StringVar(&convertOutputDir, "output", "", "Directory to write .rook files to (default: $ROOKPKG_HOME/recipes)")
	convertArchCmd.Flags().BoolVar(&convertAll, "all", false, "Convert every package in Arch's Core and Extra repositories")
	convertCmd.AddCommand(convertArchCmd)
}

func runConvertArch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	outputDir := convertOutputDir
	if outputDir == "" {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		outputDir = cfg.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	converter := convert.NewConverter()

	if convertAll {
		printProgress("scanning %v for packages to convert", convert.DefaultSources)
		stats, err := converter.BulkConvert(ctx, convert.DefaultSources, outputDir)
		if err != nil {
			return err
		}
		printSuccess("converted %d of %d packages (%d skipped, %d failed) into %s",
			stats.Converted, stats.Total, stats.Skipped, stats.Failed, outputDir)
		for _, name := range stats.Failures {
			printWarning("failed to convert %s", name)
		}
		printNextSteps("Regenerate the " + recipe.PlaceholderChecksum + " checksum placeholders before building any of these recipes")
		return nil
	}

	if len(args) != 1 {
		return cmd.Help()
	}

	pkg := args[0]
	printProgress("converting %s", pkg)
	if err := converter.ConvertAndWrite(ctx, pkg, outputDir); err != nil {
		return err
	}
	printSuccess("wrote %s/%s.rook", outputDir, pkg)
	printNextSteps("Regenerate any " + recipe.PlaceholderChecksum + " checksum placeholder before building this recipe")
	return nil
}
