package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/progress"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site",
	Long: `Loads and validates the data file, renders every page and blog post,
and writes the site to the output directory, replacing its contents.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().Bool("no-cache", false, "render every post without the render cache")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := checkedConfig(); err != nil {
		return err
	}
	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	noCache, _ := cmd.Flags().GetBool("no-cache")

	doc, err := loadData(cfg.Strict)
	if err != nil {
		if printViolations(os.Stderr, err) {
			return validationFailed(err)
		}
		return err
	}

	var reporter progress.Reporter = progress.NewReporter()
	if verbose {
		reporter = progress.Nop{}
	}
	gen, closeCache, err := newGenerator(outputDir, noCache, false, reporter)
	if err != nil {
		return err
	}
	defer closeCache()

	res, err := gen.Generate(ctx, doc)
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	fmt.Printf("Site built: %s (%s, %s, %s) in %s\n",
		outputDir,
		plural(len(res.Pages), "page"),
		plural(res.Posts, "post"),
		plural(res.Assets, "asset"),
		time.Since(start).Round(time.Millisecond))
	if res.CacheHit > 0 {
		fmt.Printf("  %s reused from the render cache\n", plural(res.CacheHit, "post"))
	}
	if len(res.Warnings) > 0 {
		fmt.Printf("  %s:\n", plural(len(res.Warnings), "warning"))
		for _, w := range res.Warnings {
			fmt.Printf("    - %s\n", w)
		}
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}
