package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"webpify/internal/convert"
	"webpify/internal/tui"
	"webpify/pkg/imgcodec"
)

var (
	flagOutput     string
	flagQuality    int
	flagFormat     string
	flagMimeTypes  []string
	flagSkipTypes  []string
	flagJobs       int
	flagDelete     bool
	flagNoProgress bool
)

var rootCmd = &cobra.Command{
	Use:   "webpify [flags] [path]",
	Short: "webpify - convert image trees to WebP in parallel",
	Long: "webpify walks a directory tree, detects raster images by content,\n" +
		"and converts the eligible ones to a compressed target format using\n" +
		"a bounded pool of parallel workers.",
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := "."
	if len(args) == 1 {
		input = args[0]
	}

	if flagQuality < 0 || flagQuality > 100 {
		return fmt.Errorf("quality must be between 0 and 100, got %d", flagQuality)
	}

	target, err := imgcodec.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	if !imgcodec.Encodable(target) {
		return fmt.Errorf("%s is not a supported target format", target)
	}

	allow, err := parseFormats(flagMimeTypes)
	if err != nil {
		return err
	}

	var skip []imgcodec.Format
	if cmd.Flags().Changed("skip-types") {
		if skip, err = parseFormats(flagSkipTypes); err != nil {
			return err
		}
	} else {
		skip = []imgcodec.Format{target}
	}

	opts := convert.Options{
		InputRoot:      input,
		OutputRoot:     flagOutput,
		TargetFormat:   target,
		Quality:        flagQuality,
		AllowTypes:     allow,
		SkipTypes:      skip,
		DeleteOriginal: flagDelete,
		Jobs:           flagJobs,
	}

	var updates chan convert.ProgressUpdate
	uiDone := make(chan struct{})
	if flagNoProgress {
		close(uiDone)
	} else {
		updates = make(chan convert.ProgressUpdate, 64)
		program := tea.NewProgram(tui.NewModel(updates))
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()
	}

	summary, outcomes, err := convert.Run(context.Background(), opts, updates)
	if updates != nil {
		close(updates)
	}
	<-uiDone
	if err != nil {
		return err
	}

	for _, outcome := range outcomes {
		fmt.Fprintln(os.Stdout, styleFor(outcome).Render(outcome.Line()))
	}

	rows := []tui.SummaryRow{
		{Label: "Total files", Value: fmt.Sprintf("%d", summary.Total)},
		{Label: "Converted", Value: fmt.Sprintf("%d", summary.Converted)},
		{Label: "Skipped", Value: fmt.Sprintf("%d", summary.Skipped)},
		{Label: "Errors", Value: fmt.Sprintf("%d", summary.Errors)},
		{Label: "Elapsed", Value: summary.Elapsed.Round(time.Millisecond).String()},
		{Label: "Throughput", Value: fmt.Sprintf("%.1f files/s", summary.Throughput())},
	}
	fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

	return nil
}

func parseFormats(names []string) ([]imgcodec.Format, error) {
	formats := make([]imgcodec.Format, 0, len(names))
	for _, name := range names {
		format, err := imgcodec.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, format)
	}
	return formats, nil
}

func styleFor(outcome convert.Outcome) lipgloss.Style {
	switch outcome.Status {
	case convert.StatusConverted:
		return convertedStyle
	case convert.StatusFailed:
		return errorStyle
	default:
		return skippedStyle
	}
}

var (
	convertedStyle = lipgloss.NewStyle().Foreground(tui.ColorSuccess)
	skippedStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
	errorStyle     = lipgloss.NewStyle().Foreground(tui.ColorError)
)

func init() {
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", ".", "output directory for converted images")
	rootCmd.Flags().IntVarP(&flagQuality, "quality", "q", 80, "encoder quality (0-100)")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "webp", "target format: webp, jpeg, or png")
	rootCmd.Flags().StringSliceVarP(&flagMimeTypes, "mime-types", "m", []string{"image/jpeg", "image/png", "image/gif"}, "image mime types to convert")
	rootCmd.Flags().StringSliceVarP(&flagSkipTypes, "skip-types", "s", nil, "image mime types to skip (default: the target type)")
	rootCmd.Flags().IntVarP(&flagJobs, "jobs", "j", 0, "parallel workers (default: number of CPUs)")
	rootCmd.Flags().BoolVar(&flagDelete, "delete", false, "delete original files after conversion")
	rootCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "disable the live progress display")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
