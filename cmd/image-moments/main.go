package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/plot/vg"

	"github.com/ironsheep/image-moments/internal/analysis"
	"github.com/ironsheep/image-moments/internal/config"
	"github.com/ironsheep/image-moments/internal/imaging"
	"github.com/ironsheep/image-moments/internal/logger"
	"github.com/ironsheep/image-moments/internal/moments"
	"github.com/ironsheep/image-moments/internal/report"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-moments %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return
		case "histogram":
			os.Exit(runHistogram(os.Args[2:], os.Stdout, os.Stderr))
		}
	}

	os.Exit(runAnalyze(os.Args[1:], os.Stdout, os.Stderr))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "image-moments - shape descriptors of the dominant object in an image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  image-moments [flags] <image>            analyze one image")
	fmt.Fprintln(w, "  image-moments histogram [flags] <image>  intensity histogram and Otsu threshold")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=debug    Enable debug logging\n", logger.EnvLevel)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'image-moments -h' after a subcommand for its flags.")
}

// analyzeFlags holds the command-line overrides for the analyze command.
type analyzeFlags struct {
	configPath   string
	threshold    int
	otsu         bool
	connectivity int
	figure       string
	maskOut      string
	jsonOut      bool
	logLevel     string
}

func runAnalyze(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("image-moments", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var f analyzeFlags
	fs.StringVar(&f.configPath, "config", "image-moments.yaml", "YAML configuration file (optional)")
	fs.IntVar(&f.threshold, "threshold", int(imaging.DefaultThreshold), "fixed binarization threshold (0-255)")
	fs.BoolVar(&f.otsu, "otsu", false, "derive the threshold with Otsu's method")
	fs.IntVar(&f.connectivity, "connectivity", 8, "pixel connectivity for region labeling (4 or 8)")
	fs.StringVar(&f.figure, "figure", "", "write the annotated three-panel figure to this PNG file")
	fs.StringVar(&f.maskOut, "mask-out", "", "write the annotated mask to this PNG file")
	fs.BoolVar(&f.jsonOut, "json", false, "print the summary as JSON")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		printUsage(stderr)
		return 2
	}
	path := fs.Arg(0)

	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	applyFlags(fs, &f, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	level := cfg.Log.Level
	if !flagSet(fs, "log-level") {
		level = logger.LevelFromEnv(level)
	}
	log, err := logger.New(stderr, level)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	log = log.With().Str("run_id", uuid.NewString()).Logger()
	log.Debug().Str("version", Version).Str("commit", GitCommit).Msg("image-moments starting")

	if err := analyze(path, cfg, log, stdout); err != nil {
		if errors.Is(err, moments.ErrEmptyRegion) {
			if cfg.Report.Format != "json" {
				fmt.Fprintln(stdout, "Area: 0 pixels")
			}
			fmt.Fprintln(stdout, "No object found to analyze.")
		}
		log.Error().Err(err).Str("image", path).Msg("analysis failed")
		return 1
	}
	return 0
}

// flagSet reports whether the named flag was given on the command line.
func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// applyFlags copies explicitly set flags over the configuration.
func applyFlags(fs *flag.FlagSet, f *analyzeFlags, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "threshold":
			cfg.Threshold.Level = f.threshold
		case "otsu":
			if f.otsu {
				cfg.Threshold.Method = analysis.MethodOtsu
			} else {
				cfg.Threshold.Method = analysis.MethodFixed
			}
		case "connectivity":
			cfg.Region.Connectivity = f.connectivity
		case "figure":
			cfg.Report.Figure = f.figure
		case "mask-out":
			cfg.Report.AnnotatedMask = f.maskOut
		case "json":
			if f.jsonOut {
				cfg.Report.Format = "json"
			} else {
				cfg.Report.Format = "text"
			}
		case "log-level":
			cfg.Log.Level = f.logLevel
		}
	})
}

func analyze(path string, cfg *config.Config, log zerolog.Logger, stdout io.Writer) error {
	original, err := imaging.Load(path)
	if err != nil {
		return err
	}
	if info, err := imaging.LoadImageInfo(original, path); err == nil {
		log.Debug().
			Int("width", info.Width).
			Int("height", info.Height).
			Str("format", info.Format).
			Bool("grayscale", info.Grayscale).
			Msg("image loaded")
	}

	gray := imaging.ToGray(original)
	res, err := analysis.New(cfg.Options(), logger.Component(log, "analysis")).Run(gray)
	if err != nil {
		return err
	}

	summary := report.NewSummary(res.Threshold, res.Selection.Components, res.Moments, res.Shape)
	if cfg.Report.Format == "json" {
		err = report.WriteJSON(stdout, summary)
	} else {
		err = report.WriteText(stdout, summary)
	}
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	// Validate has already checked both colors.
	markerColor, _ := config.ParseColor(cfg.Report.MarkerColor)
	axisColor, _ := config.ParseColor(cfg.Report.AxisColor)

	if cfg.Report.Figure != "" {
		style := report.Style{
			Width:            vg.Length(cfg.Report.WidthInches) * vg.Inch,
			Height:           vg.Length(cfg.Report.HeightInches) * vg.Inch,
			MarkerColor:      markerColor,
			AxisColor:        axisColor,
			AxisLengthFactor: cfg.Report.AxisLengthFactor,
		}
		if err := report.SaveFigure(cfg.Report.Figure, original, res.Selection.Mask, res.Moments, res.Shape, style); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Report.Figure).Msg("figure written")
	}

	if cfg.Report.AnnotatedMask != "" {
		annotated := imaging.Annotate(res.Selection.Mask, imaging.Annotation{
			CentroidX:   res.Moments.CentroidX,
			CentroidY:   res.Moments.CentroidY,
			Orientation: res.Shape.Orientation,
			AxisLength:  cfg.Report.AxisLengthFactor * float64(max(gray.Bounds().Dx(), gray.Bounds().Dy())),
			AxisColor:   axisColor,
			MarkerColor: markerColor,
		})
		if err := imaging.SavePNG(cfg.Report.AnnotatedMask, annotated); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Report.AnnotatedMask).Msg("annotated mask written")
	}

	return nil
}

func runHistogram(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("image-moments histogram", flag.ContinueOnError)
	fs.SetOutput(stderr)
	figure := fs.String("figure", "", "write the histogram figure to this PNG file")
	htmlOut := fs.String("html", "", "write an interactive histogram page to this HTML file")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error, disabled)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		printUsage(stderr)
		return 2
	}
	path := fs.Arg(0)

	level := *logLevel
	if !flagSet(fs, "log-level") {
		level = logger.LevelFromEnv(level)
	}
	log, err := logger.New(stderr, level)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	gray, err := imaging.LoadGray(path)
	if err != nil {
		log.Error().Err(err).Str("image", path).Msg("failed to load image")
		return 1
	}

	hist := imaging.Histogram(gray)
	otsu := imaging.OtsuThreshold(hist)
	fmt.Fprintf(stdout, "Otsu's method calculated optimal threshold = %d\n", otsu)

	if *figure != "" {
		if err := report.SaveHistogram(*figure, gray, hist, otsu); err != nil {
			log.Error().Err(err).Msg("failed to write histogram figure")
			return 1
		}
		log.Info().Str("path", *figure).Msg("histogram figure written")
	}
	if *htmlOut != "" {
		if err := report.SaveHistogramHTML(*htmlOut, hist, otsu); err != nil {
			log.Error().Err(err).Msg("failed to write histogram page")
			return 1
		}
		log.Info().Str("path", *htmlOut).Msg("histogram page written")
	}
	return 0
}
