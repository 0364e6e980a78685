// Command fbplot computes a band-depth functional boxplot of the curves in
// a CSV file.
//
// Usage:
//
//	fbplot [flags] curves.csv
//
// The first CSV record lists the arguments, every further record one
// curve prefixed by its name. fbplot prints the median, the outliers and a
// depth ranking, and optionally renders the boxplot to an image.
//
// Examples:
//
//	fbplot spectra.csv
//	fbplot -measure simple -fence 3 spectra.csv
//	fbplot -config fbplot.toml -out boxplot.png -metrics-out fbplot.prom spectra.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-vecmath/cpu"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-fda/internal/config"
	"github.com/cwbudde/algo-fda/internal/curves"
	"github.com/cwbudde/algo-fda/internal/metrics"
	"github.com/cwbudde/algo-fda/internal/render"
	"github.com/cwbudde/algo-fda/stats/functional"
	"github.com/cwbudde/algo-fda/stats/pointwise"
)

const version = "0.1.0"

var errUsage = errors.New("usage")

type options struct {
	configPath string
	measure    string
	fence      float64
	workers    int
	top        int
	out        string
	metricsOut string
	verbose    bool
	version    bool
	input      string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}

	if err != nil {
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("fbplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "TOML configuration file")
	fs.StringVar(&opts.measure, "measure", "", "depth measure: modified or simple (overrides config)")
	fs.Float64Var(&opts.fence, "fence", math.NaN(), "outlier fence factor, 0 disables (overrides config)")
	fs.IntVar(&opts.workers, "workers", -1, "worker goroutines, 0 = GOMAXPROCS (overrides config)")
	fs.IntVar(&opts.top, "top", 10, "number of ranked curves to list, 0 lists all")
	fs.StringVar(&opts.out, "out", "", "render the boxplot to this file (.png, .svg, .pdf)")
	fs.StringVar(&opts.metricsOut, "metrics-out", "", "write prometheus metrics to this textfile")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	fs.BoolVar(&opts.version, "version", false, "print version and SIMD support, then exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fbplot [flags] curves.csv\n\n")
		fmt.Fprintf(stderr, "Computes a band-depth functional boxplot of the curves in a CSV file.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  fbplot spectra.csv\n")
		fmt.Fprintf(stderr, "  fbplot -measure simple -fence 3 spectra.csv\n")
		fmt.Fprintf(stderr, "  fbplot -config fbplot.toml -out boxplot.png spectra.csv\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.version {
		return opts, nil
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return opts, errUsage
	}

	opts.input = fs.Arg(0)

	return opts, nil
}

func newLogger(verbose bool, stderr io.Writer) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(stderr), level)

	return zap.New(core)
}

func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		var err error

		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return cfg, err
		}
	}

	if opts.measure != "" {
		cfg.Measure = opts.measure
	}

	if !math.IsNaN(opts.fence) {
		cfg.OutlierFence = opts.fence
	}

	if opts.workers >= 0 {
		cfg.Workers = opts.workers
	}

	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.version {
		printVersion(stdout)
		return nil
	}

	log := newLogger(opts.verbose, stderr)
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Error("failed to load configuration", zap.Error(err))
		return err
	}

	set, err := curves.ReadFile(opts.input)
	if err != nil {
		log.Error("failed to read curves", zap.String("file", opts.input), zap.Error(err))
		return err
	}

	log.Debug("curves loaded", zap.String("file", opts.input), zap.Int("curves", set.Len()))

	rec := metrics.NewRecorder()
	measure := cfg.MeasureValue()
	engineOpts := append(cfg.Options(), functional.WithLogger(log))

	start := time.Now()

	bp, err := functional.Compute(ctx, set.Functions, measure, cfg.MaxBandSize, engineOpts...)
	if err != nil {
		rec.Fail()
		writeMetrics(log, rec, opts.metricsOut)
		log.Error("functional boxplot failed", zap.Error(err))

		return err
	}

	elapsed := time.Since(start)

	rec.Observe(metrics.Run{
		Measure:     measure.String(),
		Functions:   bp.Len(),
		Outliers:    len(bp.Outliers()),
		Evaluations: bp.Evaluations(),
		Elapsed:     elapsed,
	})

	if err := printSummary(stdout, set, bp, measure, elapsed, opts.top); err != nil {
		log.Error("failed to write summary", zap.Error(err))
		return err
	}

	if opts.out != "" {
		style := render.DefaultStyle()
		style.Title = cfg.Render.Title
		style.XLabel = cfg.Render.XLabel
		style.YLabel = cfg.Render.YLabel

		if cfg.Render.ShowMean {
			style.MeanColor = color.RGBA{R: 0, G: 90, B: 200, A: 255}
		}

		w := vg.Length(cfg.Render.WidthCM) * vg.Centimeter
		h := vg.Length(cfg.Render.HeightCM) * vg.Centimeter

		if err := render.Save(bp, style, w, h, opts.out); err != nil {
			log.Error("failed to render boxplot", zap.String("file", opts.out), zap.Error(err))
			return err
		}

		log.Info("boxplot rendered", zap.String("file", opts.out))
	}

	writeMetrics(log, rec, opts.metricsOut)

	return nil
}

func writeMetrics(log *zap.Logger, rec *metrics.Recorder, path string) {
	if path == "" {
		return
	}

	if err := rec.WriteTextfile(path); err != nil {
		log.Warn("failed to write metrics", zap.String("file", path), zap.Error(err))
	}
}

func printVersion(w io.Writer) {
	f := cpu.DetectFeatures()
	fmt.Fprintf(w, "fbplot %s (%s, sse2=%t avx2=%t neon=%t)\n", version, f.Architecture, f.HasSSE2, f.HasAVX2, f.HasNEON)
}

func printSummary(
	w io.Writer,
	set *curves.Set,
	bp *functional.Boxplot[float64, float64],
	measure functional.Measure,
	elapsed time.Duration,
	top int,
) error {
	plan := bp.Plan()
	n := bp.Len()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Curves\t%d\n", n)
	fmt.Fprintf(tw, "Arguments\t%d\n", bp.Median().Len())
	fmt.Fprintf(tw, "Measure\t%s\n", measure)
	fmt.Fprintf(tw, "Pair stride\t%d (%d pairs per curve)\n", plan.FuncStepSize, plan.Pairs(n))
	fmt.Fprintf(tw, "Argument stride\t%d\n", plan.ArgStepSize)
	fmt.Fprintf(tw, "Depth evaluations\t%d\n", bp.Evaluations())
	fmt.Fprintf(tw, "Elapsed\t%s\n", elapsed.Round(time.Microsecond))
	fmt.Fprintf(tw, "Median\t%s\n", set.Names[bp.MedianIndex()])
	fmt.Fprintf(tw, "Outliers\t%d\n", len(bp.Outliers()))

	depths := bp.NormalizedDepths()
	sorted := slices.Clone(depths)
	slices.Sort(sorted)
	fmt.Fprintf(tw, "Depth (normalized)\tmean %.4f  q1 %.4f  q2 %.4f  q3 %.4f\n",
		stat.Mean(sorted, nil),
		stat.Quantile(0.25, stat.Empirical, sorted, nil),
		stat.Quantile(0.5, stat.Empirical, sorted, nil),
		stat.Quantile(0.75, stat.Empirical, sorted, nil),
	)

	spread, err := pointwise.Calculate(bp.Functions())
	if err != nil {
		return err
	}

	if i, ok := widest(spread.StdDev); ok {
		fmt.Fprintf(tw, "Pointwise spread\tmax std %.4g at %g (mean %.4g)\n", spread.StdDev[i], spread.Args[i], spread.Mean[i])
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Rank\tCurve\tDepth\tRole\n")
	fmt.Fprintf(tw, "----\t-----\t-----\t----\n")

	ranking := bp.Ranking()
	outliers := bp.Outliers()

	for r, idx := range ranking {
		if top > 0 && r >= top && !slices.Contains(outliers, idx) {
			continue
		}

		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%s\n", r+1, set.Names[idx], depths[idx], role(r, n, idx, outliers))
	}

	return tw.Flush()
}

// widest returns the index of the largest value.
func widest(values []float64) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}

	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}

	return best, true
}

func role(rank, n, idx int, outliers []int) string {
	switch {
	case rank == 0:
		return "median"
	case rank < n/2:
		return "central"
	case slices.Contains(outliers, idx):
		return "outlier"
	default:
		return "envelope"
	}
}
