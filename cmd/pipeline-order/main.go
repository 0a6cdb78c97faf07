// Command pipeline-order reports, for every route of a workspace, the order in which the files of
// each HTTP method directory run according to the route's pipeline declaration.
//
// Usage:
//
//	pipeline-order [-config config.yaml] sort [-root dir] [-concurrency n] [-dot file] [-measure] [-watch]
//	pipeline-order [-config config.yaml] show path/to/_handlers.ts
//
// Nothing is renamed: the computed order is printed.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/sort-pipeline/internal/config"
	"github.com/askiada/sort-pipeline/internal/logger"
	"github.com/askiada/sort-pipeline/internal/routes"
	"github.com/askiada/sort-pipeline/internal/watch"
	"github.com/askiada/sort-pipeline/pkg/pipeline"
	"github.com/askiada/sort-pipeline/pkg/pipeline/drawer"
	"github.com/askiada/sort-pipeline/pkg/pipeline/measure"
	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2

	slowestUnits = 5
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := runWithArgs(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func usage(stderr io.Writer, fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(stderr, "Usage: %s [-config file] <sort|show> [options]\n\n", fs.Name())
		fmt.Fprintln(stderr, "Commands:")
		fmt.Fprintln(stderr, "  sort   order the method directories of every route")
		fmt.Fprintln(stderr, "  show   print the pipeline of one handler file")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
}

func runWithArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pipeline-order", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	fs.Usage = usage(stderr, fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "error: a command is required")
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}

	command, rest := fs.Arg(0), fs.Args()[1:]
	switch command {
	case "sort":
		return runSort(ctx, cfg, rest, stdout, stderr)
	case "show":
		return runShow(cfg, rest, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "error: unknown command %q\n", command)
		fs.Usage()
		return exitUsage
	}
}

func runSort(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sort", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Root, "root", cfg.Root, "workspace root")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "number of directories processed at the same time")
	fs.StringVar(&cfg.DotFile, "dot", cfg.DotFile, "write the pipelines graph to this DOT file")
	withMeasure := fs.Bool("measure", false, "log the slowest units")
	withWatch := fs.Bool("watch", false, "run again every time a route changes")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	log, err := logger.New(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	defer func() { _ = log.Sync() }()

	root := osfs.New(cfg.Root)
	layout := routes.Layout{
		RoutesDir:   cfg.RoutesDir,
		HandlerFile: cfg.HandlerFile,
		Methods:     cfg.Methods,
	}

	var discovered []model.Unit
	sink := pipeline.NewWriterSink(stdout)
	sortOnce := func(ctx context.Context) error {
		units, err := routes.Discover(root, layout)
		if err != nil {
			return err
		}
		discovered = units
		msr := measure.NewDefaultMeasure()
		opts := []model.RunOption{measure.RunMeasure(msr)}
		if cfg.DotFile != "" {
			opts = append(opts, drawer.RunDrawer(drawer.NewDOTDrawer(cfg.DotFile), msr))
		}
		runner, err := pipeline.New(root,
			pipeline.RunnerConcurrency(cfg.Concurrency),
			pipeline.RunnerHandlerFile(cfg.HandlerFile),
			pipeline.RunnerLogger(log),
			pipeline.RunnerRunOptions(opts...),
		)
		if err != nil {
			return errors.Wrap(err, "unable to create runner")
		}
		summary, err := runner.Run(ctx, units)
		if summary != nil {
			if writeErr := summary.Write(sink); writeErr != nil {
				return writeErr
			}
		}
		if err != nil {
			return err
		}
		if *withMeasure {
			log.Info("slowest units", zap.Strings("units", measure.Slowest(msr, slowestUnits)))
		}
		if summary.Failed > 0 {
			return errors.Errorf("%d units could not be read", summary.Failed)
		}

		return nil
	}

	err = sortOnce(ctx)
	if err != nil {
		log.Error("sort failed", zap.Error(err))
		if !*withWatch || errors.Is(err, routes.ErrRoutesDirNotFound) {
			return exitFailure
		}
	}
	if !*withWatch {
		return exitOK
	}

	watcher, err := watch.New(watchPaths(cfg.Root, cfg.RoutesDir, discovered), watch.DefaultDebounce, log)
	if err != nil {
		log.Error("unable to watch routes", zap.Error(err))
		return exitFailure
	}
	defer func() { _ = watcher.Close() }()
	log.Info("watching routes", zap.Int("directories", watcher.Watched()))

	err = watcher.Run(ctx, func(ctx context.Context) error {
		runErr := sortOnce(ctx)
		// routes and method directories created since the last run
		addErr := watcher.Add(watchPaths(cfg.Root, cfg.RoutesDir, discovered)...)
		if addErr != nil {
			log.Warn("unable to watch new routes", zap.Error(addErr))
		}

		return runErr
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("watch stopped", zap.Error(err))
		return exitFailure
	}

	return exitOK
}

// watchPaths returns the directories of units to watch, on the local file system under root.
func watchPaths(root, routesDir string, units []model.Unit) []string {
	paths := routes.WatchPaths(routesDir, units)
	for i, p := range paths {
		paths[i] = filepath.Join(root, filepath.FromSlash(p))
	}

	return paths
}

func runShow(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "error: show takes exactly one handler file")
		return exitUsage
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}

	runner, err := pipeline.New(osfs.New(filepath.Dir(path)), pipeline.RunnerHandlerFile(cfg.HandlerFile))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	_, err = runner.Show(filepath.Base(path), pipeline.NewWriterSink(stdout))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, pipeline.ErrNotHandlerFile) {
			return exitUsage
		}
		return exitFailure
	}

	return exitOK
}
