// modelc compiles a YAML entity description and prints a summary of the
// resolved model, or Go struct declarations with -go.
//
//	modelc [-v] [-config name] [-override] [-go pkg] [-o file] [-watch] file.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/modeldesc/compiler"
	"github.com/syssam/modeldesc/compiler/gen"
	"github.com/syssam/modeldesc/compiler/load"
	"github.com/syssam/modeldesc/graph"
)

type options struct {
	verbose  bool
	config   string
	override bool
	pkg      string
	out      string
	watch    bool
	path     string
}

func main() {
	opts, err := parse(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if !opts.watch {
		if err := run(opts, os.Stdout, logger); err != nil {
			fmt.Fprintf(os.Stderr, "modelc: %v\n", err)
			os.Exit(1)
		}
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := watch(ctx, opts, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "modelc: %v\n", err)
		os.Exit(1)
	}
}

// parse reads flags, falling back to MODELC_* environment variables.
func parse(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("modelc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.verbose, "v", getenvBool("MODELC_VERBOSE", false), "log compile phases")
	fs.StringVar(&opts.config, "config", getenv("MODELC_CONFIG", ""), "configuration for entities without one")
	fs.BoolVar(&opts.override, "override", getenvBool("MODELC_OVERRIDE", false), "allow children to redeclare inherited properties")
	fs.StringVar(&opts.pkg, "go", getenv("MODELC_GO_PKG", ""), "print Go structs in the given package")
	fs.StringVar(&opts.out, "o", getenv("MODELC_OUT", ""), "write Go structs to a file instead of stdout")
	fs.BoolVar(&opts.watch, "watch", getenvBool("MODELC_WATCH", false), "recompile when the file changes")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: modelc [flags] file.yaml")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, flag.ErrHelp
	}
	if opts.out != "" && opts.pkg == "" {
		fmt.Fprintln(stderr, "modelc: -o requires -go")
		return nil, flag.ErrHelp
	}
	opts.path = fs.Arg(0)
	return opts, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}

// compile loads and compiles the description file.
func compile(opts *options, logger *slog.Logger) (*graph.Model, error) {
	doc, err := load.ReadFile(opts.path)
	if err != nil {
		return nil, err
	}
	ents, err := doc.Describe()
	if err != nil {
		return nil, err
	}
	copts := []compiler.Option{compiler.WithLogger(logger)}
	if opts.config != "" {
		copts = append(copts, compiler.WithDefaultConfiguration(opts.config))
	}
	if opts.override {
		copts = append(copts, compiler.WithPropertyOverride())
	}
	return compiler.Compile(ents, copts...)
}

func run(opts *options, w io.Writer, logger *slog.Logger) error {
	m, err := compile(opts, logger)
	if err != nil {
		return err
	}
	switch {
	case opts.out != "":
		if err := gen.WriteFile(opts.out, m, opts.pkg); err != nil {
			return err
		}
		logger.Info("wrote structs", "path", opts.out, "entities", m.Len())
		return nil
	case opts.pkg != "":
		return gen.Render(w, m, opts.pkg)
	default:
		summary(w, m)
		return nil
	}
}

// watch runs once and then again on every write to the description file.
// Compile errors are logged and do not stop the watcher.
func watch(ctx context.Context, opts *options, w io.Writer, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Editors often replace the file, so the directory is watched.
	if err := watcher.Add(filepath.Dir(opts.path)); err != nil {
		return err
	}
	target := filepath.Clean(opts.path)
	rerun := func() {
		if err := run(opts, w, logger); err != nil {
			logger.Error("compile failed", "path", opts.path, "error", err)
		}
	}
	rerun()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("description changed", "path", ev.Name, "op", ev.Op.String())
			rerun()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// summary prints entities, their relationships and indexes, followed by
// the configurations and the model version identifier.
func summary(w io.Writer, m *graph.Model) {
	for _, e := range m.Entities() {
		fmt.Fprintf(w, "entity %s", e.Name)
		if e.Parent != nil {
			fmt.Fprintf(w, " : %s", e.Parent.Name)
		}
		if e.Abstract {
			fmt.Fprint(w, " (abstract)")
		}
		fmt.Fprintf(w, " attributes=%d fetched=%d relationships=%d\n",
			len(e.Attributes), len(e.FetchedProperties), len(e.Relationships))
		for _, r := range e.Relationships {
			card := "to-one"
			if r.IsToMany() {
				card = "to-many"
			}
			fmt.Fprintf(w, "  %s -> %s %s %s", r.Name, r.Destination.Name, card, r.DeleteRule)
			if r.Inverse != nil {
				fmt.Fprintf(w, " inverse=%s", r.Inverse.Name)
			}
			fmt.Fprintln(w)
		}
		for _, idx := range e.Indexes {
			fmt.Fprintf(w, "  index %s(%s)\n", idx.Name, strings.Join(idx.Names(), ", "))
		}
	}
	for _, name := range m.Configurations() {
		ents := m.EntitiesFor(name)
		names := make([]string, len(ents))
		for i, e := range ents {
			names[i] = e.Name
		}
		fmt.Fprintf(w, "configuration %s: %s\n", name, strings.Join(names, ", "))
	}
	fmt.Fprintf(w, "version %s\n", m.VersionIdentifier())
}
