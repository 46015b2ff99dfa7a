package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ironsheep/cardprep/internal/config"
	"github.com/ironsheep/cardprep/internal/runner"
	"github.com/ironsheep/cardprep/internal/server"
	"github.com/ironsheep/cardprep/internal/transform"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout is for MCP protocol in serve mode)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return 2
	}

	switch args[0] {
	case "--version", "version":
		fmt.Fprintf(stdout, "cardprep %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	}

	name := args[0]
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", "", "Path to a YAML config file")
	border := fs.Int("border", -1, "Border thickness for border-to-transparent (default from config: 10)")
	outDir := fs.String("out", "", "Write results to this directory instead of overwriting")
	dryRun := fs.Bool("dry-run", false, "Count changed pixels without writing")
	stopOnError := fs.Bool("stop-on-error", false, "Abort at the first file that fails")
	verbose := fs.Bool("v", false, "Log every changed pixel")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Printf("Config error: %v", err)
			return 1
		}
		cfg = loaded
	}
	if *border >= 0 {
		cfg.BorderSize = *border
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	if *stopOnError {
		cfg.StopOnError = true
	}
	if *verbose || os.Getenv("CARDPREP_LOG_LEVEL") == "debug" {
		cfg.Verbose = true
	}

	if name == "serve" {
		if cfg.Verbose {
			log.Printf("cardprep MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		}
		if err := server.New(cfg, server.WithVersion(Version)).Run(); err != nil {
			log.Printf("Server error: %v", err)
			return 1
		}
		return 0
	}

	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}

	if name == "list" {
		paths, err := runner.ListImages(dir)
		if err != nil {
			log.Printf("List error: %v", err)
			return 1
		}
		for _, p := range paths {
			fmt.Fprintln(stdout, p)
		}
		return 0
	}

	params, err := cfg.Params()
	if err != nil {
		log.Printf("Config error: %v", err)
		return 1
	}
	fn, err := transform.Lookup(name, params)
	if err != nil {
		log.Printf("%v (available: %s)", err, strings.Join(transform.Names(), ", "))
		return 2
	}

	onError := runner.ContinueOnError
	if cfg.StopOnError {
		onError = runner.StopOnError
	}
	r := runner.New(runner.Options{
		OutputDir: cfg.OutputDir,
		OnError:   onError,
		DryRun:    *dryRun,
		Observer:  runner.LogObserver{Pixels: cfg.Verbose},
	})

	report, err := r.Run(dir, fn)
	if report == nil {
		log.Printf("Run error: %v", err)
		return 1
	}

	verb := "rewrote"
	if report.DryRun {
		verb = "would rewrite"
	}
	for _, f := range report.Files {
		if f.Error == "" {
			fmt.Fprintf(stdout, "%s: %s %d pixels (%dx%d)\n", f.Path, verb, f.ChangedPixels, f.Width, f.Height)
		}
	}
	fmt.Fprintf(stdout, "%d processed, %d failed\n", report.Processed, report.Failed)

	if err != nil {
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "cardprep - clean up playing-card sprite PNGs in place")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cardprep <transform> [options] [dir]   Apply a pass to every .png in dir (default .)")
	fmt.Fprintln(w, "  cardprep list [dir]                    List the files a pass would touch")
	fmt.Fprintln(w, "  cardprep serve [options]               Run as an MCP server on stdin/stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Transforms:")
	for _, name := range transform.Names() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -config FILE       YAML config (border_size, white_threshold, red_rule, ...)")
	fmt.Fprintln(w, "  -border N          Border thickness for border-to-transparent")
	fmt.Fprintln(w, "  -out DIR           Write results to DIR instead of overwriting")
	fmt.Fprintln(w, "  -dry-run           Count changed pixels without writing")
	fmt.Fprintln(w, "  -stop-on-error     Abort at the first file that fails")
	fmt.Fprintln(w, "  -v                 Log every changed pixel")
	fmt.Fprintln(w, "  --version          Print version information (as the only argument)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  CARDPREP_LOG_LEVEL=debug    Log every changed pixel")
}
