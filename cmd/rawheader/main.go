// Package main provides the CLI entrypoint for rawheader.
//
// rawheader reads an elaborated register address map (YAML dump of the
// register compiler) and writes a header with base addresses, sizes,
// register addresses and offsets, and field enumerations.
//
// Usage:
//
//	rawheader [flags] <addrmap.yaml>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"rawheader/internal/config"
	"rawheader/internal/export"
	"rawheader/internal/rdl"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fl := flag.NewFlagSet("rawheader", flag.ContinueOnError)
	fl.SetOutput(stderr)

	configFile := fl.String("config", "", "YAML config file (default ./"+config.DefaultFile+" if present)")
	format := fl.String("format", "", "output format: "+strings.Join(export.Formats, ", "))
	templatePath := fl.String("template", "", "custom template file, overrides -format")
	baseName := fl.String("base-name", "", "top-level name (defaults to the top addrmap name)")
	license := fl.String("license", "", `license text placed at the top of the output, "\n" separates lines`)
	output := fl.String("o", "", "output file")
	strict := fl.Bool("strict", false, "treat warnings (unknown node kinds, redefined enums) as errors")
	debug := fl.Bool("debug", false, "enable debug logging")

	err := fl.Parse(args)
	if err != nil {
		return 2
	}

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if fl.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: rawheader [flags] <addrmap.yaml>")
		fl.PrintDefaults()

		return 2
	}

	opts := export.DefaultOptions()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		logger.Error("loading config", "err", err)
		return 1
	}

	if cfg != nil {
		cfg.Apply(&opts)
	}

	(&config.File{
		Format:   *format,
		Template: *templatePath,
		BaseName: *baseName,
		License:  *license,
		Output:   *output,
		Strict:   *strict,
	}).Apply(&opts)

	top, err := rdl.LoadFile(fl.Arg(0))
	if err != nil {
		logger.Error("loading address map", "err", err)
		return 1
	}

	logger.Debug("address map loaded", "top", top.InstName, "format", opts.Format)

	_, err = export.Export(top, opts, logger)
	if err != nil {
		logger.Error("export failed", "err", err)
		return 1
	}

	return 0
}

// loadConfig reads path, or the default config file when path is empty.
// A missing default file is not an error.
func loadConfig(path string) (*config.File, error) {
	if path != "" {
		return config.Load(path)
	}

	cfg, err := config.Load(config.DefaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	return cfg, err
}
