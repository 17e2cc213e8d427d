package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/1broseidon/winlayout/internal/config"
	"github.com/1broseidon/winlayout/internal/platform"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "window":
		os.Exit(runWindow(os.Args[2:]))
	case "workspace":
		os.Exit(runWorkspace(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winlayout <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  windows             List visible top-level windows")
	fmt.Fprintln(w, "  monitors            List monitors with work areas and DPI scale")
	fmt.Fprintln(w, "  window move         Move and resize a window")
	fmt.Fprintln(w, "  window focus        Bring a window to the foreground")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  workspace save      Save current window positions under a name")
	fmt.Fprintln(w, "  workspace restore   Move windows back to a saved workspace")
	fmt.Fprintln(w, "  workspace list      List saved workspaces")
	fmt.Fprintln(w, "  workspace delete    Delete a saved workspace")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config path         Print configuration file path")
	fmt.Fprintln(w, "  config init         Write a default configuration file")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winlayout <command> --help' for command-specific options.")
}

// newLogger returns the CLI diagnostics logger. Output goes to stderr so
// stdout stays parseable.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openBackend loads the configuration and opens the platform backend with
// its filter options. The returned close func is never nil.
func openBackend(logger *slog.Logger) (platform.Backend, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to load config: %w", err)
	}

	backend, err := platform.New(platform.Options{
		ExcludeClasses: cfg.Filters.ExcludeClasses,
		ExcludeTitles:  cfg.Filters.ExcludeTitles,
	})
	if err != nil {
		return nil, func() {}, err
	}
	logger.Debug("backend ready",
		"exclude_classes", len(cfg.Filters.ExcludeClasses),
		"exclude_titles", len(cfg.Filters.ExcludeTitles))

	closeFn := func() {
		if c, ok := backend.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Warn("backend close failed", "err", err)
			}
		}
	}
	return backend, closeFn, nil
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  winlayout config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  winlayout config print [--path PATH] [--defaults]")
		fmt.Fprintln(os.Stderr, "  winlayout config path")
		fmt.Fprintln(os.Stderr, "  winlayout config init [--path PATH] [--force]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/winlayout/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadConfigResult(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/winlayout/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfigResult(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			if res.File != "" {
				fmt.Printf("# file: %s\n", res.File)
			}
			cfg = res.Config
		}
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "path":
		path, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(path)
		return 0

	case "init":
		fs := flag.NewFlagSet("init", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/winlayout/config.yaml)")
		force := fs.Bool("force", false, "Overwrite an existing file")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		target := *path
		if target == "" {
			p, err := config.DefaultConfigPath()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			target = p
		}
		if _, err := os.Stat(target); err == nil && !*force {
			fmt.Fprintf(os.Stderr, "%s already exists (use --force to overwrite)\n", target)
			return 1
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		if err := config.DefaultConfig().Save(target); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("wrote %s\n", target)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}

func loadConfigResult(path string) (*config.LoadResult, error) {
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.LoadFromPath(path)
}
