package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/winlayout/internal/workspace"
)

func printWorkspaceUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  winlayout workspace save <name>")
	fmt.Fprintln(w, "  winlayout workspace restore [--dry-run] <name>")
	fmt.Fprintln(w, "  winlayout workspace list")
	fmt.Fprintln(w, "  winlayout workspace delete <name>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "A workspace is a named snapshot of window positions and sizes.")
}

func runWorkspace(args []string) int {
	if len(args) == 0 {
		printWorkspaceUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "save":
		return runWorkspaceSave(args[1:])
	case "restore":
		return runWorkspaceRestore(args[1:])
	case "list":
		return runWorkspaceList(args[1:])
	case "delete":
		return runWorkspaceDelete(args[1:])
	case "help", "-h", "--help":
		printWorkspaceUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown workspace command: %s\n\n", args[0])
		printWorkspaceUsage(os.Stderr)
		return 2
	}
}

func runWorkspaceSave(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: winlayout workspace save <name>")
		return 2
	}

	backend, closeBackend, err := openBackend(newLogger(false))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeBackend()

	cfg, err := workspace.Save(args[0], backend)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := workspace.Write(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("saved %d windows to %s\n", len(cfg.Windows), workspace.ConfigPath(cfg.Name))
	return 0
}

func runWorkspaceRestore(args []string) int {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dryRun := fs.Bool("dry-run", false, "Match windows without moving them")
	verbose := fs.Bool("verbose", false, "Log diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: winlayout workspace restore [--dry-run] <name>")
		return 2
	}

	cfg, err := workspace.Read(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := newLogger(*verbose)
	backend, closeBackend, err := openBackend(logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeBackend()

	res, err := workspace.Restore(cfg, backend, backend, workspace.RestoreOptions{DryRun: *dryRun})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	writeRestoreReport(os.Stdout, res, *dryRun)
	if len(res.Failed) > 0 {
		return 1
	}
	return 0
}

func writeRestoreReport(w io.Writer, res workspace.RestoreResult, dryRun bool) {
	verb := "moved"
	if dryRun {
		verb = "would move"
	}
	for _, a := range res.Applied {
		p := a.Placement
		fmt.Fprintf(w, "%s %q (%d, by %s) to %dx%d+%d+%d\n", verb, p.Title, a.Handle, a.MatchedBy, p.Width, p.Height, p.X, p.Y)
	}
	for _, m := range res.Missing {
		fmt.Fprintf(w, "missing %q\n", m.Title)
	}
	for _, f := range res.Failed {
		fmt.Fprintf(w, "failed %q (%d): %v\n", f.Placement.Title, f.Handle, f.Err)
	}
	fmt.Fprintf(w, "%d applied, %d missing, %d failed\n", len(res.Applied), len(res.Missing), len(res.Failed))
}

func runWorkspaceList(args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "workspace list takes no arguments")
		return 2
	}
	names, err := workspace.List()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return 0
}

func runWorkspaceDelete(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: winlayout workspace delete <name>")
		return 2
	}
	if err := workspace.Delete(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
