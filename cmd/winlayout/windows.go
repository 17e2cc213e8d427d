package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/1broseidon/winlayout/internal/mcp"
	"github.com/1broseidon/winlayout/internal/platform"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winlayout windows [--json] [--verbose]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List visible top-level windows. Prints a table on a terminal, JSON otherwise.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	verbose := fs.Bool("verbose", false, "Log diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "windows takes no arguments")
		fs.Usage()
		return 2
	}

	logger := newLogger(*verbose)
	backend, closeBackend, err := openBackend(logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeBackend()

	start := time.Now()
	windows := backend.ScanWindows()
	logger.Debug("scanned windows", "count", len(windows), "elapsed", time.Since(start))

	if *jsonOut || !stdoutIsTerminal() {
		if err := writeWindowsJSON(os.Stdout, windows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	writeWindowsTable(os.Stdout, windows)
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winlayout monitors [--json] [--verbose]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List monitors with bounds, work area, primary flag and DPI scale.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	verbose := fs.Bool("verbose", false, "Log diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "monitors takes no arguments")
		fs.Usage()
		return 2
	}

	logger := newLogger(*verbose)
	backend, closeBackend, err := openBackend(logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeBackend()

	monitors := backend.ScanMonitors()
	logger.Debug("scanned monitors", "count", len(monitors))

	if *jsonOut || !stdoutIsTerminal() {
		if err := writeMonitorsJSON(os.Stdout, monitors); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	writeMonitorsTable(os.Stdout, monitors)
	return 0
}

func printWindowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  winlayout window move [--handle H] --x X --y Y --width W --height H")
	fmt.Fprintln(w, "  winlayout window focus [--handle H]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Without --handle, a window picker opens when running on a terminal.")
}

func runWindow(args []string) int {
	if len(args) == 0 {
		printWindowUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "move":
		return runWindowMove(args[1:])
	case "focus":
		return runWindowFocus(args[1:])
	case "help", "-h", "--help":
		printWindowUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown window command: %s\n\n", args[0])
		printWindowUsage(os.Stderr)
		return 2
	}
}

type moveArgs struct {
	handle int64
	bounds platform.Rect
}

func parseMoveArgs(args []string) (moveArgs, error) {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	handle := fs.Int64("handle", 0, "Window handle (from 'winlayout windows')")
	x := fs.Int("x", 0, "Left edge in desktop pixels")
	y := fs.Int("y", 0, "Top edge in desktop pixels")
	width := fs.Int("width", 0, "Width in pixels")
	height := fs.Int("height", 0, "Height in pixels")
	if err := fs.Parse(args); err != nil {
		return moveArgs{}, err
	}
	if fs.NArg() != 0 {
		return moveArgs{}, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	for _, name := range []string{"x", "y", "width", "height"} {
		if !seen[name] {
			return moveArgs{}, fmt.Errorf("--%s is required", name)
		}
	}

	values := map[string]int{"x": *x, "y": *y, "width": *width, "height": *height}
	for _, name := range []string{"x", "y", "width", "height"} {
		if v := values[name]; v < math.MinInt32 || v > math.MaxInt32 {
			return moveArgs{}, fmt.Errorf("--%s out of range: %d", name, v)
		}
	}

	return moveArgs{
		handle: *handle,
		bounds: platform.Rect{X: int32(*x), Y: int32(*y), Width: int32(*width), Height: int32(*height)},
	}, nil
}

func runWindowMove(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		printWindowUsage(os.Stdout)
		return 0
	}
	parsed, err := parseMoveArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printWindowUsage(os.Stderr)
		return 2
	}

	logger := newLogger(false)
	backend, closeBackend, err := openBackend(logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeBackend()

	handle, err := resolveHandle(backend, parsed.handle)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := backend.SetWindowBounds(handle, parsed.bounds); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("moved %d to %d,%d %dx%d\n", handle, parsed.bounds.X, parsed.bounds.Y, parsed.bounds.Width, parsed.bounds.Height)
	return 0
}

func runWindowFocus(args []string) int {
	fs := flag.NewFlagSet("focus", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	handleFlag := fs.Int64("handle", 0, "Window handle (from 'winlayout windows')")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "window focus takes no arguments")
		return 2
	}

	logger := newLogger(false)
	backend, closeBackend, err := openBackend(logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeBackend()

	handle, err := resolveHandle(backend, *handleFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := backend.BringToForeground(handle); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("focused %d\n", handle)
	return 0
}

var errNoHandle = errors.New("--handle is required when not running on a terminal")

// resolveHandle returns the explicit handle, or asks the user to pick one
// from a fresh window scan.
func resolveHandle(backend platform.Backend, handle int64) (platform.WindowHandle, error) {
	if handle != 0 {
		return platform.WindowHandle(handle), nil
	}
	if !stdinIsTerminal() || !stdoutIsTerminal() {
		return 0, errNoHandle
	}
	return pickWindow(backend.ScanWindows())
}

func pickWindow(windows []platform.Window) (platform.WindowHandle, error) {
	if len(windows) == 0 {
		return 0, errors.New("no windows to choose from")
	}

	options := make([]huh.Option[int64], 0, len(windows))
	for _, w := range windows {
		options = append(options, huh.NewOption(windowLabel(w), int64(w.Handle)))
	}

	var selected int64
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int64]().
			Title("Select a window").
			Options(options...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return 0, err
	}
	return platform.WindowHandle(selected), nil
}

func windowLabel(w platform.Window) string {
	label := w.Title
	if w.ProcessName != nil {
		label += " (" + *w.ProcessName + ")"
	}
	return fmt.Sprintf("%s [%d]", label, w.Handle)
}

func writeWindowsJSON(w io.Writer, windows []platform.Window) error {
	out := make([]mcp.WindowInfo, 0, len(windows))
	for _, win := range windows {
		out = append(out, mcp.WindowInfoFrom(win))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeMonitorsJSON(w io.Writer, monitors []platform.Monitor) error {
	out := make([]mcp.MonitorInfo, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, mcp.MonitorInfoFrom(m))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func writeWindowsTable(w io.Writer, windows []platform.Window) {
	t := newTable("HANDLE", "PROCESS", "X", "Y", "WIDTH", "HEIGHT", "TITLE")
	for _, win := range windows {
		process := "-"
		if win.ProcessName != nil {
			process = *win.ProcessName
		}
		t.Row(
			strconv.FormatInt(int64(win.Handle), 10),
			process,
			itoa32(win.Bounds.X),
			itoa32(win.Bounds.Y),
			itoa32(win.Bounds.Width),
			itoa32(win.Bounds.Height),
			win.Title,
		)
	}
	fmt.Fprintln(w, t.String())
	fmt.Fprintf(w, "%d windows\n", len(windows))
}

func writeMonitorsTable(w io.Writer, monitors []platform.Monitor) {
	t := newTable("NAME", "PRIMARY", "BOUNDS", "WORK AREA", "SCALE")
	for _, m := range monitors {
		primary := ""
		if m.Primary {
			primary = "yes"
		}
		t.Row(
			m.Name,
			primary,
			formatRect(m.Bounds),
			formatRect(m.WorkArea),
			strconv.FormatFloat(m.DPIScale, 'f', 2, 64),
		)
	}
	fmt.Fprintln(w, t.String())
}

func formatRect(r platform.Rect) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func itoa32(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}
