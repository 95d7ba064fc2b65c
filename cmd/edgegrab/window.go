package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
)

// parseWindowID accepts decimal or 0x-prefixed hex window IDs.
func parseWindowID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window ID %q", s)
	}
	return uint32(id), nil
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Emit JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: edgegrab windows [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List visible windows in stacking order, bottom to top.")
	}
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

	client := newClient()
	data, err := client.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data.Windows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for _, w := range data.Windows {
		marker := " "
		if w.Active {
			marker = "*"
		}
		suffix := ""
		if w.Dock {
			suffix = "  [dock]"
		}
		title := w.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s 0x%08x  %5d,%-5d %4dx%-4d %s%s\n",
			marker, w.ID, w.X, w.Y, w.Width, w.Height, title, suffix)
	}
	return 0
}

func runEdges(args []string) int {
	fs := flag.NewFlagSet("edges", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Emit JSON")
	windowFlag := fs.String("window", "", "Window ID (default: the active window)")
	titleFlag := fs.String("title", "", "Match the first window whose title contains this text")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: edgegrab edges [--window ID | --title TEXT] [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the edges a drag of the window would resist against:")
		fmt.Fprintln(os.Stderr, "onscreen edges of other windows, monitor boundaries, and the")
		fmt.Fprintln(os.Stderr, "screen border.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "edges takes no positional arguments")
		fs.Usage()
		return 2
	}

	var window uint32
	if *windowFlag != "" {
		id, err := parseWindowID(*windowFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		window = id
	}

	client := newClient()
	data, err := client.GetEdges(window, *titleFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	title := data.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Printf("window: 0x%08x  %s\n", data.Window, title)
	fmt.Printf("edges:  %d\n", len(data.Edges))
	for _, e := range data.Edges {
		// Vertical edges span Y, horizontal edges span X.
		if e.Side == "left" || e.Side == "right" {
			fmt.Printf("  %-7s %-8s x=%-6d y %d..%d\n",
				e.Side, e.Kind, e.Position, e.Y, e.Y+e.Height)
		} else {
			fmt.Printf("  %-7s %-8s y=%-6d x %d..%d\n",
				e.Side, e.Kind, e.Position, e.X, e.X+e.Width)
		}
	}
	return 0
}

func runNudge(args []string) int {
	fs := flag.NewFlagSet("nudge", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	px := fs.Int("px", 0, "Distance in pixels (default: configured nudge_step)")
	snap := fs.Bool("snap", false, "Jump to the nearest edge instead of moving by px")
	windowFlag := fs.String("window", "", "Window ID (default: the active window)")
	titleFlag := fs.String("title", "", "Match the first window whose title contains this text")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: edgegrab nudge [--px N] [--snap] [--window ID | --title TEXT] <up|down|left|right>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Move a window one step with keyboard edge resistance applied.")
		fmt.Fprintln(os.Stderr, "The window stops at window, monitor, and screen edges until")
		fmt.Fprintln(os.Stderr, "pushed repeatedly.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "nudge requires exactly one direction")
		fs.Usage()
		return 2
	}
	direction := fs.Arg(0)

	var window uint32
	if *windowFlag != "" {
		id, err := parseWindowID(*windowFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		window = id
	}

	client := newClient()
	result, err := client.Nudge(window, *titleFlag, direction, *px, *snap)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	printMoveResult(result.Window, result.FromX, result.FromY, result.ToX, result.ToY, result.Moved)
	return 0
}

func runSnap(args []string) int {
	fs := flag.NewFlagSet("snap", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	windowFlag := fs.String("window", "", "Window ID (default: the active window)")
	titleFlag := fs.String("title", "", "Match the first window whose title contains this text")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: edgegrab snap [--window ID | --title TEXT] <up|down|left|right>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Snap a window to the nearest edge in the given direction.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "snap requires exactly one direction")
		fs.Usage()
		return 2
	}
	direction := fs.Arg(0)

	var window uint32
	if *windowFlag != "" {
		id, err := parseWindowID(*windowFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		window = id
	}

	client := newClient()
	result, err := client.Snap(window, *titleFlag, direction)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	printMoveResult(result.Window, result.FromX, result.FromY, result.ToX, result.ToY, result.Moved)
	return 0
}

func printMoveResult(window uint32, fromX, fromY, toX, toY int, moved bool) {
	if moved {
		fmt.Printf("0x%08x moved (%d, %d) -> (%d, %d)\n", window, fromX, fromY, toX, toY)
	} else {
		fmt.Printf("0x%08x held at (%d, %d)\n", window, fromX, fromY)
	}
}
