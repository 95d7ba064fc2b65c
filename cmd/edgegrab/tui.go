package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/edgegrab/internal/inspect"
	"github.com/1broseidon/edgegrab/internal/nudgetui"
)

func runInteractive(args []string) int {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	windowFlag := fs.String("window", "", "Window ID to control (default: the active window)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: edgegrab interactive [--window ID]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Drive a window from the terminal. Every move goes through the")
		fmt.Fprintln(os.Stderr, "daemon's keyboard edge resistance, so the window holds at edges")
		fmt.Fprintln(os.Stderr, "until pushed repeatedly.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  ↑/↓/←/→, hjkl    Nudge the window one step")
		fmt.Fprintln(os.Stderr, "  Shift+arrows     Snap to the nearest edge")
		fmt.Fprintln(os.Stderr, "  HJKL             Snap to the nearest edge")
		fmt.Fprintln(os.Stderr, "  s                Toggle snap mode for plain nudges")
		fmt.Fprintln(os.Stderr, "  +/-              Grow/shrink the nudge step")
		fmt.Fprintln(os.Stderr, "  0                Reset the step to the configured default")
		fmt.Fprintln(os.Stderr, "  Tab              Cycle through windows")
		fmt.Fprintln(os.Stderr, "  r                Refresh window and edge data")
		fmt.Fprintln(os.Stderr, "  q, Esc, Ctrl+C   Quit")
		return 0
	}

	if err := fs.Parse(args); err != nil {
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

	loop := nudgetui.New(newClient(), window)
	if err := loop.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runInspect(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: edgegrab inspect")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Browse windows and their edge maps live. While a drag or nudge")
		fmt.Fprintln(os.Stderr, "session is active, shows per-side resistance buildup and armed")
		fmt.Fprintln(os.Stderr, "timers as they change.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  ↑/↓       Select window")
		fmt.Fprintln(os.Stderr, "  p         Pause/resume polling")
		fmt.Fprintln(os.Stderr, "  r         Refresh now")
		fmt.Fprintln(os.Stderr, "  q, Esc    Quit")
		fmt.Fprintln(os.Stderr, "  Ctrl+C    Quit")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "inspect takes no arguments")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: edgegrab inspect")
		return 2
	}

	if err := inspect.Run(newClient()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
