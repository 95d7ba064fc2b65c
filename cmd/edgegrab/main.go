package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/edgegrab/internal/config"
	"github.com/1broseidon/edgegrab/internal/daemon"
	"github.com/1broseidon/edgegrab/internal/grab"
	"github.com/1broseidon/edgegrab/internal/hotkeys"
	"github.com/1broseidon/edgegrab/internal/ipc"
	"github.com/1broseidon/edgegrab/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: edgegrab daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: edgegrab daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "edges":
		os.Exit(runEdges(os.Args[2:]))
	case "nudge":
		os.Exit(runNudge(os.Args[2:]))
	case "snap":
		os.Exit(runSnap(os.Args[2:]))
	case "interactive":
		os.Exit(runInteractive(os.Args[2:]))
	case "inspect":
		os.Exit(runInspect(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "stop":
		os.Exit(runStop(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
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
	fmt.Fprintln(w, "Usage: edgegrab <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the edgegrab daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  windows             List visible windows in stacking order")
	fmt.Fprintln(w, "  edges               Show the edge map for a window")
	fmt.Fprintln(w, "  nudge               Move a window one resisted step")
	fmt.Fprintln(w, "  snap                Snap a window to the nearest edge")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  interactive         Nudge windows from the terminal (raw mode)")
	fmt.Fprintln(w, "  inspect             Live edge and resistance inspector")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  reload              Reload daemon configuration")
	fmt.Fprintln(w, "  stop                Stop the running daemon")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'edgegrab <command> --help' for command-specific options.")
}

// newClient builds an IPC client honoring a socket_path override from
// the config file. Config errors fall back to the default socket so
// client commands keep working with a broken config.
func newClient() *ipc.Client {
	cfg, err := config.Load()
	if err == nil && cfg.SocketPath != "" {
		return ipc.NewClientWithSocket(cfg.SocketPath)
	}
	return ipc.NewClient()
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: edgegrab status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := newClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	fmt.Printf("nudge_step:     %d\n", status.NudgeStep)
	fmt.Printf("grab_active:    %v\n", status.GrabActive)
	if status.GrabActive {
		fmt.Printf("grab_kind:      %s\n", status.GrabKind)
		fmt.Printf("grab_window:    0x%08x\n", status.GrabWindow)
		fmt.Printf("snap_mode:      %v\n", status.LastActionSnap)
		for _, side := range []string{"left", "right", "top", "bottom"} {
			st, ok := status.Sides[side]
			if !ok {
				continue
			}
			line := fmt.Sprintf("side_%-7s edges=%d buildup=%d", side+":", st.EdgeCount, st.Buildup)
			if st.TimerArmed {
				line += fmt.Sprintf(" armed_at=%d", st.ArmedEdgePos)
			}
			if st.TimerElapsed {
				line += " timer_elapsed"
			}
			if st.AllowPastScreen {
				line += " past_screen_ok"
			}
			fmt.Println(line)
		}
	}
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: edgegrab reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Reload the daemon configuration from disk. Changes to buttons,")
		fmt.Fprintln(os.Stderr, "modifiers, or the nudge key require a daemon restart.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}

	client := newClient()
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("config reloaded")
	return 0
}

func runStop(args []string) int {
	fs := flag.NewFlagSet("stop", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: edgegrab stop")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the running daemon to shut down.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "stop takes no arguments")
		fs.Usage()
		return 2
	}

	client := newClient()
	if err := client.Stop(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("daemon stopping")
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  edgegrab config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  edgegrab config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/edgegrab/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.Load()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/edgegrab/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		if *printDefaults {
			cfg = config.DefaultConfig()
		} else {
			var err error
			if *path == "" {
				cfg, err = config.Load()
			} else {
				cfg, err = config.LoadFromPath(*path)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runDaemon() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (move: %s+button%d, resize: %s+button%d)",
		cfg.Modifier, cfg.MoveButton, cfg.Modifier, cfg.ResizeButton)

	// Connect to display server
	conn, err := x11.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	log.Println("edgegrab daemon started successfully")

	// Create grab manager
	manager, err := grab.NewManager(conn, cfg)
	if err != nil {
		log.Fatalf("Failed to create grab manager: %v", err)
	}

	// Register pointer and nudge-key grabs
	hotkeyHandler := hotkeys.NewHandler(conn, manager)
	if err := hotkeyHandler.Register(cfg); err != nil {
		log.Fatalf("Failed to register grabs: %v", err)
	}
	log.Printf("Grabs registered (nudge key: %s)", cfg.NudgeKey)

	// Create config reload channel and stop channel
	reloadChan := make(chan struct{}, 1)
	stopChan := make(chan struct{}, 1)

	// Start IPC server
	ipcServer, err := ipc.NewServer(cfg, manager, reloadChan, stopChan)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	// Watchdog aborts grabs whose window disappeared mid-drag.
	watchdogLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.Logging.Level),
	}))
	watchdog := daemon.NewWatchdog(daemon.WatchdogConfig{
		Interval: 2 * time.Second,
		Logger:   watchdogLogger,
	}, manager, func(win xproto.Window) bool {
		_, err := conn.OuterRect(win)
		return err == nil
	})

	watchdogCtx, watchdogCancel := context.WithCancel(context.Background())
	defer watchdogCancel()
	go watchdog.Run(watchdogCtx)

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	// Handle signals, config reloads, and stop requests
	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					newCfg, err := config.Load()
					if err != nil {
						log.Printf("Config reload failed: %v", err)
						continue
					}

					ipcServer.UpdateConfig(newCfg)
					if err := manager.UpdateConfig(newCfg); err != nil {
						log.Printf("Config reload failed: %v", err)
						continue
					}

					log.Println("Config reloaded successfully")

				case os.Interrupt, syscall.SIGTERM:
					log.Println("Shutting down edgegrab daemon...")
					watchdogCancel()
					manager.Shutdown()
					ipcServer.Stop()
					os.Exit(0)
				}

			case <-reloadChan:
				// Config was reloaded via IPC, update components
				newCfg := ipcServer.GetConfig()
				if err := manager.UpdateConfig(newCfg); err != nil {
					log.Printf("Config update failed: %v", err)
				}

			case <-stopChan:
				log.Println("Stop requested via IPC, shutting down...")
				watchdogCancel()
				manager.Shutdown()
				ipcServer.Stop()
				os.Exit(0)
			}
		}
	}()

	// Start event loop (blocking)
	log.Println("Entering event loop...")
	conn.EventLoop()
}
