// Command dropdown is a terminal demo of anchored dropdowns.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/scientech-com-ua/dropdown/internal/config"
	"github.com/scientech-com-ua/dropdown/internal/position"
	"github.com/scientech-com-ua/dropdown/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "dropdown",
		Short: "Anchored dropdown demo for the terminal",
		Long:  "dropdown opens panels next to the toolbar button that asked for them, flipping above the button when the screen runs out below.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(configPath)
		},
	}
	rootCmd.Version = version + " (commit " + commit + ", built " + date + ")"
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	rootCmd.AddCommand(newResolveCmd())
	return rootCmd
}

func newResolveCmd() *cobra.Command {
	var anchorFlag, sizeFlag string
	var viewportHeight int

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print where a dropdown would open",
		Example: "  dropdown resolve --anchor 10,500,100,40 --size 100,300 --viewport 900\n" +
			"  dropdown resolve --anchor 10,500,100,40 --size 100,200 --viewport 600",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseInts(anchorFlag, 4)
			if err != nil {
				return fmt.Errorf("--anchor: %w", err)
			}
			s, err := parseInts(sizeFlag, 2)
			if err != nil {
				return fmt.Errorf("--size: %w", err)
			}
			if viewportHeight < 0 {
				return fmt.Errorf("--viewport: must not be negative")
			}
			p := position.Resolve(
				position.Anchor{Left: a[0], Top: a[1], Width: a[2], Height: a[3]},
				position.Size{Width: s[0], Height: s[1]},
				position.Viewport{Height: viewportHeight},
			)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p.String())
			return err
		},
	}
	cmd.Flags().StringVar(&anchorFlag, "anchor", "", "anchor rectangle as left,top,width,height")
	cmd.Flags().StringVar(&sizeFlag, "size", "", "panel size as width,height")
	cmd.Flags().IntVar(&viewportHeight, "viewport", 0, "viewport height")
	_ = cmd.MarkFlagRequired("anchor")
	_ = cmd.MarkFlagRequired("size")
	_ = cmd.MarkFlagRequired("viewport")
	return cmd
}

// parseInts parses exactly n comma-separated integers.
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %q", n, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad number %q", p)
		}
		out[i] = v
	}
	return out, nil
}

func runTUI(configPath string) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	iconMode, err := tui.ParseIconMode(cfg.Icons)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var debugLog *slog.Logger
	if debugPath := os.Getenv("DROPDOWN_DEBUG"); debugPath != "" {
		cleanPath := filepath.Clean(debugPath)
		f, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) //#nosec G304 -- developer-controlled debug log path
		if err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer func() { _ = f.Close() }()
		debugLog = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	model := tui.NewModel(tui.Options{
		Config:   cfg,
		IconMode: iconMode,
		DebugLog: debugLog,
	})
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error: %w", err)
	}
	return nil
}
