package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syd18b/mvp-search/internal/logger"
	"github.com/syd18b/mvp-search/internal/panel"
)

var (
	analyzeOut     string
	analyzeSummary bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Fetches a site manifest and writes a static snapshot",
	Long: `The analyze command fetches the site manifest at <url> once, then writes
the rendered panel to <outputDir>/index.html and the panel state to
<outputDir>/state.json. With --summary it prints a text summary instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appConfig, log)
		if err != nil {
			return err
		}
		snap, _ := a.panel.Submit(cmd.Context(), args[0])

		if analyzeSummary {
			writeSummary(cmd.OutOrStdout(), snap)
		} else {
			outputDir := appConfig.OutputDir
			if analyzeOut != "" {
				outputDir = analyzeOut
			}
			if err := writeSnapshot(a, outputDir, snap); err != nil {
				return err
			}
		}

		if snap.State == panel.StateError {
			return fmt.Errorf("analyze %s: %s", args[0], snap.Message)
		}
		return nil
	},
}

func writeSnapshot(a *app, outputDir string, snap panel.Snapshot) error {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	pagePath := filepath.Join(outputDir, "index.html")
	page, err := os.Create(pagePath)
	if err != nil {
		return fmt.Errorf("failed to create page file '%s': %w", pagePath, err)
	}
	defer page.Close()
	if err := a.renderer.Page(page, snap); err != nil {
		return fmt.Errorf("failed to render '%s': %w", pagePath, err)
	}

	statePath := filepath.Join(outputDir, "state.json")
	state, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(statePath, state, 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", statePath, err)
	}

	log.Info("Snapshot written",
		logger.String("page", pagePath),
		logger.String("state", string(snap.State)),
		logger.Int("items", len(snap.Items)),
	)
	return nil
}

func writeSummary(w io.Writer, snap panel.Snapshot) {
	heading := color.New(color.FgCyan, color.Bold).SprintFunc()
	failed := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", heading("Query:"), snap.Query)
	fmt.Fprintf(w, "%s %s\n", heading("State:"), snap.State)
	if snap.Message != "" {
		fmt.Fprintln(w, failed(snap.Message))
		return
	}

	o := snap.Overview
	printField(w, heading, "Name:", o.Name)
	printField(w, heading, "Description:", o.Description)
	printField(w, heading, "Theme:", o.ThemeName)
	printField(w, heading, "Hex Code:", o.AccentColor)
	if o.Created != 0 {
		printField(w, heading, "Created:", panel.FormatTimestamp(o.Created))
	}
	if o.Updated != 0 {
		printField(w, heading, "Last Updated:", panel.FormatTimestamp(o.Updated))
	}

	fmt.Fprintf(w, "%s %d\n", heading("Items:"), len(snap.Items))
	for _, item := range snap.Items {
		fmt.Fprintf(w, "  - %s (%s) updated %s\n", item.Title, item.SlugPath, panel.FormatTimestamp(item.Updated))
	}
}

func printField(w io.Writer, heading func(a ...any) string, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%s %s\n", heading(label), value)
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "output directory (default is outputDir from config)")
	analyzeCmd.Flags().BoolVar(&analyzeSummary, "summary", false, "print a text summary instead of writing files")
	rootCmd.AddCommand(analyzeCmd)
}
