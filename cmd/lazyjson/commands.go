package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyjson/internal/export"
	"github.com/rebeliceyang/lazyjson/internal/interaction"
	applog "github.com/rebeliceyang/lazyjson/internal/log"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/theme"
	"github.com/rebeliceyang/lazyjson/internal/tree"
)

// discardClipboard serves commands that never copy
type discardClipboard struct{}

func (discardClipboard) WriteAll(string) error { return nil }

var _ interaction.Clipboard = discardClipboard{}

func newRenderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Write the formatted document as an HTML page",
		Long: `Formats the input and writes a standalone HTML page holding the
collapsible tree, the breadcrumb bar and the theme stylesheet. Inputs that
are not a JSON object or array are rejected with a non-zero exit status.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd.Context())
			raw, src, err := readInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			page, res := e.formatter(discardClipboard{}).Format(cmd.Context(), raw)
			if !res.Formatted {
				return rejection(src, res)
			}

			var b strings.Builder
			if err := page.WriteHTML(&b); err != nil {
				return fmt.Errorf("failed to render %s: %w", src.Name, err)
			}
			applog.FromContext(cmd.Context()).Debug("rendered page", "source", src.Name, "bytes", b.Len())
			return writeOutput(cmd.OutOrStdout(), output, []byte(b.String()))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of standard output")
	return cmd
}

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the stored theme setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := envFrom(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), e.themes.Setting(cmd.Context()))
			return nil
		},
	}

	values := make([]string, len(theme.Settings))
	for i, s := range theme.Settings {
		values[i] = string(s)
	}
	set := &cobra.Command{
		Use:       "set <" + strings.Join(values, "|") + ">",
		Short:     "Store the theme setting",
		Args:      cobra.ExactArgs(1),
		ValidArgs: values,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd.Context())
			setting := theme.Setting(strings.ToLower(strings.TrimSpace(args[0])))
			if !setting.Valid() {
				return fmt.Errorf("unknown theme setting %q, expected one of %s", args[0], strings.Join(values, ", "))
			}
			if err := e.themes.SetSetting(cmd.Context(), setting); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), setting)
			return nil
		},
	}
	cmd.AddCommand(set)
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		pointer string
		format  string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Write the entry at a JSON Pointer as JSON, YAML or CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd.Context())
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			raw, src, err := readInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			page, res := e.formatter(discardClipboard{}).Format(cmd.Context(), raw)
			if !res.Formatted {
				return rejection(src, res)
			}

			node, err := lookup(page.Doc, pointer)
			if err != nil {
				return err
			}

			applog.FromContext(cmd.Context()).Debug("exporting entry", "path", pointer, "format", string(f))
			data, err := export.Subtree(node, f)
			if err != nil {
				return fmt.Errorf("failed to export %q: %w", pointer, err)
			}
			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}
	cmd.Flags().StringVarP(&pointer, "path", "p", "", "JSON Pointer of the entry to export (empty for the whole document)")
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "Output format: json, yaml or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of standard output")
	return cmd
}

// lookup finds the entry at pointer, loading placeholders along the way
func lookup(doc *tree.Document, pointer string) (*models.TreeNode, error) {
	for {
		if node := doc.Root.FindByID(pointer); node != nil {
			return node, nil
		}

		var deferred *models.TreeNode
		doc.Root.Walk(func(n *models.TreeNode) bool {
			if deferred != nil || !strings.HasPrefix(pointer, n.ID+"/") {
				return false
			}
			if n.Placeholder {
				deferred = n
				return false
			}
			return true
		})
		if deferred == nil {
			return nil, fmt.Errorf("no entry at %q", pointer)
		}
		if err := doc.LoadMore(deferred); err != nil {
			return nil, fmt.Errorf("failed to load %q: %w", deferred.ID, err)
		}
	}
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return export.ToFile(data, path)
}
