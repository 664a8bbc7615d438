// Command pxnetdump inspects and validates PXNT files from the command
// line, grounded on the corpus's cobra-based dumper CLIs.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pixnet/pixnet/page"
	"github.com/pixnet/pixnet/pxnt"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "pxnetdump",
		Short: "Inspect and validate PXNT container files",
		Long:  "pxnetdump reads .pxnt files and prints their structure, or verifies them without printing.",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("pxnetdump 1.0.0")
		},
	}
}

type summary struct {
	Width       uint16            `json:"width"`
	Height      uint16            `json:"height"`
	Format      string            `json:"format"`
	PixelBytes  int               `json:"pixel_bytes"`
	Categories  int               `json:"category_count"`
	Title       string            `json:"title,omitempty"`
	Author      string            `json:"author,omitempty"`
	HasAnim     bool              `json:"has_animation"`
	HasAudio    bool              `json:"has_audio"`
	HasExtended bool              `json:"has_extended_metadata"`
	Keywords    []string          `json:"keywords,omitempty"`
}

func summarize(p *page.Page) summary {
	return summary{
		Width:       p.Width,
		Height:      p.Height,
		Format:      p.Format.String(),
		PixelBytes:  len(p.Pixels),
		Categories:  len(p.Categories),
		Title:       p.Metadata.Title,
		Author:      p.Metadata.Author,
		HasAnim:     len(p.Animation) > 0,
		HasAudio:    len(p.Audio) > 0,
		HasExtended: len(p.ExtendedMetadata) > 0,
		Keywords:    p.Metadata.Keywords,
	}
}

func newDumpCmd() *cobra.Command {
	var showCategories bool

	cmd := &cobra.Command{
		Use:   "dump <file.pxnt>",
		Short: "Dump a PXNT file's structure as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			p, err := pxnt.NewReader().Read(data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			out, err := json.MarshalIndent(summarize(p), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))

			if showCategories {
				for id, def := range p.Categories {
					fmt.Printf("  category %d: name=%q behavior=%s priority=%d\n", id, def.Name, def.BehaviorID, def.Priority)
				}
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&showCategories, "categories", false, "also list category definitions")

	return cmd
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <file.pxnt> [more files...]",
		Short: "Verify one or more PXNT files decode and validate cleanly",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Printf("%s: FAIL (%v)\n", path, err)
					failed++

					continue
				}

				if _, err := pxnt.NewReader().Read(data); err != nil {
					fmt.Printf("%s: FAIL (%v)\n", path, err)
					failed++

					continue
				}

				fmt.Printf("%s: OK\n", path)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed verification", failed, len(args))
			}

			return nil
		},
	}

	return cmd
}
