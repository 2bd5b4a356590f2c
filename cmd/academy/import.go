package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trmn/academy/progress"
	"github.com/trmn/academy/transcript"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import completed courses from a transcript",
	Long: `Import completed courses from a transcript.

HTML transcripts are read from table rows and list items; text transcripts
hold one course code per line, optionally followed by a completion date.
Codes the catalog does not know are skipped unless --keep-unknown is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importFormat      string
	importKeepUnknown bool
	importDryRun      bool
)

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importFormat, "format", "", "Transcript format (html or text, default from extension)")
	importCmd.Flags().BoolVar(&importKeepUnknown, "keep-unknown", false, "Keep codes that are not in the catalog")
	importCmd.Flags().BoolVarP(&importDryRun, "dry-run", "n", false, "Show what would be imported without saving")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	format := transcript.FormatForPath(path)
	if importFormat != "" {
		parsed, err := transcript.ParseFormat(importFormat)
		if err != nil {
			return err
		}
		format = parsed
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	var known transcript.Filter
	if !importKeepUnknown {
		resolver := a.catalog.Resolver()
		known = func(code string) bool {
			for _, equivalent := range resolver.EquivalentCodes(code) {
				if a.catalog.Course(equivalent) != nil {
					return true
				}
			}
			return false
		}
	}

	entries, err := transcript.Parse(f, format, known)
	if err != nil {
		return err
	}
	a.log.Info("parsed transcript", "path", path, "format", format, "entries", len(entries))

	at := now().UTC()
	if importDryRun {
		p, err := a.loadProgress()
		if err != nil {
			return err
		}
		_, added := p.ImportCompletions(entries, at)
		fmt.Printf("Would import %d of %d %s.\n", added, len(entries), plural(len(entries), "course", "courses"))
		return nil
	}

	var added, unlocked int
	_, err = a.store.Update(func(p progress.Progress) (progress.Progress, error) {
		before := a.engine.Refresh(p)
		next, n := before.ImportCompletions(entries, at)
		update := a.engine.UpdateAvailability(next)
		added = n
		unlocked = len(update.Added)
		return next.WithAvailable(update.Available), nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d of %d %s.\n", added, len(entries), plural(len(entries), "course", "courses"))
	if unlocked > 0 {
		fmt.Printf("%d %s now available.\n", unlocked, plural(unlocked, "course is", "courses are"))
	}
	return nil
}
