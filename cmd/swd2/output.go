package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/swd2tools/swd2/internal/translator"
)

const (
	bannerText    = "SWD2"
	bannerCaption = "SteamWorld Dig 2 translation tools"
)

// configureStyling turns pterm colors on or off for the whole process.
func configureStyling(useColor bool) {
	if useColor {
		pterm.EnableStyling()
		return
	}
	pterm.DisableStyling()
}

func printBanner(w io.Writer) error {
	banner, err := pterm.DefaultBigText.WithLetters(putils.LettersFromString(bannerText)).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n\n", banner, bannerCaption)
	return err
}

// printReport renders one table row per file and a totals line.
func printReport(w io.Writer, base string, report *translator.Report, useColor bool) error {
	data := pterm.TableData{{"File", "Target", "Status"}}
	for _, res := range report.Results {
		data = append(data, []string{relative(base, res.Source), relative(base, res.Target), res.Status.Badge(useColor)})
	}

	if len(report.Results) > 0 {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, table); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d files: %d succeeded, %d skipped, %d failed\n",
		len(report.Results),
		report.Count(translator.Success),
		report.Count(translator.Skip),
		report.Count(translator.Error))
	return err
}

func relative(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}
