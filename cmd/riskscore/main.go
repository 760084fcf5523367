package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Skufu/CareNote/internal/report"
	"github.com/Skufu/CareNote/internal/risk"
)

type options struct {
	file        string
	catalogPath string
	format      string
	chartPath   string
	language    string
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "riskscore [note...]",
		Short: "Score a clinical note against the condition catalog",
		Long: "Scores a free-text clinical note offline. The note is taken from the\n" +
			"arguments, --file, or stdin, in that order.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := readNote(args, opts.file, stdin)
			if err != nil {
				return err
			}
			return run(note, opts, stdout)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "read the note from a file")
	flags.StringVarP(&opts.catalogPath, "catalog", "c", "", "YAML catalog (default: built-in)")
	flags.StringVar(&opts.format, "format", "table", "output format: table or json")
	flags.StringVar(&opts.chartPath, "chart", "", "write an HTML bar chart to this path")
	flags.StringVar(&opts.language, "lang", "en", "chart language: en or ko")

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	return cmd
}

func readNote(args []string, file string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read note: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func run(note string, opts *options, out io.Writer) error {
	catalog := risk.DefaultCatalog()
	if opts.catalogPath != "" {
		var err error
		catalog, err = risk.LoadCatalog(opts.catalogPath)
		if err != nil {
			return err
		}
	}

	scores := risk.Score(note, catalog)

	switch opts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(scores); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	case "table":
		if scores.Empty() {
			fmt.Fprintln(out, "nothing detected")
			break
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CONDITION\tSCORE\tLEVEL")
		for _, e := range scores {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Condition, e.Score, e.Color())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	if opts.chartPath == "" || scores.Empty() {
		return nil
	}
	lang, err := report.ParseLanguage(opts.language)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := report.RenderChart(&buf, scores, lang); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return writeChart(opts.chartPath, buf.Bytes())
}

// writeChart renders into a temp file next to path and renames it into place,
// so a failed write never leaves a truncated chart behind.
func writeChart(path string, html []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".chart-*.html")
	if err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	_, err = tmp.Write(html)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
