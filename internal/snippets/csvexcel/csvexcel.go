// Package csvexcel is the CSV to Excel Converter snippet.
package csvexcel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"sniprun/internal/clipboard"
	"sniprun/internal/snippet"
)

// delimiterNames maps symbolic delimiter arguments to characters.
var delimiterNames = map[string]rune{
	"tab":       '\t',
	"comma":     ',',
	",":         ',',
	"semicolon": ';',
	";":         ';',
	"pipe":      '|',
	"|":         '|',
	"space":     ' ',
}

type Converter struct {
	clip clipboard.Clipboard
	out  io.Writer
}

func New(clip clipboard.Clipboard, out io.Writer) *Converter {
	return &Converter{clip: clip, out: out}
}

func (c *Converter) Title() string { return "CSV to Excel Converter" }

func (c *Converter) Description() string {
	return `Convert a CSV file to Excel format with custom delimiter.

Usage:
  <input> <output> [delimiter]

Input/Output Options:
  - filename.csv    : Read from/write to file
  - clipboard/clip  : Read from/write to clipboard

Delimiter (optional):
  - tab (default)
  - comma or ,
  - semicolon or ;
  - pipe or |
  - Any single character

Examples:
  data.csv output.xlsx          # Tab-delimited file to Excel
  data.csv output.xlsx comma    # Comma-delimited file to Excel
  clipboard output.xlsx         # Clipboard to Excel file
  data.csv clipboard tab        # File to clipboard
  clipboard clipboard comma     # Clipboard to clipboard (reformats)`
}

func (c *Converter) Run(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("expected 2-3 arguments: <input> <output> [delimiter]")
	}
	input, output := args[0], args[1]
	delimiterArg := "tab"
	if len(args) == 3 {
		delimiterArg = args[2]
	}

	delimiter, err := resolveDelimiter(delimiterArg)
	if err != nil {
		return err
	}

	records, err := c.read(input, delimiter)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "   Found %d rows and %d columns\n", len(records)-1, len(records[0]))

	return c.write(output, records)
}

func resolveDelimiter(arg string) (rune, error) {
	if d, ok := delimiterNames[strings.ToLower(arg)]; ok {
		return d, nil
	}
	runes := []rune(arg)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", arg)
	}
	return runes[0], nil
}

// read returns all records, first record being the header row. Ragged rows
// surface as a parse failure from the csv reader.
func (c *Converter) read(input string, delimiter rune) ([][]string, error) {
	var src io.Reader
	var name string
	if snippet.IsClipboard(input) {
		fmt.Fprintln(c.out, "📋 Reading from clipboard...")
		text, err := c.clip.Read()
		if err != nil {
			return nil, fmt.Errorf("read clipboard: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("clipboard is empty")
		}
		src = strings.NewReader(text)
		name = "clipboard"
	} else {
		fmt.Fprintf(c.out, "📖 Reading %s...\n", input)
		f, err := os.Open(input)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("file %q not found", input)
			}
			return nil, fmt.Errorf("open %s: %w", input, err)
		}
		defer f.Close()
		src = f
		name = input
	}

	r := csv.NewReader(src)
	r.Comma = delimiter
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV from %s (check if delimiter %q is correct): %w", name, string(delimiter), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no rows found in %s", name)
	}
	return records, nil
}

func (c *Converter) write(output string, records [][]string) error {
	if snippet.IsClipboard(output) {
		fmt.Fprintln(c.out, "💾 Writing to clipboard...")
		// The clipboard cannot hold a binary spreadsheet, so reformat as
		// tab-delimited text instead.
		var sb strings.Builder
		for _, record := range records {
			sb.WriteString(strings.Join(record, "\t"))
			sb.WriteByte('\n')
		}
		if err := c.clip.Write(sb.String()); err != nil {
			return fmt.Errorf("write clipboard: %w", err)
		}
		fmt.Fprintln(c.out, "✅ Success! Copied as tab-delimited CSV to clipboard")
		fmt.Fprintln(c.out, "   (Excel binary can't be copied to clipboard)")
		return nil
	}

	fmt.Fprintf(c.out, "💾 Writing to %s...\n", output)
	book := excelize.NewFile()
	defer book.Close()
	for i, record := range records {
		row := make([]interface{}, len(record))
		for j, field := range record {
			row[j] = field
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("address row %d: %w", i+1, err)
		}
		if err := book.SetSheetRow("Sheet1", cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := book.SaveAs(output); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	fmt.Fprintf(c.out, "✅ Success! Created %s\n", output)
	return nil
}
