package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

func renderTable(out io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func renderJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit prints v as JSON when --json is set, otherwise calls text.
func (c *cli) emit(out io.Writer, v any, text func(io.Writer) error) error {
	if c.jsonOutput {
		return renderJSON(out, v)
	}
	return text(out)
}

func (c *cli) message(out io.Writer, v any, msg string) error {
	return c.emit(out, v, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, msg)
		return err
	})
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError{msg: fmt.Sprintf("invalid id %q", raw)}
	}
	return id, nil
}
