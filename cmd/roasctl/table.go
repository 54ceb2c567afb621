package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

var (
	colorRed   = color.New(color.FgRed)
	colorGreen = color.New(color.FgGreen)
	colorBold  = color.New(color.Bold)
)

// colorTrend pinta a tendência; a indisponível fica sem cor
func colorTrend(trend string, up bool) string {
	switch {
	case trend == "" || strings.HasPrefix(trend, "—"):
		return trend
	case up:
		return colorGreen.Sprint(trend)
	default:
		return colorRed.Sprint(trend)
	}
}

type cell struct {
	text  string
	color func(string) string
}

// table alinha colunas pelo texto sem cor, aplicando a cor depois do padding
type table struct {
	headers []string
	rows    [][]cell
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) add(cells ...cell) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) error {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if n := utf8.RuneCountInString(c.text); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	parts := make([]string, len(t.headers))
	for i, h := range t.headers {
		parts[i] = colorBold.Sprint(pad(h, widths[i]))
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	for _, row := range t.rows {
		parts := make([]string, len(t.headers))
		for i := range t.headers {
			var c cell
			if i < len(row) {
				c = row[i]
			}
			display := c.text
			if c.color != nil {
				display = c.color(c.text)
			}
			parts[i] = display + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(c.text))
		}
		if _, err := fmt.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(parts, "  "), " ")); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}

	return nil
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}
