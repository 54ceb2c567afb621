package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
)

var heatmapPeriod string

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Exibe a matriz das cohorts mais recentes",
	Args:  cobra.NoArgs,
	RunE:  runHeatmap,
}

func init() {
	heatmapCmd.Flags().StringVar(&heatmapPeriod, "period", domain.Day7.Label(), "horizonte exibido na matriz")
}

// intensityColor aproxima a escala de intensidade da página
func intensityColor(intensity float64) *color.Color {
	switch {
	case intensity >= 0.6:
		return color.New(color.FgMagenta, color.Bold)
	case intensity >= 0.3:
		return color.New(color.FgMagenta)
	default:
		return color.New(color.Faint)
	}
}

func runHeatmap(cmd *cobra.Command, _ []string) error {
	view, err := buildView(cmd.Context(), seed, domain.FilterInput{Period: heatmapPeriod})
	if err != nil {
		return fmt.Errorf("roasctl: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n\n", colorBold.Sprint(view.Heatmap.Title))

	headers := []string{"Cohort", "Date"}
	for _, channel := range view.Heatmap.Channels {
		headers = append(headers, channel.ShortLabel())
	}

	t := newTable(headers...)
	for _, row := range view.Heatmap.Rows {
		cells := []cell{{text: row.Week}, {text: row.Date}}
		for _, c := range row.Cells {
			painter := intensityColor(c.Intensity)
			cells = append(cells, cell{text: c.Display, color: func(s string) string { return painter.Sprint(s) }})
		}
		t.add(cells...)
	}

	return t.render(w)
}
