package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/dashboard"
)

var (
	summaryChannel string
	summaryCountry string
	summaryDevice  string
	summaryPeriod  string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Exibe os cards e a comparação entre canais",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryChannel, "channel", domain.AllChannelsLabel, "canal selecionado")
	summaryCmd.Flags().StringVar(&summaryCountry, "country", string(domain.AllCountries), "país (apenas exibido)")
	summaryCmd.Flags().StringVar(&summaryDevice, "device", string(domain.AllDevices), "dispositivo (apenas exibido)")
	summaryCmd.Flags().StringVar(&summaryPeriod, "period", domain.Day7.Label(), "período do gráfico de tendência")
}

func runSummary(cmd *cobra.Command, _ []string) error {
	view, err := buildView(cmd.Context(), seed, domain.FilterInput{
		Channel: summaryChannel,
		Country: summaryCountry,
		Device:  summaryDevice,
		Period:  summaryPeriod,
	})
	if err != nil {
		return fmt.Errorf("roasctl: %w", err)
	}

	return renderSummary(cmd, view)
}

func renderSummary(cmd *cobra.Command, view *dashboard.View) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "%s  %s · %s · %s · %s\n\n",
		colorBold.Sprint("Cohort ROAS"),
		view.Filters.Channel, view.Filters.Country, view.Filters.Device, view.Filters.Period)

	cards := newTable("", "Channel", "Day 7 ROAS", "Trend")
	for _, card := range view.StatCards {
		marker := ""
		if card.Selected {
			marker = "*"
		}
		up := card.TrendUp
		cards.add(
			cell{text: marker},
			cell{text: string(card.Channel)},
			cell{text: card.Value},
			cell{text: card.Trend, color: func(s string) string { return colorTrend(s, up) }},
		)
	}
	if err := cards.render(w); err != nil {
		return err
	}

	fmt.Fprintln(w)

	comparison := newTable("Channel", "Day 7", "Day 30", "Day 90", "Day 180", "D7 Trend")
	for _, row := range view.ComparisonTable {
		up := row.TrendUp
		comparison.add(
			cell{text: string(row.Channel)},
			cell{text: row.D7},
			cell{text: row.D30},
			cell{text: row.D90},
			cell{text: row.D180},
			cell{text: row.Trend, color: func(s string) string { return colorTrend(s, up) }},
		)
	}
	if err := comparison.render(w); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", colorBold.Sprint(view.LatestWeekChart.Title))
	for _, bar := range view.LatestWeekChart.Bars {
		fmt.Fprintf(w, "  %-10s %s\n", bar.Label, bar.Display)
	}

	return nil
}
