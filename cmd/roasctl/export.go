package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
	"github.com/vfg2006/cohort-roas-api/pkg/utils"
)

const (
	exportView   = "view"
	exportSeries = "series"
)

var (
	exportFormat  string
	exportContent string
	exportPeriod  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporta a série gerada ou o modelo do dashboard",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "formato de saída (json)")
	exportCmd.Flags().StringVar(&exportContent, "content", exportView, "conteúdo exportado (view ou series)")
	exportCmd.Flags().StringVar(&exportPeriod, "period", domain.Day7.Label(), "período do dashboard exportado")
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportFormat != "json" {
		return fmt.Errorf("roasctl: formato não suportado %q (suportado: json)", exportFormat)
	}

	var payload any
	switch exportContent {
	case exportView:
		view, err := buildView(cmd.Context(), seed, domain.FilterInput{Period: exportPeriod})
		if err != nil {
			return fmt.Errorf("roasctl: %w", err)
		}
		payload = view
	case exportSeries:
		session, err := localSession(cmd.Context(), seed)
		if err != nil {
			return fmt.Errorf("roasctl: %w", err)
		}
		payload = session.Series
	default:
		return fmt.Errorf("roasctl: conteúdo desconhecido %q (use view ou series)", exportContent)
	}

	out, err := utils.PrettyJson(payload)
	if err != nil {
		return fmt.Errorf("roasctl: erro ao serializar: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
