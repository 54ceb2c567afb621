package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vfg2006/cohort-roas-api/pkg/log"
)

// Flags globais
var (
	seed     uint64
	noColor  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "roasctl",
	Short: "Inspeciona o dashboard de ROAS por cohort no terminal",
	Long: `roasctl gera uma série de cohorts semanais e exibe as mesmas projeções
do dashboard (cards, comparação entre canais e matriz de cohorts) sem subir a API.
Também administra a tabela de snapshots arquivados.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		_, _ = log.Configure(logLevel)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "semente do gerador (0 usa o relógio)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "desabilita cores na saída")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "nível de log")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(snapshotsCmd)
}
