package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/cohort-roas-api/infrastructure/database/postgres"
	"github.com/vfg2006/cohort-roas-api/infrastructure/repository"
	"github.com/vfg2006/cohort-roas-api/internal/config"
	"github.com/vfg2006/cohort-roas-api/pkg/utils"
)

var pruneDays int

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Administra o arquivo de snapshots no PostgreSQL",
	Long: `Usa as mesmas variáveis DATABASE_* da API.
O arquivamento só acontece com SNAPSHOT_ARCHIVE_ENABLED=true.`,
}

var snapshotsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria a tabela de snapshots se necessário",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSnapshots(cmd.Context(), func(repo repository.SnapshotRepository) error {
			if err := repo.EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), colorGreen.Sprint("tabela de snapshots pronta"))
			return nil
		})
	},
}

var snapshotsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove snapshots mais antigos que --days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if pruneDays <= 0 {
			return fmt.Errorf("roasctl: --days deve ser positivo")
		}
		return withSnapshots(cmd.Context(), func(repo repository.SnapshotRepository) error {
			deleted, err := repo.DeleteOlderThan(cmd.Context(), pruneDays)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d linhas removidas\n", deleted)
			return nil
		})
	},
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Exibe o snapshot arquivado de uma sessão",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSnapshots(cmd.Context(), func(repo repository.SnapshotRepository) error {
			entries, err := repo.GetBySession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("roasctl: nenhum snapshot para a sessão %s", args[0])
			}

			out, err := utils.PrettyJson(entries)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

func init() {
	snapshotsPruneCmd.Flags().IntVar(&pruneDays, "days", 30, "idade mínima em dias das linhas removidas")

	snapshotsCmd.AddCommand(snapshotsMigrateCmd)
	snapshotsCmd.AddCommand(snapshotsPruneCmd)
	snapshotsCmd.AddCommand(snapshotsShowCmd)
}

func withSnapshots(ctx context.Context, fn func(repository.SnapshotRepository) error) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("roasctl: configuração inválida: %w", err)
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("roasctl: erro ao conectar ao PostgreSQL: %w", err)
	}
	defer conn.Close()

	if err := fn(repository.NewSnapshotRepository(conn)); err != nil {
		return fmt.Errorf("roasctl: %w", err)
	}
	return nil
}
