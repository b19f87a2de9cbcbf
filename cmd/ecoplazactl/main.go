// Command ecoplazactl tareas operativas fuera del servidor HTTP: limpieza de
// grabaciones, importaciones masivas desde CSV y utilidades de cuentas.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/ecoplaza/ecoplaza-api/internal/bootstrap"
	"github.com/ecoplaza/ecoplaza-api/internal/infrastructure/postgres"
	"github.com/ecoplaza/ecoplaza-api/pkg/config"
	"github.com/ecoplaza/ecoplaza-api/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "ecoplazactl",
	Short:         "Herramientas operativas de EcoPlaza",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, File: cfg.Log.File})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Close()
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd, importLocalesCmd, importLeadsCmd, detectRepulseCmd, hashPasswordCmd)
}

// conectar abre el pool y arma los casos de uso sin métricas.
func conectar(ctx context.Context) (*bootstrap.Container, *pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	c, err := bootstrap.Build(ctx, cfg, pool, nil)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return c, pool, nil
}

func imprimirJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
