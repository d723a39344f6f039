// @title Animal Shelter API
// @version 1.0
// @description DAO de la colección de animales y API del dashboard de outcomes.
// @BasePath /
package main

import (
	"fmt"
	"os"

	"animal-shelter/internal/platform/config"
	"animal-shelter/internal/platform/logger"

	"github.com/spf13/cobra"
)

var (
	// Flags globales
	configPath string
	logLevel   string

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shelter",
	Short: "Dashboard y DAO de outcomes del Austin Animal Center",
	Long: `shelter sirve el dashboard de outcomes (tabla, gráfico de razas y mapa) y la API
CRUD sobre la colección de animales. El backend se elige con storage: mongo, postgres o memory.

La configuración sale de --config (YAML) y se pisa con variables de entorno
(PORT, STORAGE, MONGO_HOST, MONGO_USER, MONGO_PASSWORD, DB_DSN, API_TOKEN, LOG_LEVEL, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Logging.Level = logLevel
		}
		cfg = loaded

		log = logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.Logging.Level),
			Format: logger.ParseFormat(cfg.Logging.Format),
			App:    cfg.Logging.App,
		})
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "archivo de configuración YAML (opcional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "pisa logging.level / LOG_LEVEL")

	rootCmd.AddCommand(serveCmd, importCmd, queryCmd, createCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
