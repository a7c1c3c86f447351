package cmd

import (
	"fmt"
	"os"

	"github.com/jmehdipour/custgen/internal/config"
	"github.com/jmehdipour/custgen/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	cfg     config.Config
	rootCmd = &cobra.Command{
		Use:   "custgen",
		Short: "Synthetic bank customer dataset generator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			// range checks run in generatorOptions, after --count/--seed/--start
			if err := c.ValidateBase(); err != nil {
				return err
			}
			logger.Init(c.Log.Level, c.Log.Format)
			cfg = c
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Log.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}
