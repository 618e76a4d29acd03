package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/svenska/internal/cli"
	"codeberg.org/snonux/svenska/internal/processor"
)

func main() {
	flags := cli.NewFlags()

	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	config := cli.LoadConfig()
	cli.SetupLogging(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := processor.NewProcessor(config, cmd.OutOrStdout())
	defer func() {
		if err := proc.Close(); err != nil {
			log.Warn("failed to close store", "err", err)
		}
	}()

	switch {
	case flags.Archive:
		return proc.Archive()
	case flags.ListModels:
		return proc.ListModels(ctx)
	case flags.Stats:
		return proc.PrintStats(ctx)
	case flags.BatchFile != "":
		return proc.ImportBatch(ctx, flags.BatchFile)
	case flags.ImportCSV != "":
		return proc.ImportCSV(ctx, flags.ImportCSV)
	case flags.ExportCSV != "":
		return proc.ExportCSV(ctx, flags.ExportCSV)
	case flags.AnkiFile != "":
		return proc.ExportAnki(ctx, flags.AnkiFile, flags.DeckName)
	}

	if err := proc.RunStudy(ctx, cmd.InOrStdin()); err != nil {
		return fmt.Errorf("study session failed: %w", err)
	}
	return nil
}
