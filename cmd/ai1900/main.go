package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/snonux/ai1900/internal/batch"
	"codeberg.org/snonux/ai1900/internal/cli"
	"codeberg.org/snonux/ai1900/internal/config"
	"codeberg.org/snonux/ai1900/internal/models"
	"codeberg.org/snonux/ai1900/internal/processor"
	"codeberg.org/snonux/ai1900/internal/repl"
	"codeberg.org/snonux/ai1900/internal/server"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create commands
	rootCmd := cli.CreateRootCommand(flags)
	serveCmd := cli.CreateServeCommand(flags)
	rootCmd.AddCommand(serveCmd)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run functions
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}
	serveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger and the processor
func setup() (*config.Config, *zap.SugaredLogger, *processor.Processor, error) {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := cli.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	proc, err := processor.NewFromConfig(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, log, proc, nil
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Handle --list-models flag
	if flags.ListModels {
		cfg, err := cli.LoadConfig()
		if err != nil {
			return err
		}
		apiKey, baseURL := cli.GetOpenAIKey(), ""
		if cfg.Dialogue.Provider == "openai" {
			apiKey, baseURL = cfg.Dialogue.APIKey, cfg.Dialogue.BaseURL
		}
		lister := models.NewLister(apiKey, baseURL)
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	cfg, log, proc, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	switch {
	case flags.BatchFile != "":
		// Process batch file
		return batch.ProcessFile(ctx, flags.BatchFile, proc, os.Stdout)
	case len(args) > 0:
		// Answer a single message
		turn := proc.Process(ctx, args[0])
		fmt.Println(turn.Final)
		if turn.Degraded {
			fmt.Fprintf(os.Stderr, "Warning: reply not translated: %v\n", turn.Err)
		}
		return nil
	default:
		// No input provided - interactive chat by default
		session := repl.New(proc, os.Stdin, os.Stdout, repl.Options{
			HistoryLimit:    cfg.Chat.HistoryLimit,
			ClearCacheEvery: cfg.Chat.ClearCacheEvery,
			Prompt:          isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
			Log:             log,
		})
		return session.Run(ctx)
	}
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, proc, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	return server.New(proc, cfg.Server.Addr, log).ListenAndServe(ctx)
}
