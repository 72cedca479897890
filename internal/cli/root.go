// Package cli builds the lingod command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lingod/internal/backend"
	"lingod/internal/config"
	"lingod/internal/host"
	"lingod/internal/service"
)

// Options carries the persistent flags.
type Options struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Backend    string
}

// newHost is swapped by tests.
var newHost = backend.New

// Execute runs the command tree with args.
func Execute(args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd(&Options{})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

// NewRootCmd constructs the command tree wired to opts.
func NewRootCmd(opts *Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "lingod",
		Short:         "Chat-style language detection, summarization and translation on on-device models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (.yaml, .toml or .json); default searches ./lingod.* and ~/.config/lingod/")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug|info|warn|error (defaults LINGOD_LOG_LEVEL or info)")
	root.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "Log format: console|json")
	root.PersistentFlags().StringVar(&opts.Backend, "backend", "", "Host backend: ollama|openai|mock")

	root.AddCommand(newServeCmd(opts), newProbeCmd(opts), newSubmitCmd(opts), newCompletionCmd(root))
	return root
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(cmd.OutOrStdout(), true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error {
		return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	}})
	return completionCmd
}

// loadConfig layers file, environment and flags, in that order.
func loadConfig(opts *Options) (config.Config, error) {
	var cfg config.Config
	path := opts.ConfigPath
	if path == "" {
		path = config.Find()
	}
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newService assembles the host and the service for cfg.
func newService(cfg config.Config, log zerolog.Logger) (*service.Service, error) {
	h, err := newHost(cfg, log)
	if err != nil {
		return nil, err
	}
	return service.New(service.Config{
		Host:       h,
		Preferred:  cfg.PreferredLocales(os.LookupEnv),
		Candidates: cfg.CandidateLanguages,
		Summarizer: host.SummarizerOptions{
			Type:   cfg.Summarizer.Type,
			Format: cfg.Summarizer.Format,
			Length: cfg.Summarizer.Length,
		},
		MaxQueueDepth: cfg.MaxQueueDepth,
		MaxWait:       cfg.MaxWait.Duration,
		InvokeTimeout: cfg.InvokeTimeout.Duration,
		Logger:        &log,
	}), nil
}
