package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lingod/pkg/types"
)

func newSubmitCmd(opts *Options) *cobra.Command {
	var (
		summarize   bool
		translateTo string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "submit <text>",
		Short: "Run one message through detection and, optionally, summarization and translation",
		Example: "  lingod submit 'Bonjour le monde' --translate-to en\n" +
			"  lingod submit --summarize \"$(cat article.txt)\"",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			log := NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			svc, err := newService(cfg, log)
			if err != nil {
				return err
			}
			defer svc.Close()
			svc.Start(cmd.Context())

			m, err := svc.Submit(strings.Join(args, " "))
			if err != nil {
				return err
			}
			svc.Wait()
			if summarize {
				if err := svc.RequestSummary(m.ID); err != nil {
					return fmt.Errorf("summarize: %w", err)
				}
				svc.Wait()
			}
			if translateTo != "" {
				if err := svc.RequestTranslation(m.ID, translateTo); err != nil {
					return fmt.Errorf("translate: %w", err)
				}
				svc.Wait()
			}
			if m, err = svc.Message(m.ID); err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			}
			printMessage(cmd.OutOrStdout(), m)
			return nil
		},
	}
	cmd.Flags().BoolVar(&summarize, "summarize", false, "Summarize the message")
	cmd.Flags().StringVar(&translateTo, "translate-to", "", "Translate the message to this language code")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the message as JSON")
	return cmd
}

func printMessage(w io.Writer, m types.Message) {
	fmt.Fprintf(w, "words: %d\n", m.WordCount)
	switch {
	case m.Language.Detected():
		fmt.Fprintf(w, "language: %s (%.0f%%)\n", m.Language.Code, m.Language.Confidence*100)
	default:
		fmt.Fprintf(w, "language: %s\n", types.LanguageUnknown)
	}
	fmt.Fprintf(w, "can summarize: %t\n", m.CanSummarize)
	if m.Summary != "" {
		fmt.Fprintf(w, "summary:\n%s\n", m.Summary)
	}
	if m.SummaryError {
		fmt.Fprintf(w, "summary error: %s\n", m.SummaryErrorMessage)
	}
	if m.Translation != nil {
		fmt.Fprintf(w, "translation (%s -> %s): %s\n", m.Translation.Source, m.Translation.Target, m.Translation.Text)
	}
	if m.TranslationError {
		fmt.Fprintf(w, "translation error: %s\n", m.TranslationErrorMessage)
	}
}
