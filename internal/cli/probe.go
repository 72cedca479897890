package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProbeCmd(opts *Options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "probe",
		Short:   "Report which host features are available and the translation pairs",
		Example: "  lingod probe\n  lingod probe --backend mock --json",
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

			st, langs := svc.Status(), svc.Languages()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"status": st, "languages": langs})
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FEATURE\tSTATUS\tRETRYABLE")
			for _, f := range st.Features {
				fmt.Fprintf(tw, "%s\t%s\t%t\n", f.Feature, f.Status, f.Retryable)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d translation pairs", len(langs.Pairs))
			if langs.Selection.Source != "" {
				fmt.Fprintf(out, " (default %s -> %s)", langs.Selection.Source, langs.Selection.Target)
			}
			fmt.Fprintln(out)
			for _, p := range langs.Pairs {
				fmt.Fprintf(out, "  %s -> %s  %s (%s -> %s)\n", p.Source, p.Target, p.Availability, p.SourceName, p.TargetName)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
