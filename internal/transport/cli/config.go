package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/app"
)

func newConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the configuration after files, .env and environment are applied",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := env.App().Config
			return env.printer().print(cfg, func(tw *tabwriter.Writer) {
				b, err := yaml.Marshal(cfg)
				if err != nil {
					fmt.Fprintf(tw, "error: %v\n", err)
					return
				}
				_, _ = tw.Write(b)
			})
		},
	})
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the client version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoBoot: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
			return nil
		},
	}
}
