package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/dashboard"
)

type sectionView struct {
	ID     string `json:"id" yaml:"id"`
	Label  string `json:"label" yaml:"label"`
	Active bool   `json:"active" yaml:"active"`
}

type formView struct {
	ID           string `json:"id" yaml:"id"`
	SerialNumber string `json:"serial_number" yaml:"serial_number"`
	Name         string `json:"name" yaml:"name"`
	Category     string `json:"category,omitempty" yaml:"category,omitempty"`
	File         string `json:"file,omitempty" yaml:"file,omitempty"`
	PreviewURL   string `json:"preview_url" yaml:"preview_url"`
}

type dashboardView struct {
	Role        string        `json:"role" yaml:"role"`
	NotifyEntry bool          `json:"notify_entry" yaml:"notify_entry"`
	Sections    []sectionView `json:"sections" yaml:"sections"`
	Forms       []formView    `json:"forms" yaml:"forms"`
}

func newDashboardCmd(env *Env) *cobra.Command {
	var (
		section string
		search  string
		field   string
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "List department sections and their forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := env.App()
			b, err := a.Dashboard.Load(cmd.Context())
			if err != nil {
				return err
			}
			if section == "" {
				section = b.DefaultSection()
			} else if _, ok := b.Section(section); !ok {
				return fmt.Errorf("section %q: %w", section, domain.ErrNotFound)
			}

			forms := b.FormsFor(section)
			if search != "" {
				if forms, err = dashboard.SearchForms(forms, dashboard.SearchField(field), search); err != nil {
					return err
				}
			}

			lang := env.language()
			v := dashboardView{Role: b.Role.String(), NotifyEntry: b.ShowNotifyEntry()}
			for _, s := range b.Sections {
				v.Sections = append(v.Sections, sectionView{ID: s.ID, Label: dashboard.SectionLabel(s, lang), Active: s.ID == section})
			}
			for _, f := range forms {
				v.Forms = append(v.Forms, formView{
					ID:           f.ID,
					SerialNumber: f.SerialNumber,
					Name:         dashboard.FormLabel(f, lang),
					Category:     f.Category,
					File:         f.File,
					PreviewURL:   a.Dashboard.PreviewURL(f.ID),
				})
			}

			return env.printer().print(v, func(tw *tabwriter.Writer) {
				fmt.Fprint(tw, "SECTIONS:")
				for _, s := range v.Sections {
					mark := " "
					if s.Active {
						mark = "*"
					}
					fmt.Fprintf(tw, "\t%s %s (%s)\n", mark, s.Label, s.ID)
				}
				if len(v.Sections) == 0 {
					fmt.Fprintln(tw, "\t-")
				}
				fmt.Fprintln(tw)
				fmt.Fprintln(tw, "ID\tSERIAL\tNAME\tCATEGORY")
				for _, f := range v.Forms {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.SerialNumber, f.Name, f.Category)
				}
				if v.NotifyEntry {
					fmt.Fprintln(tw)
					fmt.Fprintln(tw, "Staff broadcasts: portal notify send --help")
				}
			})
		},
	}
	cmd.Flags().StringVar(&section, "section", "", "section id (default: first section)")
	cmd.Flags().StringVar(&search, "search", "", "filter forms by a search term")
	cmd.Flags().StringVar(&field, "field", string(dashboard.FieldNameAR), "search field: name_ar, name_en, serial_number, category, description")
	return cmd
}

func newFormsCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Form utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "preview <form-id>",
		Short: "Print the print-preview URL of a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			fmt.Fprintln(env.Out, env.App().Dashboard.PreviewURL(args[0]))
			return nil
		},
	})
	return cmd
}
