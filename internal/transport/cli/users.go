package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/directory"
)

type userView struct {
	Key        string `json:"key,omitempty" yaml:"key,omitempty"`
	KeyKind    string `json:"key_kind" yaml:"key_kind"`
	Username   string `json:"username,omitempty" yaml:"username,omitempty"`
	Name       string `json:"name" yaml:"name"`
	Selectable bool   `json:"selectable" yaml:"selectable"`
}

type usersView struct {
	Source  string     `json:"source" yaml:"source"`
	HasMore bool       `json:"has_more" yaml:"has_more"`
	Users   []userView `json:"users" yaml:"users"`
}

func loadDirectory(ctx context.Context, dir *directory.Resolver, allPages bool) error {
	if allPages {
		return dir.LoadAll(ctx)
	}
	return dir.Load(ctx)
}

func newUsersCmd(env *Env) *cobra.Command {
	var (
		search   string
		allPages bool
	)
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Browse the broadcast directory (staff)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := env.App()
			if err := a.Auth.RequireAdmin(); err != nil {
				return err
			}
			dir := a.Directory
			if err := loadDirectory(cmd.Context(), dir, allPages); err != nil {
				return err
			}
			dir.SetQuery(search)

			v := usersView{Source: dir.Source(), HasMore: dir.HasMore()}
			for _, u := range dir.Filtered() {
				v.Users = append(v.Users, toUserView(u))
			}
			return env.printer().print(v, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "USERNAME\tNAME\tKEY\tSELECTABLE")
				for _, u := range v.Users {
					username := u.Username
					if username == "" {
						username = "-"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s:%s\t%s\n", username, u.Name, u.KeyKind, u.Key, yesNo(u.Selectable))
				}
				fmt.Fprintf(tw, "\n%d users from %s\n", len(v.Users), v.Source)
				if v.HasMore {
					fmt.Fprintln(tw, "More pages available: rerun with --all-pages")
				}
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filter by name or username")
	cmd.Flags().BoolVar(&allPages, "all-pages", false, "follow pagination to the last page")
	return cmd
}

func toUserView(u domain.DirectoryUser) userView {
	return userView{
		Key:        u.Key.String(),
		KeyKind:    u.Key.Kind.String(),
		Username:   u.Username,
		Name:       u.DisplayName,
		Selectable: u.Selectable(),
	}
}
