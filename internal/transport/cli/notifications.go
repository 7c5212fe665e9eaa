package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/notification"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/unread"
	"github.com/Eiad-Soufan/bm-requests-frontend/pkg/textdir"
)

type notificationView struct {
	ID      int64  `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Badge   string `json:"badge" yaml:"badge"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Dir     string `json:"dir" yaml:"dir"`
	Unread  bool   `json:"unread" yaml:"unread"`
}

func toNotificationView(v notification.View, full bool) notificationView {
	out := notificationView{
		ID:     v.ID,
		Title:  v.Title,
		Badge:  v.Badge,
		Date:   v.Date,
		Dir:    v.Dir.String(),
		Unread: v.Unread,
	}
	if full {
		out.Message = v.Message
	}
	return out
}

func newNotificationsCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notification", "inbox"},
		Short:   "Read your notifications",
	}
	cmd.AddCommand(newNotificationsListCmd(env), newNotificationsOpenCmd(env))
	return cmd
}

func newNotificationsListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notifications in server order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := env.App()
			if err := a.Notifications.Refresh(cmd.Context()); err != nil {
				return err
			}
			lang := env.language()
			items := a.Notifications.Items()
			views := make([]notificationView, 0, len(items))
			for _, n := range items {
				views = append(views, toNotificationView(notification.Render(n, lang), false))
			}
			badge := unread.Display(a.Notifications.UnreadCount(), a.Config.UI.BadgeCeiling)

			return env.printer().print(views, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "\tID\tPRIORITY\tTITLE\tDATE")
				for _, v := range views {
					mark := ""
					if v.Unread {
						mark = "•"
					}
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", mark, v.ID, v.Badge, v.Title, v.Date)
				}
				if badge != "" {
					fmt.Fprintf(tw, "\n%s unread\n", badge)
				}
			})
		},
	}
}

func newNotificationsOpenCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Show a notification and mark it read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a := env.App()
			if err := a.Notifications.Refresh(cmd.Context()); err != nil {
				return err
			}
			n, err := a.Notifications.Open(cmd.Context(), id)
			if err != nil {
				return err
			}
			r := notification.Render(n, env.language())
			v := toNotificationView(r, true)

			return env.printer().print(v, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "%s\t[%s]\n", v.Title, v.Badge)
				if v.Date != "" {
					fmt.Fprintln(tw, v.Date)
				}
				fmt.Fprintln(tw)
				fmt.Fprintln(tw, textdir.Isolate(r.Message, r.Dir))
			})
		},
	}
}
