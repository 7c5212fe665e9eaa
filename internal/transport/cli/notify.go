package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/broadcast"
)

func newNotifyCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Staff broadcasts",
	}
	cmd.AddCommand(newNotifySendCmd(env))
	return cmd
}

func newNotifySendCmd(env *Env) *cobra.Command {
	var (
		title    string
		message  string
		priority string
		all      bool
		to       []string
		allPages bool
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Broadcast a notification to everyone or to selected users",
		Long: `Broadcast a notification. Without --to the notification goes to all
users. With --to only the named usernames receive it; every name must
exist in the directory and be addressable by username.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if priority != string(domain.PriorityNormal) && priority != string(domain.PriorityUrgent) {
				return domain.NewValidationError("priority", "must be normal or urgent")
			}
			a := env.App()
			if err := a.Auth.RequireAdmin(); err != nil {
				return err
			}

			draft := broadcast.Draft{Title: title, Message: message, Priority: domain.Priority(priority)}
			if err := draft.Validate(); err != nil {
				return err
			}

			dir := a.Directory
			dir.SetAudienceAll(true)
			if len(to) > 0 {
				if err := loadDirectory(cmd.Context(), dir, allPages); err != nil {
					return err
				}
				dir.SetAudienceAll(false)
				for _, name := range to {
					if err := dir.Select(name); err != nil {
						return err
					}
				}
			}

			a.Composer.SetDraft(draft)
			p, err := a.Composer.Submit(cmd.Context())
			if err != nil {
				return err
			}
			if p.ToAll {
				fmt.Fprintln(env.Out, "Notification sent to all users")
			} else {
				fmt.Fprintf(env.Out, "Notification sent to %d users\n", len(p.Usernames))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "notification title")
	cmd.Flags().StringVarP(&message, "message", "m", "", "notification text")
	cmd.Flags().StringVar(&priority, "priority", string(domain.PriorityNormal), "normal or urgent")
	cmd.Flags().BoolVar(&all, "all", false, "send to all users (default when --to is not given)")
	cmd.Flags().StringSliceVar(&to, "to", nil, "usernames to address, comma separated")
	cmd.Flags().BoolVar(&allPages, "all-pages", false, "load every directory page before selecting")
	cmd.MarkFlagsMutuallyExclusive("all", "to")
	return cmd
}
