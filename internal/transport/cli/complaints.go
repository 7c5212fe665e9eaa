package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/complaint"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/unread"
	"github.com/Eiad-Soufan/bm-requests-frontend/pkg/textdir"
)

type complaintView struct {
	ID        int64  `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	Sender    string `json:"sender,omitempty" yaml:"sender,omitempty"`
	Recipient string `json:"recipient,omitempty" yaml:"recipient,omitempty"`
	Responded bool   `json:"is_responded" yaml:"is_responded"`
	Response  string `json:"response,omitempty" yaml:"response,omitempty"`
	Unread    bool   `json:"unread" yaml:"unread"`
	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

func toComplaintView(role domain.Role, c domain.Complaint, full bool) complaintView {
	v := complaintView{
		ID:        c.ID,
		Title:     c.Title,
		Sender:    c.SenderUsername,
		Recipient: c.RecipientDisplay,
		Responded: c.IsResponded,
		Unread:    unread.ComplaintUnread(role, c),
		CreatedAt: stamp(c.CreatedAt),
	}
	if full {
		v.Message = c.Message
		if c.Response != nil {
			v.Response = *c.Response
		}
	} else {
		v.Response = complaint.Preview(c.Response)
	}
	return v
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", fmt.Sprintf("%q is not a positive number", s))
	}
	return id, nil
}

func newComplaintsCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "complaints",
		Aliases: []string{"complaint"},
		Short:   "List, read, answer and file complaints",
	}
	cmd.AddCommand(
		newComplaintsListCmd(env),
		newComplaintsShowCmd(env),
		newComplaintsReplyCmd(env),
		newComplaintsSubmitCmd(env),
	)
	return cmd
}

func newComplaintsListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the complaints of your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := env.App()
			role := a.Session.Current().Role
			if !role.IsValid() {
				return domain.ErrNoSession
			}
			if err := a.Complaints.Refresh(cmd.Context()); err != nil {
				return err
			}

			items := a.Complaints.Items()
			views := make([]complaintView, 0, len(items))
			for _, c := range items {
				views = append(views, toComplaintView(role, c, false))
			}
			badge := unread.Display(a.Complaints.UnreadCount(), a.Config.UI.BadgeCeiling)

			return env.printer().print(views, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "\tID\tTITLE\tFROM\tTO\tANSWERED\tCREATED\tRESPONSE")
				for i, v := range views {
					mark := ""
					if v.Unread {
						mark = "•"
					}
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
						mark, v.ID, v.Title, v.Sender, v.Recipient, yesNo(v.Responded), ago(items[i].CreatedAt), v.Response)
				}
				if badge != "" {
					fmt.Fprintf(tw, "\n%s unread\n", badge)
				}
			})
		},
	}
}

func newComplaintsShowCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a complaint and mark it seen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a := env.App()
			if err := a.Complaints.Refresh(cmd.Context()); err != nil {
				return err
			}
			c, err := a.Complaints.Open(cmd.Context(), id)
			if err != nil {
				return err
			}
			v := toComplaintView(a.Session.Current().Role, c, true)
			dir := textdir.ForLanguage(env.language())

			return env.printer().print(v, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "ID:\t%d\n", v.ID)
				fmt.Fprintf(tw, "TITLE:\t%s\n", textdir.Isolate(v.Title, textdir.OfText(v.Title, dir)))
				fmt.Fprintf(tw, "FROM:\t%s\n", v.Sender)
				fmt.Fprintf(tw, "TO:\t%s\n", v.Recipient)
				fmt.Fprintf(tw, "CREATED:\t%s\n", ago(c.CreatedAt))
				fmt.Fprintln(tw)
				fmt.Fprintln(tw, textdir.Isolate(v.Message, textdir.OfText(v.Message, dir)))
				if v.Responded {
					fmt.Fprintln(tw)
					fmt.Fprintln(tw, "RESPONSE:")
					fmt.Fprintln(tw, textdir.Isolate(v.Response, textdir.OfText(v.Response, dir)))
				}
			})
		},
	}
}

func newComplaintsReplyCmd(env *Env) *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "reply <id>",
		Short: "Answer a complaint (manager and hr)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a := env.App()
			if err := a.Complaints.Refresh(cmd.Context()); err != nil {
				return err
			}
			if err := a.Complaints.Reply(cmd.Context(), complaint.ReplyInput{ComplaintID: id, Response: message}); err != nil {
				return err
			}
			fmt.Fprintf(env.Out, "Reply sent to complaint %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "response text")
	return cmd
}

func newComplaintsSubmitCmd(env *Env) *cobra.Command {
	var (
		title   string
		message string
		to      string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "File a new complaint (employees)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := complaint.SubmitInput{Title: title, Message: message, RecipientType: domain.RecipientType(to)}
			if err := env.App().Complaints.Submit(cmd.Context(), in); err != nil {
				return err
			}
			fmt.Fprintln(env.Out, "Complaint submitted")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "complaint title")
	cmd.Flags().StringVarP(&message, "message", "m", "", "complaint text")
	cmd.Flags().StringVar(&to, "to", string(domain.RecipientHR), "recipient: hr or manager")
	return cmd
}
