package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"uwevents/internal/app"
	"uwevents/internal/catalog"
	"uwevents/internal/credential"
	"uwevents/internal/gate"
	"uwevents/internal/moderation"
	"uwevents/internal/promotion"
)

type credentialView struct {
	Present bool `json:"present"`
}

// tokenCommand manages one credential slot. pick selects the slot once the
// client graph is open.
func (c *cli) tokenCommand(short string, req gate.Requirement, pick func(*app.App) *credential.Domain) *cobra.Command {
	token := &cobra.Command{
		Use:   "token",
		Short: short,
	}
	var value string
	set := &cobra.Command{
		Use:   "set",
		Short: "Store the token (read from stdin when --value is not given)",
		Args:  cobra.NoArgs,
		RunE: c.gated(req, func(cmd *cobra.Command, a *app.App, _ []string) error {
			v, err := c.readSecret(cmd, value, "token")
			if err != nil {
				return err
			}
			if err := pick(a).Set(cmd.Context(), v); err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), credentialView{Present: true}, "token stored")
		}),
	}
	set.Flags().StringVar(&value, "value", "", "token value")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the token",
		Args:  cobra.NoArgs,
		RunE: c.gated(req, func(cmd *cobra.Command, a *app.App, _ []string) error {
			if err := pick(a).Clear(cmd.Context()); err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), credentialView{Present: false}, "token cleared")
		}),
	}
	token.AddCommand(set, clearCmd)
	return token
}

func adminSlot(a *app.App) *credential.Domain  { return a.Admin }
func memberSlot(a *app.App) *credential.Domain { return a.Member }

// adminCommand mirrors the admin page: the token can be entered and
// cleared without a session check, and admin logout never ends the session.
func (c *cli) adminCommand() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Admin credential",
	}
	status := &cobra.Command{
		Use:   "status",
		Short: "Report whether an admin token is stored",
		Args:  cobra.NoArgs,
		RunE: c.public(func(cmd *cobra.Command, a *app.App, _ []string) error {
			present := a.Admin.Present(cmd.Context())
			msg := "no admin token stored"
			if present {
				msg = "admin token stored"
			}
			return c.message(cmd.OutOrStdout(), credentialView{Present: present}, msg)
		}),
	}
	logout := &cobra.Command{
		Use:   "logout",
		Short: "Clear the admin token, keeping the session",
		Args:  cobra.NoArgs,
		RunE: c.public(func(cmd *cobra.Command, a *app.App, _ []string) error {
			if err := a.Admin.Clear(cmd.Context()); err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), credentialView{Present: false}, "admin token cleared")
		}),
	}
	admin.AddCommand(status, logout, c.tokenCommand("Admin bearer token", gate.Public(), adminSlot))
	return admin
}

func (c *cli) memberCommand() *cobra.Command {
	member := &cobra.Command{
		Use:   "member",
		Short: "Member credential used for moderation and club submissions",
	}
	member.AddCommand(c.tokenCommand("Member bearer token", gate.Default(), memberSlot))
	return member
}

type promotionFlags struct {
	priority int
	kind     string
	notes    string
	expires  string
}

func (f *promotionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.priority, "priority", 0, "display priority (unset when 0)")
	cmd.Flags().StringVar(&f.kind, "type", "", "promotion type")
	cmd.Flags().StringVar(&f.notes, "notes", "", "internal notes")
	cmd.Flags().StringVar(&f.expires, "expires", "", "expiry time (RFC 3339)")
}

func (f *promotionFlags) request() (promotion.Request, error) {
	req := promotion.Request{PromotionType: f.kind, Notes: f.notes}
	if f.priority != 0 {
		p := f.priority
		req.Priority = &p
	}
	if f.expires != "" {
		t, err := time.Parse(time.RFC3339, f.expires)
		if err != nil {
			return req, usageError{msg: fmt.Sprintf("invalid --expires %q", f.expires)}
		}
		req.ExpiresAt = &t
	}
	return req, nil
}

func (c *cli) promotionsCommand() *cobra.Command {
	promotions := &cobra.Command{
		Use:   "promotions",
		Short: "Manage promoted events (admin)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List promoted events",
		Args:  cobra.NoArgs,
		RunE: c.gated(gate.Admin(), func(cmd *cobra.Command, a *app.App, _ []string) error {
			events, err := a.Promotions.ListPromoted(cmd.Context())
			if err != nil {
				return err
			}
			return c.emit(cmd.OutOrStdout(), events, func(w io.Writer) error {
				rows := make([][]string, 0, len(events))
				for _, e := range events {
					priority, expires := "-", "-"
					if e.Promotion != nil {
						priority = strconv.Itoa(e.Promotion.Priority)
						if e.Promotion.ExpiresAt != nil {
							expires = e.Promotion.ExpiresAt.Format(time.RFC3339)
						}
					}
					rows = append(rows, []string{strconv.FormatInt(e.ID, 10), e.Name, orDash(e.ClubHandle), orDash(e.Date), priority, expires})
				}
				return renderTable(w, []string{"ID", "NAME", "CLUB", "DATE", "PRIORITY", "EXPIRES"}, rows)
			})
		}),
	}

	status := &cobra.Command{
		Use:   "status <event-id>",
		Short: "Show whether an event is promoted",
		Args:  exactArgs(1, "an event id"),
		RunE: c.gated(gate.Admin(), func(cmd *cobra.Command, a *app.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, err := a.Promotions.Status(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), st, fmt.Sprintf("event %d promoted: %s", id, yesNo(st.Promoted())))
		}),
	}

	var addFlags, updateFlags promotionFlags
	add := &cobra.Command{
		Use:   "add <event-id>",
		Short: "Promote an event",
		Args:  exactArgs(1, "an event id"),
		RunE:  c.gated(gate.Admin(), c.promoteRun(&addFlags, promoteCall)),
	}
	addFlags.register(add)

	update := &cobra.Command{
		Use:   "update <event-id>",
		Short: "Change an existing promotion",
		Args:  exactArgs(1, "an event id"),
		RunE:  c.gated(gate.Admin(), c.promoteRun(&updateFlags, updateCall)),
	}
	updateFlags.register(update)

	remove := &cobra.Command{
		Use:   "remove <event-id>",
		Short: "Unpromote an event, keeping its promotion record",
		Args:  exactArgs(1, "an event id"),
		RunE: c.gated(gate.Admin(), func(cmd *cobra.Command, a *app.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.Promotions.Unpromote(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), res, orDash(res.Message))
		}),
	}

	del := &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete an event's promotion",
		Args:  exactArgs(1, "an event id"),
		RunE: c.gated(gate.Admin(), func(cmd *cobra.Command, a *app.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.Promotions.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), map[string]int64{"deleted": id}, fmt.Sprintf("promotion for event %d deleted", id))
		}),
	}

	promotions.AddCommand(list, status, add, update, remove, del)
	return promotions
}

type promotionCall func(ctx context.Context, p *promotion.Client, id int64, req promotion.Request) (*promotion.Promotion, error)

func promoteCall(ctx context.Context, p *promotion.Client, id int64, req promotion.Request) (*promotion.Promotion, error) {
	return p.Promote(ctx, id, req)
}

func updateCall(ctx context.Context, p *promotion.Client, id int64, req promotion.Request) (*promotion.Promotion, error) {
	return p.Update(ctx, id, req)
}

func (c *cli) promoteRun(flags *promotionFlags, call promotionCall) runFunc {
	return func(cmd *cobra.Command, a *app.App, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		req, err := flags.request()
		if err != nil {
			return err
		}
		res, err := call(cmd.Context(), a.Promotions, id, req)
		if err != nil {
			return err
		}
		return c.message(cmd.OutOrStdout(), res, fmt.Sprintf("event %d promoted (priority %d)", id, res.Priority))
	}
}

func parseKind(raw string) (moderation.Kind, error) {
	switch strings.TrimSuffix(strings.ToLower(raw), "s") {
	case string(moderation.KindEvent):
		return moderation.KindEvent, nil
	case string(moderation.KindClub):
		return moderation.KindClub, nil
	default:
		return "", usageError{msg: fmt.Sprintf("unknown kind %q: use event or club", raw)}
	}
}

func (c *cli) moderationCommand() *cobra.Command {
	mod := &cobra.Command{
		Use:   "moderation",
		Short: "Review pending submissions (admin)",
	}

	pending := &cobra.Command{
		Use:   "pending <events|clubs>",
		Short: "List pending submissions",
		Args:  exactArgs(1, "events or clubs"),
		RunE: c.gated(gate.Admin(), func(cmd *cobra.Command, a *app.App, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			if kind == moderation.KindClub {
				clubs, err := a.Moderation.PendingClubs(cmd.Context())
				if err != nil {
					return err
				}
				return c.emit(cmd.OutOrStdout(), clubs, func(w io.Writer) error {
					return renderTable(w, clubHeaders, clubRows(clubs))
				})
			}
			events, err := a.Moderation.PendingEvents(cmd.Context())
			if err != nil {
				return err
			}
			return c.emit(cmd.OutOrStdout(), events, func(w io.Writer) error {
				return renderTable(w, submittedEventHeaders, submittedEventRows(events))
			})
		}),
	}

	approve := &cobra.Command{
		Use:   "approve <event|club> <id>",
		Short: "Approve a pending submission",
		Args:  exactArgs(2, "a kind and an id"),
		RunE:  c.gated(gate.Admin(), c.moderateRun(moderation.VerdictApproved, nil)),
	}

	var reason string
	reject := &cobra.Command{
		Use:   "reject <event|club> <id>",
		Short: "Reject a pending submission with a reason",
		Args:  exactArgs(2, "a kind and an id"),
		RunE:  c.gated(gate.Admin(), c.moderateRun(moderation.VerdictRejected, &reason)),
	}
	reject.Flags().StringVar(&reason, "reason", "", "rejection reason shown to the submitter")

	mod.AddCommand(pending, approve, reject)
	return mod
}

func (c *cli) moderateRun(verdict moderation.Verdict, reason *string) runFunc {
	return func(cmd *cobra.Command, a *app.App, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		d := moderation.Decision{ID: id, Kind: kind, Verdict: verdict}
		if reason != nil {
			d.RejectionReason = *reason
		}
		res, err := a.Moderation.Moderate(cmd.Context(), d)
		if err != nil {
			return err
		}
		return c.message(cmd.OutOrStdout(), res, fmt.Sprintf("%s %d %s", kind, id, verdict))
	}
}

var submittedEventHeaders = []string{"ID", "NAME", "DATE", "LOCATION", "STATUS", "REASON"}

func submittedEventRows(events []catalog.SubmittedEvent) [][]string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{strconv.FormatInt(e.ID, 10), e.Name, orDash(e.Date), orDash(e.Location), e.Status, orDash(deref(e.RejectionReason))})
	}
	return rows
}

var clubHeaders = []string{"ID", "NAME", "CATEGORIES", "STATUS", "REASON"}

func clubRows(clubs []catalog.SubmittedClub) [][]string {
	rows := make([][]string, 0, len(clubs))
	for _, cl := range clubs {
		rows = append(rows, []string{strconv.FormatInt(cl.ID, 10), cl.ClubName, orDash(cl.Categories), cl.Status, orDash(deref(cl.RejectionReason))})
	}
	return rows
}
