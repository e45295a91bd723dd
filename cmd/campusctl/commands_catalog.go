package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"uwevents/internal/app"
	"uwevents/internal/catalog"
	"uwevents/internal/gate"
	"uwevents/internal/moderation"
	"uwevents/internal/newsletter"
)

func (c *cli) eventsCommand() *cobra.Command {
	var filter catalog.EventFilter
	events := &cobra.Command{
		Use:   "events",
		Short: "List published events",
		Args:  cobra.NoArgs,
		RunE: c.public(func(cmd *cobra.Command, a *app.App, _ []string) error {
			list, err := a.Catalog.Events(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return c.emit(cmd.OutOrStdout(), list, func(w io.Writer) error {
				rows := make([][]string, 0, len(list))
				for _, e := range list {
					rows = append(rows, []string{strconv.FormatInt(e.ID, 10), e.Name, orDash(e.Date), orDash(e.StartTime), orDash(e.Location), orDash(e.ClubHandle)})
				}
				return renderTable(w, []string{"ID", "NAME", "DATE", "START", "LOCATION", "CLUB"}, rows)
			})
		}),
	}
	events.Flags().StringVar(&filter.Search, "search", "", "free text search")
	events.Flags().StringVar(&filter.StartDate, "start-date", "", "earliest date (YYYY-MM-DD)")
	return events
}

func (c *cli) clubsCommand() *cobra.Command {
	var filter catalog.ClubFilter
	clubs := &cobra.Command{
		Use:   "clubs",
		Short: "List published clubs",
		Args:  cobra.NoArgs,
		RunE: c.public(func(cmd *cobra.Command, a *app.App, _ []string) error {
			list, err := a.Catalog.Clubs(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return c.emit(cmd.OutOrStdout(), list, func(w io.Writer) error {
				rows := make([][]string, 0, len(list))
				for _, cl := range list {
					rows = append(rows, []string{strconv.FormatInt(cl.ID, 10), cl.ClubName, orDash(strings.Join(cl.Categories, ", ")), orDash(deref(cl.ClubType))})
				}
				return renderTable(w, []string{"ID", "NAME", "CATEGORIES", "TYPE"}, rows)
			})
		}),
	}
	clubs.Flags().StringVar(&filter.Search, "search", "", "free text search")
	clubs.Flags().StringVar(&filter.Category, "category", catalog.AllCategories, "category filter")
	return clubs
}

func (c *cli) submissionsCommand() *cobra.Command {
	subs := &cobra.Command{
		Use:   "submissions",
		Short: "Your event and club submissions",
	}

	list := &cobra.Command{
		Use:   "list <events|clubs>",
		Short: "List your submissions and their review status",
		Args:  exactArgs(1, "events or clubs"),
		RunE: c.gated(gate.Default(), func(cmd *cobra.Command, a *app.App, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			if kind == moderation.KindClub {
				clubs, err := a.Catalog.MyClubSubmissions(cmd.Context())
				if err != nil {
					return err
				}
				return c.emit(cmd.OutOrStdout(), clubs, func(w io.Writer) error {
					return renderTable(w, clubHeaders, clubRows(clubs))
				})
			}
			events, err := a.Catalog.MyEventSubmissions(cmd.Context())
			if err != nil {
				return err
			}
			return c.emit(cmd.OutOrStdout(), events, func(w io.Writer) error {
				return renderTable(w, submittedEventHeaders, submittedEventRows(events))
			})
		}),
	}

	var ev catalog.EventSubmission
	var price, imagePath string
	event := &cobra.Command{
		Use:   "event",
		Short: "Submit an event for review",
		Args:  cobra.NoArgs,
		RunE: c.gated(gate.Default(), func(cmd *cobra.Command, a *app.App, _ []string) error {
			if price != "" {
				p, err := strconv.ParseFloat(price, 64)
				if err != nil {
					return usageError{msg: fmt.Sprintf("invalid --price %q", price)}
				}
				ev.Price = &p
			}
			var image catalog.Image
			if imagePath != "" {
				data, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				image = catalog.Image{Filename: filepath.Base(imagePath), Data: data}
			}
			res, err := a.Catalog.SubmitEvent(cmd.Context(), ev, image)
			if err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), res, fmt.Sprintf("event %d submitted (%s)", res.ID, res.Status))
		}),
	}
	f := event.Flags()
	f.StringVar(&ev.Name, "name", "", "event name")
	f.StringVar(&ev.Date, "date", "", "date (YYYY-MM-DD)")
	f.StringVar(&ev.StartTime, "start-time", "", "start time (HH:MM)")
	f.StringVar(&ev.EndTime, "end-time", "", "end time (HH:MM)")
	f.StringVar(&ev.Location, "location", "", "location")
	f.StringVar(&ev.Description, "description", "", "description")
	f.StringVar(&price, "price", "", "price, empty when free or unknown")
	f.StringVar(&ev.Food, "food", "", "food offered")
	f.StringVar(&ev.ClubHandle, "club-handle", "", "organizing club handle")
	f.StringVar(&ev.ClubType, "club-type", "", "WUSA, Athletics or Student Society")
	f.StringVar(&ev.URL, "url", "", "event link")
	f.BoolVar(&ev.Registration, "registration", false, "registration required")
	f.StringVar(&imagePath, "image", "", "poster image file")

	var club catalog.ClubSubmission
	clubCmd := &cobra.Command{
		Use:   "club",
		Short: "Submit a club for review",
		Args:  cobra.NoArgs,
		RunE: c.gated(gate.Default(), func(cmd *cobra.Command, a *app.App, _ []string) error {
			res, err := a.Catalog.SubmitClub(cmd.Context(), club)
			if err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), res, fmt.Sprintf("club %d submitted (%s)", res.ID, res.Status))
		}),
	}
	cf := clubCmd.Flags()
	cf.StringVar(&club.ClubName, "name", "", "club name")
	cf.StringVar(&club.Categories, "categories", "", "comma separated categories")
	cf.StringVar(&club.ClubPage, "page", "", "club page link")
	cf.StringVar(&club.IG, "ig", "", "Instagram handle")
	cf.StringVar(&club.Discord, "discord", "", "Discord invite")
	cf.StringVar(&club.ClubType, "club-type", "", "WUSA, Athletics or Student Society")

	subs.AddCommand(list, event, clubCmd)
	return subs
}

func (c *cli) newsletterCommand() *cobra.Command {
	nl := &cobra.Command{
		Use:   "newsletter",
		Short: "Mailing list subscription",
	}

	subscribe := &cobra.Command{
		Use:   "subscribe <email>",
		Short: "Subscribe an address",
		Args:  exactArgs(1, "an email address"),
		RunE: c.public(func(cmd *cobra.Command, a *app.App, args []string) error {
			res, err := a.Newsletter.Subscribe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), res, orDash(res.Message))
		}),
	}

	info := &cobra.Command{
		Use:   "info <token>",
		Short: "Show the subscription an unsubscribe token belongs to",
		Args:  exactArgs(1, "an unsubscribe token"),
		RunE: c.public(func(cmd *cobra.Command, a *app.App, args []string) error {
			res, err := a.Newsletter.UnsubscribeInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), res, fmt.Sprintf("%s unsubscribed: %s", res.Email, yesNo(res.AlreadyUnsubscribed)))
		}),
	}

	var req newsletter.UnsubscribeRequest
	unsubscribe := &cobra.Command{
		Use:   "unsubscribe <token>",
		Short: "Leave the mailing list",
		Args:  exactArgs(1, "an unsubscribe token"),
		RunE: c.public(func(cmd *cobra.Command, a *app.App, args []string) error {
			res, err := a.Newsletter.Unsubscribe(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), res, orDash(res.Message))
		}),
	}
	unsubscribe.Flags().StringVar(&req.Reason, "reason", "", "why you are leaving")
	unsubscribe.Flags().StringVar(&req.Feedback, "feedback", "", "optional feedback")

	nl.AddCommand(subscribe, info, unsubscribe)
	return nl
}
