package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stationone-hq/stationone-menu/internal/domain"
	"github.com/stationone-hq/stationone-menu/pkg/menuapi"
)

func reviewCmd(opts *options) *cobra.Command {
	var r domain.Review
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Submit a customer review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r.Name = strings.TrimSpace(r.Name)
			r.HowDidYouHear = strings.TrimSpace(r.HowDidYouHear)
			if err := r.Validate(); err != nil {
				return err
			}

			api, err := opts.client()
			if err != nil {
				return err
			}
			ack, err := api.SubmitReview(cmd.Context(), r)
			if err != nil {
				return &reviewError{message: menuapi.Message(err, menuapi.DefaultReviewFailure), err: err}
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), ack.Raw, ack)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Thank You! Your review has been submitted successfully.")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&r.Name, "name", "", "your name (required)")
	f.BoolVar(&r.FirstVisit, "first-visit", false, "this is your first visit")
	f.IntVar(&r.TasteRating, "taste", 0, fmt.Sprintf("taste rating 0-%d", domain.MaxRating))
	f.IntVar(&r.HygieneRating, "hygiene", 0, fmt.Sprintf("hygiene rating 0-%d", domain.MaxRating))
	f.IntVar(&r.OverallRating, "overall", 0, fmt.Sprintf("overall rating 0-%d", domain.MaxRating))
	f.BoolVar(&r.WouldComeBack, "would-come-back", false, "you would visit again")
	f.StringVar(&r.MobileNumber, "mobile", "", "mobile number")
	f.StringVar(&r.Email, "email", "", "email address")
	f.StringVar(&r.AdditionalComments, "comments", "", "additional comments")
	f.StringVar(&r.HowDidYouHear, "heard-from", "", "how you heard about us: "+strings.Join(domain.HeardFromOptions, ", "))
	return cmd
}
