package bookings

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crucial707/staybook/cmd/cli/client"
	"github.com/crucial707/staybook/cmd/cli/output"
	"github.com/crucial707/staybook/internal/models"
)

// ==========================
// Init Bookings
// ==========================
func InitBookings(rootCmd *cobra.Command) {
	bookingsCmd := &cobra.Command{
		Use:   "bookings",
		Short: "View your bookings",
	}

	bookingsCmd.AddCommand(
		listBookingsCmd(),
		showBookingCmd(),
	)

	rootCmd.AddCommand(bookingsCmd)
}

// ==========================
// LIST (requires login)
// ==========================
func listBookingsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var bookings []models.Booking
			raw, _, err := c.Do(http.MethodGet, "/booking", nil, &bookings)
			if err != nil {
				return err
			}
			if asJSON {
				output.PrintJSON(cmd.OutOrStdout(), raw)
				return nil
			}
			rows := make([][]interface{}, 0, len(bookings))
			for _, b := range bookings {
				rows = append(rows, row(b))
			}
			output.RenderList(cmd.OutOrStdout(), "bookings", headers, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// SHOW
// ==========================
func showBookingCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid booking id %q", args[0])
			}
			var b models.Booking
			raw, _, err := client.New("").Do(http.MethodGet, "/booking/"+strconv.Itoa(id), nil, &b)
			if err != nil {
				return err
			}
			if asJSON {
				output.PrintJSON(cmd.OutOrStdout(), raw)
				return nil
			}
			output.RenderTable(cmd.OutOrStdout(), headers, [][]interface{}{row(b)})
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

var headers = []string{"ID", "Listing", "Check-in", "Check-out", "Guests", "Name", "Price"}

func row(b models.Booking) []interface{} {
	listing := strconv.Itoa(b.ListingID)
	if b.Listing != nil && b.Listing.Title != "" {
		listing = b.Listing.Title
	}
	return []interface{}{b.ID, listing, b.CheckIn.String(), b.CheckOut.String(), b.Guests, b.Name, b.Price}
}
