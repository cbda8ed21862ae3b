package listings

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crucial707/staybook/cmd/cli/client"
	"github.com/crucial707/staybook/cmd/cli/output"
	"github.com/crucial707/staybook/internal/models"
)

// ==========================
// Init Listings
// ==========================
func InitListings(rootCmd *cobra.Command) {
	listingsCmd := &cobra.Command{
		Use:   "listings",
		Short: "Browse listings",
	}

	listingsCmd.AddCommand(
		listListingsCmd(),
		myListingsCmd(),
		showListingCmd(),
	)

	rootCmd.AddCommand(listingsCmd)
}

// ==========================
// LIST (anonymous)
// ==========================
func listListingsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printListings(cmd, client.New(""), "/listings", asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// MINE (requires login)
// ==========================
func myListingsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List your own listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			return printListings(cmd, c, "/userlistings", asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// SHOW
// ==========================
func showListingCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid listing id %q", args[0])
			}
			var l models.Listing
			raw, _, err := client.New("").Do(http.MethodGet, "/listings/"+strconv.Itoa(id), nil, &l)
			if err != nil {
				return err
			}
			if asJSON {
				output.PrintJSON(cmd.OutOrStdout(), raw)
				return nil
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"Field", "Value"}, [][]interface{}{
				{"ID", l.ID},
				{"Title", l.Title},
				{"Address", l.Address},
				{"Description", l.Description},
				{"Perks", strings.Join(l.Perks, ", ")},
				{"Photos", len(l.Photos)},
				{"Check-in", formatHour(l.CheckIn)},
				{"Check-out", formatHour(l.CheckOut)},
				{"Max guests", l.MaxGuests},
				{"Price", l.Price},
				{"Extra info", l.ExtraInfo},
			})
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func printListings(cmd *cobra.Command, c *client.Client, path string, asJSON bool) error {
	var listings []models.Listing
	raw, _, err := c.Do(http.MethodGet, path, nil, &listings)
	if err != nil {
		return err
	}
	if asJSON {
		output.PrintJSON(cmd.OutOrStdout(), raw)
		return nil
	}
	rows := make([][]interface{}, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, []interface{}{l.ID, l.Title, l.Address, l.MaxGuests, l.Price})
	}
	output.RenderList(cmd.OutOrStdout(), "listings", []string{"ID", "Title", "Address", "Guests", "Price"}, rows)
	return nil
}

func formatHour(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + ":00"
}
