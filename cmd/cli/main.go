package main

import (
	"fmt"
	"os"

	"github.com/crucial707/staybook/cmd/cli/auth"
	"github.com/crucial707/staybook/cmd/cli/bookings"
	"github.com/crucial707/staybook/cmd/cli/listings"
	"github.com/crucial707/staybook/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	listings.InitListings(rootCmd)
	bookings.InitBookings(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
