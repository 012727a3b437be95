package cmd

import (
	"context"

	"github.com/spf13/cobra"

	domain "github.com/ktnkk/crosslist/pkg/types"
)

func settingsCmd() *cobra.Command {
	settingsRoot := &cobra.Command{
		Use:   "settings",
		Short: "Manage marketplace credentials",
		Long: "Read and update the per-seller marketplace credentials used for\n" +
			"eBay Trading API calls and Yahoo Auction data retrieval.",
	}

	settingsRoot.AddCommand(
		settingsGetCmd(),
		settingsSetCmd(),
	)

	return settingsRoot
}

func settingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the stored credentials",
		Example: `  clctl settings get
  clctl settings get --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			s, err := c.GetSettings(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(s)
			}
			return printSettingDetail(s)
		},
	}
}

func settingsSetCmd() *cobra.Command {
	var (
		ebayClientID     string
		ebayClientSecret string
		ebayDevID        string
		ebayAuthToken    string
		yahooClientID    string
		yahooSecret      string
	)

	c := &cobra.Command{
		Use:   "set",
		Short: "Update credentials",
		Long:  "Updates only the credentials passed as flags; everything else keeps its stored value.",
		Example: `  clctl settings set --ebay-client-id ABC --ebay-client-secret XYZ
  clctl settings set --ebay-auth-token v1.2...`,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			patch := domain.SettingPatch{}
			set := func(flag string, dst **string, val string) {
				if cobraCmd.Flags().Changed(flag) {
					*dst = &val
				}
			}
			set("ebay-client-id", &patch.EbayClientID, ebayClientID)
			set("ebay-client-secret", &patch.EbayClientSecret, ebayClientSecret)
			set("ebay-dev-id", &patch.EbayDevID, ebayDevID)
			set("ebay-auth-token", &patch.EbayAuthToken, ebayAuthToken)
			set("yahoo-client-id", &patch.YahooClientID, yahooClientID)
			set("yahoo-client-secret", &patch.YahooClientSecret, yahooSecret)

			c := newClient()
			s, err := c.UpdateSettings(context.Background(), &patch)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(s)
			}
			cliLog.Info("settings updated")
			return printSettingDetail(s)
		},
	}

	c.Flags().StringVar(&ebayClientID, "ebay-client-id", "", "eBay application client ID")
	c.Flags().StringVar(&ebayClientSecret, "ebay-client-secret", "", "eBay application client secret")
	c.Flags().StringVar(&ebayDevID, "ebay-dev-id", "", "eBay developer ID")
	c.Flags().StringVar(&ebayAuthToken, "ebay-auth-token", "", "eBay OAuth refresh token")
	c.Flags().StringVar(&yahooClientID, "yahoo-client-id", "", "Yahoo application client ID")
	c.Flags().StringVar(&yahooSecret, "yahoo-client-secret", "", "Yahoo application client secret")
	return c
}
