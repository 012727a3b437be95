package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ktnkk/crosslist/internal/source"
)

func fetchCmd() *cobra.Command {
	var categoryID string

	c := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Request product data from a Yahoo Auction listing",
		Example: `  clctl fetch https://auctions.yahoo.co.jp/item/x123 --category-id 625`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			ack, err := c.SubmitProductData(context.Background(), &source.FetchRequest{
				Source:     source.YahooAuction,
				URL:        args[0],
				CategoryID: categoryID,
			})
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(ack)
			}
			cliLog.Info("fetch request accepted", "url", ack.URL, "category_id", ack.CategoryID)
			return nil
		},
	}

	c.Flags().StringVar(&categoryID, "category-id", "", "eBay category for the resulting listing")
	cobra.CheckErr(c.MarkFlagRequired("category-id"))
	return c
}
