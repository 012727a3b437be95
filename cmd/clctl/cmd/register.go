package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ktnkk/crosslist/internal/ebay"
)

func registerCmd() *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "register",
		Short: "Register a product on eBay",
		Long: "Reads a listing payload from a JSON file (or stdin with -) and\n" +
			"registers it on eBay. JPY prices are converted to USD server-side.",
		Example: `  clctl register --file listing.json
  cat listing.json | clctl register --file -`,
		RunE: func(_ *cobra.Command, _ []string) error {
			var (
				data []byte
				err  error
			)
			if file == "-" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("reading listing payload: %w", err)
			}

			var req ebay.ListingRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("parsing listing payload: %w", err)
			}

			c := newClient()
			result, err := c.RegisterProduct(context.Background(), &req)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}

			cliLog.Info("product registered", "item_id", result.ItemID)
			return printFees(result.Fees)
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "listing payload JSON file (- for stdin)")
	cobra.CheckErr(c.MarkFlagRequired("file"))
	return c
}

func itemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item <item-id>",
		Short: "Fetch a registered item from eBay",
		Example: `  clctl item 110556283745
  clctl item 110556283745 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			item, err := c.GetItem(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(item)
			}
			return printItemDetail(item)
		},
	}
}
