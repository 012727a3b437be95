package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func shippingCmd() *cobra.Command {
	shippingRoot := &cobra.Command{
		Use:   "shipping",
		Short: "Shipping services and cost calculation",
	}

	shippingRoot.AddCommand(
		shippingServicesCmd(),
		shippingQuoteCmd(),
	)

	return shippingRoot
}

func shippingServicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List carrier services",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			services, err := c.ListShippingServices(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(services)
			}
			if len(services) == 0 {
				fmt.Println("No shipping services configured.")
				return nil
			}
			return printServiceTable(services)
		},
	}
}

func shippingQuoteCmd() *cobra.Command {
	var (
		serviceID   int
		countryCode string
		weightGrams int
	)

	c := &cobra.Command{
		Use:   "quote",
		Short: "Calculate shipping cost",
		Example: `  clctl shipping quote --service 1 --country US --weight 700
  clctl shipping quote --service 1 --country DE --weight 1500 --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			quote, err := c.CalculateShipping(
				context.Background(), serviceID, countryCode, weightGrams,
			)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(quote)
			}
			return printQuoteDetail(quote)
		},
	}

	c.Flags().IntVar(&serviceID, "service", 0, "carrier service ID")
	c.Flags().StringVar(&countryCode, "country", "", "destination country code")
	c.Flags().IntVar(&weightGrams, "weight", 0, "parcel weight in grams")
	cobra.CheckErr(c.MarkFlagRequired("service"))
	cobra.CheckErr(c.MarkFlagRequired("country"))
	cobra.CheckErr(c.MarkFlagRequired("weight"))
	return c
}
