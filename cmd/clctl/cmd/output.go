package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ktnkk/crosslist/internal/ebay"
	domain "github.com/ktnkk/crosslist/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printUserDetail(u *domain.User) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", u.ID)
	tw.writef("Email:\t%s\n", u.Email)
	tw.writef("Name:\t%s\n", u.Name)
	tw.writef("Created:\t%s\n", u.CreatedAt.Format("2006-01-02 15:04:05"))
	return tw.finish()
}

func printSettingDetail(s *domain.Setting) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("eBay Client ID:\t%s\n", orUnset(s.EbayClientID))
	tw.writef("eBay Client Secret:\t%s\n", masked(s.EbayClientSecret))
	tw.writef("eBay Dev ID:\t%s\n", orUnset(s.EbayDevID))
	tw.writef("Yahoo Client ID:\t%s\n", orUnset(s.YahooClientID))
	tw.writef("Yahoo Client Secret:\t%s\n", masked(s.YahooClientSecret))
	tw.writef("Updated:\t%s\n", s.UpdatedAt.Format("2006-01-02 15:04:05"))
	return tw.finish()
}

func printItemDetail(item *ebay.ItemSummary) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Item ID:\t%s\n", item.ItemID)
	tw.writef("Title:\t%s\n", item.Title)
	tw.writef("Status:\t%s\n", item.ListingStatus)
	tw.writef("Price:\t%s %s\n", item.CurrentPrice.Value, item.CurrentPrice.CurrencyID)
	tw.writef("URL:\t%s\n", item.ViewItemURL)
	return tw.finish()
}

func printFees(fees ebay.FeeList) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("FEE\tAMOUNT\tCURRENCY\n")
	for _, fee := range fees.Fee {
		tw.writef("%s\t%s\t%s\n", fee.Name, fee.Amount.Value, fee.Amount.CurrencyID)
	}
	return tw.finish()
}

func printServiceTable(services []domain.ShippingService) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\n")
	for i := range services {
		tw.writef("%d\t%s\n", services[i].ID, services[i].Name)
	}
	return tw.finish()
}

func printQuoteDetail(q *domain.ShippingQuote) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Country:\t%s (zone %s)\n", q.CountryCode, q.Zone)
	tw.writef("Weight:\t%d g\n", q.WeightGrams)
	tw.writef("Base:\t%.0f %s\n", q.BasePrice, q.Currency)
	for _, s := range q.Surcharges {
		tw.writef("%s:\t%.0f %s\n", s.Type, s.Amount, q.Currency)
	}
	tw.writef("Total:\t%.0f %s\n", q.Total, q.Currency)
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func masked(s string) string {
	if s == "" {
		return "(unset)"
	}
	return "********"
}
