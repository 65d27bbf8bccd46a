package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/services"
	"github.com/dmitrijs2005/warrantykeeper/internal/stats"
	"github.com/dmitrijs2005/warrantykeeper/internal/warranty"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// statusText is the status column of a list row.
func statusText(p models.Purchase, now time.Time) string {
	ev := warranty.Evaluate(p, now)
	switch {
	case ev.Status == warranty.StatusReturned:
		return "Returned"
	case p.IsLifetimeWarranty:
		return "Lifetime warranty"
	case ev.Status == warranty.StatusOutOfWarranty:
		return ev.Status.Label()
	default:
		return fmt.Sprintf("%s (%s left)", ev.Status.Label(), plural(ev.DaysRemaining, "day"))
	}
}

func termOf(p models.Purchase) services.Term {
	return services.Term{Months: p.WarrantyMonths, Lifetime: p.IsLifetimeWarranty}
}

func printPurchases(w io.Writer, ps []models.Purchase, now time.Time) {
	if len(ps) == 0 {
		fmt.Fprintln(w, "No purchases yet. Use 'add' to track one.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSHOP\tBOUGHT\tSTATUS")
	for _, p := range ps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			shortID(p.Id), p.Name, p.Shop, p.PurchaseDate.Format(dateLayout), statusText(p, now))
	}
	_ = tw.Flush()
}

func printPurchase(w io.Writer, p models.Purchase, now time.Time) {
	ev := warranty.Evaluate(p, now)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", p.Id)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Shop:\t%s\n", p.Shop)
	fmt.Fprintf(tw, "Bought:\t%s\n", p.PurchaseDate.Format(dateLayout))
	fmt.Fprintf(tw, "Warranty:\t%s\n", termOf(p))
	if !p.IsLifetimeWarranty {
		fmt.Fprintf(tw, "Warranty ends:\t%s\n", ev.EndDate.Format(dateLayout))
	}
	fmt.Fprintf(tw, "Status:\t%s\n", statusText(p, now))
	if !p.IsReturned {
		fmt.Fprintf(tw, "Return until:\t%s (%s left)\n",
			stats.ReturnDeadline(p).Format(dateLayout), plural(stats.ReturnDaysLeft(p, now), "day"))
	}
	if len(p.Photo) > 0 {
		fmt.Fprintf(tw, "Photo:\t%d bytes\n", len(p.Photo))
	}
	if p.AttachmentRef != "" {
		fmt.Fprintf(tw, "Attachment:\t%s\n", p.AttachmentRef)
	}
	_ = tw.Flush()
}

func printFeed(w io.Writer, items []services.FeedItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Products nearing expiration appear here.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\texpires %s\t%s left\n", shortID(it.Purchase.Id), it.Purchase.Name,
			it.Evaluation.EndDate.Format(dateLayout), plural(it.Evaluation.DaysRemaining, "day"))
	}
	_ = tw.Flush()
}

func printStats(w io.Writer, s stats.Summary) {
	fmt.Fprintf(w, "Statistics for this %s\n\n", s.Period)
	fmt.Fprintf(w, "%s (%d%%)\n%s\n\n", s.InsightTitle(), s.InsightPercent(), s.InsightDescription())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Active guarantees:\t%d\n", s.Active)
	fmt.Fprintf(tw, "Expires soon:\t%d\n", s.ExpiresSoon)
	fmt.Fprintf(tw, "Expired:\t%d\n", s.Expired)
	fmt.Fprintf(tw, "Already returned:\t%d\n", s.Returned)
	fmt.Fprintf(tw, "Return available:\t%d\n", s.ReturnAvailable)
	fmt.Fprintf(tw, "Total items:\t%d\n", s.Total)
	_ = tw.Flush()
}
