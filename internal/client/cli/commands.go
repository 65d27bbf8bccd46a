package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/services"
	"github.com/dmitrijs2005/warrantykeeper/internal/common"
	"github.com/dmitrijs2005/warrantykeeper/internal/stats"
)

var errAmbiguousID = errors.New("ambiguous id")

// resolveID turns a full id or a unique id prefix into a full id, prompting
// when arg is empty.
func (a *App) resolveID(ctx context.Context, arg string) (string, error) {
	if arg == "" {
		s, err := GetSimpleText(a.reader, "Enter purchase id", a.out)
		if err != nil {
			return "", err
		}
		arg = s
	}
	if arg == "" {
		return "", fmt.Errorf("purchase id is required")
	}

	all, err := a.purchases.List(ctx, services.FilterRecent)
	if err != nil {
		return "", err
	}

	var match string
	for _, p := range all {
		if p.Id == arg {
			return p.Id, nil
		}
		if strings.HasPrefix(p.Id, arg) {
			if match != "" {
				return "", fmt.Errorf("%w: %q", errAmbiguousID, arg)
			}
			match = p.Id
		}
	}
	if match == "" {
		return "", fmt.Errorf("purchase %q: %w", arg, common.ErrNotFound)
	}
	return match, nil
}

func (a *App) today() time.Time {
	now := a.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// readTerm offers the preset terms plus a custom one.
func (a *App) readTerm(def services.Term) (services.Term, error) {
	custom := len(services.PresetTerms) + 1
	choice := custom
	for i, t := range services.PresetTerms {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, t)
		if t == def {
			choice = i + 1
		}
	}
	fmt.Fprintf(a.out, "  %d) Custom (years or lifetime)\n", custom)

	n, err := GetInt(a.reader, "Warranty period", choice, 1, custom, a.out)
	if err != nil {
		return services.Term{}, err
	}
	if n < custom {
		return services.PresetTerms[n-1], nil
	}

	defYears := 4
	if def.Lifetime {
		defYears = 0
	} else if def.Months > 0 && def.Months%12 == 0 {
		defYears = def.Months / 12
	}
	years, err := GetInt(a.reader, "Custom warranty in years (0 = lifetime)", defYears, 0, services.MaxCustomYears, a.out)
	if err != nil {
		return services.Term{}, err
	}
	return services.CustomTerm(years)
}

// readPhoto loads an optional photo file. An empty path keeps cur.
func (a *App) readPhoto(cur []byte) ([]byte, error) {
	path, err := GetSimpleText(a.reader, "Photo file (optional)", a.out)
	if err != nil || path == "" {
		return cur, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return data, nil
}

func (a *App) Add(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Product name", a.out)
	if err != nil {
		return err
	}
	shop, err := GetSimpleText(a.reader, "Shop", a.out)
	if err != nil {
		return err
	}
	date, err := GetDate(a.reader, "Purchase date (dd.mm.yy)", a.today(), a.now().Location(), a.out)
	if err != nil {
		return err
	}
	term, err := a.readTerm(services.PresetTerms[1])
	if err != nil {
		return err
	}
	photo, err := a.readPhoto(nil)
	if err != nil {
		return err
	}
	attachment, err := GetSimpleText(a.reader, "Receipt or document reference (optional)", a.out)
	if err != nil {
		return err
	}

	p, err := a.purchases.Add(ctx, models.NewPurchase{
		Name:               name,
		Shop:               shop,
		PurchaseDate:       date,
		WarrantyMonths:     term.Months,
		IsLifetimeWarranty: term.Lifetime,
		Photo:              photo,
		AttachmentRef:      attachment,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %s (%s)\n", p.Name, shortID(p.Id))
	return nil
}

func (a *App) List(ctx context.Context, filter string) error {
	f, err := services.ParseFilter(filter)
	if err != nil {
		return err
	}
	ps, err := a.purchases.List(ctx, f)
	if err != nil {
		return err
	}
	printPurchases(a.out, ps, a.now())
	return nil
}

func (a *App) Archive(ctx context.Context) error {
	ps, err := a.purchases.Archive(ctx)
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		fmt.Fprintln(a.out, "No returned purchases.")
		return nil
	}
	fmt.Fprintf(a.out, "Total refunds: %d\n", len(ps))
	printPurchases(a.out, ps, a.now())
	return nil
}

func (a *App) Show(ctx context.Context, arg string) error {
	id, err := a.resolveID(ctx, arg)
	if err != nil {
		return err
	}
	p, err := a.purchases.Get(ctx, id)
	if err != nil {
		return err
	}
	printPurchase(a.out, *p, a.now())
	return nil
}

func (a *App) Edit(ctx context.Context, arg string) error {
	id, err := a.resolveID(ctx, arg)
	if err != nil {
		return err
	}
	p, err := a.purchases.Get(ctx, id)
	if err != nil {
		return err
	}

	if p.Name, err = GetTextDefault(a.reader, "Product name", p.Name, a.out); err != nil {
		return err
	}
	if p.Shop, err = GetTextDefault(a.reader, "Shop", p.Shop, a.out); err != nil {
		return err
	}
	if p.PurchaseDate, err = GetDate(a.reader, "Purchase date (dd.mm.yy)", p.PurchaseDate, p.PurchaseDate.Location(), a.out); err != nil {
		return err
	}
	term, err := a.readTerm(termOf(*p))
	if err != nil {
		return err
	}
	p.WarrantyMonths, p.IsLifetimeWarranty = term.Months, term.Lifetime
	if p.Photo, err = a.readPhoto(p.Photo); err != nil {
		return err
	}
	if p.AttachmentRef, err = GetTextDefault(a.reader, "Receipt or document reference", p.AttachmentRef, a.out); err != nil {
		return err
	}

	if _, err := a.purchases.Update(ctx, *p); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved.")
	return nil
}

func (a *App) Return(ctx context.Context, arg string) error {
	id, err := a.resolveID(ctx, arg)
	if err != nil {
		return err
	}
	p, err := a.purchases.MarkReturned(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s marked as returned.\n", p.Name)
	return nil
}

func (a *App) Delete(ctx context.Context, arg string) error {
	id, err := a.resolveID(ctx, arg)
	if err != nil {
		return err
	}
	ok, err := GetConfirm(a.reader, fmt.Sprintf("Delete %s?", shortID(id)), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.purchases.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) Feed(ctx context.Context) error {
	items, err := a.feed.Feed(ctx)
	if err != nil {
		return err
	}
	printFeed(a.out, items)
	return nil
}

func (a *App) Dismiss(ctx context.Context, arg string) error {
	id, err := a.resolveID(ctx, arg)
	if err != nil {
		return err
	}
	if err := a.feed.Dismiss(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Dismissed.")
	return nil
}

func (a *App) Stats(ctx context.Context, period string) error {
	p, err := stats.ParsePeriod(strings.ToLower(period))
	if err != nil {
		return err
	}
	all, err := a.purchases.List(ctx, services.FilterRecent)
	if err != nil {
		return err
	}
	printStats(a.out, stats.Compute(all, a.now(), p))
	return nil
}
