package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/config"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/common"
	"github.com/dmitrijs2005/warrantykeeper/internal/logging"
)

var appNow = time.Date(2025, time.June, 28, 8, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = ":memory:"

	var out bytes.Buffer
	a, err := newApp(context.Background(), cfg, logging.Discard(), time.UTC, strings.NewReader(input), &out)
	require.NoError(t, err)
	a.now = func() time.Time { return appNow }
	t.Cleanup(func() { _ = a.repos.Close() })
	return a, &out
}

func seedPurchase(t *testing.T, a *App, in models.NewPurchase) *models.Purchase {
	t.Helper()
	p, err := a.purchases.Add(context.Background(), in)
	require.NoError(t, err)
	return p
}

func TestAdd_PresetTerm(t *testing.T) {
	// name, shop, date, warranty choice (1 = 6 months), photo, attachment
	a, out := newTestApp(t, "Phone\nStore\n01.01.25\n1\n\nreceipt-42\n")
	ctx := context.Background()

	require.NoError(t, a.Add(ctx))
	assert.Contains(t, out.String(), "Added Phone")

	all, err := a.purchases.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	p := all[0]
	assert.Equal(t, "Store", p.Shop)
	assert.Equal(t, 6, p.WarrantyMonths)
	assert.Equal(t, "receipt-42", p.AttachmentRef)
	assert.True(t, p.PurchaseDate.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))

	pending, err := a.repos.Notifications.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2, "3-day and 1-day reminders are still ahead")
}

func TestAdd_CustomLifetimeWithPhoto(t *testing.T) {
	photo := filepath.Join(t.TempDir(), "p.jpg")
	require.NoError(t, os.WriteFile(photo, []byte{1, 2, 3}, 0o600))

	// date left empty takes today; choice 5 = custom, 0 years = lifetime
	a, _ := newTestApp(t, "Drill\nTools\n\n5\n0\n"+photo+"\n\n")
	ctx := context.Background()

	require.NoError(t, a.Add(ctx))

	all, err := a.purchases.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsLifetimeWarranty)
	assert.Equal(t, []byte{1, 2, 3}, all[0].Photo)
	assert.Equal(t, 28, all[0].PurchaseDate.Day())
}

func TestAdd_ValidationErrorIsReturned(t *testing.T) {
	a, _ := newTestApp(t, "  \nStore\n01.01.25\n2\n\n\n")

	err := a.Add(context.Background())
	assert.ErrorIs(t, err, common.ErrEmptyName)
}

func TestListShowAndPrefixIDs(t *testing.T) {
	a, out := newTestApp(t, "")
	ctx := context.Background()
	p := seedPurchase(t, a, models.NewPurchase{Name: "Phone", Shop: "Store",
		PurchaseDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), WarrantyMonths: 6})

	require.NoError(t, a.List(ctx, "active"))
	assert.Contains(t, out.String(), "Phone")
	assert.Contains(t, out.String(), "01.01.25")
	assert.Contains(t, out.String(), "Expires soon (3 days left)")

	out.Reset()
	require.NoError(t, a.Show(ctx, p.Id[:6]))
	assert.Contains(t, out.String(), "Warranty ends:")
	assert.Contains(t, out.String(), "01.07.25")
	assert.Contains(t, out.String(), "6 months")

	assert.ErrorIs(t, a.Show(ctx, "zzzz"), common.ErrNotFound)
	assert.ErrorIs(t, a.List(ctx, "cheapest"), common.ErrUnknownFilter)
}

func TestReturnArchiveAndStats(t *testing.T) {
	a, out := newTestApp(t, "")
	ctx := context.Background()
	p := seedPurchase(t, a, models.NewPurchase{Name: "Kettle", Shop: "Home",
		PurchaseDate: time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC), WarrantyMonths: 12})
	seedPurchase(t, a, models.NewPurchase{Name: "Lamp", Shop: "Home",
		PurchaseDate: time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC), WarrantyMonths: 12})

	require.NoError(t, a.Return(ctx, p.Id))
	assert.Contains(t, out.String(), "Kettle marked as returned.")

	out.Reset()
	require.NoError(t, a.Archive(ctx))
	assert.Contains(t, out.String(), "Total refunds: 1")
	assert.Contains(t, out.String(), "Kettle")
	assert.NotContains(t, out.String(), "Lamp")

	out.Reset()
	require.NoError(t, a.Stats(ctx, "month"))
	assert.Contains(t, out.String(), "Halfway there! (50%)")
	assert.Contains(t, out.String(), "You returned 1 of 2 items.")
}

func TestFeedAndDismiss(t *testing.T) {
	a, out := newTestApp(t, "")
	ctx := context.Background()
	p := seedPurchase(t, a, models.NewPurchase{Name: "Phone", Shop: "Store",
		PurchaseDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), WarrantyMonths: 6})

	require.NoError(t, a.Feed(ctx))
	assert.Contains(t, out.String(), "Phone")

	require.NoError(t, a.Dismiss(ctx, p.Id))

	out.Reset()
	require.NoError(t, a.Feed(ctx))
	assert.Contains(t, out.String(), "Products nearing expiration appear here.")
}

func TestDelete_AsksForConfirmation(t *testing.T) {
	a, _ := newTestApp(t, "n\ny\n")
	ctx := context.Background()
	p := seedPurchase(t, a, models.NewPurchase{Name: "Phone", Shop: "Store",
		PurchaseDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), WarrantyMonths: 6})

	require.NoError(t, a.Delete(ctx, p.Id))
	_, err := a.purchases.Get(ctx, p.Id)
	require.NoError(t, err, "declined delete keeps the purchase")

	require.NoError(t, a.Delete(ctx, p.Id))
	_, err = a.purchases.Get(ctx, p.Id)
	assert.ErrorIs(t, err, common.ErrNotFound)

	pending, err := a.repos.Notifications.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestEdit_KeepsDefaults(t *testing.T) {
	// rename, keep shop/date, keep term (empty choice), keep photo and reference
	a, _ := newTestApp(t, "Smartphone\n\n\n\n\n\n")
	ctx := context.Background()
	p := seedPurchase(t, a, models.NewPurchase{Name: "Phone", Shop: "Store",
		PurchaseDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), WarrantyMonths: 24,
		AttachmentRef: "r1"})

	require.NoError(t, a.Edit(ctx, p.Id))

	got, err := a.purchases.Get(ctx, p.Id)
	require.NoError(t, err)
	assert.Equal(t, "Smartphone", got.Name)
	assert.Equal(t, "Store", got.Shop)
	assert.Equal(t, 24, got.WarrantyMonths)
	assert.Equal(t, "r1", got.AttachmentRef)
	assert.True(t, got.PurchaseDate.Equal(p.PurchaseDate))
}

func TestRefresh_DeliversDueBeforeRescheduling(t *testing.T) {
	a, out := newTestApp(t, "")
	ctx := context.Background()
	seedPurchase(t, a, models.NewPurchase{Name: "Phone", Shop: "Store",
		PurchaseDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), WarrantyMonths: 6})

	// The 3-day reminder is due at 09:00; the app comes back at 09:30.
	a.now = func() time.Time { return appNow.Add(90 * time.Minute) }
	a.refresh(ctx)

	assert.Contains(t, out.String(), "*** Warranty Expiring Soon! ***")
	assert.Contains(t, out.String(), "Phone warranty expires in 3 days.")

	pending, err := a.repos.Notifications.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "warranty_1_"+pendingID(t, a), pending[0].Key)
}

func TestEdit_DeliversDueReminderBeforeRescheduling(t *testing.T) {
	// keep every field
	a, out := newTestApp(t, "\n\n\n\n\n\n")
	ctx := context.Background()
	p := seedPurchase(t, a, models.NewPurchase{Name: "Phone", Shop: "Store",
		PurchaseDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), WarrantyMonths: 6})

	// The 3-day reminder came due at 09:00 and no dispatch tick has run yet.
	a.now = func() time.Time { return appNow.Add(90 * time.Minute) }
	require.NoError(t, a.Edit(ctx, p.Id))

	assert.Contains(t, out.String(), "Phone warranty expires in 3 days.")

	pending, err := a.repos.Notifications.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "warranty_1_"+p.Id, pending[0].Key)
}

func pendingID(t *testing.T, a *App) string {
	t.Helper()
	all, err := a.purchases.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	return all[0].Id
}

func TestStartDayWatcher_RefreshesOnDayChange(t *testing.T) {
	a, out := newTestApp(t, "")
	seedPurchase(t, a, models.NewPurchase{Name: "Phone", Shop: "Store",
		PurchaseDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), WarrantyMonths: 6})

	var calls int
	a.now = func() time.Time {
		calls++
		if calls == 1 {
			return appNow
		}
		return appNow.Add(72 * time.Hour)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.StartDayWatcher(ctx, time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		pending, err := a.repos.Notifications.Pending(context.Background())
		return err == nil && len(pending) == 0
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Contains(t, out.String(), "Phone warranty expires in 3 days.")
}
