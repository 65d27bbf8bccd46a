// Package warranty derives the lifecycle status of a purchase from its
// purchase date, warranty term and return flag.
//
// Nothing here is persisted: every value is recomputed from a
// models.Purchase and the caller-supplied "now" on each call. All functions
// are pure and safe for concurrent use.
//
// Status resolution, in order:
//
//   - returned                 → StatusReturned
//   - non-lifetime, 0 days     → StatusOutOfWarranty
//   - non-lifetime, ≤ 5 days   → StatusExpiresSoon
//   - otherwise                → StatusActiveWarranty
//
// A lifetime warranty ends 100 years after purchase and is never reported as
// expiring or expired.
//
// Typical Usage
//
//	ev := warranty.Evaluate(p, time.Now())
//	fmt.Println(ev.Status, ev.DaysRemaining, ev.EndDate.Format("02.01.06"))
package warranty
