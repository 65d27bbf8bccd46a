// Package swipe implements the swipe-to-reveal gesture logic shared by every
// list of swipeable purchase rows.
//
// A List owns the single "revealed row" value; each Row tracks its own
// horizontal offset and whether a drag is in progress. Rows report gesture
// events (Change on every drag update, End on release) and the List keeps at
// most one row open at a time.
//
//	l := swipe.NewList(swipe.NewOptions(375, 2))
//	row := l.Row(p.Id)
//	row.Change(-80, 4)    // finger moved left
//	row.End(-80, -200)    // released with a fling: row is now open
//	if row.ActionsTappable() {
//	    row.Trigger(func() { _ = svc.Delete(ctx, p.Id) })
//	}
//
// Nothing here locks. All calls for one List are expected on a single event
// loop. Deferred action callbacks never run on their own goroutine: the host
// either supplies Options.After to post them onto its loop, or calls
// List.Flush from that loop, e.g. on every frame.
package swipe
