package syncs

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/janytree/storefront-dashboard/api/responses"
	"github.com/janytree/storefront-dashboard/api/validators"
	"github.com/janytree/storefront-dashboard/internal/orders"
	"github.com/janytree/storefront-dashboard/internal/ordersync"
	"github.com/janytree/storefront-dashboard/internal/snapshot"
	pkgerrors "github.com/janytree/storefront-dashboard/pkg/errors"
	"github.com/janytree/storefront-dashboard/pkg/logger"
)

const dateLayout = "2006-01-02"

var timeNowUTC = func() time.Time {
	return time.Now().UTC()
}

// Syncer is the slice of ordersync.Syncer the handlers need.
type Syncer interface {
	Sync(ctx context.Context, window orders.Window) (*snapshot.Snapshot, error)
	Status() ordersync.Status
}

// Options controls window defaults for manual syncs.
type Options struct {
	Span     time.Duration
	Location *time.Location
}

type triggerRequest struct {
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type triggerResponse struct {
	SnapshotID string        `json:"snapshot_id"`
	OrderCount int           `json:"order_count"`
	Source     string        `json:"source"`
	Window     orders.Window `json:"window"`
	SyncedAt   time.Time     `json:"synced_at"`
}

// Trigger runs a sync for the requested dates, or the rolling default window
// when the body omits them.
func Trigger(syncer Syncer, opts Options, logg *logger.Logger) http.HandlerFunc {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req triggerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		window, err := resolveWindow(req, opts.Span, loc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		snap, err := syncer.Sync(ctx, window)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, triggerResponse{
			SnapshotID: snap.ID,
			OrderCount: snap.Len(),
			Source:     snap.Source,
			Window:     snap.Window,
			SyncedAt:   snap.SyncedAt,
		})
	}
}

// Status reports the latest sync state.
func Status(syncer Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, syncer.Status())
	}
}

func resolveWindow(req triggerRequest, span time.Duration, loc *time.Location) (orders.Window, error) {
	start := strings.TrimSpace(req.StartDate)
	end := strings.TrimSpace(req.EndDate)
	if start == "" && end == "" {
		return ordersync.DefaultWindow(timeNowUTC().In(loc), span), nil
	}
	if start == "" || end == "" {
		return orders.Window{}, pkgerrors.New(pkgerrors.CodeValidation, "start_date and end_date must be provided together")
	}
	startDay, err := time.ParseInLocation(dateLayout, start, loc)
	if err != nil {
		return orders.Window{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "start_date must be YYYY-MM-DD")
	}
	endDay, err := time.ParseInLocation(dateLayout, end, loc)
	if err != nil {
		return orders.Window{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "end_date must be YYYY-MM-DD")
	}
	if endDay.Before(startDay) {
		return orders.Window{}, pkgerrors.New(pkgerrors.CodeValidation, "end_date is before start_date")
	}
	return ordersync.WindowForDates(startDay, endDay, loc), nil
}
