package reports

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/janytree/storefront-dashboard/api/responses"
	"github.com/janytree/storefront-dashboard/internal/export"
	"github.com/janytree/storefront-dashboard/internal/orders"
	"github.com/janytree/storefront-dashboard/internal/report"
	pkgerrors "github.com/janytree/storefront-dashboard/pkg/errors"
	"github.com/janytree/storefront-dashboard/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var timeNowUTC = func() time.Time {
	return time.Now().UTC()
}

// ExportInvoices streams every invoice row of the current snapshot as xlsx.
func ExportInvoices(service report.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := service.Invoices(ctx, 0)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteInvoices(&buf, result.Rows); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to build invoice workbook"))
			return
		}

		window := orders.Window{Start: timeNowUTC(), End: timeNowUTC()}
		if result.Window != nil {
			window = *result.Window
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.InvoiceFilename(window)))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil && logg != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "invoice export write interrupted")
		}
	}
}
