package reports

import (
	"net/http"

	"github.com/janytree/storefront-dashboard/api/responses"
	"github.com/janytree/storefront-dashboard/api/validators"
	"github.com/janytree/storefront-dashboard/internal/analytics"
	"github.com/janytree/storefront-dashboard/internal/report"
	"github.com/janytree/storefront-dashboard/pkg/logger"
	"github.com/janytree/storefront-dashboard/pkg/types"
)

func Sales(service report.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := service.Sales(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func Invoices(service report.Service, limits Limits, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, err := parseLimit(r, limits.InvoicePreview)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := service.Invoices(ctx, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessWithMeta(w, result, types.PreviewMeta{Limit: limit, Returned: len(result.Rows), Total: result.Total})
	}
}

func GroupBuy(service report.Service, limits Limits, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		keyword, err := validators.ParseQueryString(r, "keyword", maxKeywordLen)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := parseLimit(r, limits.GroupBuyPreview)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := service.GroupBuy(ctx, keyword, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessWithMeta(w, result, types.PreviewMeta{Limit: limit, Returned: len(result.Orders), Total: result.MatchedOrders})
	}
}

func Inventory(service report.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, err := parseLimit(r, analytics.DefaultTopOptionsLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := service.Inventory(ctx, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func Customers(service report.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, err := parseLimit(r, analytics.DefaultVIPLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := service.Customers(ctx, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func RawOrders(service report.Service, limits Limits, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, err := parseLimit(r, limits.RawPreview)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := service.RawOrders(ctx, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessWithMeta(w, result, types.PreviewMeta{Limit: limit, Returned: len(result.Orders), Total: result.Total})
	}
}
