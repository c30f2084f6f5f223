package reports

import (
	"net/http"

	"github.com/janytree/storefront-dashboard/api/validators"
	"github.com/janytree/storefront-dashboard/pkg/config"
)

const (
	maxPreviewLimit = 1000
	maxKeywordLen   = 100
)

// Limits carries the per-tab defaults from config.
type Limits struct {
	InvoicePreview  int
	GroupBuyPreview int
	RawPreview      int
}

// LimitsFromConfig maps report config onto handler defaults.
func LimitsFromConfig(cfg config.ReportConfig) Limits {
	return Limits{
		InvoicePreview:  cfg.InvoicePreviewLimit,
		GroupBuyPreview: cfg.GroupBuyPreviewLimit,
		RawPreview:      cfg.RawPreviewLimit,
	}
}

func parseLimit(r *http.Request, defaultVal int) (int, error) {
	return validators.ParseQueryInt(r, "limit", defaultVal, 1, maxPreviewLimit)
}
