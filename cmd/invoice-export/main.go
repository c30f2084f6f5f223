package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/janytree/storefront-dashboard/internal/app"
	"github.com/janytree/storefront-dashboard/internal/export"
	"github.com/janytree/storefront-dashboard/internal/invoice"
	"github.com/janytree/storefront-dashboard/internal/orders"
	"github.com/janytree/storefront-dashboard/internal/ordersync"
	"github.com/janytree/storefront-dashboard/pkg/config"
	"github.com/janytree/storefront-dashboard/pkg/logger"
)

const dateLayout = "2006-01-02"

var timeNowUTC = func() time.Time {
	return time.Now().UTC()
}

type options struct {
	outDir string
	start  string
	end    string
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "invoice-export", Format: "console"})

	var opts options
	flag.StringVar(&opts.outDir, "out", ".", "directory the workbook is written to")
	flag.StringVar(&opts.start, "start", "", "first payment day, YYYY-MM-DD (default: sync window start)")
	flag.StringVar(&opts.end, "end", "", "last payment day, YYYY-MM-DD (default: today)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	source, err := app.NewOrderSource(cfg.Imweb)
	if err != nil {
		logg.Error(context.Background(), "failed to create order source", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, count, err := run(ctx, cfg, source, opts)
	if err != nil {
		logg.Error(ctx, "invoice export failed", err)
		os.Exit(1)
	}
	logg.Info(logg.WithFields(ctx, map[string]any{"path": path, "orders": count}), "invoice workbook written")
}

// run fetches the window's orders and writes them as an invoice workbook,
// returning the file path and the number of orders exported.
func run(ctx context.Context, cfg *config.Config, source orders.Source, opts options) (string, int, error) {
	loc, err := cfg.Report.Location()
	if err != nil {
		return "", 0, err
	}
	window, err := resolveWindow(opts.start, opts.end, cfg.Sync.Window, loc)
	if err != nil {
		return "", 0, err
	}

	list, err := source.FetchOrders(ctx, window)
	if err != nil {
		return "", 0, fmt.Errorf("fetch orders: %w", err)
	}
	rows := invoice.BuildRows(list, invoice.Options{Location: loc})

	path := filepath.Join(opts.outDir, export.InvoiceFilename(window))
	if err := writeFile(path, func(w io.Writer) error {
		return export.WriteInvoices(w, rows)
	}); err != nil {
		return "", 0, err
	}
	return path, len(list), nil
}

func resolveWindow(start, end string, span time.Duration, loc *time.Location) (orders.Window, error) {
	now := timeNowUTC().In(loc)
	if start == "" && end == "" {
		return ordersync.DefaultWindow(now, span), nil
	}
	startDay := ordersync.DefaultWindow(now, span).Start
	endDay := now
	var err error
	if start != "" {
		if startDay, err = time.ParseInLocation(dateLayout, start, loc); err != nil {
			return orders.Window{}, fmt.Errorf("invalid -start: %w", err)
		}
	}
	if end != "" {
		if endDay, err = time.ParseInLocation(dateLayout, end, loc); err != nil {
			return orders.Window{}, fmt.Errorf("invalid -end: %w", err)
		}
	}
	if endDay.Before(startDay) {
		return orders.Window{}, errors.New("-end is before -start")
	}
	return ordersync.WindowForDates(startDay, endDay, loc), nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return write(f)
}
