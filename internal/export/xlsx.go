// Package export writes invoice rows as a downloadable spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/janytree/storefront-dashboard/internal/invoice"
	"github.com/janytree/storefront-dashboard/internal/orders"
)

const (
	InvoiceSheet = "Invoices"
	SummarySheet = "Summary"

	filenameDateLayout = "20060102"
)

// InvoiceHeaders are the courier upload column titles, in column order.
var InvoiceHeaders = []string{
	"주문번호", "수령인", "전화번호", "우편번호", "주소", "상세주소",
	"상품명(변환됨)", "배송메모", "결제금액", "주문상태", "주문일자",
}

var wonPrinter = message.NewPrinter(language.Korean)

// FormatWon renders an amount as "₩12,345".
func FormatWon(amount int64) string {
	return wonPrinter.Sprintf("₩%d", amount)
}

// InvoiceFilename names the export after the synced window.
func InvoiceFilename(window orders.Window) string {
	return fmt.Sprintf("invoices_%s_%s.xlsx", window.Start.Format(filenameDateLayout), window.End.Format(filenameDateLayout))
}

// WriteInvoices writes an Invoices sheet with one row per invoice row and a
// Summary sheet with totals.
func WriteInvoices(w io.Writer, rows []invoice.Row) (err error) {
	f := excelize.NewFile()
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err := f.SetSheetName("Sheet1", InvoiceSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeInvoiceSheet(f, rows); err != nil {
		return err
	}
	if err := writeSummarySheet(f, rows); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeInvoiceSheet(f *excelize.File, rows []invoice.Row) error {
	header := make([]any, 0, len(InvoiceHeaders))
	for _, h := range InvoiceHeaders {
		header = append(header, h)
	}
	if err := f.SetSheetRow(InvoiceSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(InvoiceHeaders))
	if err := f.SetCellStyle(InvoiceSheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			row.OrderID,
			row.RecipientName,
			row.RecipientPhone,
			row.Postcode,
			row.Address,
			row.AddressDetail,
			row.Items,
			row.DeliveryNote,
			row.PaidAmount,
			row.Status,
			row.OrderDate,
		}
		if err := f.SetSheetRow(InvoiceSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(InvoiceSheet, "A", lastCol, 16); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	return f.SetColWidth(InvoiceSheet, "G", "G", 60)
}

func writeSummarySheet(f *excelize.File, rows []invoice.Row) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	var revenue int64
	units := 0
	for _, row := range rows {
		revenue += row.PaidAmount
		units += len(row.Labels)
	}
	summary := [][]any{
		{"주문 수", len(rows)},
		{"상품 수량", units},
		{"총 결제금액", FormatWon(revenue)},
	}
	for i, line := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &line); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}
