package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

// CSV export keeps the storefront's original contract: every field wrapped
// in quotes (internal quotes doubled), comma-joined, one row per line. It
// operates on the already-filtered rows the caller passes in.

func OrdersCSV(orders []domain.Order) string {
	var b strings.Builder
	writeCSVRow(&b, "ID", "Customer", "Phone", "Address", "Total", "Status", "Items", "Date")
	for _, o := range orders {
		names := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			names = append(names, fmt.Sprintf("%s x%d", it.ProductName, it.Quantity))
		}
		writeCSVRow(&b,
			fmt.Sprintf("%d", o.ID),
			o.CustomerName,
			o.Phone,
			o.Address,
			fmt.Sprintf("%.2f", o.TotalAmount),
			string(o.Status),
			strings.Join(names, "; "),
			formatCSVTime(o.CreatedAt),
		)
	}
	return b.String()
}

func InventoryCSV(products []domain.Product) string {
	var b strings.Builder
	writeCSVRow(&b, "ID", "Name", "Category", "Price", "Stock", "Unit", "Status")
	for _, p := range products {
		writeCSVRow(&b,
			fmt.Sprintf("%d", p.ID),
			p.Name,
			p.Category,
			fmt.Sprintf("%.2f", p.Price),
			fmt.Sprintf("%d", p.Stock),
			p.Unit,
			p.Status,
		)
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

func formatCSVTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
