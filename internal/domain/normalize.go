package domain

import (
	"strconv"
	"time"
)

// Ledger entries were written by several storefront revisions that disagree
// on field names (total_amount vs total_price vs total, created_at vs date,
// items vs order_items, numeric vs string ids). Every variant is mapped into
// the canonical Order here, once, at the boundary; nothing past this function
// knows the variants exist.
func NormalizeOrderRecord(rec map[string]any) Order {
	o := Order{
		Status:  OrderStatusPending,
		IsLocal: true,
	}

	o.ID = pickInt(rec, "id", "order_id")
	o.CustomerName = pickString(rec, "customer_name", "name")
	o.Phone = pickString(rec, "phone", "mobile")
	o.Address = pickString(rec, "address", "shipping_address")
	o.Note = pickString(rec, "note")
	o.TotalAmount = pickFloat(rec, "total_amount", "total_price", "total")
	o.PaymentMethod = pickString(rec, "payment_method")
	o.PaymentNumber = pickString(rec, "payment_number")
	o.CreatedAt = pickTime(rec, "created_at", "date")

	if s := OrderStatus(pickString(rec, "status")); s.Valid() {
		o.Status = s
	}
	if v, ok := rec["is_local"].(bool); ok {
		o.IsLocal = v
	}

	rawItems, ok := rec["items"].([]any)
	if !ok {
		rawItems, _ = rec["order_items"].([]any)
	}
	o.Items = make([]OrderItem, 0, len(rawItems))
	for _, ri := range rawItems {
		m, ok := ri.(map[string]any)
		if !ok {
			continue
		}
		o.Items = append(o.Items, OrderItem{
			OrderID:     o.ID,
			ProductID:   pickInt(m, "product_id", "id"),
			ProductName: pickString(m, "product_name", "name"),
			Quantity:    int(pickInt(m, "quantity", "qty")),
			Price:       pickFloat(m, "price", "unit_price"),
		})
	}

	return o
}

func pickString(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func pickFloat(rec map[string]any, keys ...string) float64 {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case float64:
			return v
		case int64:
			return float64(v)
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func pickInt(rec map[string]any, keys ...string) int64 {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case float64:
			return int64(v)
		case int64:
			return v
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

func pickTime(rec map[string]any, keys ...string) time.Time {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case string:
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				return t
			}
			if t, err := time.Parse("2006-01-02", v); err == nil {
				return t
			}
		case float64:
			// Unix milliseconds, the shape older revisions wrote.
			return time.UnixMilli(int64(v)).UTC()
		}
	}
	return time.Time{}
}
