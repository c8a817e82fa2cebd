// Package ledger keeps a local, last-resort list of orders for when the
// remote backend is unreachable. It mirrors the storefront's old
// localStorage fallback: one JSON array under one key, written on every
// append, parse failures swallowed at the boundary.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

// maxEntries bounds file growth; the oldest entries are dropped on append.
const maxEntries = 1000

// Ledger is the durable local queue capability. The file implementation is
// the default; anything that can append and list survives the coordinator.
type Ledger interface {
	// Append stores the order locally and returns the assigned local id.
	Append(order domain.Order) (int64, error)
	// List returns the raw stored records. Malformed or absent content
	// yields an empty slice, never an error: callers normalize the shape.
	List() []map[string]any
}

type FileLedger struct {
	path   string
	logger *zap.Logger

	mu sync.Mutex
}

func NewFileLedger(path string, logger *zap.Logger) *FileLedger {
	return &FileLedger{path: path, logger: logger}
}

func (l *FileLedger) Append(order domain.Order) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.load()

	if order.ID == 0 {
		order.ID = time.Now().UnixMilli()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	order.IsLocal = true

	raw, err := json.Marshal(order)
	if err != nil {
		return 0, fmt.Errorf("marshal ledger order: %w", err)
	}
	var rec map[string]any
	if err := json.Unmarshal(raw, &rec); err != nil {
		return 0, fmt.Errorf("encode ledger order: %w", err)
	}
	rec["is_local"] = true

	records = append(records, rec)
	if len(records) > maxEntries {
		records = records[len(records)-maxEntries:]
	}

	data, err := json.Marshal(records)
	if err != nil {
		return 0, fmt.Errorf("marshal ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write ledger %s: %w", l.path, err)
	}

	l.logger.Info("Order appended to local ledger",
		zap.Int64("order_id", order.ID),
		zap.Int("ledger_size", len(records)))

	return order.ID, nil
}

func (l *FileLedger) List() []map[string]any {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *FileLedger) load() []map[string]any {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Ledger unreadable, treating as empty",
				zap.String("path", l.path), zap.Error(err))
		}
		return []map[string]any{}
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		l.logger.Warn("Ledger content malformed, treating as empty",
			zap.String("path", l.path), zap.Error(err))
		return []map[string]any{}
	}
	return records
}
