package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

func newTestLedger(t *testing.T) (*FileLedger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders-fallback.json")
	return NewFileLedger(path, zap.NewNop()), path
}

func TestAppendAssignsLocalIdentity(t *testing.T) {
	led, _ := newTestLedger(t)

	id, err := led.Append(domain.Order{
		CustomerName: "Rahim",
		Phone:        "017",
		TotalAmount:  550,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	records := led.List()
	require.Len(t, records, 1)
	assert.Equal(t, true, records[0]["is_local"])
	assert.Equal(t, string(domain.OrderStatusPending), records[0]["status"])
	assert.Equal(t, float64(id), records[0]["id"])
}

func TestAppendKeepsExistingStatus(t *testing.T) {
	led, _ := newTestLedger(t)

	_, err := led.Append(domain.Order{
		CustomerName: "Karim",
		Status:       domain.OrderStatusIncomplete,
	})
	require.NoError(t, err)

	records := led.List()
	require.Len(t, records, 1)
	assert.Equal(t, string(domain.OrderStatusIncomplete), records[0]["status"])
}

func TestListAbsentFileIsEmpty(t *testing.T) {
	led, _ := newTestLedger(t)
	assert.Empty(t, led.List())
}

func TestListMalformedContentIsEmpty(t *testing.T) {
	led, path := newTestLedger(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array`), 0o644))

	assert.Empty(t, led.List())
}

func TestListToleratesLegacyRecords(t *testing.T) {
	led, path := newTestLedger(t)
	legacy := []map[string]any{
		{"id": "1700000000001", "name": "Old Revision", "total_price": 990},
	}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	records := led.List()
	require.Len(t, records, 1)
	// Raw records come back as stored; normalization is the caller's job.
	assert.Equal(t, "Old Revision", records[0]["name"])
}

func TestAppendSurvivesCorruptedFile(t *testing.T) {
	led, path := newTestLedger(t)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	id, err := led.Append(domain.Order{CustomerName: "Rahim"})
	require.NoError(t, err)
	assert.NotZero(t, id)

	// Corrupted content was discarded, the new order survives.
	records := led.List()
	require.Len(t, records, 1)
}
