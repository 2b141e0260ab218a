package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRowsEmpty(t *testing.T) {
	assert.Equal(t, "No matching records found", FormatRows(nil))
	assert.Equal(t, "No matching records found", FormatRows([]map[string]any{}))
}

func TestFormatRowsSingleRecord(t *testing.T) {
	digest := FormatRows([]map[string]any{
		{"count": int64(10)},
	})
	assert.Equal(t, "count: 10", digest)
}

func TestFormatRowsStableFieldOrder(t *testing.T) {
	digest := FormatRows([]map[string]any{
		{"phone_no": "9876543210", "cust_id": 1, "customer_name": "Sharma"},
	})
	assert.Equal(t, "cust_id: 1\ncustomer_name: Sharma\nphone_no: 9876543210", digest)
}

func TestFormatRowsCapsAtFiveRecords(t *testing.T) {
	var rows []map[string]any
	for i := 0; i < 8; i++ {
		rows = append(rows, map[string]any{"product_id": i})
	}

	digest := FormatRows(rows)
	assert.Contains(t, digest, "Record 5:")
	assert.NotContains(t, digest, "Record 6:")
	assert.Equal(t, 5, strings.Count(digest, "Record "))
}

func TestSchemaMentionsCoreTables(t *testing.T) {
	schema := Schema()
	for _, table := range []string{"customers", "products", "vendors", "sales_data", "purchase_data", "profit_loss", "udhar_sales"} {
		assert.Contains(t, schema, table)
	}
}
