package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/dataapi/pkg/dataapi"
)

func TestDocumentColumns(t *testing.T) {
	t.Parallel()

	columns := documentColumns([]map[string]interface{}{
		{"name": "Ada", "_id": "1"},
		{"team": "core", "age": 36},
	})

	assert.Equal(t, []string{"_id", "age", "name", "team"}, columns)
	assert.Equal(t, []string{"name"}, documentColumns([]map[string]interface{}{{"name": "Ada"}}))
}

func TestFormatCell(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "Ada", formatCell("Ada"))
	assert.Equal(t, "64b7f0c2e4b0a1a2b3c4d5e6", formatCell(map[string]interface{}{"$oid": "64b7f0c2e4b0a1a2b3c4d5e6"}))
	assert.Equal(t, `{"$gt":30}`, formatCell(map[string]interface{}{"$gt": 30}))
	assert.Equal(t, "36", formatCell(36))
	assert.Equal(t, `["a","b"]`, formatCell([]interface{}{"a", "b"}))
}

func TestFormatIDs(t *testing.T) {
	t.Parallel()

	ids := []interface{}{"a", float64(42), map[string]interface{}{"x": float64(1)}}
	assert.Equal(t, `a, 42, {"x":1}`, formatIDs(ids))
	assert.Equal(t, "", formatIDs(nil))
}

func TestUpdateProperties(t *testing.T) {
	t.Parallel()

	properties := updateProperties(&dataapi.UpdateResponse{MatchedCount: 0, ModifiedCount: 0, UpsertedID: float64(7)})
	assert.Equal(t, "7", properties[2].Value)

	properties = updateProperties(&dataapi.UpdateResponse{MatchedCount: 1, ModifiedCount: 1})
	assert.Equal(t, NotAvailable, properties[2].Value)
}

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", maskSecret(""))
	assert.Equal(t, Masked, maskSecret("short"))
	assert.Equal(t, Masked+"wxyz", maskSecret("abcdefghijklmnopqrstuvwxyz"))
}
