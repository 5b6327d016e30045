package dataapi_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fivetwenty-io/dataapi/pkg/dataapi"
)

func TestDocumentTypes_ExtendedJSON(t *testing.T) {
	t.Parallel()

	id, err := primitive.ObjectIDFromHex("64b7f0c2e4b0a1a2b3c4d5e6")
	require.NoError(t, err)

	data, err := json.Marshal(dataapi.Filter{"_id": id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":{"$oid":"64b7f0c2e4b0a1a2b3c4d5e6"}}`, string(data))

	data, err = json.Marshal(dataapi.Update{"$set": bson.M{"name": "Ada", "age": 36}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"$set":{"name":"Ada","age":36}}`, string(data))
}

func TestDocumentTypes_EmptyValues(t *testing.T) {
	t.Parallel()

	for name, value := range map[string]interface{}{
		"nil document":   dataapi.Document(nil),
		"empty filter":   dataapi.Filter{},
		"nil projection": dataapi.Projection(nil),
		"nil update":     dataapi.Update(nil),
		"nil sort":       dataapi.Sort(nil),
	} {
		data, err := json.Marshal(value)
		require.NoError(t, err, name)
		assert.Equal(t, "{}", string(data), name)
	}
}

func TestSort_PreservesOrder(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(dataapi.Sort{{Key: "lastName", Value: 1}, {Key: "age", Value: -1}, {Key: "firstName", Value: 1}})
	require.NoError(t, err)
	assert.Equal(t, `{"lastName":1,"age":-1,"firstName":1}`, string(data))
}

func TestPipeline_MarshalJSON(t *testing.T) {
	t.Parallel()

	pipeline := dataapi.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "active", Value: true}}}},
		{},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$team"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	}

	data, err := json.Marshal(pipeline)
	require.NoError(t, err)
	assert.Equal(t, `[{"$match":{"active":true}},{},{"$group":{"_id":"$team","count":{"$sum":1}}}]`, string(data))

	data, err = json.Marshal(dataapi.Pipeline(nil))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestRequests_OmitEmptyFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(dataapi.FindOneRequest{BaseRequest: dataapi.BaseRequest{Collection: "users"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"collection":"users"}`, string(data))

	data, err = json.Marshal(dataapi.UpdateOneRequest{
		BaseRequest: dataapi.BaseRequest{Collection: "users", Database: "app"},
		Filter:      dataapi.Filter{"name": "Ada"},
		Update:      dataapi.Update{"$inc": bson.M{"visits": 1}},
		Upsert:      true,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"collection":"users","database":"app","filter":{"name":"Ada"},"update":{"$inc":{"visits":1}},"upsert":true}`, string(data))
}

func TestDocument_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var doc dataapi.Document

	require.NoError(t, json.Unmarshal([]byte(`{"_id":{"$oid":"64b7f0c2e4b0a1a2b3c4d5e6"},"age":36,"name":"Ada"}`), &doc))

	id, ok := doc["_id"].(primitive.ObjectID)
	require.True(t, ok)
	assert.Equal(t, "64b7f0c2e4b0a1a2b3c4d5e6", id.Hex())
	assert.EqualValues(t, 36, doc["age"])
	assert.Equal(t, "Ada", doc["name"])

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":{"$oid":"64b7f0c2e4b0a1a2b3c4d5e6"},"age":36,"name":"Ada"}`, string(data))

	require.Error(t, json.Unmarshal([]byte(`{"age":`), &doc))
}

func TestDocument_UnmarshalNull(t *testing.T) {
	t.Parallel()

	docs := []dataapi.Document{{"stale": true}}

	require.NoError(t, json.Unmarshal([]byte(`[null,{"name":"Grace"}]`), &docs))
	require.Len(t, docs, 2)
	assert.Nil(t, docs[0])
	assert.Equal(t, "Grace", docs[1]["name"])
}
