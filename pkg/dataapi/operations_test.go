package dataapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/dataapi/pkg/dataapi"
)

var errBoom = errors.New("boom")

type emptyError struct{}

func (emptyError) Error() string { return "" }

// fakeCaller records calls and answers with a canned body or error.
type fakeCaller struct {
	actions  []dataapi.Action
	payloads []map[string]interface{}
	body     string
	err      error
}

func (f *fakeCaller) Call(_ context.Context, action dataapi.Action, request interface{}, response interface{}) error {
	f.actions = append(f.actions, action)

	data, err := json.Marshal(request)
	if err != nil {
		return err
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	f.payloads = append(f.payloads, payload)

	if f.err != nil {
		return f.err
	}

	return json.Unmarshal([]byte(f.body), response)
}

type user struct {
	Name string `json:"name"`
}

func TestFindRequest_Paging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		request   dataapi.FindRequest
		wantSkip  int
		wantLimit int
	}{
		{"zero values use defaults", dataapi.FindRequest{}, 0, 10},
		{"page three of twenty", dataapi.FindRequest{PageSize: 20, PageNumber: 3}, 40, 20},
		{"only page number", dataapi.FindRequest{PageNumber: 4}, 30, 10},
		{"only page size", dataapi.FindRequest{PageSize: 25}, 0, 25},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.wantSkip, tt.request.Skip(), tt.name)
		assert.Equal(t, tt.wantLimit, tt.request.Limit(), tt.name)
	}
}

func TestFind_SendsSkipAndLimit(t *testing.T) {
	t.Parallel()

	caller := &fakeCaller{body: `{"documents":[{"name":"Ada"},{"name":"Grace"}]}`}

	result := dataapi.Find[user](context.Background(), caller, dataapi.FindRequest{
		BaseRequest: dataapi.BaseRequest{Collection: "users"},
		Sort:        dataapi.Sort{{Key: "name", Value: 1}},
		PageSize:    2,
		PageNumber:  2,
	})

	require.True(t, result.OK())
	assert.Equal(t, []user{{Name: "Ada"}, {Name: "Grace"}}, result.Data.Documents)
	require.Len(t, caller.payloads, 1)
	assert.Equal(t, []dataapi.Action{dataapi.ActionFind}, caller.actions)
	assert.InDelta(t, 2, caller.payloads[0]["skip"], 0)
	assert.InDelta(t, 2, caller.payloads[0]["limit"], 0)
	assert.NotContains(t, caller.payloads[0], "pageSize")
}

func TestOperations_ResultConversion(t *testing.T) {
	t.Parallel()

	t.Run("error message becomes Result.Error", func(t *testing.T) {
		t.Parallel()

		result := dataapi.FindOne[user](context.Background(), &fakeCaller{err: errBoom}, dataapi.FindOneRequest{})
		assert.Equal(t, "boom", result.Error)
		assert.Nil(t, result.Data)
		assert.False(t, result.OK())
	})

	t.Run("empty error message is replaced", func(t *testing.T) {
		t.Parallel()

		result := dataapi.DeleteOne(context.Background(), &fakeCaller{err: emptyError{}}, dataapi.DeleteOneRequest{})
		assert.Equal(t, "unknown error", result.Error)
		assert.Nil(t, result.Data)
	})

	t.Run("success sets data only", func(t *testing.T) {
		t.Parallel()

		result := dataapi.UpdateMany(context.Background(), &fakeCaller{body: `{"matchedCount":3,"modifiedCount":2}`}, dataapi.UpdateManyRequest{})
		assert.Empty(t, result.Error)
		require.NotNil(t, result.Data)
		assert.Equal(t, dataapi.UpdateResponse{MatchedCount: 3, ModifiedCount: 2}, *result.Data)
	})
}

func TestOperations_Actions(t *testing.T) {
	t.Parallel()

	caller := &fakeCaller{body: `{}`}
	ctx := context.Background()

	dataapi.FindOne[user](ctx, caller, dataapi.FindOneRequest{})
	dataapi.Find[user](ctx, caller, dataapi.FindRequest{})
	dataapi.InsertOne(ctx, caller, dataapi.InsertOneRequest[user]{})
	dataapi.InsertMany(ctx, caller, dataapi.InsertManyRequest[user]{})
	dataapi.UpdateOne(ctx, caller, dataapi.UpdateOneRequest{})
	dataapi.UpdateMany(ctx, caller, dataapi.UpdateManyRequest{})
	dataapi.ReplaceOne(ctx, caller, dataapi.ReplaceOneRequest[user]{})
	dataapi.DeleteOne(ctx, caller, dataapi.DeleteOneRequest{})
	dataapi.DeleteMany(ctx, caller, dataapi.DeleteManyRequest{})
	dataapi.Aggregate[user](ctx, caller, dataapi.AggregateRequest{})

	assert.Equal(t, []dataapi.Action{
		dataapi.ActionFindOne,
		dataapi.ActionFind,
		dataapi.ActionInsertOne,
		dataapi.ActionInsertMany,
		dataapi.ActionUpdateOne,
		dataapi.ActionUpdateMany,
		dataapi.ActionReplaceOne,
		dataapi.ActionDeleteOne,
		dataapi.ActionDeleteMany,
		dataapi.ActionAggregate,
	}, caller.actions)
}

func TestAction_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "findOne", dataapi.ActionFindOne.Name())
	assert.Equal(t, "aggregate", dataapi.ActionAggregate.Name())
	assert.Equal(t, "/action/replaceOne", string(dataapi.ActionReplaceOne))
}
