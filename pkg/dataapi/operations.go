package dataapi

import (
	"context"
)

// Caller issues a single Data API action. request is encoded as the JSON
// payload and a successful response body is decoded into response.
type Caller interface {
	Call(ctx context.Context, action Action, request interface{}, response interface{}) error
}

// Client exposes one method per Data API action over untyped documents. Use
// the generic functions (FindOne, Find, InsertOne, ...) for typed documents.
type Client interface {
	Caller

	FindOne(ctx context.Context, request FindOneRequest) Result[FindOneResponse[Document]]
	Find(ctx context.Context, request FindRequest) Result[FindResponse[Document]]
	InsertOne(ctx context.Context, request InsertOneRequest[Document]) Result[InsertOneResponse]
	InsertMany(ctx context.Context, request InsertManyRequest[Document]) Result[InsertManyResponse]
	UpdateOne(ctx context.Context, request UpdateOneRequest) Result[UpdateResponse]
	UpdateMany(ctx context.Context, request UpdateManyRequest) Result[UpdateResponse]
	ReplaceOne(ctx context.Context, request ReplaceOneRequest[Document]) Result[UpdateResponse]
	DeleteOne(ctx context.Context, request DeleteOneRequest) Result[DeleteResponse]
	DeleteMany(ctx context.Context, request DeleteManyRequest) Result[DeleteResponse]
	Aggregate(ctx context.Context, request AggregateRequest) Result[AggregateResponse[Document]]
}

// FindOne finds a single document in the specified collection.
func FindOne[T any](ctx context.Context, caller Caller, request FindOneRequest) Result[FindOneResponse[T]] {
	return call[FindOneResponse[T]](ctx, caller, ActionFindOne, request)
}

// Find finds one page of documents in the specified collection. The page is
// sent as skip = (PageNumber-1)*PageSize and limit = PageSize.
func Find[T any](ctx context.Context, caller Caller, request FindRequest) Result[FindResponse[T]] {
	return call[FindResponse[T]](ctx, caller, ActionFind, request.payload())
}

// InsertOne inserts a single document into the specified collection.
func InsertOne[T any](ctx context.Context, caller Caller, request InsertOneRequest[T]) Result[InsertOneResponse] {
	return call[InsertOneResponse](ctx, caller, ActionInsertOne, request)
}

// InsertMany inserts multiple documents into the specified collection.
func InsertMany[T any](ctx context.Context, caller Caller, request InsertManyRequest[T]) Result[InsertManyResponse] {
	return call[InsertManyResponse](ctx, caller, ActionInsertMany, request)
}

// UpdateOne updates a single document in the specified collection.
func UpdateOne(ctx context.Context, caller Caller, request UpdateOneRequest) Result[UpdateResponse] {
	return call[UpdateResponse](ctx, caller, ActionUpdateOne, request)
}

// UpdateMany updates multiple documents in the specified collection.
func UpdateMany(ctx context.Context, caller Caller, request UpdateManyRequest) Result[UpdateResponse] {
	return call[UpdateResponse](ctx, caller, ActionUpdateMany, request)
}

// ReplaceOne replaces a single document in the specified collection.
func ReplaceOne[T any](ctx context.Context, caller Caller, request ReplaceOneRequest[T]) Result[UpdateResponse] {
	return call[UpdateResponse](ctx, caller, ActionReplaceOne, request)
}

// DeleteOne deletes a single document from the specified collection.
func DeleteOne(ctx context.Context, caller Caller, request DeleteOneRequest) Result[DeleteResponse] {
	return call[DeleteResponse](ctx, caller, ActionDeleteOne, request)
}

// DeleteMany deletes multiple documents from the specified collection.
func DeleteMany(ctx context.Context, caller Caller, request DeleteManyRequest) Result[DeleteResponse] {
	return call[DeleteResponse](ctx, caller, ActionDeleteMany, request)
}

// Aggregate runs an aggregation pipeline on the specified collection.
func Aggregate[T any](ctx context.Context, caller Caller, request AggregateRequest) Result[AggregateResponse[T]] {
	return call[AggregateResponse[T]](ctx, caller, ActionAggregate, request)
}

func call[T any](ctx context.Context, caller Caller, action Action, request interface{}) Result[T] {
	var data T

	err := caller.Call(ctx, action, request, &data)
	if err != nil {
		message := err.Error()
		if message == "" {
			message = ErrEmptyErrorValue.Error()
		}

		return Result[T]{Error: message}
	}

	return Result[T]{Data: &data}
}
