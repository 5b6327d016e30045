package dataapi

// Result is the uniform outcome of every operation. Exactly one of Data and
// Error is set.
type Result[T any] struct {
	Data  *T     `json:"data,omitempty"  yaml:"data,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool {
	return r.Error == "" && r.Data != nil
}

// FindOneResponse is returned by the findOne action. Document is nil when no
// document matched.
type FindOneResponse[T any] struct {
	Document *T `json:"document" yaml:"document"`
}

// FindResponse is returned by the find action.
type FindResponse[T any] struct {
	Documents []T `json:"documents" yaml:"documents"`
}

// InsertOneResponse is returned by the insertOne action. InsertedID holds the
// document's _id as decoded from JSON, so it may be a string, a number, or an
// object.
type InsertOneResponse struct {
	InsertedID interface{} `json:"insertedId" yaml:"insertedId"`
}

// InsertManyResponse is returned by the insertMany action.
type InsertManyResponse struct {
	InsertedIDs []interface{} `json:"insertedIds" yaml:"insertedIds"`
}

// UpdateResponse is returned by the updateOne, updateMany, and replaceOne
// actions.
type UpdateResponse struct {
	MatchedCount  int         `json:"matchedCount"         yaml:"matchedCount"`
	ModifiedCount int         `json:"modifiedCount"        yaml:"modifiedCount"`
	UpsertedID    interface{} `json:"upsertedId,omitempty" yaml:"upsertedId,omitempty"`
}

// DeleteResponse is returned by the deleteOne and deleteMany actions.
type DeleteResponse struct {
	DeletedCount int `json:"deletedCount" yaml:"deletedCount"`
}

// AggregateResponse is returned by the aggregate action.
type AggregateResponse[T any] struct {
	Documents []T `json:"documents" yaml:"documents"`
}
