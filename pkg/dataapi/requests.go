package dataapi

import (
	"strings"

	"github.com/fivetwenty-io/dataapi/internal/constants"
)

// Action is the sub-path of a Data API action, appended to the base URL.
type Action string

// Data API actions.
const (
	ActionFindOne    Action = "/action/findOne"
	ActionFind       Action = "/action/find"
	ActionInsertOne  Action = "/action/insertOne"
	ActionInsertMany Action = "/action/insertMany"
	ActionUpdateOne  Action = "/action/updateOne"
	ActionUpdateMany Action = "/action/updateMany"
	ActionReplaceOne Action = "/action/replaceOne"
	ActionDeleteOne  Action = "/action/deleteOne"
	ActionDeleteMany Action = "/action/deleteMany"
	ActionAggregate  Action = "/action/aggregate"
)

// Name returns the action name without the /action/ prefix.
func (a Action) Name() string {
	return strings.TrimPrefix(string(a), "/action/")
}

// BaseRequest carries the fields shared by every action. Empty DataSource and
// Database values are replaced by the client defaults when the request is
// sent; the request value itself is never modified.
type BaseRequest struct {
	Collection string `json:"collection"           yaml:"collection"`
	DataSource string `json:"dataSource,omitempty" yaml:"dataSource,omitempty"`
	Database   string `json:"database,omitempty"   yaml:"database,omitempty"`
}

// FindOneRequest represents a findOne action.
type FindOneRequest struct {
	BaseRequest

	Filter     Filter     `json:"filter,omitempty"     yaml:"filter,omitempty"`
	Projection Projection `json:"projection,omitempty" yaml:"projection,omitempty"`
}

// FindRequest represents a paginated find action. PageSize defaults to 10 and
// PageNumber to 1 when left at zero; they are translated into skip and limit.
// Because zero selects the default, an explicit limit of 0 cannot be sent.
// Negative values are passed through unchanged.
type FindRequest struct {
	BaseRequest

	Filter     Filter     `json:"filter,omitempty"     yaml:"filter,omitempty"`
	Projection Projection `json:"projection,omitempty" yaml:"projection,omitempty"`
	Sort       Sort       `json:"sort,omitempty"       yaml:"sort,omitempty"`
	PageSize   int        `json:"-"                    yaml:"pageSize,omitempty"`
	PageNumber int        `json:"-"                    yaml:"pageNumber,omitempty"`
}

// findPayload is the wire shape of a find action.
type findPayload struct {
	BaseRequest

	Filter     Filter     `json:"filter,omitempty"`
	Projection Projection `json:"projection,omitempty"`
	Sort       Sort       `json:"sort,omitempty"`
	Skip       int        `json:"skip"`
	Limit      int        `json:"limit"`
}

// Skip returns the number of documents skipped for the requested page.
func (r FindRequest) Skip() int {
	return (r.pageNumber() - 1) * r.pageSize()
}

// Limit returns the page size sent as the limit.
func (r FindRequest) Limit() int {
	return r.pageSize()
}

func (r FindRequest) pageSize() int {
	if r.PageSize == 0 {
		return constants.DefaultPageSize
	}

	return r.PageSize
}

func (r FindRequest) pageNumber() int {
	if r.PageNumber == 0 {
		return constants.DefaultPageNumber
	}

	return r.PageNumber
}

func (r FindRequest) payload() findPayload {
	return findPayload{
		BaseRequest: r.BaseRequest,
		Filter:      r.Filter,
		Projection:  r.Projection,
		Sort:        r.Sort,
		Skip:        r.Skip(),
		Limit:       r.Limit(),
	}
}

// InsertOneRequest represents an insertOne action.
type InsertOneRequest[T any] struct {
	BaseRequest

	Document T `json:"document" yaml:"document"`
}

// InsertManyRequest represents an insertMany action.
type InsertManyRequest[T any] struct {
	BaseRequest

	Documents []T `json:"documents" yaml:"documents"`
}

// UpdateOneRequest represents an updateOne action.
type UpdateOneRequest struct {
	BaseRequest

	Filter Filter `json:"filter"           yaml:"filter"`
	Update Update `json:"update"           yaml:"update"`
	Upsert bool   `json:"upsert,omitempty" yaml:"upsert,omitempty"`
}

// UpdateManyRequest represents an updateMany action.
type UpdateManyRequest struct {
	BaseRequest

	Filter Filter `json:"filter"           yaml:"filter"`
	Update Update `json:"update"           yaml:"update"`
	Upsert bool   `json:"upsert,omitempty" yaml:"upsert,omitempty"`
}

// ReplaceOneRequest represents a replaceOne action.
type ReplaceOneRequest[T any] struct {
	BaseRequest

	Filter      Filter `json:"filter"           yaml:"filter"`
	Replacement T      `json:"replacement"      yaml:"replacement"`
	Upsert      bool   `json:"upsert,omitempty" yaml:"upsert,omitempty"`
}

// DeleteOneRequest represents a deleteOne action.
type DeleteOneRequest struct {
	BaseRequest

	Filter Filter `json:"filter" yaml:"filter"`
}

// DeleteManyRequest represents a deleteMany action.
type DeleteManyRequest struct {
	BaseRequest

	Filter Filter `json:"filter" yaml:"filter"`
}

// AggregateRequest represents an aggregate action.
type AggregateRequest struct {
	BaseRequest

	Pipeline Pipeline `json:"pipeline" yaml:"pipeline"`
}
