// Package dataapi provides types, interfaces, and typed operations for working
// with a document-database Data API over HTTP.
//
// # Overview
//
// The dataapi package defines the request types (FindOneRequest,
// FindRequest, InsertOneRequest, ...), the success shapes returned by each
// action, and the uniform Result type every operation returns. A concrete
// implementation of the Client interface is provided by the dataapiclient
// package, which wires configuration, transport, and logging. Most consumers
// import dataapiclient to construct a client and then call either the untyped
// Client methods or the generic functions defined here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "fmt"
//
//	  "github.com/fivetwenty-io/dataapi/pkg/dataapi"
//	  "github.com/fivetwenty-io/dataapi/pkg/dataapiclient"
//	)
//
//	type User struct {
//	  Name  string `json:"name"`
//	  Email string `json:"email"`
//	}
//
//	func example() {
//	  ctx := context.Background()
//	  cli := dataapiclient.New(&dataapi.Config{
//	    AppID:             "data-abcde",
//	    APIKey:            "secret",
//	    DefaultDataSource: "Cluster0",
//	    DefaultDatabase:   "app",
//	  })
//
//	  res := dataapi.Find[User](ctx, cli, dataapi.FindRequest{
//	    BaseRequest: dataapi.BaseRequest{Collection: "users"},
//	    Filter:      dataapi.Filter{"active": true},
//	    PageNumber:  2,
//	  })
//	  if !res.OK() {
//	    fmt.Println(res.Error)
//	    return
//	  }
//	  fmt.Println(len(res.Data.Documents))
//	}
//
// # Results
//
// Operations never return Go errors. Every failure (a non-2xx status, a
// transport failure, or a request that could not be built) is logged through
// the configured Logger and reported in Result.Error. Exactly one of
// Result.Data and Result.Error is set.
//
// # Query documents
//
// Filter, Projection, Update, Sort, and Pipeline are passed to the remote API
// verbatim. They are encoded as relaxed Extended JSON, so values such as
// primitive.ObjectID and time.Time arrive in the form the API expects. Sort and
// pipeline stages are ordered documents (bson.D).
package dataapi
