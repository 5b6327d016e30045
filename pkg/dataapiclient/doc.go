// Package dataapiclient is the entry point for constructing a client for the
// MongoDB Atlas Data API that implements the dataapi.Client interface.
//
// It wires configuration, the HTTP transport, logging, and optional metrics
// on top of the request, response, and document types defined in the dataapi
// package.
//
// Quick start
//
//	import (
//	  "context"
//	  "fmt"
//
//	  "github.com/fivetwenty-io/dataapi/pkg/dataapi"
//	  "github.com/fivetwenty-io/dataapi/pkg/dataapiclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli := dataapiclient.New(&dataapi.Config{
//	    AppID:             "data-abcde",
//	    APIKey:            "...",
//	    DefaultDataSource: "Cluster0",
//	    DefaultDatabase:   "app",
//	  })
//
//	  result := cli.FindOne(ctx, dataapi.FindOneRequest{
//	    BaseRequest: dataapi.BaseRequest{Collection: "users"},
//	    Filter:      dataapi.Filter{"name": "Ada"},
//	  })
//	  if !result.OK() {
//	    fmt.Println(result.Error)
//	    return
//	  }
//	  fmt.Println(result.Data.Document)
//	}
//
// # Metrics
//
// WithMetrics registers a request counter and a latency histogram, labelled by
// action, with the given prometheus registerer.
//
// # Helpers
//
// The package also provides convenience constructors NewWithAppID,
// NewWithDefaults, and NewWithEndpoint for the common configurations.
package dataapiclient
