package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/dataapi/internal/constants"
	"github.com/fivetwenty-io/dataapi/pkg/dataapi"
)

// NewDocumentsCommand creates the documents command group.
func NewDocumentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs", "doc"},
		Short:   "Read and write documents",
		Long: `Run Data API actions against a collection.

JSON arguments accept relaxed Extended JSON, e.g. {"_id": {"$oid": "..."}},
or @path to read the value from a file.`,
	}

	cmd.AddCommand(newFindOneCommand())
	cmd.AddCommand(newFindCommand())
	cmd.AddCommand(newInsertOneCommand())
	cmd.AddCommand(newInsertManyCommand())
	cmd.AddCommand(newUpdateOneCommand())
	cmd.AddCommand(newUpdateManyCommand())
	cmd.AddCommand(newReplaceOneCommand())
	cmd.AddCommand(newDeleteOneCommand())
	cmd.AddCommand(newDeleteManyCommand())
	cmd.AddCommand(newAggregateCommand())

	return cmd
}

// target holds the flags naming where an action runs.
type target struct {
	collection string
	dataSource string
	database   string
}

func (t *target) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.collection, "collection", "", "collection name (required)")
	cmd.Flags().StringVar(&t.dataSource, "source", "", "data source for this request (overrides the configured default)")
	cmd.Flags().StringVar(&t.database, "db", "", "database for this request (overrides the configured default)")
}

func (t *target) base() (dataapi.BaseRequest, error) {
	if t.collection == "" {
		return dataapi.BaseRequest{}, constants.ErrCollectionRequired
	}

	return dataapi.BaseRequest{
		Collection: t.collection,
		DataSource: t.dataSource,
		Database:   t.database,
	}, nil
}

func operationFailed(action dataapi.Action, message string) error {
	return fmt.Errorf("%s: %w: %s", action.Name(), constants.ErrOperationFailed, message)
}

func newFindOneCommand() *cobra.Command {
	var (
		where      target
		filter     string
		projection string
	)

	cmd := &cobra.Command{
		Use:   "find-one",
		Short: "Find a single document",
		Long:  "Find the first document matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := where.base()
			if err != nil {
				return err
			}

			filterDoc, err := parseDocument(filter)
			if err != nil {
				return err
			}

			projectionDoc, err := parseDocument(projection)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result := client.FindOne(ctx, dataapi.FindOneRequest{
				BaseRequest: base,
				Filter:      dataapi.Filter(filterDoc),
				Projection:  dataapi.Projection(projectionDoc),
			})
			if !result.OK() {
				return operationFailed(dataapi.ActionFindOne, result.Error)
			}

			var documents []dataapi.Document
			if result.Data.Document != nil {
				documents = append(documents, *result.Data.Document)
			}

			return renderDocuments(cmd.OutOrStdout(), result.Data, documents)
		},
	}

	where.addFlags(cmd)
	cmd.Flags().StringVar(&filter, "filter", "", "query filter as JSON")
	cmd.Flags().StringVar(&projection, "projection", "", "projection as JSON")

	return cmd
}

func newFindCommand() *cobra.Command {
	var (
		where      target
		filter     string
		projection string
		sortFields []string
		pageSize   int
		pageNumber int
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find documents",
		Long:  "Find one page of documents matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := where.base()
			if err != nil {
				return err
			}

			filterDoc, err := parseDocument(filter)
			if err != nil {
				return err
			}

			projectionDoc, err := parseDocument(projection)
			if err != nil {
				return err
			}

			sortDoc, err := parseSort(sortFields)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result := client.Find(ctx, dataapi.FindRequest{
				BaseRequest: base,
				Filter:      dataapi.Filter(filterDoc),
				Projection:  dataapi.Projection(projectionDoc),
				Sort:        dataapi.Sort(sortDoc),
				PageSize:    pageSize,
				PageNumber:  pageNumber,
			})
			if !result.OK() {
				return operationFailed(dataapi.ActionFind, result.Error)
			}

			return renderDocuments(cmd.OutOrStdout(), result.Data, result.Data.Documents)
		},
	}

	where.addFlags(cmd)
	cmd.Flags().StringVar(&filter, "filter", "", "query filter as JSON")
	cmd.Flags().StringVar(&projection, "projection", "", "projection as JSON")
	cmd.Flags().StringSliceVar(&sortFields, "sort", nil, "sort as field:1 or field:-1, repeatable and applied in order")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.DefaultPageSize, "documents per page")
	cmd.Flags().IntVar(&pageNumber, "page", constants.DefaultPageNumber, "page number, starting at 1")

	return cmd
}

func newInsertOneCommand() *cobra.Command {
	var (
		where    target
		document string
	)

	cmd := &cobra.Command{
		Use:   "insert-one",
		Short: "Insert a document",
		Long:  "Insert a single document into a collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := where.base()
			if err != nil {
				return err
			}

			doc, err := parseDocument(document)
			if err != nil {
				return err
			}

			if doc == nil {
				return constants.ErrDocumentRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result := client.InsertOne(ctx, dataapi.InsertOneRequest[dataapi.Document]{
				BaseRequest: base,
				Document:    dataapi.Document(doc),
			})
			if !result.OK() {
				return operationFailed(dataapi.ActionInsertOne, result.Error)
			}

			return renderProperties(cmd.OutOrStdout(), result.Data, []Property{
				{Name: "Inserted ID", Value: formatCell(result.Data.InsertedID)},
			})
		},
	}

	where.addFlags(cmd)
	cmd.Flags().StringVar(&document, "document", "", "document as JSON (required)")

	return cmd
}

func newInsertManyCommand() *cobra.Command {
	var (
		where     target
		documents string
	)

	cmd := &cobra.Command{
		Use:   "insert-many",
		Short: "Insert documents",
		Long:  "Insert a JSON array of documents into a collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := where.base()
			if err != nil {
				return err
			}

			if documents == "" {
				return constants.ErrDocumentsRequired
			}

			docs, err := parseDocumentList(documents)
			if err != nil {
				return err
			}

			request := dataapi.InsertManyRequest[dataapi.Document]{
				BaseRequest: base,
				Documents:   make([]dataapi.Document, 0, len(docs)),
			}
			for _, doc := range docs {
				request.Documents = append(request.Documents, dataapi.Document(doc))
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result := client.InsertMany(ctx, request)
			if !result.OK() {
				return operationFailed(dataapi.ActionInsertMany, result.Error)
			}

			return renderProperties(cmd.OutOrStdout(), result.Data, []Property{
				{Name: "Inserted", Value: strconv.Itoa(len(result.Data.InsertedIDs))},
				{Name: "Inserted IDs", Value: formatIDs(result.Data.InsertedIDs)},
			})
		},
	}

	where.addFlags(cmd)
	cmd.Flags().StringVar(&documents, "documents", "", "JSON array of documents (required)")

	return cmd
}

// updateFlags are shared by update-one and update-many.
type updateFlags struct {
	where  target
	filter string
	update string
	upsert bool
}

func (f *updateFlags) addFlags(cmd *cobra.Command) {
	f.where.addFlags(cmd)
	cmd.Flags().StringVar(&f.filter, "filter", "", "query filter as JSON (required)")
	cmd.Flags().StringVar(&f.update, "update", "", "update document as JSON, e.g. {\"$set\": {...}} (required)")
	cmd.Flags().BoolVar(&f.upsert, "upsert", false, "insert a document when none matches")
}

func (f *updateFlags) parse() (dataapi.BaseRequest, dataapi.Filter, dataapi.Update, error) {
	base, err := f.where.base()
	if err != nil {
		return base, nil, nil, err
	}

	if f.filter == "" {
		return base, nil, nil, constants.ErrFilterRequired
	}

	if f.update == "" {
		return base, nil, nil, constants.ErrUpdateRequired
	}

	filterDoc, err := parseDocument(f.filter)
	if err != nil {
		return base, nil, nil, err
	}

	updateDoc, err := parseDocument(f.update)
	if err != nil {
		return base, nil, nil, err
	}

	return base, dataapi.Filter(filterDoc), dataapi.Update(updateDoc), nil
}

func formatIDs(ids []interface{}) string {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, formatCell(id))
	}

	return strings.Join(values, ", ")
}

func updateProperties(response *dataapi.UpdateResponse) []Property {
	return []Property{
		{Name: "Matched", Value: strconv.Itoa(response.MatchedCount)},
		{Name: "Modified", Value: strconv.Itoa(response.ModifiedCount)},
		{Name: "Upserted ID", Value: valueOrNA(formatCell(response.UpsertedID))},
	}
}

func newUpdateOneCommand() *cobra.Command {
	var flags updateFlags

	cmd := &cobra.Command{
		Use:   "update-one",
		Short: "Update a document",
		Long:  "Apply an update to the first document matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, filter, update, err := flags.parse()
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result := client.UpdateOne(ctx, dataapi.UpdateOneRequest{
				BaseRequest: base,
				Filter:      filter,
				Update:      update,
				Upsert:      flags.upsert,
			})
			if !result.OK() {
				return operationFailed(dataapi.ActionUpdateOne, result.Error)
			}

			return renderProperties(cmd.OutOrStdout(), result.Data, updateProperties(result.Data))
		},
	}

	flags.addFlags(cmd)

	return cmd
}

func newUpdateManyCommand() *cobra.Command {
	var flags updateFlags

	cmd := &cobra.Command{
		Use:   "update-many",
		Short: "Update documents",
		Long:  "Apply an update to every document matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, filter, update, err := flags.parse()
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result := client.UpdateMany(ctx, dataapi.UpdateManyRequest{
				BaseRequest: base,
				Filter:      filter,
				Update:      update,
				Upsert:      flags.upsert,
			})
			if !result.OK() {
				return operationFailed(dataapi.ActionUpdateMany, result.Error)
			}

			return renderProperties(cmd.OutOrStdout(), result.Data, updateProperties(result.Data))
		},
	}

	flags.addFlags(cmd)

	return cmd
}

func newReplaceOneCommand() *cobra.Command {
	var (
		where       target
		filter      string
		replacement string
		upsert      bool
	)

	cmd := &cobra.Command{
		Use:   "replace-one",
		Short: "Replace a document",
		Long:  "Replace the first document matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := where.base()
			if err != nil {
				return err
			}

			if filter == "" {
				return constants.ErrFilterRequired
			}

			filterDoc, err := parseDocument(filter)
			if err != nil {
				return err
			}

			replacementDoc, err := parseDocument(replacement)
			if err != nil {
				return err
			}

			if replacementDoc == nil {
				return constants.ErrDocumentRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result := client.ReplaceOne(ctx, dataapi.ReplaceOneRequest[dataapi.Document]{
				BaseRequest: base,
				Filter:      dataapi.Filter(filterDoc),
				Replacement: dataapi.Document(replacementDoc),
				Upsert:      upsert,
			})
			if !result.OK() {
				return operationFailed(dataapi.ActionReplaceOne, result.Error)
			}

			return renderProperties(cmd.OutOrStdout(), result.Data, updateProperties(result.Data))
		},
	}

	where.addFlags(cmd)
	cmd.Flags().StringVar(&filter, "filter", "", "query filter as JSON (required)")
	cmd.Flags().StringVar(&replacement, "replacement", "", "replacement document as JSON (required)")
	cmd.Flags().BoolVar(&upsert, "upsert", false, "insert the replacement when no document matches")

	return cmd
}

func newDeleteOneCommand() *cobra.Command {
	var (
		where  target
		filter string
	)

	cmd := &cobra.Command{
		Use:   "delete-one",
		Short: "Delete a document",
		Long:  "Delete the first document matching a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := where.base()
			if err != nil {
				return err
			}

			if filter == "" {
				return constants.ErrFilterRequired
			}

			filterDoc, err := parseDocument(filter)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result := client.DeleteOne(ctx, dataapi.DeleteOneRequest{BaseRequest: base, Filter: dataapi.Filter(filterDoc)})
			if !result.OK() {
				return operationFailed(dataapi.ActionDeleteOne, result.Error)
			}

			return renderProperties(cmd.OutOrStdout(), result.Data, []Property{
				{Name: "Deleted", Value: strconv.Itoa(result.Data.DeletedCount)},
			})
		},
	}

	where.addFlags(cmd)
	cmd.Flags().StringVar(&filter, "filter", "", "query filter as JSON (required)")

	return cmd
}

func newDeleteManyCommand() *cobra.Command {
	var (
		where  target
		filter string
	)

	cmd := &cobra.Command{
		Use:   "delete-many",
		Short: "Delete documents",
		Long:  "Delete every document matching a filter. Pass --filter '{}' to empty the collection.",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := where.base()
			if err != nil {
				return err
			}

			if filter == "" {
				return constants.ErrFilterRequired
			}

			filterDoc, err := parseDocument(filter)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result := client.DeleteMany(ctx, dataapi.DeleteManyRequest{BaseRequest: base, Filter: dataapi.Filter(filterDoc)})
			if !result.OK() {
				return operationFailed(dataapi.ActionDeleteMany, result.Error)
			}

			return renderProperties(cmd.OutOrStdout(), result.Data, []Property{
				{Name: "Deleted", Value: strconv.Itoa(result.Data.DeletedCount)},
			})
		},
	}

	where.addFlags(cmd)
	cmd.Flags().StringVar(&filter, "filter", "", "query filter as JSON (required)")

	return cmd
}

func newAggregateCommand() *cobra.Command {
	var (
		where    target
		pipeline string
	)

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Run an aggregation pipeline",
		Long:  "Run a JSON array of aggregation stages against a collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := where.base()
			if err != nil {
				return err
			}

			if pipeline == "" {
				return constants.ErrPipelineRequired
			}

			stages, err := parsePipeline(pipeline)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result := client.Aggregate(ctx, dataapi.AggregateRequest{BaseRequest: base, Pipeline: dataapi.Pipeline(stages)})
			if !result.OK() {
				return operationFailed(dataapi.ActionAggregate, result.Error)
			}

			return renderDocuments(cmd.OutOrStdout(), result.Data, result.Data.Documents)
		},
	}

	where.addFlags(cmd)
	cmd.Flags().StringVar(&pipeline, "pipeline", "", "aggregation pipeline as a JSON array (required)")

	return cmd
}
