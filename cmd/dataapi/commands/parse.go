package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/fivetwenty-io/dataapi/internal/constants"
)

// readInput returns value, or the contents of the named file when value has
// the form @path.
func readInput(value string) (string, error) {
	if !strings.HasPrefix(value, "@") {
		return value, nil
	}

	path := strings.TrimPrefix(value, "@")

	// #nosec G304 -- the path is supplied by the user running the CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return string(data), nil
}

// parseDocument parses a relaxed Extended JSON object. An empty input yields
// a nil document.
func parseDocument(value string) (bson.M, error) {
	input, err := readInput(value)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	var doc bson.M

	err = bson.UnmarshalExtJSON([]byte(input), false, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidJSONInput, err)
	}

	return doc, nil
}

// parseDocumentList parses a relaxed Extended JSON array of objects.
func parseDocumentList(value string) ([]bson.M, error) {
	var wrapper struct {
		Items []bson.M `bson:"items"`
	}

	err := parseArray(value, &wrapper)
	if err != nil {
		return nil, err
	}

	return wrapper.Items, nil
}

// parsePipeline parses a relaxed Extended JSON array of stages, keeping the
// key order of every stage.
func parsePipeline(value string) ([]bson.D, error) {
	var wrapper struct {
		Items []bson.D `bson:"items"`
	}

	err := parseArray(value, &wrapper)
	if err != nil {
		return nil, err
	}

	return wrapper.Items, nil
}

// parseArray decodes a top-level array by wrapping it in a document, since
// Extended JSON input must be a document.
func parseArray(value string, wrapper interface{}) error {
	input, err := readInput(value)
	if err != nil {
		return err
	}

	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "[") {
		return fmt.Errorf("%w: expected a JSON array", constants.ErrInvalidJSONInput)
	}

	err = bson.UnmarshalExtJSON([]byte(`{"items":`+input+`}`), false, wrapper)
	if err != nil {
		return fmt.Errorf("%w: %w", constants.ErrInvalidJSONInput, err)
	}

	return nil
}

// parseSort turns field:direction pairs into an ordered sort document.
func parseSort(values []string) (bson.D, error) {
	if len(values) == 0 {
		return nil, nil
	}

	sort := make(bson.D, 0, len(values))

	for _, value := range values {
		field, direction, found := strings.Cut(value, ":")
		if !found || field == "" {
			return nil, fmt.Errorf("%w: %s", constants.ErrInvalidSortArgument, value)
		}

		order, err := strconv.Atoi(direction)
		if err != nil || (order != 1 && order != -1) {
			return nil, fmt.Errorf("%w: %s", constants.ErrInvalidSortArgument, value)
		}

		sort = append(sort, bson.E{Key: field, Value: order})
	}

	return sort, nil
}
