package dataapi

import (
	"bytes"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Document is a schemaless document as stored in a collection.
type Document bson.M

// Filter is a query document selecting the documents an action applies to.
type Filter bson.M

// Projection selects the fields returned by find actions.
type Projection bson.M

// Update is an update document, usually built from operators such as $set.
type Update bson.M

// Sort is an ordered sort specification. Key order is preserved on the wire.
type Sort bson.D

// Pipeline is an ordered sequence of aggregation stages.
type Pipeline []bson.D

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	return marshalMap(bson.M(d))
}

// UnmarshalJSON implements json.Unmarshaler. The input is read as relaxed
// Extended JSON, so {"$oid": ...} becomes a primitive.ObjectID and integers
// keep their integer type.
func (d *Document) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = nil

		return nil
	}

	var m bson.M

	err := bson.UnmarshalExtJSON(data, false, &m)
	if err != nil {
		return fmt.Errorf("decoding extended JSON: %w", err)
	}

	*d = Document(m)

	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Filter) MarshalJSON() ([]byte, error) {
	return marshalMap(bson.M(f))
}

// MarshalJSON implements json.Marshaler.
func (p Projection) MarshalJSON() ([]byte, error) {
	return marshalMap(bson.M(p))
}

// MarshalJSON implements json.Marshaler.
func (u Update) MarshalJSON() ([]byte, error) {
	return marshalMap(bson.M(u))
}

// MarshalJSON implements json.Marshaler.
func (s Sort) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("{}"), nil
	}

	return marshalExtJSON(bson.D(s))
}

// MarshalJSON implements json.Marshaler.
func (p Pipeline) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('[')

	for i, stage := range p {
		if i > 0 {
			buf.WriteByte(',')
		}

		if len(stage) == 0 {
			buf.WriteString("{}")

			continue
		}

		data, err := marshalExtJSON(stage)
		if err != nil {
			return nil, fmt.Errorf("encoding pipeline stage %d: %w", i, err)
		}

		buf.Write(data)
	}

	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// marshalMap encodes both nil and empty maps as {}.
func marshalMap(m bson.M) ([]byte, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}

	return marshalExtJSON(m)
}

func marshalExtJSON(doc interface{}) ([]byte, error) {
	data, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return nil, fmt.Errorf("encoding extended JSON: %w", err)
	}

	return data, nil
}
