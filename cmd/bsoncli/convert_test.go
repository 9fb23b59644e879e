package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-klepa/mongo-ruby-driver-go/bson"
)

func TestJSONRoundTrip(t *testing.T) {
	input := []byte(`{"name":"kodiak","count":3,"nested":{"a":1},"tags":["x","y"]}`)

	m, err := jsonToMap(input)
	require.NoError(t, err)

	doc, err := bson.Serialize(m.ToDocument(), false, false)
	require.NoError(t, err)

	decoded, err := bson.Deserialize(doc)
	require.NoError(t, err)

	out, err := documentToJSON(decoded)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"name":"kodiak"`)
	assert.Contains(t, string(out), `"count":3`)
}

func TestDocumentToJSONPreservesOrder(t *testing.T) {
	doc := bson.Document{
		{Key: "b", Value: bson.Int32(2)},
		{Key: "a", Value: bson.Int32(1)},
	}
	out, err := documentToJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":1}`, string(out))
}
