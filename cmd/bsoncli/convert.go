package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alex-klepa/mongo-ruby-driver-go/bson"
)

// jsonToMap decodes a JSON object into a bson.Map. Go's encoding/json
// backs object decoding with a plain map, so key order from the input
// is not preserved here; bsoncli encode is a debugging aid, not a
// order-sensitive pipeline.
func jsonToMap(b []byte) (bson.Map, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}
	return coerceMap(raw), nil
}

func coerceMap(raw map[string]interface{}) bson.Map {
	m := make(bson.Map, len(raw))
	for k, v := range raw {
		m[k] = coerceJSONValue(v)
	}
	return m
}

func coerceJSONValue(v interface{}) interface{} {
	switch vt := v.(type) {
	case map[string]interface{}:
		return coerceMap(vt)
	case []interface{}:
		arr := make(bson.Array, len(vt))
		for i, e := range vt {
			arr[i] = coerceJSONValue(e)
		}
		return arr
	case float64:
		return vt
	default:
		return v
	}
}

// documentToJSON renders a Document as JSON, preserving Pair order by
// writing the object body directly instead of going through
// encoding/json's map-backed object encoder.
func documentToJSON(d bson.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocumentJSON(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeDocumentJSON(buf *bytes.Buffer, d bson.Document) error {
	buf.WriteByte('{')
	for i, p := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(p.Key)
		if err != nil {
			return err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		if err := writeValueJSON(buf, p.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeValueJSON(buf *bytes.Buffer, v interface{}) error {
	switch vt := v.(type) {
	case bson.Document:
		return writeDocumentJSON(buf, vt)
	case bson.Array:
		buf.WriteByte('[')
		for i, e := range vt {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValueJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case bson.Double:
		return writeJSONMarshal(buf, float64(vt))
	case bson.String:
		return writeJSONMarshal(buf, string(vt))
	case bson.Binary:
		return writeJSONMarshal(buf, map[string]interface{}{
			"$binary":  base64.StdEncoding.EncodeToString(vt.Data),
			"$subtype": vt.Subtype,
		})
	case bson.Undefined:
		buf.WriteString("null")
		return nil
	case bson.ObjectID:
		return writeJSONMarshal(buf, map[string]string{"$oid": vt.Hex()})
	case bson.Bool:
		return writeJSONMarshal(buf, bool(vt))
	case bson.DateTime:
		return writeJSONMarshal(buf, map[string]int64{"$date": int64(vt)})
	case bson.Null:
		buf.WriteString("null")
		return nil
	case bson.Regex:
		return writeJSONMarshal(buf, map[string]string{"$regex": vt.Pattern, "$options": vt.Options})
	case bson.DBRef:
		return writeJSONMarshal(buf, map[string]interface{}{"$ref": vt.Collection, "$id": fmt.Sprint(vt.ID)})
	case bson.JavaScript:
		return writeJSONMarshal(buf, map[string]string{"$code": string(vt)})
	case bson.Symbol:
		return writeJSONMarshal(buf, string(vt))
	case bson.CodeWithScope:
		buf.WriteString(`{"$code":`)
		codeBytes, err := json.Marshal(string(vt.Code))
		if err != nil {
			return err
		}
		buf.Write(codeBytes)
		buf.WriteString(`,"$scope":`)
		if err := writeDocumentJSON(buf, vt.Scope); err != nil {
			return err
		}
		buf.WriteByte('}')
		return nil
	case bson.Int32:
		return writeJSONMarshal(buf, int32(vt))
	case bson.Timestamp:
		return writeJSONMarshal(buf, map[string]uint32{"i": vt.Increment, "t": vt.Seconds})
	case bson.Int64:
		return writeJSONMarshal(buf, int64(vt))
	case bson.MinKey:
		return writeJSONMarshal(buf, map[string]int{"$minKey": 1})
	case bson.MaxKey:
		return writeJSONMarshal(buf, map[string]int{"$maxKey": 1})
	case time.Time:
		return writeJSONMarshal(buf, vt)
	case nil:
		buf.WriteString("null")
		return nil
	default:
		return writeJSONMarshal(buf, vt)
	}
}

func writeJSONMarshal(buf *bytes.Buffer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
