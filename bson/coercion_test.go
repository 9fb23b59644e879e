package bson

import (
	"reflect"
	"testing"
	"time"
)

func TestEncodeCoercion(t *testing.T) {
	now := time.Now()
	src := Map{
		"null":    nil,
		"bool":    true,
		"int":     int(123),
		"int8":    int8(123),
		"int16":   int16(123),
		"int32":   int32(123),
		"int64":   int64(123),
		"float64": float64(123.123),
		"string":  "foo",
		"gotime":  now,
	}
	exp := Map{
		"null":    Null{},
		"bool":    Bool(true),
		"int":     Int32(123), // fits in int32, the narrowest container
		"int8":    Int32(123),
		"int16":   Int32(123),
		"int32":   Int32(123),
		"int64":   Int32(123), // same narrowing applies to int64 values
		"float64": Double(123.123),
		"string":  String("foo"),
		"gotime":  DateTime(now.UnixNano() / 1000 / 1000),
	}
	bs, err := Serialize(src.ToDocument(), false, false)
	if err != nil {
		t.Fatal(err, src)
	}
	dst, err := bs.Map()
	if err != nil {
		t.Fatal(err, dst, exp)
	}
	if !reflect.DeepEqual(dst, exp) {
		t.Fatal(dst, exp)
	}
}
