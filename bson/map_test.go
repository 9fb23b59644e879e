// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import (
	"reflect"
	"testing"
)

// Convert Map -> bson -> Map then compare Maps. Only covers values whose
// decoded form round-trips back to the same Go type; Undefined and
// DBPointer intentionally decode to something else (see
// TestMapLossyRoundTrip), and a nested Map decodes as a Document rather
// than a Map (TestMapNoNest checks the nested-document case), so neither
// belongs in this table.
var mapTest = []Map{
	{"Double": Double(123.123)},
	{"String": String("123")},
	{"Array": Array{String("foo"), String("bar")}},
	{"Binary": Binary{Subtype: 0x00, Data: []byte{0x00, 0x01}}},
	{"ObjectID": ObjectID{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00}},
	{"Bool": Bool(true), "false": Bool(false)},
	{"DateTime": DateTime(123)},
	{"Null": Null{}},
	{"Regex": Regex{Pattern: "foo", Options: "imx"}}, // already ascending; encode sorts flags
	{"JavaScript": JavaScript("foo")},
	{"Symbol": Symbol("foo")},
	{"CodeWithScope": CodeWithScope{Code: "foo", Scope: Document{{Key: "bar", Value: String("baz")}}}},
	{"Int32": Int32(123)},
	{"Timestamp": Timestamp{Increment: 1, Seconds: 123}},
	{"Int64": Int64(123)},
	{"MinKey": MinKey{}},
	{"MaxKey": MaxKey{}},
}

func TestMap(t *testing.T) {
	for _, d0 := range mapTest {
		bs, err := Serialize(d0.ToDocument(), false, false)
		if err != nil {
			t.Fatal(err, d0)
		}
		d1, err := bs.Map()
		if err != nil {
			t.Fatal(err, d0, d1)
		}
		if !reflect.DeepEqual(d0, d1) {
			t.Fatal(d0, d1)
		}
	}
}

// Undefined and DBPointer encode fine but decode to a different
// representation: Undefined collapses to Null (spec.md §4.4), and
// DBPointer is reconstituted as a DBRef.
func TestMapLossyRoundTrip(t *testing.T) {
	src := Map{"Undefined": Undefined{}}
	bs, err := Serialize(src.ToDocument(), false, false)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := bs.Map()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dst, Map{"Undefined": Null{}}) {
		t.Fatal(dst)
	}

	var oid ObjectID
	src = Map{"DBPointer": DBPointer{Namespace: "foo", ID: oid}}
	bs, err = Serialize(src.ToDocument(), false, false)
	if err != nil {
		t.Fatal(err)
	}
	dst, err = bs.Map()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dst, Map{"DBPointer": DBRef{Collection: "foo", ID: oid}}) {
		t.Fatal(dst)
	}
}

func TestMapNoNest(t *testing.T) {
	nest := Document{{Key: "abc", Value: Int64(123)}}
	src := Map{
		"foo":  String("bar"),
		"nest": nest,
	}
	bs, err := Serialize(src.ToDocument(), false, false)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := bs.Map()
	if err != nil {
		t.Fatal(err)
	}
	nestedBSON, err := Serialize(nest, false, false)
	if err != nil {
		t.Fatal(err)
	}
	nestedDoc, err := Deserialize(nestedBSON)
	if err != nil {
		t.Fatal(err)
	}
	exp := Map{
		"foo":  String("bar"),
		"nest": nestedDoc,
	}
	if !reflect.DeepEqual(dst, exp) {
		t.Fatal(dst)
	}
}
