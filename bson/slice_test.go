// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import (
	"reflect"
	"testing"
)

// Convert Document -> bson -> Document then compare. Mirrors mapTest but
// exercises Serialize/Deserialize directly (no Map indirection), so it
// also pins down ordering: the decoded Document's Pair order must match
// the source exactly.
var docTest = []Document{
	{{Key: "Double", Value: Double(123.123)}},
	{{Key: "String", Value: String("123")}},
	{{Key: "embed", Value: Document{{Key: "foo", Value: String("bar")}}}},
	{{Key: "Array", Value: Array{String("foo"), String("bar")}}},
	{{Key: "Binary", Value: Binary{Subtype: 0x00, Data: []byte{0x00, 0x01}}}},
	{{Key: "ObjectID", Value: ObjectID{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00}}},
	{{Key: "Bool", Value: Bool(true)}, {Key: "false", Value: Bool(false)}},
	{{Key: "DateTime", Value: DateTime(123)}},
	{{Key: "Null", Value: Null{}}},
	{{Key: "Regex", Value: Regex{Pattern: "foo", Options: "imx"}}}, // already ascending; encode sorts flags
	{{Key: "JavaScript", Value: JavaScript("foo")}},
	{{Key: "Symbol", Value: Symbol("foo")}},
	{{Key: "Int32", Value: Int32(123)}},
	{{Key: "Timestamp", Value: Timestamp{Increment: 1, Seconds: 123}}},
	{{Key: "Int64", Value: Int64(123)}},
	{{Key: "MinKey", Value: MinKey{}}},
	{{Key: "MaxKey", Value: MaxKey{}}},
	{{Key: "a", Value: Int32(1)}, {Key: "b", Value: Int32(2)}, {Key: "c", Value: Int32(3)}},
}

func TestDocument(t *testing.T) {
	for _, d0 := range docTest {
		bs, err := Serialize(d0, false, false)
		if err != nil {
			t.Fatal(err, d0)
		}
		d1, err := Deserialize(bs)
		if err != nil {
			t.Fatal(err, d0, d1)
		}
		if !reflect.DeepEqual(d0, d1) {
			t.Fatal(d0, d1)
		}
	}
}

func TestDocumentNestedPreservesOrder(t *testing.T) {
	nest := Document{{Key: "abc", Value: Int64(123)}}
	src := Document{
		{Key: "foo", Value: String("bar")},
		{Key: "nest", Value: nest},
	}
	bs, err := Serialize(src, false, false)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := Deserialize(bs)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dst, src) {
		t.Fatal(dst)
	}
}

func TestMoveIDToFront(t *testing.T) {
	src := Document{
		{Key: "foo", Value: String("bar")},
		{Key: "_id", Value: Int32(1)},
		{Key: "baz", Value: String("qux")},
	}
	bs, err := Serialize(src, false, true)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := Deserialize(bs)
	if err != nil {
		t.Fatal(err)
	}
	exp := Document{
		{Key: "_id", Value: Int32(1)},
		{Key: "foo", Value: String("bar")},
		{Key: "baz", Value: String("qux")},
	}
	if !reflect.DeepEqual(dst, exp) {
		t.Fatal(dst)
	}
}

func TestNestedDBRefDecodesToDBRefValue(t *testing.T) {
	ref := Document{
		{Key: "$ref", Value: String("coll")},
		{Key: "$id", Value: Int32(1)},
	}
	src := Document{{Key: "owner", Value: ref}}
	bs, err := Serialize(src, false, false)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := Deserialize(bs)
	if err != nil {
		t.Fatal(err)
	}
	exp := Document{{Key: "owner", Value: DBRef{Collection: "coll", ID: Int32(1)}}}
	if !reflect.DeepEqual(dst, exp) {
		t.Fatal(dst)
	}
}

func TestCheckKeysRejectsDollarPrefix(t *testing.T) {
	src := Document{{Key: "$bad", Value: Int32(1)}}
	if _, err := Serialize(src, true, false); err == nil {
		t.Fatal("expected error for $-prefixed key under checkKeys")
	}
}

func TestCheckKeysRejectsDot(t *testing.T) {
	src := Document{{Key: "a.b", Value: Int32(1)}}
	if _, err := Serialize(src, true, false); err == nil {
		t.Fatal("expected error for dotted key under checkKeys")
	}
}

func TestDuplicateIDRejectedWhenMovingID(t *testing.T) {
	src := Document{
		{Key: "_id", Value: Int32(1)},
		{Key: "_id", Value: Int32(2)},
	}
	if _, err := Serialize(src, false, true); err == nil {
		t.Fatal("expected error for duplicate _id with moveID")
	}
}
