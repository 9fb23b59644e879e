// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package bson

import (
	"bytes"
	"fmt"
	"time"
)

// BSON is a raw, already-encoded document.
type BSON []byte

// Serialize encodes doc to BSON. checkKeys and moveID implement
// spec.md §4.3's key-validation and _id-reordering rules.
func Serialize(doc Document, checkKeys, moveID bool) (BSON, error) {
	return serializeTop(doc, checkKeys, moveID)
}

// Deserialize decodes exactly one top-level BSON document.
func Deserialize(b BSON) (Document, error) {
	return deserializeTop(b)
}

// Map decodes b to a Map, discarding key order. A convenience for
// callers that don't need Document's ordering guarantee.
func (b BSON) Map() (Map, error) {
	doc, err := Deserialize(b)
	if err != nil {
		return nil, err
	}
	m := make(Map, len(doc))
	for _, p := range doc {
		m[p.Key] = p.Value
	}
	return m, nil
}

// print renders a decoded or input value for debugging. Not used on
// the wire-format hot path.
func print(v interface{}) string {
	switch vt := v.(type) {
	case Document:
		return vt.String()
	case Map:
		return vt.String()
	case BSON:
		return fmt.Sprintf("BSON(%v)", []byte(vt))
	case Double:
		return fmt.Sprintf("Double(%v)", vt)
	case String:
		return fmt.Sprintf("String(%v)", vt)
	case Array:
		wr := bytes.NewBuffer(nil)
		fmt.Fprint(wr, "Array([")
		for i, vtv := range vt {
			fmt.Fprint(wr, print(vtv))
			if i != len(vt)-1 {
				fmt.Fprint(wr, " ")
			}
		}
		fmt.Fprintf(wr, "])")
		return wr.String()
	case Binary:
		return fmt.Sprintf("Binary(subtype=%d, %v)", vt.Subtype, vt.Data)
	case Undefined:
		return "Undefined()"
	case ObjectID:
		return fmt.Sprintf("ObjectID(%x)", vt)
	case Bool:
		return fmt.Sprintf("Bool(%v)", vt)
	case DateTime:
		return fmt.Sprintf("DateTime(%v)", time.UnixMilli(int64(vt)).UTC())
	case Null:
		return "Null()"
	case Regex:
		return fmt.Sprintf("Regex(Pattern(%v) Options(%v))", vt.Pattern, vt.Options)
	case DBPointer:
		return fmt.Sprintf("DBPointer(Namespace(%v) ObjectID(%x))", vt.Namespace, vt.ID)
	case DBRef:
		return fmt.Sprintf("DBRef(Collection(%v) ID(%v))", vt.Collection, print(vt.ID))
	case JavaScript:
		return fmt.Sprintf("JavaScript(%v)", vt)
	case Symbol:
		return fmt.Sprintf("Symbol(%v)", vt)
	case CodeWithScope:
		return fmt.Sprintf("CodeWithScope(Code(%v) Scope(%v))", vt.Code, vt.Scope)
	case Int32:
		return fmt.Sprintf("Int32(%v)", vt)
	case Timestamp:
		return fmt.Sprintf("Timestamp(inc=%d, secs=%d)", vt.Increment, vt.Seconds)
	case Int64:
		return fmt.Sprintf("Int64(%v)", vt)
	case MinKey:
		return "MinKey()"
	case MaxKey:
		return "MaxKey()"
	}
	return fmt.Sprint(v)
}

// String implements a debug pretty-printer; not part of the wire format.
func (m Map) String() string {
	wr := bytes.NewBuffer(nil)
	fmt.Fprint(wr, "Map[")
	for k, v := range m {
		fmt.Fprintf(wr, "%v: %v ", k, print(v))
	}
	fmt.Fprintf(wr, "]")
	return wr.String()
}

// String implements a debug pretty-printer; not part of the wire format.
func (d Document) String() string {
	wr := bytes.NewBuffer(nil)
	fmt.Fprint(wr, "Document[")
	for i, p := range d {
		fmt.Fprintf(wr, "%v: %v", p.Key, print(p.Value))
		if i != len(d)-1 {
			fmt.Fprint(wr, " ")
		}
	}
	fmt.Fprintf(wr, "]")
	return wr.String()
}
