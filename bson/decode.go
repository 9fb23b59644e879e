// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package bson

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// deserializeTop implements spec.md §4.4: consume exactly one top-level
// BSON document.
func deserializeTop(b BSON) (Document, error) {
	rd := bufio.NewReader(bytes.NewReader(b))
	return decodeDocument(rd)
}

// decodeDocument reads one document body (length prefix through the
// trailing NUL) and returns it in wire order.
//
// DBRef detection: per spec.md §4.4 and Design Notes, a document whose
// first key is "$ref" and second key is "$id" is reconstructed as a
// DBRef, returned as the single-pair Document {"$ref": DBRef}
// (decodeEmbeddedValue unwraps it for nested values). Fragile but
// load-bearing; preserved exactly as the spec requires.
func decodeDocument(rdTmp io.Reader) (Document, error) {
	docLen, err := readInt32(rdTmp)
	if err != nil {
		return nil, decodeErrorf("reading document length: %v", err)
	}
	if docLen < 5 {
		return nil, decodeErrorf("document length %d too small", docLen)
	}
	rd := bufio.NewReader(io.LimitReader(rdTmp, int64(docLen-4)))

	dst := make(Document, 0, 8)
	for i := 0; ; i++ {
		tag, err := rd.ReadByte()
		if err != nil {
			return nil, decodeErrorf("reading element tag: %v", err)
		}
		if tag == 0x00 {
			return dst, nil
		}

		name, err := readCstring(rd)
		if err != nil {
			return nil, decodeErrorf("reading element name: %v", err)
		}

		val, err := decodeValue(rd, tag)
		if err != nil {
			return nil, err
		}

		if i == 0 && name == "$ref" {
			dbref, next, ok, err := finishDBRef(rd, val)
			if err != nil {
				return nil, err
			}
			if ok {
				return Document{{Key: name, Value: dbref}}, nil
			}
			// Not actually a DBRef (no "$id" followed): keep "$ref" and
			// the element finishDBRef read in its place, then carry on.
			dst = append(dst, Pair{Key: name, Value: val})
			if next == nil {
				return dst, nil
			}
			name, val = next.Key, next.Value
		}

		dst = append(dst, Pair{Key: name, Value: val})
	}
}

// finishDBRef attempts to read the "$id" field that must immediately
// follow "$ref" for this to be a real DBRef. Returns ok=false if the next
// field isn't named "$id"; that field is then returned as next, or next
// is nil when the document ended right after "$ref".
func finishDBRef(rd *bufio.Reader, ref interface{}) (DBRef, *Pair, bool, error) {
	refName, _ := ref.(String)
	idTag, err := rd.ReadByte()
	if err != nil {
		return DBRef{}, nil, false, decodeErrorf("reading $id tag: %v", err)
	}
	if idTag == 0x00 {
		return DBRef{}, nil, false, nil
	}
	idName, err := readCstring(rd)
	if err != nil {
		return DBRef{}, nil, false, decodeErrorf("reading $id name: %v", err)
	}
	idVal, err := decodeValue(rd, idTag)
	if err != nil {
		return DBRef{}, nil, false, err
	}
	if idName != "$id" {
		return DBRef{}, &Pair{Key: idName, Value: idVal}, false, nil
	}
	if _, err := drainDocument(rd); err != nil {
		return DBRef{}, nil, false, err
	}
	return DBRef{Collection: string(refName), ID: idVal}, nil, true, nil
}

// drainDocument consumes any elements remaining after $ref/$id in a
// DBRef document; real DBRef documents have none, but this tolerates
// extras instead of failing closed.
func drainDocument(rd *bufio.Reader) (Document, error) {
	var extra Document
	for {
		tag, err := rd.ReadByte()
		if err != nil {
			return nil, decodeErrorf("reading element tag: %v", err)
		}
		if tag == 0x00 {
			return extra, nil
		}
		name, err := readCstring(rd)
		if err != nil {
			return nil, decodeErrorf("reading element name: %v", err)
		}
		val, err := decodeValue(rd, tag)
		if err != nil {
			return nil, err
		}
		extra = append(extra, Pair{Key: name, Value: val})
	}
}

// decodeEmbeddedValue decodes an embedded document element. A document
// whose first key is "$ref" decodes to a DBRef (see decodeDocument); as
// an element value that DBRef must be surfaced directly rather than
// wrapped in the single-pair Document decodeDocument returns, per
// spec.md §4.4's "instead of a plain document".
func decodeEmbeddedValue(rd *bufio.Reader) (interface{}, error) {
	doc, err := decodeDocument(rd)
	if err != nil {
		return nil, err
	}
	if len(doc) == 1 && doc[0].Key == "$ref" {
		if ref, ok := doc[0].Value.(DBRef); ok {
			return ref, nil
		}
	}
	return doc, nil
}

// decodeValue dispatches on tag per spec.md §4.4, the mirror of
// encodeElement.
func decodeValue(rd *bufio.Reader, tag byte) (v interface{}, err error) {
	defer func() {
		// A truncated payload surfaces from io as EOF; report it as
		// ErrDecodeError like every other malformed input.
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = decodeErrorf("reading value for tag 0x%02X: %v", tag, err)
		}
	}()
	switch tag {
	case tagDouble:
		return decodeDouble(rd)
	case tagString:
		s, err := readString(rd)
		return String(s), err
	case tagEmbeddedDoc:
		return decodeEmbeddedValue(rd)
	case tagArray:
		return decodeArray(rd)
	case tagBinary:
		return decodeBinary(rd)
	case tagUndefined:
		// Deprecated; decodes to Null per spec.md §4.4.
		return Null{}, nil
	case tagObjectID:
		return decodeObjectID(rd)
	case tagBoolean:
		return decodeBool(rd)
	case tagDateTime:
		i64, err := readInt64(rd)
		return DateTime(i64), err
	case tagNull:
		return Null{}, nil
	case tagRegex:
		return decodeRegex(rd)
	case tagDBPointer:
		return decodeDBPointer(rd)
	case tagJavaScript:
		s, err := readString(rd)
		return JavaScript(s), err
	case tagSymbol:
		s, err := readString(rd)
		return Symbol(s), err
	case tagCodeWithScope:
		return decodeCodeWithScope(rd)
	case tagInt32:
		i32, err := readInt32(rd)
		return Int32(i32), err
	case tagTimestamp:
		return decodeTimestamp(rd)
	case tagInt64:
		i64, err := readInt64(rd)
		return Int64(i64), err
	case tagMinKey:
		return MinKey{}, nil
	case tagMaxKey:
		return MaxKey{}, nil
	}
	return nil, decodeErrorf("unsupported tag 0x%02X", tag)
}

// decodeArray reads a document and discards the numeric keys, keeping
// wire order (spec.md §4.4's "discard the keys, preserving value
// order").
func decodeArray(rd *bufio.Reader) (Array, error) {
	doc, err := decodeDocument(rd)
	if err != nil {
		return nil, err
	}
	arr := make(Array, len(doc))
	for i, p := range doc {
		arr[i] = p.Value
	}
	return arr, nil
}

func decodeBinary(rd *bufio.Reader) (Binary, error) {
	outerLen, err := readInt32(rd)
	if err != nil {
		return Binary{}, decodeErrorf("reading binary length: %v", err)
	}
	subtype, err := rd.ReadByte()
	if err != nil {
		return Binary{}, decodeErrorf("reading binary subtype: %v", err)
	}
	var payloadLen int32
	if subtype == legacyBinarySubtype {
		innerLen, err := readInt32(rd)
		if err != nil {
			return Binary{}, decodeErrorf("reading legacy binary inner length: %v", err)
		}
		if innerLen != outerLen-4 {
			return Binary{}, decodeErrorf("legacy binary inner length %d does not match outer length %d", innerLen, outerLen)
		}
		payloadLen = innerLen
	} else {
		payloadLen = outerLen
	}
	b := make([]byte, payloadLen)
	if _, err := io.ReadFull(rd, b); err != nil {
		return Binary{}, decodeErrorf("reading binary payload: %v", err)
	}
	return Binary{Subtype: subtype, Data: b}, nil
}

func decodeBool(rd *bufio.Reader) (Bool, error) {
	b, err := rd.ReadByte()
	if err != nil {
		return false, decodeErrorf("reading bool: %v", err)
	}
	return Bool(b == 0x01), nil
}

func decodeDBPointer(rd *bufio.Reader) (DBRef, error) {
	ns, err := readString(rd)
	if err != nil {
		return DBRef{}, decodeErrorf("reading DBPointer namespace: %v", err)
	}
	b := make([]byte, 12)
	if _, err := io.ReadFull(rd, b); err != nil {
		return DBRef{}, decodeErrorf("reading DBPointer id: %v", err)
	}
	var oid ObjectID
	copy(oid[:], b)
	return DBRef{Collection: ns, ID: oid}, nil
}

func decodeDouble(rd *bufio.Reader) (Double, error) {
	b := make([]byte, 8)
	if _, err := io.ReadFull(rd, b); err != nil {
		return 0, decodeErrorf("reading double: %v", err)
	}
	return Double(math.Float64frombits(binary.LittleEndian.Uint64(b))), nil
}

func decodeObjectID(rd *bufio.Reader) (ObjectID, error) {
	var oid ObjectID
	if _, err := io.ReadFull(rd, oid[:]); err != nil {
		return oid, decodeErrorf("reading object id: %v", err)
	}
	return oid, nil
}

// decodeRegex returns the pattern and the flag letters exactly as read,
// all of them in Options; no letter is mapped to a regexp engine mode
// and none is split out from the others.
func decodeRegex(rd *bufio.Reader) (Regex, error) {
	pattern, err := readCstring(rd)
	if err != nil {
		return Regex{}, decodeErrorf("reading regex pattern: %v", err)
	}
	options, err := readCstring(rd)
	if err != nil {
		return Regex{}, decodeErrorf("reading regex options: %v", err)
	}
	return Regex{Pattern: pattern, Options: options}, nil
}

func decodeCodeWithScope(rd *bufio.Reader) (CodeWithScope, error) {
	if _, err := readInt32(rd); err != nil { // total length, unused on read
		return CodeWithScope{}, decodeErrorf("reading code_w_s length: %v", err)
	}
	code, err := readString(rd)
	if err != nil {
		return CodeWithScope{}, decodeErrorf("reading code_w_s code: %v", err)
	}
	scope, err := decodeDocument(rd)
	if err != nil {
		return CodeWithScope{}, err
	}
	return CodeWithScope{Code: code, Scope: scope}, nil
}

func decodeTimestamp(rd *bufio.Reader) (Timestamp, error) {
	b := make([]byte, 8)
	if _, err := io.ReadFull(rd, b); err != nil {
		return Timestamp{}, decodeErrorf("reading timestamp: %v", err)
	}
	return Timestamp{
		Increment: binary.LittleEndian.Uint32(b[0:4]),
		Seconds:   binary.LittleEndian.Uint32(b[4:8]),
	}, nil
}

// readCstring reads a NUL-terminated string. Not a BSON element itself.
func readCstring(rd *bufio.Reader) (string, error) {
	s, err := rd.ReadString(0x00)
	if err != nil {
		return "", err
	}
	return s[:len(s)-1], nil
}

func readInt32(rd io.Reader) (int32, error) {
	var b [4]byte
	if _, err := io.ReadFull(rd, b[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b[:])), nil
}

func readInt64(rd io.Reader) (int64, error) {
	var b [8]byte
	if _, err := io.ReadFull(rd, b[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// readString reads a BSON length-prefixed string. Not a BSON element
// itself.
func readString(rd *bufio.Reader) (string, error) {
	sLen, err := readInt32(rd)
	if err != nil {
		return "", err
	}
	if sLen <= 0 {
		return "", decodeErrorf("invalid string length %d", sLen)
	}
	b := make([]byte, sLen)
	if _, err := io.ReadFull(rd, b); err != nil {
		return "", err
	}
	if b[len(b)-1] != 0x00 {
		return "", decodeErrorf("string missing NUL terminator")
	}
	return string(b[:len(b)-1]), nil
}

func decodeErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDecodeError, fmt.Sprintf(format, args...))
}
