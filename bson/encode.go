// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package bson

import (
	"encoding/binary"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// maxDocumentSize is the top-level encoded-size ceiling (spec.md §3.3).
const maxDocumentSize = 4 * 1024 * 1024

// legacyBinarySubtype is the deprecated "Binary (Old)" subtype whose
// payload carries an extra inner length (spec.md §4.3.1).
const legacyBinarySubtype = 0x02

// serializeTop is the entry point behind Serialize. It owns the byte
// buffer's lifecycle end to end: allocated here, released on every
// exit path (spec.md §3.4, §5).
func serializeTop(doc Document, checkKeys, moveID bool) (result BSON, err error) {
	buf := newByteBuffer()
	defer buf.release()
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
			result = nil
		}
	}()

	if moveID {
		if n := countKey(doc, "_id"); n > 1 {
			return nil, wrapDoc("multiple \"_id\" fields present")
		}
	}

	if encErr := encodeDocument(buf, doc, checkKeys, moveID, true); encErr != nil {
		return nil, encErr
	}

	result = make(BSON, buf.position())
	copy(result, buf.slice())
	return result, nil
}

func countKey(doc Document, key string) int {
	n := 0
	for _, p := range doc {
		if p.Key == key {
			n++
		}
	}
	return n
}

func wrapDoc(msg string) error {
	return &docError{msg: msg}
}

type docError struct {
	msg string
}

func (e *docError) Error() string { return "bson: " + e.msg }
func (e *docError) Unwrap() error { return ErrInvalidDocument }

// encodeDocument implements spec.md §4.3 steps 1-6. isTop gates the
// 4 MiB size check, which is transitive through nesting but only
// enforced once, at the top.
func encodeDocument(buf *byteBuffer, doc Document, checkKeys, moveID, isTop bool) error {
	start := buf.position()
	buf.reserve(4)

	if moveID {
		for _, p := range doc {
			if p.Key == "_id" {
				if err := encodeElement(buf, p.Key, p.Value, checkKeys, true); err != nil {
					return err
				}
				break
			}
		}
	}

	allowID := !moveID
	for _, p := range doc {
		if err := encodeElement(buf, p.Key, p.Value, checkKeys, allowID); err != nil {
			return err
		}
	}

	buf.appendByte(0x00)
	length := buf.position() - start
	lenBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBytes, uint32(length))
	buf.patch(start, lenBytes)

	if isTop && length > maxDocumentSize {
		return docTooLarge(length)
	}
	return nil
}

// encodeElement writes one (key, value) pair per spec.md §4.3.1.
func encodeElement(buf *byteBuffer, key string, value interface{}, checkKeys, allowID bool) error {
	if !allowID && key == "_id" {
		return nil
	}
	if checkKeys {
		if strings.HasPrefix(key, "$") {
			return ErrInvalidName
		}
		if strings.Contains(key, ".") {
			return ErrInvalidName
		}
	}
	switch classify([]byte(key), false) {
	case utf8NotUTF8:
		return ErrInvalidStringEncoding
	case utf8HasNull:
		return ErrInvalidDocument
	}

	if value == nil {
		return encodeNull(buf, key)
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return encodeNull(buf, key)
		}
		value = rv.Elem().Interface()
		rv = reflect.ValueOf(value)
	}

	switch v := value.(type) {
	case Double:
		return encodeDouble(buf, key, v)
	case String:
		return encodeString(buf, key, string(v))
	case Document:
		return encodeEmbeddedDoc(buf, key, v, checkKeys)
	case Map:
		return encodeEmbeddedDoc(buf, key, v.ToDocument(), checkKeys)
	case BSON:
		buf.appendByte(tagEmbeddedDoc)
		writeCstring(buf, key)
		buf.append(v)
		return nil
	case Array:
		return encodeArray(buf, key, v, checkKeys)
	case Binary:
		return encodeBinary(buf, key, v)
	case Undefined:
		return encodeTagOnly(buf, key, tagUndefined)
	case ObjectID:
		return encodeObjectID(buf, key, v)
	case Bool:
		return encodeBool(buf, key, v)
	case DateTime:
		return encodeDateTime(buf, key, v)
	case Null:
		return encodeNull(buf, key)
	case Regex:
		return encodeRegex(buf, key, v)
	case DBPointer:
		return encodeDBPointer(buf, key, v)
	case JavaScript:
		return encodeStringLikeTag(buf, key, tagJavaScript, string(v))
	case Symbol:
		return encodeStringLikeTag(buf, key, tagSymbol, string(v))
	case CodeWithScope:
		return encodeCodeWithScope(buf, key, v, checkKeys)
	case Int32:
		return encodeInt32(buf, key, v)
	case Timestamp:
		return encodeTimestamp(buf, key, v)
	case Int64:
		return encodeInt64(buf, key, v)
	case MinKey:
		return encodeTagOnly(buf, key, tagMinKey)
	case MaxKey:
		return encodeTagOnly(buf, key, tagMaxKey)
	case DBRef:
		return ErrInvalidDocument // decode-only representation

	case bool:
		return encodeBool(buf, key, Bool(v))
	case int8:
		return encodeInt32(buf, key, Int32(v))
	case int16:
		return encodeInt32(buf, key, Int32(v))
	case int32:
		return encodeInt32(buf, key, Int32(v))
	case int:
		return encodeIntWidth(buf, key, int64(v))
	case int64:
		return encodeIntWidth(buf, key, v)
	case uint8:
		return encodeInt32(buf, key, Int32(v))
	case uint16:
		return encodeInt32(buf, key, Int32(v))
	case uint32:
		return encodeIntWidth(buf, key, int64(v))
	case uint:
		if uint64(v) > math.MaxInt64 {
			return ErrRangeError
		}
		return encodeIntWidth(buf, key, int64(v))
	case uint64:
		if v > math.MaxInt64 {
			return ErrRangeError
		}
		return encodeIntWidth(buf, key, int64(v))
	case float64:
		return encodeDouble(buf, key, Double(v))
	case string:
		return encodeString(buf, key, v)
	case time.Time:
		return encodeDateTime(buf, key, DateTime(v.UnixMilli()))
	case []byte:
		return encodeBinary(buf, key, Binary{Subtype: 0x00, Data: v})
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		arr := make(Array, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			arr[i] = rv.Index(i).Interface()
		}
		return encodeArray(buf, key, arr, checkKeys)
	case reflect.String:
		return encodeString(buf, key, rv.String())
	}

	return ErrInvalidDocument
}

func encodeTagOnly(buf *byteBuffer, key string, tag byte) error {
	buf.appendByte(tag)
	return writeCstring(buf, key)
}

func encodeDouble(buf *byteBuffer, key string, val Double) error {
	buf.appendByte(tagDouble)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, math.Float64bits(float64(val)))
	buf.append(b)
	return nil
}

func encodeString(buf *byteBuffer, key, val string) error {
	if classify([]byte(val), true) == utf8NotUTF8 {
		return ErrInvalidStringEncoding
	}
	buf.appendByte(tagString)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	return writeLString(buf, val)
}

func encodeStringLikeTag(buf *byteBuffer, key string, tag byte, val string) error {
	if classify([]byte(val), true) == utf8NotUTF8 {
		return ErrInvalidStringEncoding
	}
	buf.appendByte(tag)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	return writeLString(buf, val)
}

func encodeEmbeddedDoc(buf *byteBuffer, key string, val Document, checkKeys bool) error {
	buf.appendByte(tagEmbeddedDoc)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	return encodeDocument(buf, val, checkKeys, false, false)
}

func encodeArray(buf *byteBuffer, key string, val Array, checkKeys bool) error {
	buf.appendByte(tagArray)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	sub := make(Document, len(val))
	for i, v := range val {
		sub[i] = Pair{Key: strconv.Itoa(i), Value: v}
	}
	return encodeDocument(buf, sub, checkKeys, false, false)
}

func encodeBinary(buf *byteBuffer, key string, val Binary) error {
	buf.appendByte(tagBinary)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	if val.Subtype == legacyBinarySubtype {
		outer := make([]byte, 4)
		binary.LittleEndian.PutUint32(outer, uint32(len(val.Data)+4))
		buf.append(outer)
		buf.appendByte(legacyBinarySubtype)
		inner := make([]byte, 4)
		binary.LittleEndian.PutUint32(inner, uint32(len(val.Data)))
		buf.append(inner)
		buf.append(val.Data)
		return nil
	}
	outer := make([]byte, 4)
	binary.LittleEndian.PutUint32(outer, uint32(len(val.Data)))
	buf.append(outer)
	buf.appendByte(val.Subtype)
	buf.append(val.Data)
	return nil
}

func encodeObjectID(buf *byteBuffer, key string, val ObjectID) error {
	buf.appendByte(tagObjectID)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	buf.append(val[:])
	return nil
}

func encodeBool(buf *byteBuffer, key string, val Bool) error {
	buf.appendByte(tagBoolean)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	if val {
		buf.appendByte(0x01)
	} else {
		buf.appendByte(0x00)
	}
	return nil
}

func encodeDateTime(buf *byteBuffer, key string, val DateTime) error {
	buf.appendByte(tagDateTime)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(val))
	buf.append(b)
	return nil
}

func encodeNull(buf *byteBuffer, key string) error {
	return encodeTagOnly(buf, key, tagNull)
}

// encodeRegex sorts the flag bytes ascending before emission, per
// spec.md §3.3's invariant and §4.3.1's "ilmsux… lexicographically
// sorted" rule. Apart from the sort, Options is written as given: no
// letter is validated or mapped to a regexp engine mode.
func encodeRegex(buf *byteBuffer, key string, val Regex) error {
	switch classify([]byte(val.Pattern), false) {
	case utf8NotUTF8:
		return ErrInvalidStringEncoding
	case utf8HasNull:
		return ErrInvalidDocument
	}
	buf.appendByte(tagRegex)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	if err := writeCstring(buf, val.Pattern); err != nil {
		return err
	}
	flags := []byte(val.Options)
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })
	return writeCstring(buf, string(flags))
}

func encodeDBPointer(buf *byteBuffer, key string, val DBPointer) error {
	buf.appendByte(tagDBPointer)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	if err := writeLString(buf, val.Namespace); err != nil {
		return err
	}
	buf.append(val.ID[:])
	return nil
}

func encodeCodeWithScope(buf *byteBuffer, key string, val CodeWithScope, checkKeys bool) error {
	if classify([]byte(val.Code), true) == utf8NotUTF8 {
		return ErrInvalidStringEncoding
	}
	buf.appendByte(tagCodeWithScope)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	start := buf.position()
	buf.reserve(4)
	if err := writeLString(buf, val.Code); err != nil {
		return err
	}
	if err := encodeDocument(buf, val.Scope, checkKeys, false, false); err != nil {
		return err
	}
	total := buf.position() - start
	lenBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBytes, uint32(total))
	buf.patch(start, lenBytes)
	return nil
}

// encodeIntWidth chooses Int32 or Int64 per spec.md §3.3's narrowest-
// container rule.
func encodeIntWidth(buf *byteBuffer, key string, val int64) error {
	if val >= math.MinInt32 && val <= math.MaxInt32 {
		return encodeInt32(buf, key, Int32(val))
	}
	return encodeInt64(buf, key, Int64(val))
}

func encodeInt32(buf *byteBuffer, key string, val Int32) error {
	buf.appendByte(tagInt32)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(int32(val)))
	buf.append(b)
	return nil
}

func encodeInt64(buf *byteBuffer, key string, val Int64) error {
	buf.appendByte(tagInt64)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(val))
	buf.append(b)
	return nil
}

func encodeTimestamp(buf *byteBuffer, key string, val Timestamp) error {
	buf.appendByte(tagTimestamp)
	if err := writeCstring(buf, key); err != nil {
		return err
	}
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b[0:4], val.Increment)
	binary.LittleEndian.PutUint32(b[4:8], val.Seconds)
	buf.append(b)
	return nil
}

// writeCstring writes a BSON cstring: bytes then a NUL. Not a BSON
// element on its own.
func writeCstring(buf *byteBuffer, s string) error {
	buf.append([]byte(s))
	buf.appendByte(0x00)
	return nil
}

// writeLString writes a BSON length-prefixed string: int32 length
// (payload + trailing NUL), payload bytes, NUL. Not a BSON element on
// its own.
func writeLString(buf *byteBuffer, s string) error {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(len(s)+1))
	buf.append(b)
	buf.append([]byte(s))
	buf.appendByte(0x00)
	return nil
}
