// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
/*
Package bson implements a BSON codec: a bidirectional translator between
an ordered in-memory document model and the BSON binary wire format used
by MongoDB.

 BSON Specification

 Basic Types:
 The following basic types are used as terminals in the rest of the grammar.
 Each type must be serialized in little-endian format.

 byte    1 byte  (8-bits)
 int32   4 bytes (32-bit signed integer)
 int64   8 bytes (64-bit signed integer)
 double  8 bytes (64-bit IEEE 754 floating point)

 Non-terminals:
 document ::= int32 e_list "\x00"            BSON Document
 e_list   ::= element e_list                 Sequence of elements
            | ""
 element  ::= "\x01" e_name double           Floating point
            | "\x02" e_name string           UTF-8 string
            | "\x03" e_name document         Embedded document
            | "\x04" e_name document         Array
            | "\x05" e_name binary           Binary data
            | "\x06" e_name                  Undefined — Deprecated
            | "\x07" e_name (byte*12)        ObjectId
            | "\x08" e_name "\x00"           Boolean "false"
            | "\x08" e_name "\x01"           Boolean "true"
            | "\x09" e_name int64            UTC datetime
            | "\x0A" e_name                  Null value
            | "\x0B" e_name cstring cstring  Regular expression
            | "\x0C" e_name string (byte*12) DBPointer — Deprecated
            | "\x0D" e_name string           JavaScript code
            | "\x0E" e_name string           Symbol
            | "\x0F" e_name code_w_s         JavaScript code w/ scope
            | "\x10" e_name int32            32-bit Integer
            | "\x11" e_name int64            Timestamp
            | "\x12" e_name int64            64-bit integer
            | "\xFF" e_name                  Min key
            | "\x7F" e_name                  Max key
 e_name   ::= cstring                        Key name
 string   ::= int32 (byte*) "\x00"           String
 cstring  ::= (byte*) "\x00"                 CString
 binary   ::= int32 subtype (byte*)          Binary
 code_w_s ::= int32 string document          Code w/ scope

 Document model:
 A Document is an ordered sequence of Pair{Key, Value}. Unlike the map
 type most Go JSON packages reach for, iteration order is part of the
 contract: Serialize walks a Document in Pair order, and Deserialize
 returns a Document in wire order.

 Map is a convenience constructor for callers who don't care about key
 order. It is explicitly NOT order-preserving; use ToDocument to turn
 one into a Document, and don't rely on the resulting Pair order.

 Coercion:
 Encoding accepts either exact bson types (Int32, String, ...) or host
 Go values, which are coerced:

	nil       -> Null
	bool      -> Bool
	int8      -> Int32
	int16     -> Int32
	int32     -> Int32
	int       -> Int32 or Int64, whichever is narrowest
	int64     -> Int32 or Int64, whichever is narrowest
	float64   -> Double
	string    -> String
	time.Time -> DateTime
	[]byte    -> Binary (subtype 0)

 float32 is intentionally not coerced: coercing it to float64 would make
 the encoder asymmetric (decode would never hand back a float32).
*/
package bson
