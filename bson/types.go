package bson

// Wire tags. See doc.go for the grammar these dispatch on.
const (
	tagDouble          = 0x01
	tagString          = 0x02
	tagEmbeddedDoc     = 0x03
	tagArray           = 0x04
	tagBinary          = 0x05
	tagUndefined       = 0x06 // deprecated, read-only
	tagObjectID        = 0x07
	tagBoolean         = 0x08
	tagDateTime        = 0x09
	tagNull            = 0x0A
	tagRegex           = 0x0B
	tagDBPointer       = 0x0C // deprecated, read-only
	tagJavaScript      = 0x0D
	tagSymbol          = 0x0E
	tagCodeWithScope   = 0x0F
	tagInt32           = 0x10
	tagTimestamp       = 0x11
	tagInt64           = 0x12
	tagMaxKey          = 0x7F
	tagMinKey          = 0xFF
)

// BSON type. IEEE-754 double.
type Double float64

// BSON type. UTF-8; an embedded NUL is not rejected on encode (see
// classify).
type String string

// BSON type. Ordered sequence of (key, value) pairs.
type Pair struct {
	Key   string
	Value interface{}
}

// BSON type. Preserves insertion order; the only document type whose
// iteration order is guaranteed. See doc.go and REDESIGN FLAGS in
// SPEC_FULL.md for why Map alone doesn't satisfy that guarantee.
type Document []Pair

// BSON type. Encoded as a document with keys "0", "1", ...
type Array []interface{}

// BSON type.
type Binary struct {
	Subtype byte
	Data    []byte
}

// BSON type. Deprecated; decodes to Null. Value is ignored.
type Undefined struct{}

// BSON type. Must be 12 bytes.
type ObjectID [12]byte

// BSON type.
type Bool bool

// BSON type. Milliseconds since the Unix epoch.
type DateTime int64

// BSON type. Value is ignored.
type Null struct{}

// BSON type. Options is the flag-letter string; canonical wire form is
// byte-sorted ascending (see encodeRegex).
type Regex struct {
	Pattern string
	Options string
}

// BSON type. Deprecated; decoded as DBRef, never encoded directly.
type DBPointer struct {
	Namespace string
	ID        ObjectID
}

// DBRef is the decoded form of a document whose first key is "$ref", and
// of a legacy DBPointer. Not a wire tag of its own.
type DBRef struct {
	Collection string
	ID         interface{}
}

// BSON type.
type JavaScript string

// BSON type.
type Symbol string

// BSON type. Scope must encode as a Document.
type CodeWithScope struct {
	Code  string
	Scope Document
}

// BSON type.
type Int32 int32

// BSON type. Two uint32 words: Increment then Seconds on the wire.
type Timestamp struct {
	Increment uint32
	Seconds   uint32
}

// BSON type.
type Int64 int64

// BSON type. Sentinel; value is ignored.
type MinKey struct{}

// BSON type. Sentinel; value is ignored.
type MaxKey struct{}

// Map is a convenience document constructor for callers who don't need
// key order preserved. Range order over a Go map is randomized by the
// runtime, so Map must never be used where the round-trip-order
// invariant is being tested; use Document directly instead.
type Map map[string]interface{}

// ToDocument converts m to a Document. The resulting Pair order is
// whatever Go's map iteration produced and carries no meaning.
func (m Map) ToDocument() Document {
	d := make(Document, 0, len(m))
	for k, v := range m {
		d = append(d, Pair{Key: k, Value: v})
	}
	return d
}
