package bson

// byteBuffer is a growable byte container with a write cursor, used by
// the serializer to back-patch length prefixes instead of computing
// sizes in a separate pass. Grounded on the bytes.Buffer +
// binary.LittleEndian.PutUint32(buf.Bytes(), ...) idiom the teacher
// repeated inline in every encodeX function; promoted here to one
// explicit type per spec.md §4.1.
//
// release must be called on every exit path, success or failure; see
// serializeTop.
type byteBuffer struct {
	data []byte
}

func newByteBuffer() *byteBuffer {
	return &byteBuffer{data: make([]byte, 0, 64)}
}

// append grows the buffer by appending p. Panics with ErrOutOfMemory if
// the underlying allocator can't grow the slice; serializeTop recovers
// this and releases the partial buffer.
func (b *byteBuffer) append(p []byte) {
	defer func() {
		if r := recover(); r != nil {
			panic(ErrOutOfMemory)
		}
	}()
	b.data = append(b.data, p...)
}

func (b *byteBuffer) appendByte(c byte) {
	b.append([]byte{c})
}

// reserve appends n uninitialized bytes and returns their offset, for a
// later patch once the real value (typically a length prefix) is known.
func (b *byteBuffer) reserve(n int) int {
	offset := len(b.data)
	b.append(make([]byte, n))
	return offset
}

// patch overwrites the region starting at offset with p. p must fit
// within what was previously reserved there.
func (b *byteBuffer) patch(offset int, p []byte) {
	copy(b.data[offset:offset+len(p)], p)
}

func (b *byteBuffer) position() int {
	return len(b.data)
}

func (b *byteBuffer) slice() []byte {
	return b.data
}

// release frees the backing storage. Safe to call more than once.
func (b *byteBuffer) release() {
	b.data = nil
}
