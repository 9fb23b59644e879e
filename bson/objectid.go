package bson

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"os"
	"sync/atomic"
	"time"
)

// HostnameProvider resolves the local hostname used to derive the
// "machine" component of an ObjectID. An external collaborator per
// spec.md §1's Out-of-scope list; DefaultHostnameProvider is the only
// implementation this repo ships.
type HostnameProvider interface {
	Hostname() (string, error)
}

// PIDProvider resolves the current process id.
type PIDProvider interface {
	PID() int
}

// MachineHasher reduces a hostname to the 3-byte "machine" component of
// an ObjectID. spec.md §4.5 fixes this to the first 3 bytes of
// MD5(hostname); DefaultMachineHasher is the only implementation this repo ships,
// per the spec's "MD5 provider" being an out-of-scope collaborator.
type MachineHasher interface {
	Hash(hostname string) [3]byte
}

// CounterProvider hands out the low 24 bits of a monotonically
// increasing per-process counter. Modeled as an injected capability
// (spec.md §9 Design Notes) rather than a global so NewGenerator stays
// pure and testable; AtomicCounter is the process-wide default.
type CounterProvider interface {
	Next() uint32
}

type osHostnameProvider struct{}

func (osHostnameProvider) Hostname() (string, error) { return os.Hostname() }

type osPIDProvider struct{}

func (osPIDProvider) PID() int { return os.Getpid() }

type md5MachineHasher struct{}

func (md5MachineHasher) Hash(hostname string) [3]byte {
	sum := md5.Sum([]byte(hostname))
	var out [3]byte
	copy(out[:], sum[:3])
	return out
}

// AtomicCounter is a process-wide monotonic CounterProvider. The zero
// value starts at 0, so its first Next returns 1 (spec.md §4.5 only
// requires monotonic increase, not a particular start), and increments
// atomically via atomic.AddUint32, so concurrent generation yields
// distinct values (spec.md §5).
type AtomicCounter struct {
	n uint32
}

func (c *AtomicCounter) Next() uint32 {
	return atomic.AddUint32(&c.n, 1) & 0x00FFFFFF
}

var defaultCounter = &AtomicCounter{}

// DefaultHostnameProvider, DefaultPIDProvider and DefaultMachineHasher
// are the stdlib-backed implementations of the out-of-scope
// collaborators from spec.md §1.
var (
	DefaultHostnameProvider HostnameProvider = osHostnameProvider{}
	DefaultPIDProvider      PIDProvider      = osPIDProvider{}
	DefaultMachineHasher    MachineHasher    = md5MachineHasher{}
)

// Generator produces 12-byte ObjectIDs per spec.md §4.5's layout:
//
//	[0:4)  unix seconds, big-endian
//	[4:7)  first 3 bytes of MD5(hostname)
//	[7:9)  process id, big-endian, truncated to 16 bits
//	[9:12) low 24 bits of a monotonic counter, big-endian
//
// A Generator is stateless except for its injected CounterProvider; the
// codec itself never mutates process-global state directly.
type Generator struct {
	Hostname HostnameProvider
	PID      PIDProvider
	Hasher   MachineHasher
	Counter  CounterProvider
}

// NewGenerator builds a Generator wired to the stdlib-backed defaults
// and the shared process-wide counter.
func NewGenerator() *Generator {
	return &Generator{
		Hostname: DefaultHostnameProvider,
		PID:      DefaultPIDProvider,
		Hasher:   DefaultMachineHasher,
		Counter:  defaultCounter,
	}
}

// New produces the next ObjectID.
func (g *Generator) New() (ObjectID, error) {
	return g.NewWithTime(time.Now())
}

// NewWithTime produces an ObjectID using an explicit timestamp, mainly
// for deterministic tests.
func (g *Generator) NewWithTime(t time.Time) (ObjectID, error) {
	var id ObjectID

	binary.BigEndian.PutUint32(id[0:4], uint32(t.Unix()))

	hostname, err := g.Hostname.Hostname()
	if err != nil {
		return id, err
	}
	machine := g.Hasher.Hash(hostname)
	copy(id[4:7], machine[:])

	binary.BigEndian.PutUint16(id[7:9], uint16(g.PID.PID()))

	var counterBytes [4]byte
	binary.BigEndian.PutUint32(counterBytes[:], g.Counter.Next())
	copy(id[9:12], counterBytes[1:4])

	return id, nil
}

var defaultGenerator = NewGenerator()

// NewObjectID generates an ObjectID using the process-wide default
// Generator. Most callers want this; construct a Generator directly
// only to inject test doubles.
func NewObjectID() (ObjectID, error) {
	return defaultGenerator.New()
}

// Hex renders an ObjectID as lowercase hex, matching the conventional
// string form used by MongoDB tooling.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

// Time returns the embedded creation timestamp.
func (id ObjectID) Time() time.Time {
	return time.Unix(int64(binary.BigEndian.Uint32(id[0:4])), 0)
}
