package bson

import (
	"sync"
	"testing"
	"time"
)

type fixedHostname string

func (h fixedHostname) Hostname() (string, error) { return string(h), nil }

type fixedPID int

func (p fixedPID) PID() int { return int(p) }

func TestNewObjectIDLength(t *testing.T) {
	id, err := NewObjectID()
	if err != nil {
		t.Fatalf("NewObjectID: %v", err)
	}
	if len(id) != 12 {
		t.Fatalf("expected 12 bytes, got %d", len(id))
	}
}

func TestGeneratorLayout(t *testing.T) {
	g := &Generator{
		Hostname: fixedHostname("example.org"),
		PID:      fixedPID(4242),
		Hasher:   DefaultMachineHasher,
		Counter:  &AtomicCounter{},
	}
	now := time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC)
	id, err := g.NewWithTime(now)
	if err != nil {
		t.Fatalf("NewWithTime: %v", err)
	}
	if id.Time().Unix() != now.Unix() {
		t.Fatalf("expected embedded time %v, got %v", now, id.Time())
	}
	wantMachine := DefaultMachineHasher.Hash("example.org")
	if id[4] != wantMachine[0] || id[5] != wantMachine[1] || id[6] != wantMachine[2] {
		t.Fatalf("machine bytes %x do not match MD5(hostname) %x", id[4:7], wantMachine)
	}
	if id[7] != 0x10 || id[8] != 0x92 { // 4242 = 0x1092
		t.Fatalf("pid bytes %x do not match pid 4242", id[7:9])
	}
}

func TestGeneratorCounterMonotonic(t *testing.T) {
	g := &Generator{
		Hostname: fixedHostname("host"),
		PID:      fixedPID(1),
		Hasher:   DefaultMachineHasher,
		Counter:  &AtomicCounter{},
	}
	now := time.Now()
	first, err := g.NewWithTime(now)
	if err != nil {
		t.Fatalf("NewWithTime: %v", err)
	}
	second, err := g.NewWithTime(now)
	if err != nil {
		t.Fatalf("NewWithTime: %v", err)
	}
	if first == second {
		t.Fatalf("two IDs generated within the same second must differ")
	}
	firstCounter := uint32(first[9])<<16 | uint32(first[10])<<8 | uint32(first[11])
	secondCounter := uint32(second[9])<<16 | uint32(second[10])<<8 | uint32(second[11])
	if secondCounter <= firstCounter {
		t.Fatalf("counter bytes did not advance: %x then %x", first[9:12], second[9:12])
	}
}

func TestGeneratorConcurrentUnique(t *testing.T) {
	g := &Generator{
		Hostname: fixedHostname("host"),
		PID:      fixedPID(1),
		Hasher:   DefaultMachineHasher,
		Counter:  &AtomicCounter{},
	}
	now := time.Now()
	const n = 200
	ids := make([]ObjectID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := g.NewWithTime(now)
			if err != nil {
				t.Errorf("NewWithTime: %v", err)
				return
			}
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[ObjectID]bool, n)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate ObjectID generated: %x", id)
		}
		seen[id] = true
	}
}

func TestObjectIDHex(t *testing.T) {
	var id ObjectID
	for i := range id {
		id[i] = byte(i)
	}
	got := id.Hex()
	want := "000102030405060708090a0b"
	if got != want {
		t.Fatalf("Hex() = %q, want %q", got, want)
	}
}
