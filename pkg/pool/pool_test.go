package pool

import (
	"testing"
)

func TestPoolReuse(t *testing.T) {
	type scratch struct{ data []int }

	p := New(
		func() *scratch { return &scratch{data: make([]int, 0, 8)} },
		func(s *scratch) { s.data = s.data[:0] },
	)

	s := p.Get()
	s.data = append(s.data, 1, 2, 3)
	p.Put(s)

	s2 := p.Get()
	if len(s2.data) != 0 {
		t.Errorf("reset not applied, len = %d", len(s2.data))
	}

	allocated, inUse, _ := p.Stats()
	if allocated < 1 {
		t.Errorf("allocated = %d", allocated)
	}
	if inUse != 1 {
		t.Errorf("inUse = %d, want 1", inUse)
	}
}

func TestBufferPoolSizes(t *testing.T) {
	p := NewBufferPool()

	for _, size := range []int{1, 512, 4096, 1 << 20} {
		buf := p.Get(size)
		if len(buf) != size {
			t.Errorf("Get(%d) returned len %d", size, len(buf))
		}
		if cap(buf) < size {
			t.Errorf("Get(%d) returned cap %d", size, cap(buf))
		}
		p.Put(buf)
	}

	// Oversized requests still work, they just bypass the buckets.
	big := p.Get(64 << 20)
	if len(big) != 64<<20 {
		t.Errorf("oversized Get returned len %d", len(big))
	}
	p.Put(big)
}

func TestBufferPoolRecycles(t *testing.T) {
	p := NewBufferPool()

	buf := p.Get(1024)
	buf[0] = 0xAB
	p.Put(buf)

	buf2 := p.Get(1024)
	if cap(buf2) < 1024 {
		t.Errorf("recycled buffer too small: cap %d", cap(buf2))
	}
}

func TestFieldsPool(t *testing.T) {
	f := GetFields()
	if len(f) != 0 {
		t.Errorf("GetFields returned non-empty slice, len %d", len(f))
	}
	f = append(f, []byte("a"), []byte("b"))
	PutFields(f)

	f2 := GetFields()
	if len(f2) != 0 {
		t.Errorf("recycled fields slice not reset, len %d", len(f2))
	}
}
