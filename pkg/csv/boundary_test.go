package csv

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tabular-dev/tabular/pkg/taberrors"
)

// requireCover checks that chunks tile the input exactly and that every
// boundary except the last sits immediately after a newline.
func requireCover(t *testing.T, data []byte, chunks []chunk) {
	t.Helper()

	if len(chunks) == 0 {
		t.Fatal("no chunks returned")
	}
	if chunks[0].start != 0 {
		t.Fatalf("first chunk starts at %d, want 0", chunks[0].start)
	}
	if chunks[len(chunks)-1].end != len(data) {
		t.Fatalf("last chunk ends at %d, want %d", chunks[len(chunks)-1].end, len(data))
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].start != chunks[i-1].end {
			t.Fatalf("chunk %d starts at %d but previous ends at %d", i, chunks[i].start, chunks[i-1].end)
		}
		if data[chunks[i].start-1] != '\n' {
			t.Errorf("chunk %d boundary at %d not after a newline", i, chunks[i].start)
		}
	}
}

func TestDetectChunksAlignment(t *testing.T) {
	data := []byte(strings.Repeat("field1,field2,field3\n", 1000))

	chunks, err := detectChunks(data, '"', 8, 64)
	if err != nil {
		t.Fatalf("detectChunks failed: %v", err)
	}
	if len(chunks) != 8 {
		t.Fatalf("expected 8 chunks, got %d", len(chunks))
	}
	requireCover(t, data, chunks)
}

func TestDetectChunksQuotedNewlines(t *testing.T) {
	// Every record hides a newline and a delimiter inside quotes; a naive
	// splitter would cut records apart.
	data := []byte(strings.Repeat("\"a\nb,c\",2\n", 500))

	chunks, err := detectChunks(data, '"', 4, 64)
	if err != nil {
		t.Fatalf("detectChunks failed: %v", err)
	}
	requireCover(t, data, chunks)

	for i, ch := range chunks {
		part := data[ch.start:ch.end]
		if bytes.Count(part, []byte{'"'})%2 != 0 {
			t.Errorf("chunk %d splits a quoted field", i)
		}
	}
}

func TestDetectChunksMinSizeFloor(t *testing.T) {
	data := []byte(strings.Repeat("x,y\n", 100)) // 400 bytes

	chunks, err := detectChunks(data, '"', 16, 256)
	if err != nil {
		t.Fatalf("detectChunks failed: %v", err)
	}
	// 400 bytes at a 256-byte floor leaves room for one chunk only.
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
}

func TestDetectChunksLineNumbers(t *testing.T) {
	data := []byte("a,1\nb,2\nc,3\nd,4\ne,5\nf,6\ng,7\nh,8\n")

	chunks, err := detectChunks(data, '"', 4, 4)
	if err != nil {
		t.Fatalf("detectChunks failed: %v", err)
	}
	if chunks[0].line != 1 {
		t.Errorf("first chunk line = %d, want 1", chunks[0].line)
	}
	for i := 1; i < len(chunks); i++ {
		lines := bytes.Count(data[:chunks[i].start], []byte{'\n'})
		if chunks[i].line != lines+1 {
			t.Errorf("chunk %d line = %d, want %d", i, chunks[i].line, lines+1)
		}
	}
}

func TestDetectChunksUnterminatedQuote(t *testing.T) {
	data := []byte("a,b\n1,\"no closing quote\n2,3\n")

	_, err := detectChunks(data, '"', 4, 4)
	if err == nil {
		t.Fatal("expected error for unterminated quote")
	}
	if !taberrors.IsType(err, taberrors.ErrorTypeMalformed) {
		t.Errorf("expected malformed error, got %v", err)
	}

	var e *taberrors.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *taberrors.Error, got %T", err)
	}
	if off, ok := e.Detail("byte_offset").(int); !ok || off != 6 {
		t.Errorf("byte_offset = %v, want 6", e.Detail("byte_offset"))
	}
}

func TestDetectChunksEmptyInput(t *testing.T) {
	chunks, err := detectChunks(nil, '"', 4, 4)
	if err != nil {
		t.Fatalf("detectChunks failed: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("unexpected chunks for empty input: %+v", chunks)
	}
}
