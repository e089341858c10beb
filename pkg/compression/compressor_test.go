package compression

import (
	"bytes"
	"testing"
)

var sample = bytes.Repeat([]byte("id,name,value\n42,repetitive content,3.14\n"), 200)

func TestRoundTripAllAlgorithms(t *testing.T) {
	for _, alg := range []Algorithm{None, Gzip, Zstd, LZ4, S2} {
		c, err := NewCompressor(alg)
		if err != nil {
			t.Fatalf("NewCompressor(%s) failed: %v", alg, err)
		}
		if c.Algorithm() != alg {
			t.Errorf("Algorithm() = %s, want %s", c.Algorithm(), alg)
		}

		compressed, err := c.Compress(sample)
		if err != nil {
			t.Fatalf("%s compress failed: %v", alg, err)
		}
		decompressed, err := c.Decompress(compressed)
		if err != nil {
			t.Fatalf("%s decompress failed: %v", alg, err)
		}
		if !bytes.Equal(sample, decompressed) {
			t.Errorf("%s round trip mismatch", alg)
		}
		if alg != None && len(compressed) >= len(sample) {
			t.Logf("%s: compressed %d >= original %d", alg, len(compressed), len(sample))
		}
	}
}

func TestDetectAlgorithm(t *testing.T) {
	for _, alg := range []Algorithm{Gzip, Zstd, LZ4, S2} {
		compressed, err := Compress(alg, sample)
		if err != nil {
			t.Fatalf("Compress(%s) failed: %v", alg, err)
		}
		if got := DetectAlgorithm(compressed); got != alg {
			t.Errorf("DetectAlgorithm = %s, want %s", got, alg)
		}
	}

	if got := DetectAlgorithm([]byte("a,b,c\n1,2,3\n")); got != None {
		t.Errorf("DetectAlgorithm(plain) = %s, want none", got)
	}
	if got := DetectAlgorithm(nil); got != None {
		t.Errorf("DetectAlgorithm(nil) = %s, want none", got)
	}
}

func TestDecompressAutoDetect(t *testing.T) {
	compressed, err := Compress(Zstd, sample)
	if err != nil {
		t.Fatalf("compress failed: %v", err)
	}
	out, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if !bytes.Equal(sample, out) {
		t.Error("auto-detected decompress mismatch")
	}

	// Plain data passes through untouched.
	out, err = Decompress(sample)
	if err != nil {
		t.Fatalf("passthrough failed: %v", err)
	}
	if !bytes.Equal(sample, out) {
		t.Error("passthrough mismatch")
	}
}

func TestForExtension(t *testing.T) {
	cases := map[string]Algorithm{
		"data.csv.gz":  Gzip,
		"data.csv.zst": Zstd,
		"data.csv.lz4": LZ4,
		"data.csv.sz":  S2,
		"data.csv":     None,
		"archive.gzip": None,
	}
	for path, want := range cases {
		if got := ForExtension(path); got != want {
			t.Errorf("ForExtension(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	if _, err := NewCompressor("brotli"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}
