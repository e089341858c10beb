// Package compression provides the compression codecs used by the file
// layer. Input files are decompressed transparently based on magic bytes,
// and output files are compressed based on their extension.
//
// Speed (fastest to slowest): LZ4 > S2 > Zstd > Gzip
// Compression ratio (best to worst): Zstd > Gzip > S2 > LZ4
package compression

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/tabular-dev/tabular/pkg/taberrors"
)

// Algorithm identifies a compression codec.
type Algorithm string

const (
	// None passes data through unchanged.
	None Algorithm = "none"
	// Gzip is DEFLATE with the gzip framing.
	Gzip Algorithm = "gzip"
	// Zstd is Zstandard.
	Zstd Algorithm = "zstd"
	// LZ4 is the LZ4 frame format.
	LZ4 Algorithm = "lz4"
	// S2 is the snappy-compatible S2 stream format.
	S2 Algorithm = "s2"
)

// Compressor encodes and decodes byte blocks with one algorithm.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Algorithm() Algorithm
}

// NewCompressor returns a compressor for the given algorithm.
func NewCompressor(alg Algorithm) (Compressor, error) {
	switch alg {
	case None, "":
		return noneCompressor{}, nil
	case Gzip:
		return newGzipCompressor(), nil
	case Zstd:
		return newZstdCompressor(), nil
	case LZ4:
		return lz4Compressor{}, nil
	case S2:
		return s2Compressor{}, nil
	default:
		return nil, taberrors.Newf(taberrors.ErrorTypeConfig,
			"unsupported compression algorithm: %s", alg)
	}
}

// Magic byte prefixes of the supported frame formats.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
	magicS2   = []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// DetectAlgorithm inspects the leading bytes of data and reports which
// codec framed it, or None when no known magic matches.
func DetectAlgorithm(data []byte) Algorithm {
	switch {
	case bytes.HasPrefix(data, magicGzip):
		return Gzip
	case bytes.HasPrefix(data, magicZstd):
		return Zstd
	case bytes.HasPrefix(data, magicLZ4):
		return LZ4
	case bytes.HasPrefix(data, magicS2):
		return S2
	default:
		return None
	}
}

// ForExtension maps a file path's extension to a codec. Unrecognized
// extensions map to None.
func ForExtension(path string) Algorithm {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return Gzip
	case strings.HasSuffix(path, ".zst"):
		return Zstd
	case strings.HasSuffix(path, ".lz4"):
		return LZ4
	case strings.HasSuffix(path, ".sz"):
		return S2
	default:
		return None
	}
}

// Compress encodes data with the given algorithm.
func Compress(alg Algorithm, data []byte) ([]byte, error) {
	c, err := NewCompressor(alg)
	if err != nil {
		return nil, err
	}
	return c.Compress(data)
}

// Decompress detects the codec from data's magic bytes and decodes it.
// Unframed data is returned unchanged.
func Decompress(data []byte) ([]byte, error) {
	c, err := NewCompressor(DetectAlgorithm(data))
	if err != nil {
		return nil, err
	}
	return c.Decompress(data)
}

type noneCompressor struct{}

func (noneCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (noneCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }
func (noneCompressor) Algorithm() Algorithm                   { return None }

type gzipCompressor struct {
	writerPool *sync.Pool
	readerPool *sync.Pool
}

func newGzipCompressor() *gzipCompressor {
	return &gzipCompressor{
		writerPool: &sync.Pool{New: func() interface{} {
			return gzip.NewWriter(nil)
		}},
		readerPool: &sync.Pool{New: func() interface{} {
			return new(gzip.Reader)
		}},
	}
}

func (gc *gzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	w := gc.writerPool.Get().(*gzip.Writer)
	defer gc.writerPool.Put(w)

	w.Reset(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeInternal, "gzip compress failed")
	}
	if err := w.Close(); err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeInternal, "gzip compress failed")
	}
	return buf.Bytes(), nil
}

func (gc *gzipCompressor) Decompress(data []byte) ([]byte, error) {
	r := gc.readerPool.Get().(*gzip.Reader)
	defer gc.readerPool.Put(r)

	if err := r.Reset(bytes.NewReader(data)); err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeFile, "gzip decompress failed")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeFile, "gzip decompress failed")
	}
	return buf.Bytes(), nil
}

func (gc *gzipCompressor) Algorithm() Algorithm { return Gzip }

type zstdCompressor struct {
	encoderPool *sync.Pool
	decoderPool *sync.Pool
}

func newZstdCompressor() *zstdCompressor {
	return &zstdCompressor{
		encoderPool: &sync.Pool{New: func() interface{} {
			enc, _ := zstd.NewWriter(nil)
			return enc
		}},
		decoderPool: &sync.Pool{New: func() interface{} {
			dec, _ := zstd.NewReader(nil)
			return dec
		}},
	}
}

func (zc *zstdCompressor) Compress(data []byte) ([]byte, error) {
	enc := zc.encoderPool.Get().(*zstd.Encoder)
	defer zc.encoderPool.Put(enc)
	return enc.EncodeAll(data, nil), nil
}

func (zc *zstdCompressor) Decompress(data []byte) ([]byte, error) {
	dec := zc.decoderPool.Get().(*zstd.Decoder)
	defer zc.decoderPool.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeFile, "zstd decompress failed")
	}
	return out, nil
}

func (zc *zstdCompressor) Algorithm() Algorithm { return Zstd }

type lz4Compressor struct{}

func (lz4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeInternal, "lz4 compress failed")
	}
	if err := w.Close(); err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeInternal, "lz4 compress failed")
	}
	return buf.Bytes(), nil
}

func (lz4Compressor) Decompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeFile, "lz4 decompress failed")
	}
	return buf.Bytes(), nil
}

func (lz4Compressor) Algorithm() Algorithm { return LZ4 }

type s2Compressor struct{}

func (s2Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)

	w := s2.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeInternal, "s2 compress failed")
	}
	if err := w.Close(); err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeInternal, "s2 compress failed")
	}
	return buf.Bytes(), nil
}

func (s2Compressor) Decompress(data []byte) ([]byte, error) {
	r := s2.NewReader(bytes.NewReader(data))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeFile, "s2 decompress failed")
	}
	return buf.Bytes(), nil
}

func (s2Compressor) Algorithm() Algorithm { return S2 }
