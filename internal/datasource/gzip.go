package datasource

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzip magic bytes, per RFC 1952.
var gzipMagic = []byte{0x1f, 0x8b}

// MaybeGunzip sniffs the first two bytes of rc and, when they carry the gzip
// magic, interposes a streaming gzip reader. Plain streams pass through
// untouched (modulo buffering). Closing the returned reader closes rc.
//
// Sniffing instead of trusting the URL suffix means the compressed trip
// exports and the plain zones lookup flow through one code path.
func MaybeGunzip(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(rc, 64*1024)

	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		rc.Close()
		return nil, fmt.Errorf("sniff stream: %w", err)
	}
	if len(head) < len(gzipMagic) || head[0] != gzipMagic[0] || head[1] != gzipMagic[1] {
		return &readCloser{Reader: br, Closer: rc}, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	return &readCloser{Reader: zr, Closer: &closeBoth{first: zr, second: rc}}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

type closeBoth struct {
	first, second io.Closer
}

func (c *closeBoth) Close() error {
	err := c.first.Close()
	if err2 := c.second.Close(); err == nil {
		err = err2
	}
	return err
}
