// Package datasource defines the minimal contract for byte sources feeding
// the loader, plus a transparent-decompression helper shared by all of them.
package datasource

import (
	"context"
	"io"
)

// Source opens a read-only byte stream. A Source is restartable only by
// calling Open again; the returned reader is consumed exactly once per run.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
