package datasource

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestMaybeGunzip_CompressedStream(t *testing.T) {
	t.Parallel()

	payload := []byte("VendorID,trip_distance\n1,2.5\n")
	rc, err := MaybeGunzip(io.NopCloser(bytes.NewReader(gzipBytes(t, payload))))
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestMaybeGunzip_PlainStreamPassesThrough(t *testing.T) {
	t.Parallel()

	payload := []byte("LocationID,Borough\n1,EWR\n")
	rc, err := MaybeGunzip(io.NopCloser(bytes.NewReader(payload)))
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestMaybeGunzip_EmptyStream(t *testing.T) {
	t.Parallel()

	rc, err := MaybeGunzip(io.NopCloser(bytes.NewReader(nil)))
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Empty(t, got)
}
