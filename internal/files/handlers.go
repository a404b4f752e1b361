package files

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"
)

// Output serialises lines written by concurrent handlers. It is the shared
// context of the list and hash commands.
type Output struct {
	mu sync.Mutex
	w  io.Writer
}

// NewOutput returns an Output writing to w.
func NewOutput(w io.Writer) *Output {
	return &Output{w: w}
}

// Println writes one line atomically.
func (o *Output) Println(a ...any) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := fmt.Fprintln(o.w, a...)
	return err
}

// List prints path.
func List(ctx context.Context, path string, out *Output) error {
	return out.Println(path)
}

// Hash prints the SHA-256 of the file at path in sha256sum format.
func Hash(ctx context.Context, path string, out *Output) error {
	sum, err := SHA256(ctx, path)
	if err != nil {
		return err
	}
	return out.Println(sum + "  " + path)
}

// SHA256 returns the hex SHA-256 digest of the file at path. Reading stops
// early if ctx is cancelled.
func SHA256(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, &ctxReader{ctx: ctx, r: f}); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
