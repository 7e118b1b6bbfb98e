// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package random

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/toeirei/passgen/internal/logging"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

// readBufferSize batches small reads from the OS CSPRNG. Long passwords make
// millions of draws, and one syscall per draw is too slow.
const readBufferSize = 4096

// SecureOption configures a Secure source.
type SecureOption func(*Secure)

// WithReader replaces the primary CSPRNG reader. Tests use it to force the
// fallback path.
func WithReader(r io.Reader) SecureOption {
	return func(s *Secure) { s.primary = bufio.NewReaderSize(r, readBufferSize) }
}

// Secure draws from crypto/rand and falls back to a ChaCha20 keystream when
// the primary reader fails.
type Secure struct {
	primary  *bufio.Reader
	fallback *chachaStream
	fellBack bool
}

// NewSecure returns a Secure source reading from crypto/rand.Reader.
func NewSecure(opts ...SecureOption) *Secure {
	s := &Secure{primary: bufio.NewReaderSize(rand.Reader, readBufferSize)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IntN returns a uniform integer in [0, n).
func (s *Secure) IntN(n int) int {
	v, _ := uniform(n, s.word)
	return v
}

// FallbackOccurred reports whether any draw used the fallback stream.
func (s *Secure) FallbackOccurred() bool { return s.fellBack }

// word never fails: a primary read error switches this draw to the fallback.
func (s *Secure) word() (uint64, error) {
	v, err := nextWord(func(b []byte) error {
		_, err := io.ReadFull(s.primary, b)
		return err
	})
	if err == nil {
		return v, nil
	}
	if !s.fellBack {
		logging.Warnf("secure random source failed, using fallback stream: %v", err)
	}
	s.fellBack = true
	if s.fallback == nil {
		s.fallback = newChachaStream()
	}
	return s.fallback.Uint64(), nil
}

// fallbackCounter separates fallback streams created in the same nanosecond.
var fallbackCounter atomic.Uint64

// chachaStream is the lower-assurance generator used when the OS CSPRNG is
// unavailable. Its key is derived from process-local state only.
type chachaStream struct {
	cipher *chacha20.Cipher
	buf    [64]byte
	off    int
}

func newChachaStream() *chachaStream {
	seed := make([]byte, 0, 64)
	seed = binary.LittleEndian.AppendUint64(seed, uint64(time.Now().UnixNano()))
	seed = binary.LittleEndian.AppendUint64(seed, uint64(os.Getpid()))
	seed = binary.LittleEndian.AppendUint64(seed, fallbackCounter.Add(1))
	if host, err := os.Hostname(); err == nil {
		seed = append(seed, host...)
	}
	key := blake2b.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		// Key and nonce sizes are fixed above.
		panic(err)
	}
	return &chachaStream{cipher: c, off: 64}
}

// Uint64 returns the next 8 keystream bytes.
func (c *chachaStream) Uint64() uint64 {
	if c.off+8 > len(c.buf) {
		clear(c.buf[:])
		c.cipher.XORKeyStream(c.buf[:], c.buf[:])
		c.off = 0
	}
	v := binary.LittleEndian.Uint64(c.buf[c.off:])
	c.off += 8
	return v
}
