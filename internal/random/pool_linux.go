// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

//go:build linux

package random

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// readEntropyPool fills buf from the blocking pool without blocking. A short
// or empty pool is reported as an error so the caller can fall back.
func readEntropyPool(buf []byte) error {
	for off := 0; off < len(buf); {
		n, err := unix.Getrandom(buf[off:], unix.GRND_RANDOM|unix.GRND_NONBLOCK)
		if err != nil {
			return fmt.Errorf("getrandom: %w", err)
		}
		if n == 0 {
			return ErrPoolUnavailable
		}
		off += n
	}
	return nil
}
