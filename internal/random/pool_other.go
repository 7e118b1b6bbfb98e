// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

//go:build !linux

package random

func readEntropyPool([]byte) error {
	return ErrPoolUnavailable
}
