// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "errors"

// ErrNotFound is returned by LoadConfig before any configuration was saved.
var ErrNotFound = errors.New("record not found")
