// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package snapshot

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedRow = errors.New("malformed row")

// MalformedRowError describes a row rejected by Validate. Row is the index of the
// row within its snapshot.
type MalformedRowError struct {
	Table  string
	Row    int
	PK     string
	Column string
	Reason string
}

func (e *MalformedRowError) Error() string {
	parts := []string{fmt.Sprintf("row %d", e.Row)}
	if e.Table != "" {
		parts = append([]string{fmt.Sprintf("table %q", e.Table)}, parts...)
	}
	if e.PK != "" {
		parts = append(parts, fmt.Sprintf("pk %q", e.PK))
	}
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column %q", e.Column))
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedRow, strings.Join(parts, ", "), e.Reason)
}

func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}
