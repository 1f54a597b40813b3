// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package snapshot

import (
	"fmt"
	"regexp"
)

const NullDisplay = "<null>"

// decimalPattern matches finite decimal numbers, optionally with an exponent.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// DisplayString renders a textual value the way it is shown in a diff: quoted.
func DisplayString(v string) string {
	return fmt.Sprintf("%q", v)
}

func isNumber(v string) bool {
	return decimalPattern.MatchString(v)
}

// ValueFormatter converts a raw captured value into its display form.
type ValueFormatter func(v string) string

// QuoteStrings returns a formatter that leaves numbers untouched, turns nullToken
// into NullDisplay and quotes everything else. An empty nullToken disables null
// detection.
func QuoteStrings(nullToken string) ValueFormatter {
	return func(v string) string {
		if nullToken != "" && v == nullToken {
			return NullDisplay
		}
		if isNumber(v) {
			return v
		}
		return DisplayString(v)
	}
}
