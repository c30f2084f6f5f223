// Package natsort orders strings so that embedded numbers compare by value:
// "Option 2" sorts before "Option 10".
package natsort

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Compare returns -1, 0 or +1. Strings are split into alternating digit and
// non-digit runs. Digit runs compare by numeric value, non-digit runs compare
// case-insensitively. At the same position a digit run sorts before text.
func Compare(a, b string) int {
	fold := cases.Fold()
	for a != "" && b != "" {
		var ra, rb string
		ra, a = nextRun(a)
		rb, b = nextRun(b)

		da, db := isDigit(ra[0]), isDigit(rb[0])
		switch {
		case da && db:
			if c := compareNumeric(ra, rb); c != 0 {
				return c
			}
		case da:
			return -1
		case db:
			return 1
		default:
			if c := strings.Compare(fold.String(ra), fold.String(rb)); c != 0 {
				return c
			}
		}
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

// Less reports whether a sorts before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts values in place in natural order.
func Sort(values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		return Less(values[i], values[j])
	})
}

func nextRun(s string) (run, rest string) {
	digit := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digit {
		i++
	}
	return s[:i], s[i:]
}

// compareNumeric compares two digit runs of any length without parsing them.
func compareNumeric(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	// same value: fewer leading zeros first
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
