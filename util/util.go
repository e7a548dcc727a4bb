// Package util provides a collection of domain-agnostic utility functions.
package util

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/myselfbbs/vodplay/filesystem"
)

var digitsPattern = regexp.MustCompile(`\d+`)

// FirstDigits returns the first run of ASCII digits found anywhere in s.
func FirstDigits(s string) (digits string, ok bool) {
	digits = digitsPattern.FindString(s)
	return digits, digits != ""
}

// EpisodeNumber extracts the first integer embedded in an episode label, e.g. "第 01 話" -> 1.
// Labels without a digit yield 0. Runs too large for an int saturate at math.MaxInt.
func EpisodeNumber(label string) int {
	digits, ok := FirstDigits(label)
	if !ok {
		return 0
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt
	}
	return n
}

// PadLeft left-pads s with zeros up to width. Longer inputs are returned unchanged.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// Quantify returns a pluralized string representation of a count and its associated labels.
func Quantify(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Capitalize transforms the first rune of a string to its uppercase equivalent.
func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Percent formats a ratio in [0,1] as a percentage with one decimal.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// Delete recursively removes a file or directory using the virtualized filesystem API.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
