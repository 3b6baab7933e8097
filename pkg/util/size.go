package util

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidSize = errors.New("invalid size")

// sizeReplacer folds the delimiter and inch-mark variants found in rate cards
// into a single ASCII form before matching.
var sizeReplacer = strings.NewReplacer(
	"×", "x",
	"✕", "x",
	"X", "x",
	"*", "x",
	"″", "",
	"”", "",
	"“", "",
	"\"", "",
	"''", "",
	"inches", "",
	"inch", "",
	"in", "",
)

// A dimension is a decimal ("8.5"), a whole number with a fraction ("8 1/2")
// or a bare fraction ("3/4").
var sizePattern = regexp.MustCompile(
	`^\s*(\d+(?:\.\d+)?(?:\s+\d+/\d+)?|\d+/\d+)\s*x\s*(\d+(?:\.\d+)?(?:\s+\d+/\d+)?|\d+/\d+)\s*$`,
)

// ParseSize extracts width and height in inches from a free-text size such as
// `10x20`, `10×20`, `10" x 20"` or `8 1/2 x 11 in`.
func ParseSize(s string) (width, height float64, err error) {
	normalized := sizeReplacer.Replace(strings.TrimSpace(s))
	m := sizePattern.FindStringSubmatch(normalized)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	if width, err = parseDimension(m[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	if height, err = parseDimension(m[2]); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	if !ValidDimensions(width, height) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	return width, height, nil
}

// ValidDimensions reports whether both dimensions are finite and positive.
func ValidDimensions(width, height float64) bool {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return false
		}
	}
	return true
}

func parseDimension(s string) (float64, error) {
	parts := strings.Fields(s)
	var total float64
	for _, part := range parts {
		if num, den, ok := strings.Cut(part, "/"); ok {
			n, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, err
			}
			d, err := strconv.ParseFloat(den, 64)
			if err != nil || d == 0 {
				return 0, ErrInvalidSize
			}
			total += n / d
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, err
		}
		total += v
	}
	// Keep stored dimensions stable across equivalent spellings (8 1/3 vs 8.333...).
	return math.Round(total*1000) / 1000, nil
}

// FormatSize renders the canonical display form, e.g. "8.5x11".
func FormatSize(width, height float64) string {
	return strconv.FormatFloat(width, 'f', -1, 64) + "x" + strconv.FormatFloat(height, 'f', -1, 64)
}

// NormalizeSize parses and re-renders a size string in canonical form.
func NormalizeSize(s string) (string, error) {
	w, h, err := ParseSize(s)
	if err != nil {
		return "", err
	}
	return FormatSize(w, h), nil
}
