package pitch

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidInterval = errors.New("invalid interval")

// indexed by semitone distance
var intervalNames = [13]string{"1P", "2m", "2M", "3m", "3M", "4P", "5d", "5P", "6m", "6M", "7m", "7M", "8P"}

// semitones of the simple diatonic steps 1..7
var stepSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

var (
	intervalRe        = regexp.MustCompile(`^(-?\d+)([PMmAd]+)$`)
	reverseIntervalRe = regexp.MustCompile(`^([PMmAd]+)(-?\d+)$`)
)

// IntervalForSemitones returns the canonical label for 0..12 semitones, or "".
func IntervalForSemitones(n int) string {
	if n < 0 || n >= len(intervalNames) {
		return ""
	}
	return intervalNames[n]
}

// Semitones parses a tonal-style interval label ("3M", "9M", "5d", "-3m",
// also "M3") into a signed semitone count.
func Semitones(interval string) (int, error) {
	var num, quality string
	s := strings.TrimSpace(interval)
	if m := intervalRe.FindStringSubmatch(s); m != nil {
		num, quality = m[1], m[2]
	} else if m := reverseIntervalRe.FindStringSubmatch(s); m != nil {
		quality, num = m[1], m[2]
	} else {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}

	n, err := strconv.Atoi(num)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}
	dir := 1
	if n < 0 {
		dir = -1
		n = -n
	}

	step := (n - 1) % 7
	octaves := (n - 1) / 7
	perfectable := step == 0 || step == 3 || step == 4
	alt, ok := qualityAlteration(quality, perfectable)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}
	return dir * (stepSemitones[step] + alt + 12*octaves), nil
}

func qualityAlteration(quality string, perfectable bool) (int, bool) {
	switch {
	case quality == "P":
		return 0, perfectable
	case quality == "M":
		return 0, !perfectable
	case quality == "m":
		return -1, !perfectable
	case strings.Trim(quality, "A") == "":
		return len(quality), true
	case strings.Trim(quality, "d") == "":
		if perfectable {
			return -len(quality), true
		}
		return -(len(quality) + 1), true
	}
	return 0, false
}
