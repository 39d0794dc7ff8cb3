package transcript

import (
	"fmt"
	"regexp"
	"strconv"
)

// FormatError reports a caption timestamp that does not match the
// HH:MM:SS.ffffff pattern.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid timecode %q: expected HH:MM:SS.ffffff", e.Input)
}

var timecodeRe = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})\.(\d{1,6})$`)

// ParseTimecode converts a VTT timestamp into elapsed whole seconds.
// The fractional part is truncated, not rounded.
func ParseTimecode(stamp string) (int, error) {
	m := timecodeRe.FindStringSubmatch(stamp)
	if m == nil {
		return 0, &FormatError{Input: stamp}
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second, _ := strconv.Atoi(m[3])
	if minute > 59 || second > 59 {
		return 0, &FormatError{Input: stamp}
	}

	return hour*3600 + minute*60 + second, nil
}
