package utils

import "fmt"

// SecToTime formats whole seconds as HH:MM:SS. Fields are zero-padded
// to two digits; the hour field widens naturally past 99.
func SecToTime(sec int) string {
	m, s := sec/60, sec%60
	h, m := m/60, m%60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// TimeToSec converts hours, minutes, and seconds to total seconds.
// Field ranges are not validated.
func TimeToSec(hour, minute, second int) int {
	return hour*3600 + minute*60 + second
}
