package util

import (
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// ParseInt interprets a raw argument value as a base-10 integer.
func ParseInt(value string) (int64, error) {
	return strconv.ParseInt(value, 10, 64)
}

// ParseFloat interprets a raw argument value as a float.
func ParseFloat(value string) (float64, error) {
	return strconv.ParseFloat(value, 64)
}

// ParseBool interprets a raw argument value as a boolean.
func ParseBool(value string) (bool, error) {
	return strconv.ParseBool(value)
}

// ParseTime interprets a raw argument value as a timestamp in any of the
// formats recognized by dateparse, in the local time zone.
func ParseTime(value string) (time.Time, error) {
	return dateparse.ParseLocal(value)
}
