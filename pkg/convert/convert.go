// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package convert reads lenient query-string values. Bad input yields the
// fallback rather than an error, so only use it where a default is acceptable.
package convert

import (
	"strconv"
	"strings"
)

// ToIntD parses a decimal int, surrounding spaces allowed, or returns def.
func ToIntD(str string, def int) int {
	value, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return def
	}
	return value
}

// ToBool accepts the [strconv.ParseBool] spellings; anything else is false.
func ToBool(s string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && value
}
