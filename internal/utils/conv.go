package utils

import (
	"strconv"
	"strings"
)

// ParseID 解析路径或表单中的正整数 ID
func ParseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
