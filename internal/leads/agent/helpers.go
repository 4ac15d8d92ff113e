package agent

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	maxFieldLength = 500
	userDataBegin  = "<<<BEGIN_USER_DATA>>>"
	userDataEnd    = "<<<END_USER_DATA>>>"
)

// sanitizeUserInput removes control characters and truncates to max length
func sanitizeUserInput(s string, maxLen int) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sb.WriteRune(r)
	}
	result := strings.TrimSpace(sb.String())
	if runes := []rune(result); len(runes) > maxLen {
		result = string(runes[:maxLen]) + "... [truncated]"
	}
	return result
}

// wrapUserData wraps user-provided content with markers to isolate it from instructions
func wrapUserData(content string) string {
	return fmt.Sprintf("%s\n%s\n%s", userDataBegin, content, userDataEnd)
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func formatFloat(v *float64) string {
	if v == nil {
		return "unrated"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int, fallback string) string {
	if v == nil {
		return fallback
	}
	return strconv.Itoa(*v)
}
