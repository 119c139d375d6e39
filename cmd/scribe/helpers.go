package main

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// formatDuration renders seconds as "4m 5s", promoting to hours past 60
// minutes.
func formatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds >= 3600 {
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// formatClock renders seconds as "4:05" for inline listings.
func formatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func formatViewCount(views int64) string {
	switch {
	case views >= 1_000_000:
		return fmt.Sprintf("%.1fM views", float64(views)/1_000_000)
	case views >= 1_000:
		return fmt.Sprintf("%.1fK views", float64(views)/1_000)
	default:
		return fmt.Sprintf("%d views", views)
	}
}

// formatUploadDate converts the provider's YYYYMMDD form to YYYY-MM-DD,
// passing anything else through untouched.
func formatUploadDate(date string) string {
	if len(date) != 8 {
		return date
	}
	for i := 0; i < len(date); i++ {
		if date[i] < '0' || date[i] > '9' {
			return date
		}
	}
	return date[0:4] + "-" + date[4:6] + "-" + date[6:8]
}

// truncateText caps s at limit bytes, backing up to a rune boundary so the
// cut never splits a multi-byte character.
func truncateText(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func pluralize(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}
