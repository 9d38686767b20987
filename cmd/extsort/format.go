package main

import "fmt"

// formatSize renders a byte count with a binary unit and one decimal.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit && bytes > -unit {
		return fmt.Sprintf("%d B", bytes)
	}
	sign := ""
	if bytes < 0 {
		sign = "-"
		bytes = -bytes
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%s%.1f %cB", sign, float64(bytes)/float64(div), "KMGTPE"[exp])
}

// truncatePath shortens a path for display, keeping the end visible.
// If the path is longer than maxLen, it will be shown as ".../<end>".
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[:maxLen]
	}
	return "..." + path[len(path)-(maxLen-3):]
}
