package util

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tandem-agent/tandem/pkg/types"
)

// sensitiveEnvPrefixes lists environment variable prefixes that should be
// stripped from child process environments to avoid leaking secrets.
var sensitiveEnvPrefixes = []string{
	"OPENAI_",
	"ANTHROPIC_",
	"TANDEM_",
	"API_KEY",
	"SECRET",
	"TOKEN",
	"AWS_SECRET",
}

// ValidatePath ensures the path is absolute, clean, resolves symlinks, and
// optionally checks that the resolved path is under allowedDir.
// Pass allowedDir="" to disable the boundary check.
func ValidatePath(path, allowedDir string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is required")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	cleaned := filepath.Clean(absPath)

	// Resolve symlinks if the path exists, to prevent symlink traversal
	if _, err := os.Lstat(cleaned); err == nil {
		resolved, err := filepath.EvalSymlinks(cleaned)
		if err != nil {
			return "", fmt.Errorf("failed to resolve symlinks: %w", err)
		}
		cleaned = resolved
	}

	// Boundary check
	if allowedDir != "" {
		rel, err := filepath.Rel(allowedDir, cleaned)
		if err != nil || strings.HasPrefix(rel, "..") {
			return "", fmt.Errorf("path %s is outside the allowed directory", path)
		}
	}

	return cleaned, nil
}

// FormatWithLineNumbers adds line numbers to content (like cat -n).
func FormatWithLineNumbers(content string, offset, limit int) string {
	if offset < 1 {
		offset = 1
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var result strings.Builder
	lineNum := 0
	linesOutput := 0

	for scanner.Scan() {
		lineNum++
		if lineNum < offset {
			continue
		}
		if limit > 0 && linesOutput >= limit {
			break
		}

		line := scanner.Text()
		// Truncate long lines
		if len(line) > types.MaxLineLength {
			line = line[:types.MaxLineLength] + "..."
		}
		fmt.Fprintf(&result, "%6d\t%s\n", lineNum, line)
		linesOutput++
	}

	return result.String()
}

// TruncateTail limits output length by keeping the tail (last maxLen chars).
// Useful for bash output where errors and exit status appear at the end.
func TruncateTail(output string, maxLen int) string {
	if len(output) <= maxLen {
		return output
	}
	return fmt.Sprintf("[output truncated: showing last %d of %d chars]\n", maxLen, len(output)) + output[len(output)-maxLen:]
}

// ParseInt converts a string argument to an int, returning defaultVal
// when the argument is missing or not a number.
func ParseInt(args map[string]string, key string, defaultVal int) int {
	v, ok := args[key]
	if !ok || v == "" {
		return defaultVal
	}
	n := 0
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return defaultVal
	}
	return n
}

// ParseBool converts a string argument to a bool, returning defaultVal
// when the argument is missing or unrecognized.
func ParseBool(args map[string]string, key string, defaultVal bool) bool {
	switch strings.ToLower(args[key]) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// SanitizeEnv returns a copy of os.Environ() with sensitive variables removed.
func SanitizeEnv() []string {
	var result []string
	for _, entry := range os.Environ() {
		key := entry
		if idx := strings.Index(entry, "="); idx >= 0 {
			key = entry[:idx]
		}
		upper := strings.ToUpper(key)
		sensitive := false
		for _, prefix := range sensitiveEnvPrefixes {
			if strings.HasPrefix(upper, prefix) {
				sensitive = true
				break
			}
		}
		if !sensitive {
			result = append(result, entry)
		}
	}
	return result
}

// EstimateMessageChars returns a rough character count across all messages.
func EstimateMessageChars(messages []types.Message) int {
	total := 0
	for _, m := range messages {
		total += len(m.Content)
	}
	return total
}

// RelativizePath returns path relative to basePath, or path unchanged on error.
func RelativizePath(path, basePath string) string {
	rel, err := filepath.Rel(basePath, path)
	if err != nil {
		return path
	}
	return rel
}

// IsBinaryExtension returns true for common binary file extensions.
func IsBinaryExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".exe", ".bin", ".so", ".dylib", ".dll", ".o", ".a",
		".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".webp",
		".zip", ".tar", ".gz", ".bz2", ".xz", ".7z",
		".pdf", ".wasm", ".pyc", ".class":
		return true
	}
	return false
}

// FirstLine returns the first line of s, truncated to maxLen.
func FirstLine(s string, maxLen int) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return s
}
