package types

// Limit and threshold constants used across the codebase.
// Loop tunables (iteration ceiling, checkpoint interval) live in
// pkg/config since they are user-configurable.
const (
	// --- File operations ---

	// MaxReadFileSize is the maximum file size that ReadTool will load (10 MB).
	MaxReadFileSize = 10 * 1024 * 1024

	// MaxLineLength is the per-line truncation limit for file reads.
	MaxLineLength = 500

	// --- Tool output limits ---

	// BashMaxOutput is the maximum output length for bash tool results.
	BashMaxOutput = 10000

	// BashDefaultTimeout is the default timeout in seconds for bash commands.
	BashDefaultTimeout = 120

	// GrepMaxMatches is the maximum number of matches the grep tool returns.
	GrepMaxMatches = 100

	// GrepMaxBytes is the maximum output size in bytes for grep results.
	GrepMaxBytes = 50 * 1024 // 50KB

	// GrepMaxLine is the per-line truncation limit for grep output.
	GrepMaxLine = 500

	// GlobMaxResults is the maximum number of results the glob tool returns.
	GlobMaxResults = 1000

	// LsMaxEntries is the maximum number of entries the ls tool returns.
	LsMaxEntries = 1000

	// --- Session storage ---

	// SessionsDir is the directory name for storing session files,
	// relative to the user home directory.
	SessionsDir = ".tandem/sessions"
)
