// Package session persists conversation messages as append-only JSONL
// files, one file per session, keyed by a timestamp-based identifier.
package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tandem-agent/tandem/pkg/types"
)

// Entry is a single persisted message record.
type Entry struct {
	Timestamp time.Time     `json:"timestamp"`
	Message   types.Message `json:"message"`
}

// Store appends messages for one session. The zero value is not
// usable; create with Open.
type Store struct {
	dir string
	id  string
}

// NewID generates a timestamp-based session identifier.
func NewID() string {
	return time.Now().Format("20060102-150405")
}

// baseDir returns the sessions directory, creating it if needed.
// TANDEM_HOME overrides the default under the user home directory.
func baseDir() (string, error) {
	if home := os.Getenv("TANDEM_HOME"); home != "" {
		dir := filepath.Join(home, "sessions")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("cannot create sessions directory: %w", err)
		}
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, types.SessionsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create sessions directory: %w", err)
	}
	return dir, nil
}

// Open creates a Store for the given session id.
func Open(id string) (*Store, error) {
	dir, err := baseDir()
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, id: id}, nil
}

// ID returns the session identifier.
func (s *Store) ID() string {
	return s.id
}

// RecordMessage appends one message to the session file. System
// messages are not persisted.
func (s *Store) RecordMessage(role, content string, metadata map[string]string) error {
	if role == types.RoleSystem {
		return nil
	}

	path := filepath.Join(s.dir, s.id+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open session file: %w", err)
	}
	defer f.Close()

	entry := Entry{
		Timestamp: time.Now(),
		Message:   types.Message{Role: role, Content: content, Metadata: metadata},
	}
	if err := json.NewEncoder(f).Encode(entry); err != nil {
		return fmt.Errorf("cannot write session entry: %w", err)
	}
	return nil
}

// LoadMessages reads all messages for a session, in append order.
// Malformed lines are skipped.
func LoadMessages(id string) ([]types.Message, error) {
	dir, err := baseDir()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, id+".jsonl"))
	if err != nil {
		return nil, fmt.Errorf("cannot open session file: %w", err)
	}
	defer f.Close()

	var messages []types.Message
	scanner := bufio.NewScanner(f)
	// Allow large lines (up to 1MB)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		messages = append(messages, entry.Message)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading session file: %w", err)
	}
	return messages, nil
}

// Info holds metadata about a saved session.
type Info struct {
	ID       string
	ModTime  time.Time
	Messages int
}

// List returns available sessions sorted by modification time (newest
// first).
func List() ([]Info, error) {
	dir, err := baseDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read sessions directory: %w", err)
	}

	var sessions []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".jsonl")
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		sessions = append(sessions, Info{
			ID:       id,
			ModTime:  fi.ModTime(),
			Messages: countLines(filepath.Join(dir, entry.Name())),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ModTime.After(sessions[j].ModTime)
	})
	return sessions, nil
}

// countLines counts the number of lines in a file.
func countLines(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		count++
	}
	return count
}
