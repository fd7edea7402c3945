// Package session keeps the cookie jar of an OpenCart client and persists it
// as a JSON object of cookie names to values.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fivetwenty-io/opencart-client/internal/constants"
)

// Jar is a name to value cookie store optionally backed by a file.
type Jar struct {
	mutex   sync.Mutex
	path    string
	cookies map[string]string
}

// New returns an empty jar persisted to path. An empty path disables
// persistence.
func New(path string) *Jar {
	return &Jar{
		path:    path,
		cookies: make(map[string]string),
	}
}

// Load returns a jar for path, filled from the file when it exists. A
// missing file yields an empty jar and no error. A malformed file yields an
// empty jar and the parse error, which callers may log and ignore.
func Load(path string) (*Jar, error) {
	jar := New(path)
	if path == "" {
		return jar, nil
	}

	// path comes from the caller's configuration
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return jar, nil
	}

	if err != nil {
		return jar, fmt.Errorf("reading session file: %w", err)
	}

	var cookies map[string]string

	err = json.Unmarshal(data, &cookies)
	if err != nil {
		return jar, fmt.Errorf("parsing session file: %w", err)
	}

	for name, value := range cookies {
		jar.cookies[name] = value
	}

	return jar, nil
}

// Path returns the backing file, or "".
func (j *Jar) Path() string {
	return j.path
}

// Merge stores cookies, replacing values of existing names.
func (j *Jar) Merge(cookies map[string]string) {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	for name, value := range cookies {
		j.cookies[name] = value
	}
}

// Set stores one cookie.
func (j *Jar) Set(name, value string) {
	j.Merge(map[string]string{name: value})
}

// Get returns the value of a cookie.
func (j *Jar) Get(name string) (string, bool) {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	value, ok := j.cookies[name]

	return value, ok
}

// Len returns the number of cookies.
func (j *Jar) Len() int {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	return len(j.cookies)
}

// Snapshot returns a copy of the cookies.
func (j *Jar) Snapshot() map[string]string {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	out := make(map[string]string, len(j.cookies))
	for name, value := range j.cookies {
		out[name] = value
	}

	return out
}

// Header renders the Cookie header value, names in sorted order. It returns
// "" for an empty jar.
func (j *Jar) Header() string {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	names := make([]string, 0, len(j.cookies))
	for name := range j.cookies {
		names = append(names, name)
	}

	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+j.cookies[name])
	}

	return strings.Join(pairs, "; ")
}

// Save writes the whole jar to its file. The file is written to a temporary
// name in the same directory and renamed over the target, so an interrupted
// write never leaves a truncated jar behind.
func (j *Jar) Save() error {
	if j.path == "" {
		return nil
	}

	data, err := json.Marshal(j.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	dir := filepath.Dir(j.path)

	err = os.MkdirAll(dir, constants.SessionDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(j.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}

	tmpPath := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err == nil {
		err = os.Chmod(tmpPath, constants.SessionFilePerm)
	}

	if err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("failed to write temp session file: %w", err)
	}

	err = os.Rename(tmpPath, j.path)
	if err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("failed to rename temp session file: %w", err)
	}

	return nil
}

// Clear empties the jar and removes its file.
func (j *Jar) Clear() error {
	j.mutex.Lock()
	j.cookies = make(map[string]string)
	j.mutex.Unlock()

	if j.path == "" {
		return nil
	}

	err := os.Remove(j.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}
