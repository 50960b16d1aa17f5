package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

// ParsePassages reads one passage per non-blank line. Lines starting with '#'
// are comments.
func ParsePassages(r io.Reader) ([]string, error) {
	var passages []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		passages = append(passages, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return passages, nil
}

// LoadFile builds a corpus from a passage file.
func LoadFile(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()

	passages, err := ParsePassages(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file %s: %w", path, err)
	}
	c, err := New(passages)
	if err != nil {
		return nil, fmt.Errorf("corpus file %s: %w", path, err)
	}
	return c, nil
}

// Holder publishes the current corpus to readers. Reloads swap the whole
// value so a reader always sees one consistent corpus.
type Holder struct {
	current atomic.Pointer[Corpus]
}

// NewHolder returns a holder primed with c.
func NewHolder(c *Corpus) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Load returns the current corpus.
func (h *Holder) Load() *Corpus {
	return h.current.Load()
}

// Store replaces the current corpus. Nil values are ignored.
func (h *Holder) Store(c *Corpus) {
	if c == nil {
		return
	}
	h.current.Store(c)
}
