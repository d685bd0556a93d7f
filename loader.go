package confstack

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/confstack/confstack/streams"
)

// Loader describes a pending configuration build: the file to look for, an
// optional explicit format, the ordered list of directories to search, and
// the defaults seeding the result. A Loader carries no state across builds;
// Build may be called repeatedly and re-reads the files each time.
type Loader struct {
	filename string
	filetype string
	paths    []string
	defaults map[string]any
	streams  streams.IOStreams
}

// Option configures a Loader at construction time. Options are composable and
// can be passed to NewLoader in any order.
type Option func(*Loader)

// NewLoader constructs a Loader for filename and applies all given options.
// Panics if filename is empty.
func NewLoader(filename string, opts ...Option) *Loader {
	if filename == "" {
		panic("confstack: NewLoader: filename cannot be empty")
	}
	l := &Loader{filename: filename}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithFiletype sets an explicit format identifier, bypassing resolution from
// the filename's extension. Matching is case-insensitive; the identifier is
// validated during Build. Panics if filetype is empty.
func WithFiletype(filetype string) Option {
	return func(l *Loader) {
		if filetype == "" {
			panic("confstack: WithFiletype: filetype cannot be empty")
		}
		l.filetype = filetype
	}
}

// WithDefaults sets the mapping used to seed the Config on Build.
func WithDefaults(defaults map[string]any) Option {
	return func(l *Loader) {
		l.defaults = defaults
	}
}

// WithStreams wires user-facing message streams for one-line notices about
// merged files and empty searches. Pass adapters from the companion streams
// package to route output to buffers, logs, or io.Discard. Without streams
// the Loader stays quiet.
func WithStreams(s streams.IOStreams) Option {
	return func(l *Loader) {
		l.streams = s
	}
}

// SetDefaults replaces the defaults mapping used on the next Build and
// returns the Loader for chaining.
func (l *Loader) SetDefaults(defaults map[string]any) *Loader {
	l.defaults = defaults
	return l
}

// AddFolderPath appends dir to the ordered search list and returns the
// Loader for chaining. Duplicates are allowed; a directory added twice is
// searched and merged twice.
func (l *Loader) AddFolderPath(dir string) *Loader {
	l.paths = append(l.paths, dir)
	return l
}

// Build resolves the file format, seeds a new Config with the defaults, and
// merges the target file from every registered search directory in insertion
// order, later files overwriting earlier ones. Finding no file at all is
// ErrNoConfigFileFound unless silent is set, in which case the defaults-only
// Config is returned. Format resolution failures and decode failures are
// never silenced.
func (l *Loader) Build(silent bool) (*Config, error) {
	format, err := l.resolveFormat()
	if err != nil {
		return nil, err
	}

	cfg := New(l.defaults)
	found := false
	for _, dir := range l.paths {
		candidate := filepath.Join(dir, l.filename)
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := cfg.FromFile(candidate, format, false); err != nil {
			return nil, err
		}
		found = true
		if l.streams != nil && l.streams.Out() != nil {
			fmt.Fprintf(l.streams.Out(), "confstack: merged %s\n", candidate)
		}
	}

	if !found {
		if !silent {
			return nil, fmt.Errorf("%w: %s", ErrNoConfigFileFound, l.filename)
		}
		if l.streams != nil && l.streams.ErrOut() != nil {
			fmt.Fprintf(
				l.streams.ErrOut(),
				"confstack: warning: no %s found in any search path; continuing with defaults\n",
				l.filename,
			)
		}
	}
	return cfg, nil
}

// resolveFormat picks the explicit filetype when one was supplied, falling
// back to the filename's extension.
func (l *Loader) resolveFormat() (Format, error) {
	if l.filetype != "" {
		return ParseFormat(l.filetype)
	}
	return formatFromFilename(l.filename)
}
