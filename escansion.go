// Package escansion provides metrical scansion of Spanish verse:
// syllabification, stress assignment, synalepha and sinaeresis, rhythm,
// rhyme schemes and stanza classification. It works on tokens produced
// by an external part-of-speech tagger.
package escansion

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
)

//go:embed data
var embedded embed.FS

// Tagger turns raw text into tokens annotated with part of speech,
// morphology and line breaks.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Token, error)
}

// TaggerFunc adapts a function to the Tagger interface.
type TaggerFunc func(ctx context.Context, text string) ([]Token, error)

// Tag calls f.
func (f TaggerFunc) Tag(ctx context.Context, text string) ([]Token, error) {
	return f(ctx, text)
}

// Scanner holds the rule tables and the tagger handle. A Scanner is safe
// for concurrent use.
type Scanner struct {
	tagger Tagger
	tables *tables
	// cache maps a word to its syllabification.
	cache       *lru.Cache[string, Syllabification]
	logger      *slog.Logger
	concurrency int
}

type settings struct {
	data        fs.FS
	logger      *slog.Logger
	cacheSize   int
	concurrency int
}

// Option configures a Scanner.
type Option func(*settings)

// WithData replaces the embedded rule tables with the files in fsys.
func WithData(fsys fs.FS) Option {
	return func(s *settings) { s.data = fsys }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithCacheSize sets how many syllabified words are kept in memory.
func WithCacheSize(n int) Option {
	return func(s *settings) { s.cacheSize = n }
}

// WithConcurrency bounds the number of stanzas analysed at once.
func WithConcurrency(n int) Option {
	return func(s *settings) { s.concurrency = n }
}

// New loads the rule tables and returns a Scanner. tagger may be nil
// when only token-level methods are used; ScanText then fails with
// ErrNilTagger.
func New(tagger Tagger, opts ...Option) (*Scanner, error) {
	cfg := settings{
		cacheSize:   4096,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.cacheSize <= 0 {
		return nil, fmt.Errorf("%w: cache size %d", ErrBadOption, cfg.cacheSize)
	}
	if cfg.concurrency <= 0 {
		return nil, fmt.Errorf("%w: concurrency %d", ErrBadOption, cfg.concurrency)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.data == nil {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			return nil, fmt.Errorf("embedded data: %w", err)
		}
		cfg.data = sub
	}

	t, err := loadTables(cfg.data)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[string, Syllabification](cfg.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("syllable cache: %w", err)
	}
	return &Scanner{
		tagger:      tagger,
		tables:      t,
		cache:       cache,
		logger:      cfg.logger,
		concurrency: cfg.concurrency,
	}, nil
}
