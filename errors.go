package escansion

import "errors"

var (
	// ErrNilTagger is returned by ScanText on a Scanner built without a
	// tagger.
	ErrNilTagger = errors.New("escansion: nil tagger")
	// ErrBadOption wraps invalid Options and constructor options.
	ErrBadOption = errors.New("escansion: bad option")
	// ErrTableFormat wraps malformed lines in a rule table.
	ErrTableFormat = errors.New("escansion: malformed table")
)
