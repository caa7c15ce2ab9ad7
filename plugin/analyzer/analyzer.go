// Package analyzer wraps a Korean morphological analyzer behind a small
// interface and keeps its user dictionary in sync with the database.
package analyzer

import "context"

// Morpheme is one analyzed token.
type Morpheme struct {
	Surface string
	Pos     string
}

// Analyzer splits text into morphemes tagged with a part of speech.
type Analyzer interface {
	Analyze(ctx context.Context, text string) ([]Morpheme, error)
}

// Builder creates an analyzer that honours the user dictionary file at path.
type Builder func(userDictPath string) (Analyzer, error)
