// Package preprocessor defines the handle the macro expansion stage hands to
// the compiler: the processed source text, the ordered list of files that
// contributed to it, and a mapping from processed byte offsets back to
// original file and line. Macro expansion itself happens upstream; this
// package only models its output.
package preprocessor

import "strings"

// Source is one file that contributed to the processed text.
type Source struct {
	Path    string
	Content string
}

// Mapping locates a processed offset in the user's original source.
type Mapping struct {
	// Path of the original file.
	Path string

	// Line is the 1-based line number in the original file.
	Line int
}

// segment maps a contiguous run of processed text back to a position in one
// original file. Line is the original line at the segment start; offsets
// inside the segment advance the line by the newlines between the segment
// start and the offset.
type segment struct {
	start int
	end   int
	path  string
	line  int
}

// Processed is the output of the preprocessor for one compilation unit.
type Processed struct {
	text     string
	sources  []Source
	segments []segment
}

// Builder assembles a Processed from expansion segments, in processed-text
// order.
type Builder struct {
	text     strings.Builder
	sources  []Source
	segments []segment
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddSource registers an original file. Files are indexed in registration
// order and Append may only reference registered paths.
func (b *Builder) AddSource(path, content string) *Builder {
	b.sources = append(b.sources, Source{Path: path, Content: content})
	return b
}

// Append adds a run of processed text that originated at the given 1-based
// line of the given file.
func (b *Builder) Append(text, path string, line int) *Builder {
	start := b.text.Len()
	b.text.WriteString(text)
	b.segments = append(b.segments, segment{
		start: start,
		end:   b.text.Len(),
		path:  path,
		line:  line,
	})
	return b
}

// Build finalizes the processed unit.
func (b *Builder) Build() *Processed {
	return &Processed{
		text:     b.text.String(),
		sources:  b.sources,
		segments: b.segments,
	}
}

// Simple wraps unpreprocessed text as a Processed: a single file whose
// offsets map to themselves. This is what the pipeline uses when a script
// contains no macros.
func Simple(text, path string) *Processed {
	return NewBuilder().AddSource(path, text).Append(text, path, 1).Build()
}

// Text returns the processed source text.
func (p *Processed) Text() string {
	return p.text
}

// Sources returns the contributing files in index order. SourceInfo file
// indexes in compiled output refer to this slice.
func (p *Processed) Sources() []Source {
	return p.sources
}

// Mapping resolves a processed byte offset to the original file and line.
// The second return is false when no segment covers the offset, which for a
// tree produced from this text means the tree and the text have diverged.
func (p *Processed) Mapping(offset int) (Mapping, bool) {
	for _, seg := range p.segments {
		if offset < seg.start || offset >= seg.end {
			continue
		}
		line := seg.line + strings.Count(p.text[seg.start:offset], "\n")
		return Mapping{Path: seg.path, Line: line}, true
	}
	return Mapping{}, false
}

// SourceIndex returns the index of the given path in Sources, or -1.
func (p *Processed) SourceIndex(path string) int {
	for i, src := range p.sources {
		if src.Path == path {
			return i
		}
	}
	return -1
}
