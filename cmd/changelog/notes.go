package main

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Release is one version section of the changelog.
type Release struct {
	Version string
	Date    string
	Body    string
}

// Notes is a parsed Keep a Changelog file.
type Notes struct {
	Releases []Release
	Links    map[string]string
}

// Release returns the section for the given version, ignoring a leading
// "v" on either side. Nil when the version has no section.
func (n *Notes) Release(version string) *Release {
	version = strings.TrimPrefix(version, "v")
	for i := range n.Releases {
		if strings.TrimPrefix(n.Releases[i].Version, "v") == version {
			return &n.Releases[i]
		}
	}
	return nil
}

// ParseNotes parses a Keep a Changelog document. Each level-2 heading
// starts a release section; the body runs until the next one.
func ParseNotes(source []byte) (*Notes, error) {
	md := goldmark.New()
	ctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	notes := &Notes{Links: map[string]string{}}
	for _, ref := range ctx.References() {
		notes.Links[string(ref.Label())] = string(ref.Destination())
	}

	type section struct {
		release Release
		start   int // byte offset where the heading begins
		bodyAt  int // byte offset where the body begins
	}
	var sections []section

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		heading, ok := n.(*ast.Heading)
		if !entering || !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}

		version, date := splitHeading(headingText(heading, source))
		sec := section{release: Release{Version: version, Date: date}}
		if lines := heading.Lines(); lines.Len() > 0 {
			sec.start = lines.At(0).Start
			sec.bodyAt = lines.At(lines.Len() - 1).Stop
		}
		sections = append(sections, sec)
		return ast.WalkSkipChildren, nil
	})

	for i, sec := range sections {
		end := len(source)
		if i+1 < len(sections) {
			end = sections[i+1].start
		}
		if sec.bodyAt < end {
			sec.release.Body = strings.TrimSpace(string(source[sec.bodyAt:end]))
		}
		notes.Releases = append(notes.Releases, sec.release)
	}

	return notes, nil
}

func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			buf.Write(typed.Segment.Value(source))
		case *ast.Link:
			// A heading like "[1.2.3] - date" becomes a shortcut link
			// when the changelog defines [1.2.3]: <url>.
			for linkChild := typed.FirstChild(); linkChild != nil; linkChild = linkChild.NextSibling() {
				if textNode, ok := linkChild.(*ast.Text); ok {
					buf.WriteByte('[')
					buf.Write(textNode.Segment.Value(source))
					buf.WriteByte(']')
				}
			}
		}
	}
	return buf.String()
}

// splitHeading parses "[1.2.3] - 2026-01-16" style heading text.
func splitHeading(heading string) (version, date string) {
	version = strings.TrimSpace(heading)
	if i := strings.Index(version, " - "); i >= 0 {
		date = strings.TrimSpace(version[i+3:])
		version = version[:i]
	}
	version = strings.TrimSpace(version)
	version = strings.TrimPrefix(version, "[")
	version = strings.TrimSuffix(version, "]")
	return version, date
}
