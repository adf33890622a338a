// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package llmstxt generates llms.txt and llms-full.txt files from a
// markdown documentation tree.
//
// llms.txt is an index: the README title and summary followed by links
// to every page, with sample and tutorial pages listed under an
// Optional section. llms-full.txt is the concatenated corpus. Fenced
// java code blocks are stripped from both.
package llmstxt

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Builder generates the two output documents from a docs tree.
type Builder struct {
	// BaseURL prefixes every page link in the index.
	BaseURL string

	// IndexTokenLimit and FullTokenLimit bound the approximate token
	// counts of the outputs. Zero means the default.
	IndexTokenLimit int
	FullTokenLimit  int

	md goldmark.Markdown
}

const (
	defaultIndexTokenLimit = 50_000
	defaultFullTokenLimit  = 500_000
)

// New creates a Builder linking pages under baseURL.
func New(baseURL string) *Builder {
	return &Builder{
		BaseURL:         strings.TrimSuffix(baseURL, "/"),
		IndexTokenLimit: defaultIndexTokenLimit,
		FullTokenLimit:  defaultFullTokenLimit,
		md:              goldmark.New(),
	}
}

// Build generates both documents from the docs tree rooted at docsDir.
// The README may sit inside docsDir or next to it.
func (b *Builder) Build(docsDir string) (index, full string, err error) {
	docsFS := os.DirFS(docsDir)

	pages, err := collectPages(docsFS)
	if err != nil {
		return "", "", err
	}

	readme, err := b.readReadme(docsDir)
	if err != nil {
		return "", "", err
	}

	index, err = b.buildIndex(docsFS, readme, pages)
	if err != nil {
		return "", "", err
	}
	full, err = b.buildFull(docsFS, pages)
	if err != nil {
		return "", "", err
	}

	if n := countTokens(index); n > b.IndexTokenLimit {
		return "", "", fmt.Errorf("index exceeds token limit: %d > %d", n, b.IndexTokenLimit)
	}
	if n := countTokens(full); n > b.FullTokenLimit {
		return "", "", fmt.Errorf("full corpus exceeds token limit: %d > %d", n, b.FullTokenLimit)
	}
	return index, full, nil
}

// WriteFiles runs Build and writes llms.txt and llms-full.txt to outDir.
func (b *Builder) WriteFiles(docsDir, outDir string) error {
	index, full, err := b.Build(docsDir)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "llms.txt"), []byte(index), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "llms-full.txt"), []byte(full), 0o644)
}

func collectPages(docsFS fs.FS) ([]string, error) {
	var pages []string
	err := fs.WalkDir(docsFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(path.Ext(p), ".md") {
			pages = append(pages, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk docs tree: %w", err)
	}
	sort.Strings(pages)
	return pages, nil
}

func (b *Builder) readReadme(docsDir string) ([]byte, error) {
	for _, cand := range []string{
		filepath.Join(docsDir, "README.md"),
		filepath.Join(filepath.Dir(docsDir), "README.md"),
	} {
		data, err := os.ReadFile(cand)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("README.md not found in %s or its parent", docsDir)
}

func (b *Builder) buildIndex(docsFS fs.FS, readme []byte, pages []string) (string, error) {
	title := b.firstHeading(readme)
	if title == "" {
		title = "Documentation"
	}
	summary := b.summary(readme)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if summary != "" {
		fmt.Fprintf(&sb, "> %s\n\n", summary)
	}

	var primary, secondary []string
	for _, page := range pages {
		src, err := fs.ReadFile(docsFS, page)
		if err != nil {
			return "", err
		}
		heading := b.firstHeading(stripJavaBlocks(b.md, src))
		if heading == "" {
			heading = strings.TrimSuffix(path.Base(page), path.Ext(page))
		}
		line := fmt.Sprintf("- [%s](%s/%s)", heading, b.BaseURL, escapePath(page))
		if isOptionalPage(page) {
			secondary = append(secondary, line)
		} else {
			primary = append(primary, line)
		}
	}

	writeSection(&sb, "Documentation", primary)
	writeSection(&sb, "Optional", secondary)
	return strings.TrimRight(sb.String(), "\n") + "\n", nil
}

func (b *Builder) buildFull(docsFS fs.FS, pages []string) (string, error) {
	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		src, err := fs.ReadFile(docsFS, page)
		if err != nil {
			return "", err
		}
		parts = append(parts, string(stripJavaBlocks(b.md, src)))
	}
	return strings.Join(parts, "\n\n"), nil
}

func writeSection(sb *strings.Builder, name string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n", name)
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
}

// isOptionalPage reports whether a page belongs under the Optional
// section: anything inside a sample or tutorial directory.
func isOptionalPage(page string) bool {
	for _, part := range strings.Split(path.Dir(page), "/") {
		if strings.Contains(part, "sample") || strings.Contains(part, "tutorial") {
			return true
		}
	}
	return false
}

// firstHeading returns the text of the first heading of any level.
func (b *Builder) firstHeading(src []byte) string {
	doc := b.md.Parser().Parse(text.NewReader(src))
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if h, ok := node.(*ast.Heading); ok {
			return nodeText(h, src)
		}
	}
	return ""
}

// summary returns the text of the first paragraph after the title.
func (b *Builder) summary(src []byte) string {
	doc := b.md.Parser().Parse(text.NewReader(src))
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if p, ok := node.(*ast.Paragraph); ok {
			return nodeText(p, src)
		}
	}
	return ""
}

// nodeText collects the plain text under node, flattening emphasis and
// links.
func nodeText(node ast.Node, src []byte) string {
	var sb strings.Builder
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// stripJavaBlocks removes fenced code blocks whose info string names
// java, cutting the fenced region out of the source bytes.
func stripJavaBlocks(md goldmark.Markdown, src []byte) []byte {
	doc := md.Parser().Parse(text.NewReader(src))

	type span struct{ start, stop int }
	var spans []span
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		fields := strings.Fields(string(fcb.Info.Segment.Value(src)))
		if len(fields) == 0 || !strings.EqualFold(fields[0], "java") {
			return ast.WalkContinue, nil
		}
		start, stop := fencedSpan(fcb, src)
		spans = append(spans, span{start, stop})
		return ast.WalkSkipChildren, nil
	})
	if len(spans) == 0 {
		return src
	}

	var out []byte
	prev := 0
	for _, s := range spans {
		out = append(out, src[prev:s.start]...)
		prev = s.stop
	}
	out = append(out, src[prev:]...)
	return out
}

// fencedSpan returns the byte range of a fenced block including its
// fence lines.
func fencedSpan(fcb *ast.FencedCodeBlock, src []byte) (start, stop int) {
	// The info segment sits on the opening fence line; back up to the
	// start of that line.
	start = fcb.Info.Segment.Start
	for start > 0 && src[start-1] != '\n' {
		start--
	}

	if lines := fcb.Lines(); lines.Len() > 0 {
		stop = lines.At(lines.Len() - 1).Stop
	} else {
		stop = fcb.Info.Segment.Stop
	}
	// Skip past the closing fence line.
	for stop < len(src) && src[stop] != '\n' {
		stop++
	}
	if stop < len(src) {
		stop++
	}
	return start, stop
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

// countTokens approximates a token count as whitespace-separated words.
func countTokens(s string) int {
	return len(strings.Fields(s))
}
