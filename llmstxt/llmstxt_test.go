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

package llmstxt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeDocs lays out a repo-shaped tree with the README next to the docs
// directory and returns the docs directory.
func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(root, "docs")
}

const readme = `# Raterkit

An evaluation toolkit for LLM-backed agents.
`

func TestBuildIndex(t *testing.T) {
	docsDir := writeDocs(t, map[string]string{
		"README.md":                "# Raterkit\n\nAn evaluation toolkit for LLM-backed agents.\n",
		"docs/guide.md":            "# User Guide\n\nHow to run evaluations.\n",
		"docs/samples/hello.md":    "# Hello Sample\n\nA first evaluation.\n",
		"docs/tutorials/basics.md": "# Basics Tutorial\n\nStep by step.\n",
	})

	index, _, err := New("https://example.com/docs").Build(docsDir)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	wantLines := []string{
		"# Raterkit",
		"> An evaluation toolkit for LLM-backed agents.",
		"## Documentation",
		"- [User Guide](https://example.com/docs/guide.md)",
		"## Optional",
		"- [Hello Sample](https://example.com/docs/samples/hello.md)",
		"- [Basics Tutorial](https://example.com/docs/tutorials/basics.md)",
	}
	pos := 0
	for _, line := range wantLines {
		i := strings.Index(index[pos:], line)
		if i < 0 {
			t.Fatalf("index missing %q (in order)\nindex:\n%s", line, index)
		}
		pos += i + len(line)
	}
	if strings.Contains(index[:strings.Index(index, "## Optional")], "Hello Sample") {
		t.Error("sample page listed before the Optional section")
	}
}

func TestBuildHeadingFallsBackToFilename(t *testing.T) {
	docsDir := writeDocs(t, map[string]string{
		"README.md":        readme,
		"docs/untitled.md": "Just prose, no heading.\n",
	})

	index, _, err := New("https://example.com/docs").Build(docsDir)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !strings.Contains(index, "- [untitled](https://example.com/docs/untitled.md)") {
		t.Errorf("index does not link the heading-less page by filename:\n%s", index)
	}
}

func TestBuildEscapesLinkPaths(t *testing.T) {
	docsDir := writeDocs(t, map[string]string{
		"README.md":               readme,
		"docs/getting started.md": "# Getting Started\n\nIntro.\n",
	})

	index, _, err := New("https://example.com/docs").Build(docsDir)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !strings.Contains(index, "(https://example.com/docs/getting%20started.md)") {
		t.Errorf("index does not escape the page path:\n%s", index)
	}
}

func TestBuildStripsJavaBlocks(t *testing.T) {
	page := "# Setup\n\nInstall the toolkit.\n\n" +
		"```java\nSystem.out.println(\"hello\");\n```\n\n" +
		"```go\nfmt.Println(\"hello\")\n```\n"
	docsDir := writeDocs(t, map[string]string{
		"README.md":     readme,
		"docs/setup.md": page,
	})

	_, full, err := New("https://example.com/docs").Build(docsDir)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if strings.Contains(full, "System.out.println") {
		t.Errorf("full corpus still contains the java block:\n%s", full)
	}
	if strings.Contains(full, "```java") {
		t.Errorf("full corpus still contains the java fence:\n%s", full)
	}
	if !strings.Contains(full, "fmt.Println(\"hello\")") {
		t.Errorf("full corpus lost the go block:\n%s", full)
	}
	if !strings.Contains(full, "Install the toolkit.") {
		t.Errorf("full corpus lost the prose:\n%s", full)
	}
}

func TestBuildConcatenatesPagesInOrder(t *testing.T) {
	docsDir := writeDocs(t, map[string]string{
		"README.md":  readme,
		"docs/a.md":  "# Alpha\n\nFirst.\n",
		"docs/z.md":  "# Zulu\n\nLast.\n",
		"docs/m.md":  "# Mike\n\nMiddle.\n",
		"docs/n.txt": "not markdown, not collected",
	})

	_, full, err := New("https://example.com/docs").Build(docsDir)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	alpha := strings.Index(full, "# Alpha")
	mike := strings.Index(full, "# Mike")
	zulu := strings.Index(full, "# Zulu")
	if alpha < 0 || mike < 0 || zulu < 0 || !(alpha < mike && mike < zulu) {
		t.Errorf("pages out of order: alpha=%d mike=%d zulu=%d", alpha, mike, zulu)
	}
	if strings.Contains(full, "not markdown") {
		t.Error("non-markdown file leaked into the corpus")
	}
}

func TestBuildTokenLimits(t *testing.T) {
	docsDir := writeDocs(t, map[string]string{
		"README.md":     readme,
		"docs/guide.md": "# Guide\n\nSome words to count against the limit.\n",
	})

	b := New("https://example.com/docs")
	b.IndexTokenLimit = 1
	if _, _, err := b.Build(docsDir); err == nil {
		t.Error("Build() with a tiny index limit succeeded, want error")
	}

	b = New("https://example.com/docs")
	b.FullTokenLimit = 1
	if _, _, err := b.Build(docsDir); err == nil {
		t.Error("Build() with a tiny corpus limit succeeded, want error")
	}
}

func TestBuildMissingReadme(t *testing.T) {
	docsDir := writeDocs(t, map[string]string{
		"docs/guide.md": "# Guide\n\nContent.\n",
	})
	if _, _, err := New("https://example.com/docs").Build(docsDir); err == nil {
		t.Error("Build() without a README succeeded, want error")
	}
}

func TestWriteFiles(t *testing.T) {
	docsDir := writeDocs(t, map[string]string{
		"README.md":     readme,
		"docs/guide.md": "# Guide\n\nContent.\n",
	})
	outDir := t.TempDir()

	if err := New("https://example.com/docs").WriteFiles(docsDir, outDir); err != nil {
		t.Fatalf("WriteFiles() error: %v", err)
	}
	for _, name := range []string{"llms.txt", "llms-full.txt"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
