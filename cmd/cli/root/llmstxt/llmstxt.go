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

// Package llmstxt generates llms.txt files from a docs tree.
package llmstxt

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raterkit/raterkit/cmd/cli/root"
	"github.com/raterkit/raterkit/llmstxt"
)

type llmstxtFlags struct {
	docsDir    string
	outDir     string
	baseURL    string
	indexLimit int
	fullLimit  int
}

var flags llmstxtFlags

var llmstxtCmd = &cobra.Command{
	Use:   "llmstxt",
	Short: "Generates llms.txt and llms-full.txt from a markdown docs tree.",
	RunE: func(cmd *cobra.Command, args []string) error {
		b := llmstxt.New(flags.baseURL)
		if flags.indexLimit > 0 {
			b.IndexTokenLimit = flags.indexLimit
		}
		if flags.fullLimit > 0 {
			b.FullTokenLimit = flags.fullLimit
		}
		if err := b.WriteFiles(flags.docsDir, flags.outDir); err != nil {
			return err
		}
		fmt.Println("Generated llms.txt and llms-full.txt")
		return nil
	},
}

func init() {
	root.RootCmd.AddCommand(llmstxtCmd)

	llmstxtCmd.Flags().StringVar(&flags.docsDir, "docs-dir", "", "Documentation tree to index")
	llmstxtCmd.Flags().StringVar(&flags.outDir, "out-root", ".", "Directory the outputs are written to")
	llmstxtCmd.Flags().StringVar(&flags.baseURL, "base-url", "", "URL prefix for page links in the index")
	llmstxtCmd.Flags().IntVar(&flags.indexLimit, "index-limit", 0, "Approximate token limit for llms.txt")
	llmstxtCmd.Flags().IntVar(&flags.fullLimit, "full-limit", 0, "Approximate token limit for llms-full.txt")

	llmstxtCmd.MarkFlagRequired("docs-dir")
	llmstxtCmd.MarkFlagRequired("base-url")
}
