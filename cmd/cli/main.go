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

// The raterkit command evaluates LLM agent responses with a judge model.
package main

import (
	"os"

	"github.com/raterkit/raterkit/cmd/cli/root"
	_ "github.com/raterkit/raterkit/cmd/cli/root/eval"
	_ "github.com/raterkit/raterkit/cmd/cli/root/llmstxt"
)

func main() {
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
