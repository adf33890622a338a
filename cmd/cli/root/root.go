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

// Package root holds the top-level raterkit command.
package root

import (
	"github.com/spf13/cobra"

	"github.com/raterkit/raterkit/internal/version"
)

// RootCmd is the raterkit command; subcommands attach themselves in
// their init functions.
var RootCmd = &cobra.Command{
	Use:     "raterkit",
	Short:   "Evaluate LLM agent responses with a judge model.",
	Version: version.Version,
}

// Execute runs the CLI.
func Execute() error {
	return RootCmd.Execute()
}
