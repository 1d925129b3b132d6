// Copyright 2025-26 the original author or authors.
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

// Package cli holds the osmx command tree root and the helpers shared by
// the subcommand packages.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the root of the osmx command tree. Subcommand packages add
// themselves to it in their init functions.
var RootCmd = &cobra.Command{
	Use:   "osmx",
	Short: "Explore OpenStreetMap XML extracts",
	Long:  "Explore OpenStreetMap XML extracts",
}

// Execute runs the command named on the command line.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Clip limits a ranked listing to its first top entries. A top of zero or
// less leaves the listing whole.
func Clip[T any](s []T, top int) []T {
	if top > 0 && top < len(s) {
		return s[:top]
	}

	return s
}
