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

// Package rank orders the ranked listings shared by the tag statistics and
// the edit-history report.
package rank

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Desc stable-sorts entries in place, descending by their measure. Entries
// whose measures tie keep their relative order, so a listing built in
// first-seen order breaks ties by first appearance.
func Desc[T any, M constraints.Ordered](entries []T, measure func(T) M) {
	sort.SliceStable(entries, func(i, j int) bool {
		return measure(entries[i]) > measure(entries[j])
	})
}
