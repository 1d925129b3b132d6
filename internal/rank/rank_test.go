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

package rank_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"m4o.io/osmx/internal/rank"
)

type entry struct {
	name  string
	count int64
}

func TestDesc(t *testing.T) {
	entries := []entry{{"name", 4}, {"tourism", 1}, {"amenity", 3}}

	rank.Desc(entries, func(e entry) int64 { return e.count })

	assert.Equal(t, []entry{{"name", 4}, {"amenity", 3}, {"tourism", 1}}, entries)
}

func TestDescKeepsFirstSeenOrderOnTies(t *testing.T) {
	entries := []entry{{"tourism", 1}, {"name", 4}, {"highway", 1}, {"type", 1}}

	rank.Desc(entries, func(e entry) int64 { return e.count })

	assert.Equal(t, []entry{{"name", 4}, {"tourism", 1}, {"highway", 1}, {"type", 1}}, entries)
}

func TestDescDurations(t *testing.T) {
	type span struct {
		user string
		span time.Duration
	}

	entries := []span{{"bob", 0}, {"alice", time.Hour}}

	rank.Desc(entries, func(s span) time.Duration { return s.span })

	assert.Equal(t, []span{{"alice", time.Hour}, {"bob", 0}}, entries)
}
