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

package osmx

import (
	"m4o.io/osmx/internal/rank"
	"m4o.io/osmx/model"
)

// TagStats is the aggregation produced by a parse run: how often each tag
// key occurs across objects, how often each value occurs per key, and which
// objects carried each exact key/value pair. A TagStats is owned by its
// parse worker until Wait hands it over; afterwards it is read-only and safe
// for concurrent use.
type TagStats struct {
	keys     map[string]*keyTally
	keyOrder []string
	objects  map[model.Tag][]model.ObjectRef

	elements int64
	tagged   int64
}

// keyTally accumulates the per-key counts and the per-value breakdown.
type keyTally struct {
	count      int64
	values     map[string]int64
	valueOrder []string
}

func newTagStats() *TagStats {
	return &TagStats{
		keys:    make(map[string]*keyTally),
		objects: make(map[model.Tag][]model.ObjectRef),
	}
}

// observe folds one element into the aggregation. Duplicate keys within the
// element collapse last write wins; the key counts once, at the position of
// its first occurrence.
func (s *TagStats) observe(element model.Element) {
	s.elements++

	if len(element.Tags) == 0 {
		return
	}

	s.tagged++

	pending := make(map[string]string, len(element.Tags))
	for _, tag := range element.Tags {
		pending[tag.Key] = tag.Value
	}

	name, ok := pending["name"]
	if !ok {
		name = model.UnnamedName
	}

	ref := model.ObjectRef{Kind: element.Kind, ID: element.ID, Name: name}

	for _, tag := range element.Tags {
		value, ok := pending[tag.Key]
		if !ok {
			continue
		}

		delete(pending, tag.Key)

		tally, ok := s.keys[tag.Key]
		if !ok {
			tally = &keyTally{values: make(map[string]int64)}
			s.keys[tag.Key] = tally
			s.keyOrder = append(s.keyOrder, tag.Key)
		}

		tally.count++

		if _, ok := tally.values[value]; !ok {
			tally.valueOrder = append(tally.valueOrder, value)
		}

		tally.values[value]++

		pair := model.Tag{Key: tag.Key, Value: value}
		s.objects[pair] = append(s.objects[pair], ref)
	}
}

// Elements returns the total number of primitives scanned, tagged or not.
func (s *TagStats) Elements() int64 { return s.elements }

// TaggedObjects returns the number of primitives that carried at least one
// tag.
func (s *TagStats) TaggedObjects() int64 { return s.tagged }

// Keys returns the number of distinct tag keys seen.
func (s *TagStats) Keys() int { return len(s.keys) }

// KeyCount returns the number of objects that carried key, counting each
// object once regardless of duplicate occurrences.
func (s *TagStats) KeyCount(key string) int64 {
	if tally, ok := s.keys[key]; ok {
		return tally.count
	}

	return 0
}

// KeysByCount ranks tag keys by the number of objects carrying them, most
// frequent first. Ties keep the order the keys were first encountered in.
func (s *TagStats) KeysByCount() []model.KeyCount {
	ranked := make([]model.KeyCount, 0, len(s.keyOrder))

	for _, key := range s.keyOrder {
		ranked = append(ranked, model.KeyCount{Key: key, Count: s.keys[key].count})
	}

	rank.Desc(ranked, func(kc model.KeyCount) int64 { return kc.Count })

	return ranked
}

// ValuesForKey ranks the values recorded for key, most frequent first with
// first-seen tie-break. The result is nil for a key never seen.
func (s *TagStats) ValuesForKey(key string) []model.ValueCount {
	tally, ok := s.keys[key]
	if !ok {
		return nil
	}

	ranked := make([]model.ValueCount, 0, len(tally.valueOrder))

	for _, value := range tally.valueOrder {
		ranked = append(ranked, model.ValueCount{Value: value, Count: tally.values[value]})
	}

	rank.Desc(ranked, func(vc model.ValueCount) int64 { return vc.Count })

	return ranked
}

// ObjectsFor returns the objects that carried the exact key/value pair, in
// the order they were encountered in the document.
func (s *TagStats) ObjectsFor(key, value string) []model.ObjectRef {
	return s.objects[model.Tag{Key: key, Value: value}]
}
