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

// Package history computes contributor statistics from the edit metadata in
// an OpenStreetMap XML document.
//
// Unlike the streaming aggregator, history materializes the entire document
// before computing, so the report always reflects the whole extract or
// nothing at all.
package history

import (
	"context"
	"errors"
	"io"
	"time"

	"m4o.io/osmx/internal/osmfile"
	"m4o.io/osmx/internal/rank"
	"m4o.io/osmx/internal/xmlscan"
	"m4o.io/osmx/model"
)

// ErrNoEditHistory is returned when no element carries both a timestamp and
// a user, leaving no edit history to report on.
var ErrNoEditHistory = errors.New("no edit history")

// Contributor is a mapper and the number of edits attributed to them.
type Contributor struct {
	User  string `json:"user"`
	Edits int64  `json:"edits"`
}

// Lifespan is the interval between a mapper's oldest and newest edits. The
// span is zero for mappers with a single edit.
type Lifespan struct {
	User string        `json:"user"`
	Span time.Duration `json:"span"`
}

// Report summarizes the edit history of an OpenStreetMap XML document. The
// ranked slices are ordered by descending count or span; elements that tie
// keep the order in which their subjects first appeared in the document.
type Report struct {
	Oldest       time.Time          `json:"oldest"`
	Newest       time.Time          `json:"newest"`
	Nodes        int64              `json:"nodes"`
	Ways         int64              `json:"ways"`
	Relations    int64              `json:"relations"`
	Extent       *model.BoundingBox `json:"extent,omitempty"`
	Contributors []Contributor      `json:"contributors"`
	Tags         []model.KeyCount   `json:"tags"`
	Lifespans    []Lifespan         `json:"lifespans"`
}

// mapper accumulates one user's edit range while the document is folded.
type mapper struct {
	edits  int64
	oldest time.Time
	newest time.Time
}

// Analyze reads the whole OpenStreetMap XML document from rdr and computes
// its edit-history report. Elements missing either a timestamp or a user
// contribute to the primitive counts and tag ranking but not to the edit
// history; a document with no qualifying element at all yields
// ErrNoEditHistory.
func Analyze(rdr io.Reader) (*Report, error) {
	var elements []model.Element

	for elem, err := range xmlscan.Elements(context.Background(), rdr) {
		if err != nil {
			return nil, err
		}

		elements = append(elements, elem)
	}

	return analyze(elements)
}

// AnalyzeFile opens the extract at path, decompressing if needed, and
// analyzes its contents.
func AnalyzeFile(path string) (*Report, error) {
	in, err := osmfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	return Analyze(in)
}

func analyze(elements []model.Element) (*Report, error) {
	rpt := &Report{}

	mappers := make(map[string]*mapper)
	var userOrder []string

	keys := make(map[string]int64)
	var keyOrder []string

	for _, elem := range elements {
		switch elem.Kind {
		case model.NODE:
			rpt.Nodes++
		case model.WAY:
			rpt.Ways++
		case model.RELATION:
			rpt.Relations++
		}

		if elem.HasCoords {
			if rpt.Extent == nil {
				rpt.Extent = model.InitialBoundingBox()
			}

			rpt.Extent.ExpandWithLatLng(elem.Lat, elem.Lon)
		}

		// Every tag occurrence counts, duplicate keys included.
		for _, tag := range elem.Tags {
			if _, ok := keys[tag.Key]; !ok {
				keyOrder = append(keyOrder, tag.Key)
			}

			keys[tag.Key]++
		}

		if elem.Timestamp == "" || elem.User == "" {
			continue
		}

		ts, err := time.Parse(time.RFC3339, elem.Timestamp)
		if err != nil {
			return nil, err
		}

		if rpt.Oldest.IsZero() || ts.Before(rpt.Oldest) {
			rpt.Oldest = ts
		}

		if ts.After(rpt.Newest) {
			rpt.Newest = ts
		}

		m, ok := mappers[elem.User]
		if !ok {
			m = &mapper{oldest: ts, newest: ts}
			mappers[elem.User] = m
			userOrder = append(userOrder, elem.User)
		}

		m.edits++

		if ts.Before(m.oldest) {
			m.oldest = ts
		}

		if ts.After(m.newest) {
			m.newest = ts
		}
	}

	if len(mappers) == 0 {
		return nil, ErrNoEditHistory
	}

	rpt.Contributors = make([]Contributor, 0, len(userOrder))
	for _, user := range userOrder {
		rpt.Contributors = append(rpt.Contributors, Contributor{User: user, Edits: mappers[user].edits})
	}

	rank.Desc(rpt.Contributors, func(c Contributor) int64 { return c.Edits })

	rpt.Tags = make([]model.KeyCount, 0, len(keyOrder))
	for _, key := range keyOrder {
		rpt.Tags = append(rpt.Tags, model.KeyCount{Key: key, Count: keys[key]})
	}

	rank.Desc(rpt.Tags, func(kc model.KeyCount) int64 { return kc.Count })

	rpt.Lifespans = make([]Lifespan, 0, len(userOrder))
	for _, user := range userOrder {
		m := mappers[user]
		rpt.Lifespans = append(rpt.Lifespans, Lifespan{User: user, Span: m.newest.Sub(m.oldest)})
	}

	rank.Desc(rpt.Lifespans, func(l Lifespan) time.Duration { return l.Span })

	return rpt, nil
}
