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

// Package xmlscan provides a forward-only scan of the primitives in an
// OpenStreetMap XML document.
package xmlscan

import (
	"context"
	"encoding/xml"
	"io"
	"iter"
	"log/slog"

	"m4o.io/osmx/model"
)

// Elements returns a lazy sequence of the node, way, and relation elements
// in the document read from rdr, in document order. Each element carries its
// attributes and its direct tag children; nd, member, bounds, and any tag
// nested deeper than one level are skipped. Elements are yielded one at a
// time and never retained, so memory stays bounded by the largest single
// primitive. The sequence ends early with an error when the document is
// malformed or ctx is cancelled; a consumer break stops the scan.
func Elements(ctx context.Context, rdr io.Reader) iter.Seq2[model.Element, error] {
	return func(yield func(e model.Element, err error) bool) {
		dec := xml.NewDecoder(rdr)

		var (
			element model.Element
			open    bool
			depth   int
		)

		for {
			select {
			case <-ctx.Done():
				yield(model.Element{}, ctx.Err())

				return
			default:
			}

			tok, err := dec.Token()
			if err != nil {
				if err != io.EOF {
					slog.Error(err.Error())
					yield(model.Element{}, err)
				}

				return
			}

			switch t := tok.(type) {
			case xml.StartElement:
				if !open {
					kind, ok := model.ParseKind(t.Name.Local)
					if !ok {
						continue
					}

					element = newElement(kind, t.Attr)
					open = true
					depth = 0

					continue
				}

				depth++

				if depth == 1 && t.Name.Local == "tag" {
					if tag, ok := newTag(t.Attr); ok {
						element.Tags = append(element.Tags, tag)
					}
				}

			case xml.EndElement:
				if !open {
					continue
				}

				if depth > 0 {
					depth--

					continue
				}

				open = false

				if !yield(element, nil) {
					return
				}
			}
		}
	}
}

// newElement captures the identifying attributes of a primitive. Lat and lon
// only stick when both are present and parse; anything else leaves the
// element without coordinates.
func newElement(kind model.Kind, attrs []xml.Attr) model.Element {
	element := model.Element{Kind: kind}

	var lat, lon string

	for _, attr := range attrs {
		switch attr.Name.Local {
		case "id":
			element.ID = attr.Value
		case "user":
			element.User = attr.Value
		case "timestamp":
			element.Timestamp = attr.Value
		case "lat":
			lat = attr.Value
		case "lon":
			lon = attr.Value
		}
	}

	if lat != "" && lon != "" {
		la, errLat := model.ParseDegrees(lat)
		lo, errLon := model.ParseDegrees(lon)

		if errLat == nil && errLon == nil {
			element.Lat = la
			element.Lon = lo
			element.HasCoords = true
		}
	}

	return element
}

// newTag extracts a tag pair; tags missing either k or v are dropped.
func newTag(attrs []xml.Attr) (model.Tag, bool) {
	var (
		tag        model.Tag
		hasK, hasV bool
	)

	for _, attr := range attrs {
		switch attr.Name.Local {
		case "k":
			tag.Key = attr.Value
			hasK = true
		case "v":
			tag.Value = attr.Value
			hasV = true
		}
	}

	return tag, hasK && hasV
}
