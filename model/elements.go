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

// Package model contains the shared model for OpenStreetMap XML tooling.
package model

import (
	"fmt"
	"strconv"
)

// Kind is an enumeration of OSM primitive kinds.
type Kind int

const (
	// NODE denotes a node primitive.
	NODE Kind = iota

	// WAY denotes a way primitive.
	WAY

	// RELATION denotes a relation primitive.
	RELATION
)

// String returns the kind as it appears in OSM XML element names.
func (k Kind) String() string {
	switch k {
	case NODE:
		return "node"
	case WAY:
		return "way"
	case RELATION:
		return "relation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Title returns the capitalized kind name used in wiki citations.
func (k Kind) Title() string {
	switch k {
	case NODE:
		return "Node"
	case WAY:
		return "Way"
	case RELATION:
		return "Relation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalJSON renders the kind as its lowercase element name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(k.String())), nil
}

// ParseKind maps an OSM XML element name to its Kind.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "node":
		return NODE, true
	case "way":
		return WAY, true
	case "relation":
		return RELATION, true
	default:
		return 0, false
	}
}

// Tag is a single key/value pair exactly as read off the wire. Keys and
// values are opaque; no normalization is applied.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Element is one top-level OSM primitive as read off the wire. Tags holds
// the direct tag children in document order, duplicate keys included;
// consumers that need a mapping apply last write wins. Lat and Lon are
// meaningful only when HasCoords is true.
type Element struct {
	Kind      Kind
	ID        string
	User      string
	Timestamp string
	Lat       Degrees
	Lon       Degrees
	HasCoords bool
	Tags      []Tag
}

// UnnamedName is the display name for objects that carry no name tag.
const UnnamedName = "unnamed key-value"

// ObjectRef identifies a primitive that carried a particular tag, with the
// display name resolved from its name tag or UnnamedName.
type ObjectRef struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Citation renders the object as a wiki citation line. An empty name, as
// left by a name tag with an empty value, renders as UnnamedName.
func (o ObjectRef) Citation() string {
	name := o.Name
	if name == "" {
		name = UnnamedName
	}

	return fmt.Sprintf("* {{%s|%s|%s}}", o.Kind.Title(), o.ID, name)
}

// KeyCount is one entry of a ranked tag key listing.
type KeyCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// ValueCount is one entry of a ranked tag value listing.
type ValueCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}
