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

package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/osmx/model"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "node", model.NODE.String())
	assert.Equal(t, "way", model.WAY.String())
	assert.Equal(t, "relation", model.RELATION.String())
}

func TestKindTitle(t *testing.T) {
	assert.Equal(t, "Node", model.NODE.Title())
	assert.Equal(t, "Way", model.WAY.Title())
	assert.Equal(t, "Relation", model.RELATION.Title())
}

func TestParseKind(t *testing.T) {
	test_cases := []struct {
		name string
		kind model.Kind
		ok   bool
	}{
		{"node", model.NODE, true},
		{"way", model.WAY, true},
		{"relation", model.RELATION, true},
		{"bounds", 0, false},
		{"tag", 0, false},
		{"", 0, false},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := model.ParseKind(tc.name)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.kind, kind)
			}
		})
	}
}

func TestKindMarshalJSON(t *testing.T) {
	b, err := json.Marshal(model.WAY)
	assert.NoError(t, err)
	assert.Equal(t, `"way"`, string(b))
}

func TestObjectRefCitation(t *testing.T) {
	named := model.ObjectRef{Kind: model.NODE, ID: "2599084", Name: "Trafalgar Square"}
	assert.Equal(t, "* {{Node|2599084|Trafalgar Square}}", named.Citation())

	unnamed := model.ObjectRef{Kind: model.WAY, ID: "48765", Name: model.UnnamedName}
	assert.Equal(t, "* {{Way|48765|unnamed key-value}}", unnamed.Citation())

	blank := model.ObjectRef{Kind: model.RELATION, ID: "91", Name: ""}
	assert.Equal(t, "* {{Relation|91|unnamed key-value}}", blank.Citation())
}

func TestObjectRefMarshalJSON(t *testing.T) {
	ref := model.ObjectRef{Kind: model.RELATION, ID: "91", Name: model.UnnamedName}

	b, err := json.Marshal(ref)
	assert.NoError(t, err)
	assert.Equal(t, `{"kind":"relation","id":"91","name":"unnamed key-value"}`, string(b))
}
