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

package xmlscan_test

import (
	"context"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmx/internal/xmlscan"
	"m4o.io/osmx/model"
)

func slurp(ctx context.Context, doc string) ([]model.Element, error) {
	var elements []model.Element

	for element, err := range xmlscan.Elements(ctx, strings.NewReader(doc)) {
		if err != nil {
			return elements, err
		}

		elements = append(elements, element)
	}

	return elements, nil
}

func TestElements(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="osmx-test">
  <bounds minlat="51.5070" minlon="-0.1290" maxlat="51.5080" maxlon="-0.1280"/>
  <node id="1" lat="51.5074" lon="-0.1278" user="alice" timestamp="2019-03-01T10:15:30Z">
    <tag k="name" v="Trafalgar Square"/>
    <tag k="tourism" v="attraction"/>
  </node>
  <node id="2" lat="51.5076" lon="-0.1281"/>
  <way id="10" user="bob" timestamp="2020-06-15T08:00:00Z">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="highway" v="pedestrian"/>
  </way>
  <relation id="20">
    <member type="way" ref="10" role="outer"/>
    <tag k="type" v="multipolygon"/>
  </relation>
</osm>`

	elements, err := slurp(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, elements, 4)

	node := elements[0]
	assert.Equal(t, model.NODE, node.Kind)
	assert.Equal(t, "1", node.ID)
	assert.Equal(t, "alice", node.User)
	assert.Equal(t, "2019-03-01T10:15:30Z", node.Timestamp)
	assert.True(t, node.HasCoords)
	assert.True(t, node.Lat.EqualWithin(51.5074, model.E7))
	assert.True(t, node.Lon.EqualWithin(-0.1278, model.E7))
	assert.Equal(t, []model.Tag{
		{Key: "name", Value: "Trafalgar Square"},
		{Key: "tourism", Value: "attraction"},
	}, node.Tags)

	bare := elements[1]
	assert.Equal(t, model.NODE, bare.Kind)
	assert.Empty(t, bare.User)
	assert.Empty(t, bare.Timestamp)
	assert.Empty(t, bare.Tags)

	way := elements[2]
	assert.Equal(t, model.WAY, way.Kind)
	assert.False(t, way.HasCoords)
	assert.Equal(t, []model.Tag{{Key: "highway", Value: "pedestrian"}}, way.Tags)

	relation := elements[3]
	assert.Equal(t, model.RELATION, relation.Kind)
	assert.Equal(t, "20", relation.ID)
	assert.Equal(t, []model.Tag{{Key: "type", Value: "multipolygon"}}, relation.Tags)
}

func TestElementsDirectTagsOnly(t *testing.T) {
	doc := `<osm>
  <relation id="1">
    <member type="way" ref="10" role="outer">
      <tag k="inner" v="skipped"/>
    </member>
    <tag k="outer" v="kept"/>
  </relation>
</osm>`

	elements, err := slurp(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, elements, 1)

	assert.Equal(t, []model.Tag{{Key: "outer", Value: "kept"}}, elements[0].Tags)
}

func TestElementsTagAttributes(t *testing.T) {
	test_cases := []struct {
		name     string
		doc      string
		expected []model.Tag
	}{
		{
			"missing value",
			`<osm><node id="1"><tag k="name"/></node></osm>`,
			nil,
		},
		{
			"missing key",
			`<osm><node id="1"><tag v="orphan"/></node></osm>`,
			nil,
		},
		{
			"empty value",
			`<osm><node id="1"><tag k="note" v=""/></node></osm>`,
			[]model.Tag{{Key: "note", Value: ""}},
		},
		{
			"duplicate keys preserved in order",
			`<osm><node id="1"><tag k="name" v="first"/><tag k="name" v="second"/></node></osm>`,
			[]model.Tag{{Key: "name", Value: "first"}, {Key: "name", Value: "second"}},
		},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			elements, err := slurp(context.Background(), tc.doc)
			require.NoError(t, err)
			require.Len(t, elements, 1)
			assert.Equal(t, tc.expected, elements[0].Tags)
		})
	}
}

func TestElementsCoordinates(t *testing.T) {
	test_cases := []struct {
		name string
		doc  string
	}{
		{"missing lon", `<osm><node id="1" lat="51.5"/></osm>`},
		{"missing lat", `<osm><node id="1" lon="-0.12"/></osm>`},
		{"unparseable", `<osm><node id="1" lat="fifty" lon="-0.12"/></osm>`},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			elements, err := slurp(context.Background(), tc.doc)
			require.NoError(t, err)
			require.Len(t, elements, 1)
			assert.False(t, elements[0].HasCoords)
		})
	}
}

func TestElementsMalformed(t *testing.T) {
	doc := `<osm><node id="1"><tag k="name" v="Broken"/></osm>`

	elements, err := slurp(context.Background(), doc)
	require.Error(t, err)

	var syntax *xml.SyntaxError
	assert.ErrorAs(t, err, &syntax)
	assert.Empty(t, elements)
}

func TestElementsTruncated(t *testing.T) {
	doc := `<osm><node id="1">`

	_, err := slurp(context.Background(), doc)
	assert.Error(t, err)
}

func TestElementsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	elements, err := slurp(ctx, `<osm><node id="1"/></osm>`)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, elements)
}

func TestElementsConsumerBreak(t *testing.T) {
	doc := `<osm><node id="1"/><node id="2"/><node id="3"/></osm>`

	var got []model.Element

	for element, err := range xmlscan.Elements(context.Background(), strings.NewReader(doc)) {
		require.NoError(t, err)

		got = append(got, element)
		if len(got) == 2 {
			break
		}
	}

	require.Len(t, got, 2)
	assert.Equal(t, "2", got[1].ID)
}
