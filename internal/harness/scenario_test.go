package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_ResolvesPageFile(t *testing.T) {
	s := loadTestScenario(t, "merge_repeat_adds")

	assert.Equal(t, "merge_repeat_adds", s.Name)
	assert.Empty(t, s.PageFile)
	assert.Contains(t, s.Page, "product-card")
	assert.Len(t, s.Flow, 3)
	require.NotNil(t, s.Flow[0].Trigger)
	assert.Equal(t, 0, *s.Flow[0].Trigger)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestLoadScenario_MissingPageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: s
description: d
page_file: missing.html
flow:
  - op: clear
assertions:
  - type: empty
`), 0644))

	_, err := LoadScenario(path)
	assert.ErrorContains(t, err, "page file")
}

func TestLoadScenario_ResolvesConfigPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: s
description: d
config: shop.cue
flow:
  - op: clear
assertions:
  - type: empty
`), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shop.cue"), s.Config)
}

func TestParseScenario_UnknownField(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: s
description: d
flow:
  - op: clear
assertion:
  - type: empty
`))
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "description: d\nflow: [{op: clear}]\nassertions: [{type: empty}]",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: s\nflow: [{op: clear}]\nassertions: [{type: empty}]",
			want: "description is required",
		},
		{
			name: "empty flow",
			yaml: "name: s\ndescription: d\nassertions: [{type: empty}]",
			want: "flow list is required",
		},
		{
			name: "empty assertions",
			yaml: "name: s\ndescription: d\nflow: [{op: clear}]",
			want: "assertions list is required",
		},
		{
			name: "page and page_file",
			yaml: "name: s\ndescription: d\npage: x\npage_file: y\nflow: [{op: clear}]\nassertions: [{type: empty}]",
			want: "mutually exclusive",
		},
		{
			name: "unknown op",
			yaml: "name: s\ndescription: d\nflow: [{op: explode}]\nassertions: [{type: empty}]",
			want: `unknown op "explode"`,
		},
		{
			name: "missing op",
			yaml: "name: s\ndescription: d\nflow: [{item: x}]\nassertions: [{type: empty}]",
			want: "op is required",
		},
		{
			name: "trigger without page",
			yaml: "name: s\ndescription: d\nflow: [{op: add, trigger: 0}]\nassertions: [{type: empty}]",
			want: "trigger requires a page",
		},
		{
			name: "inc without item",
			yaml: "name: s\ndescription: d\nflow: [{op: inc}]\nassertions: [{type: empty}]",
			want: "item is required for inc",
		},
		{
			name: "checkout without channel",
			yaml: "name: s\ndescription: d\nflow: [{op: checkout}]\nassertions: [{type: empty}]",
			want: "channel is required",
		},
		{
			name: "bad expect outcome",
			yaml: "name: s\ndescription: d\nflow: [{op: clear, expect: {outcome: maybe}}]\nassertions: [{type: empty}]",
			want: "outcome must be",
		},
		{
			name: "item_count without count",
			yaml: "name: s\ndescription: d\nflow: [{op: clear}]\nassertions: [{type: item_count}]",
			want: "count is required",
		},
		{
			name: "line without selector",
			yaml: "name: s\ndescription: d\nflow: [{op: clear}]\nassertions: [{type: line, qty: 1}]",
			want: "id or name is required",
		},
		{
			name: "unknown assertion",
			yaml: "name: s\ndescription: d\nflow: [{op: clear}]\nassertions: [{type: vibes}]",
			want: `unknown assertion type "vibes"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
