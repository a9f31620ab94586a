package yamlnode

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parseMapping(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	require.Len(t, doc.Content, 1)
	return doc.Content[0]
}

func TestLookup_OwnKeyAndMerge(t *testing.T) {
	root := parseMapping(t, `
base: &base
  image: http://example.com/a.png
  slug: from-base
rec:
  <<: *base
  slug: own
`)
	rec := Lookup(root, "rec")
	require.NotNil(t, rec, spew.Sdump(root))

	s, ok := Str(Lookup(rec, "slug"))
	require.True(t, ok)
	assert.Equal(t, "own", s)

	img, ok := Str(Lookup(rec, "image"))
	require.True(t, ok)
	assert.Equal(t, "http://example.com/a.png", img)

	assert.Nil(t, Lookup(rec, "missing"))
}

func TestLookup_MergeSequenceFirstWins(t *testing.T) {
	root := parseMapping(t, `
a: &a {k: one}
b: &b {k: two, j: x}
rec:
  <<: [*a, *b]
`)
	rec := Lookup(root, "rec")
	k, _ := Str(Lookup(rec, "k"))
	j, _ := Str(Lookup(rec, "j"))
	assert.Equal(t, "one", k)
	assert.Equal(t, "x", j)
}

func TestStr_RejectsNonStrings(t *testing.T) {
	root := parseMapping(t, "a: 12\nb: true\nc: ~\nd: '12'\ne: [x]\n")
	for _, k := range []string{"a", "b", "c", "e"} {
		_, ok := Str(Lookup(root, k))
		assert.False(t, ok, k)
	}
	d, ok := Str(Lookup(root, "d"))
	assert.True(t, ok)
	assert.Equal(t, "12", d)

	raw, ok := Scalar(Lookup(root, "a"))
	assert.True(t, ok)
	assert.Equal(t, "12", raw)
	_, ok = Scalar(Lookup(root, "c"))
	assert.False(t, ok)
}

func TestSetString_InPlaceKeepsCommentsAndOrder(t *testing.T) {
	root := parseMapping(t, "a: 1\nimage: \"http://x/y.png\" # remote\nz: 2\n")
	SetString(root, root, "image", "thumbnail/y.png")

	out, err := yaml.Marshal(root)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nimage: \"thumbnail/y.png\" # remote\nz: 2\n", string(out))
}

func TestSetString_ReplacesCollectionAndAppendsMissing(t *testing.T) {
	root := parseMapping(t, "image: [a, b]\n")
	SetString(root, root, "image", "")
	SetString(root, root, "extra", "v")

	out, err := yaml.Marshal(root)
	require.NoError(t, err)
	assert.Equal(t, "image: \"\"\nextra: v\n", string(out))
}

func TestSetString_AnchoredValueKeepsAliases(t *testing.T) {
	root := parseMapping(t, "image: &img /local/a.png # pinned\ncover: *img\nback: *img\n")
	SetString(root, root, "image", "")

	out, err := yaml.Marshal(root)
	require.NoError(t, err)
	assert.Equal(t, "image: \"\" # pinned\ncover: &img /local/a.png\nback: *img\n", string(out))

	again := parseMapping(t, string(out))
	for _, k := range []string{"cover", "back"} {
		s, ok := Str(Lookup(again, k))
		require.True(t, ok, spew.Sdump(again))
		assert.Equal(t, "/local/a.png", s, k)
	}
}

func TestSetString_AnchoredValueWithoutAliases(t *testing.T) {
	root := parseMapping(t, "image: &img /local/a.png\n")
	SetString(root, root, "image", "thumbnail/a.jpg")

	out, err := yaml.Marshal(root)
	require.NoError(t, err)
	assert.Equal(t, "image: thumbnail/a.jpg\n", string(out))
}
