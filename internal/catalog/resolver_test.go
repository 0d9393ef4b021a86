package catalog

import (
	"testing"

	"prosalon-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() []domain.CategoryNode {
	return BuildTree(testCategories())
}

func TestResolveByID(t *testing.T) {
	path, ok := Resolve("cat-masks", testTree())
	require.True(t, ok)
	assert.Equal(t, "cat-masks", path.Node.ID)
	require.Len(t, path.Ancestors, 1)
	assert.Equal(t, "cat-skincare", path.Ancestors[0].ID)
}

func TestResolveBySlug(t *testing.T) {
	path, ok := Resolve("clay-masks", testTree())
	require.True(t, ok)
	assert.Equal(t, "cat-clay", path.Node.ID)
	require.Len(t, path.Ancestors, 2)
	assert.Equal(t, "cat-skincare", path.Ancestors[0].ID)
	assert.Equal(t, "cat-masks", path.Ancestors[1].ID)
}

func TestResolveCaseInsensitive(t *testing.T) {
	tree := testTree()

	// Slug with scrambled case.
	path, ok := Resolve("Clay-MASKS", tree)
	require.True(t, ok)
	assert.Equal(t, "cat-clay", path.Node.ID)

	// Legacy display name from an old navigation menu.
	path, ok = Resolve("EQUIPMENT", tree)
	require.True(t, ok)
	assert.Equal(t, "cat-equipment", path.Node.ID)
}

func TestResolveTokenEquivalence(t *testing.T) {
	tree := testTree()
	for _, token := range []string{"cat-clay", "clay-masks", "CLAY-masks", "Clay Masks"} {
		path, ok := Resolve(token, tree)
		require.True(t, ok, "token %q must resolve", token)
		assert.Equal(t, "cat-clay", path.Node.ID, "token %q", token)
	}
}

func TestResolveRootHasNoAncestors(t *testing.T) {
	path, ok := Resolve("skincare", testTree())
	require.True(t, ok)
	assert.Equal(t, "cat-skincare", path.Node.ID)
	assert.Empty(t, path.Ancestors)
}

func TestResolveUnknownToken(t *testing.T) {
	_, ok := Resolve("does-not-exist", testTree())
	assert.False(t, ok)
}

func TestResolveIn(t *testing.T) {
	tree := testTree()
	skincare, ok := Resolve("skincare", tree)
	require.True(t, ok)

	path, ok := ResolveIn("masks", skincare.Node)
	require.True(t, ok)
	assert.Equal(t, "cat-masks", path.Node.ID)
	require.Len(t, path.Ancestors, 1)
	assert.Equal(t, "cat-skincare", path.Ancestors[0].ID)

	// Tokens from another branch do not resolve inside this subtree.
	_, ok = ResolveIn("chairs", skincare.Node)
	assert.False(t, ok)

	// The scope node itself is not a candidate.
	_, ok = ResolveIn("skincare", skincare.Node)
	assert.False(t, ok)
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "Clay Masks", DisplayLabel("clay-masks"))
	assert.Equal(t, "Masks", DisplayLabel("MASKS"))
	assert.Equal(t, "Foot Spa", DisplayLabel("foot-spa"))
}
