package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAssignsDistinctIds(t *testing.T) {
	s := NewStore()
	a := s.Create(TypeG)
	b := s.Create(TypeRect)
	assert.NotEqual(t, a, b)
	assert.True(t, s.Contains(a))
	assert.True(t, s.Contains(b))
	assert.Equal(t, TypeG, s.TypeTag(a))
	assert.Equal(t, TypeRect, s.TypeTag(b))
}

func TestStoreDestroyThenCreateReusesIndexWithNewGeneration(t *testing.T) {
	s := NewStore()
	a := s.Create(TypeG)
	s.Destroy(a)
	assert.False(t, s.Contains(a), "stale id must not resolve after destroy")

	b := s.Create(TypeRect)
	require.True(t, s.Contains(b))
	assert.NotEqual(t, a, b, "recycled slot must carry a bumped generation")
}

func TestStoreAppendChildLinksBothDirections(t *testing.T) {
	s := NewStore()
	parent := s.Create(TypeG)
	child1 := s.Create(TypeRect)
	child2 := s.Create(TypeCircle)

	s.AppendChild(parent, child1)
	s.AppendChild(parent, child2)

	assert.Equal(t, []EntityId{child1, child2}, s.Children(parent))

	p1, ok := s.Parent(child1)
	require.True(t, ok)
	assert.Equal(t, parent, p1)

	next, ok := s.NextSibling(child1)
	require.True(t, ok)
	assert.Equal(t, child2, next)

	prev, ok := s.PreviousSibling(child2)
	require.True(t, ok)
	assert.Equal(t, child1, prev)
}

func TestStoreAppendChildReparentsFromPreviousParent(t *testing.T) {
	s := NewStore()
	oldParent := s.Create(TypeG)
	newParent := s.Create(TypeG)
	child := s.Create(TypeRect)

	s.AppendChild(oldParent, child)
	s.AppendChild(newParent, child)

	assert.Empty(t, s.Children(oldParent))
	assert.Equal(t, []EntityId{child}, s.Children(newParent))
}

func TestStoreInsertBeforeSplicesBetweenSiblings(t *testing.T) {
	s := NewStore()
	parent := s.Create(TypeG)
	a := s.Create(TypeRect)
	c := s.Create(TypeCircle)
	s.AppendChild(parent, a)
	s.AppendChild(parent, c)

	b := s.Create(TypeEllipse)
	s.InsertBefore(parent, b, c)

	assert.Equal(t, []EntityId{a, b, c}, s.Children(parent))
}

func TestStoreRemoveChildDetachesWithoutDestroying(t *testing.T) {
	s := NewStore()
	parent := s.Create(TypeG)
	child := s.Create(TypeRect)
	s.AppendChild(parent, child)

	s.RemoveChild(parent, child)

	assert.Empty(t, s.Children(parent))
	assert.True(t, s.Contains(child), "Remove must not destroy the entity")
	_, ok := s.Parent(child)
	assert.False(t, ok)
}

func TestStoreReplaceChildKeepsPosition(t *testing.T) {
	s := NewStore()
	parent := s.Create(TypeG)
	a := s.Create(TypeRect)
	b := s.Create(TypeCircle)
	c := s.Create(TypeEllipse)
	s.AppendChild(parent, a)
	s.AppendChild(parent, b)
	s.AppendChild(parent, c)

	replacement := s.Create(TypeLine)
	s.ReplaceChild(parent, replacement, b)

	assert.Equal(t, []EntityId{a, replacement, c}, s.Children(parent))
	assert.True(t, s.Contains(b), "ReplaceChild must not destroy the displaced entity")
	_, ok := s.Parent(b)
	assert.False(t, ok)
}

func TestStoreRegistryPersistsAcrossCalls(t *testing.T) {
	s := NewStore()
	id := s.Create(TypeRect)
	reg := s.Registry(id)
	require.NotNil(t, reg)
	reg.StrokeOpacity.Value = 0.5
	reg.StrokeOpacity.State = StateValue

	again := s.Registry(id)
	assert.Equal(t, 0.5, again.StrokeOpacity.Value)
}

func TestStoreRegistryNilForDeadEntity(t *testing.T) {
	s := NewStore()
	id := s.Create(TypeRect)
	s.Destroy(id)
	assert.Nil(t, s.Registry(id))
}
