package rig

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-swim/engine/scene_node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ZeroValueIsEmpty(t *testing.T) {
	var reg Registry

	assert.False(t, reg.Ready())
	assert.Equal(t, 0, reg.Len())
	assert.Nil(t, reg.Joints())

	n, ok := reg.Get(LeftArm)
	assert.False(t, ok)
	assert.Nil(t, n)
}

func TestRegistry_PublishesOnce(t *testing.T) {
	reg := NewRegistry()
	arm := scene_node.NewNode("LeftArm")

	require.NoError(t, reg.Publish(map[JointID]scene_node.Node{
		LeftArm:    arm,
		Spine:      scene_node.NewNode("Spine"),
		Head:       nil,
		JointCount: scene_node.NewNode("bogus"),
	}))

	assert.True(t, reg.Ready())
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []JointID{LeftArm, Spine}, reg.Joints())

	got, ok := reg.Get(LeftArm)
	require.True(t, ok)
	assert.Same(t, arm, got)

	_, ok = reg.Get(Head)
	assert.False(t, ok)

	err := reg.Publish(map[JointID]scene_node.Node{Head: scene_node.NewNode("Head")})
	assert.ErrorIs(t, err, ErrAlreadyPublished)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_EmptyPublishIsReady(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Publish(nil))
	assert.True(t, reg.Ready())
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_ConcurrentPublishHasOneWinner(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if reg.Publish(map[JointID]scene_node.Node{Spine: scene_node.NewNode("Spine")}) == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
			_, _ = reg.Get(Spine)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, reg.Len())
}

func TestReport_ListsEveryJoint(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Publish(map[JointID]scene_node.Node{Spine: scene_node.NewNode("mixamorig:Spine")}))

	report := Report(reg)
	require.Len(t, report, int(JointCount))
	assert.Equal(t, "leftarm", report[0].Key)
	assert.False(t, report[0].Resolved)
	assert.True(t, report[Spine].Resolved)
	assert.Equal(t, "mixamorig:Spine", report[Spine].Bone)

	missing := Missing(report)
	assert.Len(t, missing, int(JointCount)-1)
	assert.NotContains(t, missing, Spine)
}
