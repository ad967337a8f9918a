package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	code "github.com/labsuite/chemmanager/pkg/common/code"
	core "github.com/labsuite/chemmanager/pkg/core/storage"
	db "github.com/labsuite/chemmanager/pkg/middleware/db"
	model "github.com/labsuite/chemmanager/pkg/model"
	"github.com/labsuite/chemmanager/pkg/model/migrate"
)

func setup(t *testing.T) (context.Context, core.Service) {
	t.Helper()
	ctx := context.Background()
	db.InitSQLite(ctx, ":memory:")
	require.NoError(t, migrate.Table(ctx))
	return ctx, New()
}

func testActor(user string, wg int64) *model.Actor {
	return &model.Actor{UserID: user, WorkgroupID: wg}
}

func strPtr(v string) *string { return &v }

func TestAddAndListTree(t *testing.T) {
	ctx, svc := setup(t)
	actor := testActor("alice", 1)

	root, err := svc.AddRoot(ctx, actor, &core.AddRootReq{
		Name:         "Lab A",
		Abbreviation: strPtr("LA"),
	})
	require.NoError(t, err)

	child, err := svc.AddChild(ctx, actor, &core.AddChildReq{
		ParentUUID:   root.UUID,
		Name:         "Fridge 1",
		Abbreviation: strPtr("F1"),
	})
	require.NoError(t, err)

	_, err = svc.AddChild(ctx, actor, &core.AddChildReq{
		ParentUUID: child.UUID,
		Name:       "Shelf 2",
	})
	require.NoError(t, err)

	nodes, err := svc.List(ctx, actor)
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	assert.Equal(t, "Lab A", nodes[0].Name)
	assert.Equal(t, 1, nodes[0].Depth)
	assert.Equal(t, "Lab A", nodes[0].LocationName)
	assert.Equal(t, "LA", nodes[0].FullAbbreviation)
	assert.Equal(t, "Lab A (LA)", nodes[0].DisplayName)

	assert.Equal(t, "Fridge 1", nodes[1].Name)
	assert.Equal(t, 2, nodes[1].Depth)
	assert.Equal(t, "Lab A (Fridge 1)", nodes[1].LocationName)
	assert.Equal(t, "LAF1", nodes[1].FullAbbreviation)
	assert.Equal(t, "  Fridge 1 (F1)", nodes[1].DisplayName)

	assert.Equal(t, "Shelf 2", nodes[2].Name)
	assert.Equal(t, "Lab A (Fridge 1, Shelf 2)", nodes[2].LocationName)
	assert.Equal(t, "LAF1", nodes[2].FullAbbreviation)
	assert.Equal(t, "    Shelf 2", nodes[2].DisplayName)
}

func TestSiblingOrderByName(t *testing.T) {
	ctx, svc := setup(t)
	actor := testActor("alice", 1)

	for _, name := range []string{"Zoo", "Annex", "Mid"} {
		_, err := svc.AddRoot(ctx, actor, &core.AddRootReq{Name: name})
		require.NoError(t, err)
	}

	nodes, err := svc.List(ctx, actor)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, "Annex", nodes[0].Name)
	assert.Equal(t, "Mid", nodes[1].Name)
	assert.Equal(t, "Zoo", nodes[2].Name)
}

func TestAddChildForeignWorkgroup(t *testing.T) {
	ctx, svc := setup(t)

	root, err := svc.AddRoot(ctx, testActor("alice", 1), &core.AddRootReq{Name: "Lab A"})
	require.NoError(t, err)

	_, err = svc.AddChild(ctx, testActor("bob", 2), &core.AddChildReq{
		ParentUUID: root.UUID,
		Name:       "Intruder",
	})
	assert.Equal(t, code.PermissionDenied, code.From(err))
}

func TestDelete(t *testing.T) {
	ctx, svc := setup(t)
	actor := testActor("alice", 1)

	root, err := svc.AddRoot(ctx, actor, &core.AddRootReq{Name: "Lab A"})
	require.NoError(t, err)
	child, err := svc.AddChild(ctx, actor, &core.AddChildReq{
		ParentUUID: root.UUID,
		Name:       "Fridge 1",
	})
	require.NoError(t, err)

	// A node with children is refused.
	err = svc.Delete(ctx, actor, &core.DeleteReq{UUID: root.UUID})
	assert.Equal(t, code.StorageHasChildrenErr, code.From(err))

	// Only the creator may delete.
	err = svc.Delete(ctx, testActor("bob", 1), &core.DeleteReq{UUID: child.UUID})
	assert.Equal(t, code.PermissionDenied, code.From(err))

	require.NoError(t, svc.Delete(ctx, actor, &core.DeleteReq{UUID: child.UUID}))
	require.NoError(t, svc.Delete(ctx, actor, &core.DeleteReq{UUID: root.UUID}))

	nodes, err := svc.List(ctx, actor)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestShareMarksNodeAndWidensVisibility(t *testing.T) {
	ctx, svc := setup(t)

	chemistry := &model.Workgroup{Name: "chemistry"}
	require.NoError(t, db.DB().DBIns().Create(chemistry).Error)
	alice := testActor("alice", chemistry.ID)

	root, err := svc.AddRoot(ctx, alice, &core.AddRootReq{Name: "Lab A"})
	require.NoError(t, err)

	require.NoError(t, svc.Share(ctx, alice, &core.ShareReq{
		UUID:          root.UUID,
		WorkgroupName: "biology",
	}))

	nodes, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].Shared)
	assert.Equal(t, "Lab A (shared)", nodes[0].DisplayName)

	// The other workgroup now sees the node in its own listing.
	var wg model.Workgroup
	require.NoError(t, db.DB().DBIns().Where("name = ?", "biology").Take(&wg).Error)
	bobNodes, err := svc.List(ctx, testActor("bob", wg.ID))
	require.NoError(t, err)
	require.Len(t, bobNodes, 1)
	assert.Equal(t, "Lab A", bobNodes[0].Name)
}
