package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	code "github.com/labsuite/chemmanager/pkg/common/code"
	core "github.com/labsuite/chemmanager/pkg/core/stock"
	db "github.com/labsuite/chemmanager/pkg/middleware/db"
	model "github.com/labsuite/chemmanager/pkg/model"
	"github.com/labsuite/chemmanager/pkg/model/migrate"
)

type fixture struct {
	svc      core.Service
	chem     *model.Chemical
	storage  *model.Storage
	kg       *model.Unit
	g        *model.Unit
	liter    *model.Unit
	actor    *model.Actor
	outsider *model.Actor
}

func setup(t *testing.T) (context.Context, *fixture) {
	t.Helper()
	ctx := context.Background()
	db.InitSQLite(ctx, ":memory:")
	require.NoError(t, migrate.Table(ctx))

	gdb := db.DB().DBIns()

	kg := &model.Unit{Name: "kg"}
	require.NoError(t, gdb.Create(kg).Error)
	factor := 1000.0
	g := &model.Unit{Name: "g", EqualsStandard: &factor, EqualsStandardUnitID: &kg.ID}
	require.NoError(t, gdb.Create(g).Error)
	liter := &model.Unit{Name: "L"}
	require.NoError(t, gdb.Create(liter).Error)

	chem := &model.Chemical{WorkgroupID: 1, CreatorID: "alice", Name: "Ethanol"}
	require.NoError(t, gdb.Create(chem).Error)

	node := &model.Storage{WorkgroupID: 1, CreatorID: "alice", Name: "Lab A"}
	require.NoError(t, gdb.Create(node).Error)

	return ctx, &fixture{
		svc:      New(),
		chem:     chem,
		storage:  node,
		kg:       kg,
		g:        g,
		liter:    liter,
		actor:    &model.Actor{UserID: "alice", WorkgroupID: 1},
		outsider: &model.Actor{UserID: "mallory", WorkgroupID: 2},
	}
}

func (f *fixture) createStock(t *testing.T, ctx context.Context, quantity float64, unit string) *core.StockResp {
	t.Helper()
	resp, err := f.svc.Create(ctx, f.actor, &core.CreateReq{
		ChemicalUUID: f.chem.UUID,
		StorageUUID:  f.storage.UUID,
		Name:         "Bottle",
		Quantity:     quantity,
		UnitName:     unit,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateStock(t *testing.T) {
	ctx, f := setup(t)

	resp := f.createStock(t, ctx, 500, "g")
	assert.Equal(t, 500.0, resp.Quantity)
	assert.Equal(t, 500.0, resp.LeftQuantity)
	assert.Equal(t, "g", resp.UnitName)
	assert.Equal(t, f.storage.UUID, resp.StorageUUID)
}

func TestCreateStockForeignWorkgroup(t *testing.T) {
	ctx, f := setup(t)

	_, err := f.svc.Create(ctx, f.outsider, &core.CreateReq{
		ChemicalUUID: f.chem.UUID,
		StorageUUID:  f.storage.UUID,
		Name:         "Bottle",
		Quantity:     1,
		UnitName:     "g",
	})
	assert.Equal(t, code.PermissionDenied, code.From(err))
}

func TestExtractConvertsAcrossUnits(t *testing.T) {
	ctx, f := setup(t)
	stock := f.createStock(t, ctx, 500, "g")

	resp, err := f.svc.Extract(ctx, f.actor, &core.ExtractReq{
		StockUUID: stock.UUID,
		Quantity:  0.2,
		UnitName:  "kg",
	})
	require.NoError(t, err)
	assert.InDelta(t, 300, resp.LeftQuantity, 1e-9)
	assert.Empty(t, resp.Warning)
}

func TestExtractExhaustedWarning(t *testing.T) {
	ctx, f := setup(t)
	stock := f.createStock(t, ctx, 100, "g")

	resp, err := f.svc.Extract(ctx, f.actor, &core.ExtractReq{
		StockUUID: stock.UUID,
		Quantity:  100,
		UnitName:  "g",
	})
	require.NoError(t, err)
	assert.InDelta(t, 0, resp.LeftQuantity, 1e-9)
	assert.Contains(t, resp.Warning, "seems to be empty")

	// The extraction persisted despite the warning.
	detail, err := f.svc.Get(ctx, f.actor, &core.GetReq{UUID: stock.UUID})
	require.NoError(t, err)
	require.Len(t, detail.Extractions, 1)
}

func TestExtractOverdrawPersistsWithWarning(t *testing.T) {
	ctx, f := setup(t)
	stock := f.createStock(t, ctx, 100, "g")

	resp, err := f.svc.Extract(ctx, f.actor, &core.ExtractReq{
		StockUUID: stock.UUID,
		Quantity:  60,
		UnitName:  "g",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Warning)

	resp, err = f.svc.Extract(ctx, f.actor, &core.ExtractReq{
		StockUUID: stock.UUID,
		Quantity:  50,
		UnitName:  "g",
	})
	require.NoError(t, err)
	assert.InDelta(t, -10, resp.LeftQuantity, 1e-9)
	assert.Contains(t, resp.Warning, "seems to be empty")

	detail, err := f.svc.Get(ctx, f.actor, &core.GetReq{UUID: stock.UUID})
	require.NoError(t, err)
	assert.Len(t, detail.Extractions, 2)
}

func TestExtractUnconvertibleUnitRollsBack(t *testing.T) {
	ctx, f := setup(t)
	stock := f.createStock(t, ctx, 100, "g")

	_, err := f.svc.Extract(ctx, f.actor, &core.ExtractReq{
		StockUUID: stock.UUID,
		Quantity:  1,
		UnitName:  "L",
	})
	assert.Equal(t, code.ConversionUnsupported, code.From(err))

	detail, err := f.svc.Get(ctx, f.actor, &core.GetReq{UUID: stock.UUID})
	require.NoError(t, err)
	assert.Empty(t, detail.Extractions)
	assert.InDelta(t, 100, detail.LeftQuantity, 1e-9)
}

func TestExtractSecretChemicalDenied(t *testing.T) {
	ctx, f := setup(t)
	require.NoError(t, db.DB().DBIns().
		Model(f.chem).Update("secret", true).Error)
	stock := f.createStock(t, ctx, 100, "g")

	// Even with the storage shared, a secret chemical stays inside its
	// workgroup.
	require.NoError(t, db.DB().DBIns().Create(&model.StorageShare{
		StorageID:   f.storage.ID,
		WorkgroupID: f.outsider.WorkgroupID,
	}).Error)

	_, err := f.svc.Extract(ctx, f.outsider, &core.ExtractReq{
		StockUUID: stock.UUID,
		Quantity:  1,
		UnitName:  "g",
	})
	assert.Equal(t, code.PermissionDenied, code.From(err))
}

func TestExtractDeletedStock(t *testing.T) {
	ctx, f := setup(t)
	stock := f.createStock(t, ctx, 100, "g")
	require.NoError(t, f.svc.Delete(ctx, f.actor, &core.DeleteReq{UUID: stock.UUID}))

	_, err := f.svc.Extract(ctx, f.actor, &core.ExtractReq{
		StockUUID: stock.UUID,
		Quantity:  1,
		UnitName:  "g",
	})
	assert.Equal(t, code.StockNotFound, code.From(err))
}

func TestReadSecretChemicalForeignWorkgroup(t *testing.T) {
	ctx, f := setup(t)
	require.NoError(t, db.DB().DBIns().
		Model(f.chem).Update("secret", true).Error)
	stock := f.createStock(t, ctx, 100, "g")

	_, err := f.svc.Get(ctx, f.outsider, &core.GetReq{UUID: stock.UUID})
	assert.Equal(t, code.PermissionDenied, code.From(err))

	_, err = f.svc.ListByChemical(ctx, f.outsider, &core.ListReq{ChemicalUUID: f.chem.UUID})
	assert.Equal(t, code.PermissionDenied, code.From(err))

	// Inside the owning workgroup both reads still work.
	detail, err := f.svc.Get(ctx, f.actor, &core.GetReq{UUID: stock.UUID})
	require.NoError(t, err)
	assert.Equal(t, stock.UUID, detail.UUID)
}

func TestExtractAnonymous(t *testing.T) {
	ctx, f := setup(t)
	stock := f.createStock(t, ctx, 100, "g")

	_, err := f.svc.Extract(ctx, f.actor, &core.ExtractReq{
		StockUUID: stock.UUID,
		Quantity:  10,
		UnitName:  "g",
		Anonymous: true,
	})
	require.NoError(t, err)

	detail, err := f.svc.Get(ctx, f.actor, &core.GetReq{UUID: stock.UUID})
	require.NoError(t, err)
	require.Len(t, detail.Extractions, 1)
	assert.Nil(t, detail.Extractions[0].UserID)
}

func TestSoftDelete(t *testing.T) {
	ctx, f := setup(t)
	stock := f.createStock(t, ctx, 100, "g")

	// Not visible to a workgroup without access to the storage.
	err := f.svc.Delete(ctx, f.outsider, &core.DeleteReq{UUID: stock.UUID})
	assert.Equal(t, code.PermissionDenied, code.From(err))

	require.NoError(t, f.svc.Delete(ctx, f.actor, &core.DeleteReq{UUID: stock.UUID}))

	_, err = f.svc.Get(ctx, f.actor, &core.GetReq{UUID: stock.UUID})
	assert.Equal(t, code.StockNotFound, code.From(err))

	// The row survives for auditing.
	list, err := f.svc.ListByChemical(ctx, f.actor, &core.ListReq{ChemicalUUID: f.chem.UUID})
	require.NoError(t, err)
	assert.Empty(t, list)

	var count int64
	require.NoError(t, db.DB().DBIns().
		Model(&model.Stock{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
