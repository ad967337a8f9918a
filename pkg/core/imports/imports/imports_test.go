package imports

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/labsuite/chemmanager/internal/config"
	code "github.com/labsuite/chemmanager/pkg/common/code"
	core "github.com/labsuite/chemmanager/pkg/core/imports"
	db "github.com/labsuite/chemmanager/pkg/middleware/db"
	model "github.com/labsuite/chemmanager/pkg/model"
	"github.com/labsuite/chemmanager/pkg/model/migrate"
)

func setup(t *testing.T) (context.Context, core.Service, *model.Actor) {
	t.Helper()
	ctx := context.Background()
	db.InitSQLite(ctx, ":memory:")
	require.NoError(t, migrate.Table(ctx))
	config.Global().Media.Dir = t.TempDir()
	return ctx, New(), &model.Actor{UserID: "alice", WorkgroupID: 1}
}

func upload(t *testing.T, ctx context.Context, svc core.Service, actor *model.Actor, csv string) *core.UploadResp {
	t.Helper()
	resp, err := svc.Upload(ctx, actor, &core.UploadReq{
		FileName: "stocks.csv",
		File:     strings.NewReader(csv),
	})
	require.NoError(t, err)
	return resp
}

func TestUploadSniffsDelimiter(t *testing.T) {
	ctx, svc, actor := setup(t)

	resp := upload(t, ctx, svc, actor, "Substanz;Gebinde;Menge;Einheit\nEthanol;Flasche;500;g\n")
	assert.Equal(t, ";", resp.Delimiter)
	assert.Equal(t, []string{"Substanz", "Gebinde", "Menge", "Einheit"}, resp.Columns)

	resp = upload(t, ctx, svc, actor, "chemical,name,quantity\nEthanol,Bottle,500\n")
	assert.Equal(t, ",", resp.Delimiter)
}

func TestVerifyMarksRequiredFields(t *testing.T) {
	ctx, svc, actor := setup(t)
	up := upload(t, ctx, svc, actor, "a,b,c\n1,2,3\n")

	resp, err := svc.Verify(ctx, actor, &core.VerifyReq{UUID: up.UUID})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, resp.Columns)

	required := make(map[string]bool)
	for _, f := range resp.Fields {
		if f.Required {
			required[f.Field] = true
		}
	}
	assert.Equal(t, map[string]bool{
		core.FieldChemical: true,
		core.FieldName:     true,
		core.FieldQuantity: true,
	}, required)

	// A list is only visible to the workgroup that uploaded it.
	_, err = svc.Verify(ctx, &model.Actor{UserID: "mallory", WorkgroupID: 2}, &core.VerifyReq{UUID: up.UUID})
	assert.Equal(t, code.PermissionDenied, code.From(err))
}

func TestCommit(t *testing.T) {
	ctx, svc, actor := setup(t)
	gdb := db.DB().DBIns()
	require.NoError(t, gdb.Create(&model.Unit{Name: "g"}).Error)

	up := upload(t, ctx, svc, actor,
		"Substanz;Gebinde;Menge;Einheit\n"+
			"Ethanol;Flasche 1;500;g\n"+
			"Ethanol;Flasche 2;2,5;bucket\n"+
			"Aceton;Kanister;1000;g\n")

	resp, err := svc.Commit(ctx, actor, &core.CommitReq{
		UUID: up.UUID,
		Mapping: map[string]string{
			core.FieldChemical: "Substanz",
			core.FieldName:     "Gebinde",
			core.FieldQuantity: "Menge",
			core.FieldUnit:     "Einheit",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Created)

	// Repeated chemical names collapse onto one record.
	var chemCount int64
	require.NoError(t, gdb.Model(&model.Chemical{}).Count(&chemCount).Error)
	assert.EqualValues(t, 2, chemCount)

	var stocks []*model.Stock
	require.NoError(t, gdb.Order("id").Find(&stocks).Error)
	require.Len(t, stocks, 3)
	assert.InDelta(t, 2.5, stocks[1].Quantity, 1e-9)

	// The unmatched "bucket" unit fell back to the sentinel.
	var none model.Unit
	require.NoError(t, gdb.Where("name = ?", model.NoneUnitName).First(&none).Error)
	assert.Equal(t, none.ID, stocks[1].UnitID)

	// No storage column mapped, so everything landed in the default root.
	var root model.Storage
	require.NoError(t, gdb.Where("name = ?", "default").First(&root).Error)
	for _, s := range stocks {
		assert.Equal(t, root.ID, s.StorageID)
	}

	// The staging list is gone after a successful commit.
	_, err = svc.Verify(ctx, actor, &core.VerifyReq{UUID: up.UUID})
	assert.Equal(t, code.RecordNotFound, code.From(err))
}

func TestCommitMissingRequiredMapping(t *testing.T) {
	ctx, svc, actor := setup(t)
	up := upload(t, ctx, svc, actor, "Substanz,Menge\nEthanol,500\n")

	_, err := svc.Commit(ctx, actor, &core.CommitReq{
		UUID:    up.UUID,
		Mapping: map[string]string{core.FieldChemical: "Substanz"},
	})
	assert.Equal(t, code.ImportColumnsMissingErr, code.From(err))
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "quantity")
}

func TestCommitBadQuantityRejectsWholeFile(t *testing.T) {
	ctx, svc, actor := setup(t)
	up := upload(t, ctx, svc, actor,
		"chemical,name,quantity\n"+
			"Ethanol,Bottle,500\n"+
			"Aceton,Can,lots\n")

	_, err := svc.Commit(ctx, actor, &core.CommitReq{
		UUID: up.UUID,
		Mapping: map[string]string{
			core.FieldChemical: "chemical",
			core.FieldName:     "name",
			core.FieldQuantity: "quantity",
		},
	})
	assert.Equal(t, code.ImportRowErr, code.From(err))
	assert.Contains(t, err.Error(), "row 3")

	// Nothing from the valid first row survives the rollback.
	gdb := db.DB().DBIns()
	var count int64
	require.NoError(t, gdb.Model(&model.Stock{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, gdb.Model(&model.Chemical{}).Count(&count).Error)
	assert.Zero(t, count)
}
