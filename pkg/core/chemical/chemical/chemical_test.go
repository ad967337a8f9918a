package chemical

import (
	"context"
	"strings"
	"testing"

	ants "github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	code "github.com/labsuite/chemmanager/pkg/common/code"
	uuid "github.com/labsuite/chemmanager/pkg/common/uuid"
	core "github.com/labsuite/chemmanager/pkg/core/chemical"
	db "github.com/labsuite/chemmanager/pkg/middleware/db"
	model "github.com/labsuite/chemmanager/pkg/model"
	"github.com/labsuite/chemmanager/pkg/model/migrate"
	repo "github.com/labsuite/chemmanager/pkg/repo"
	repoChemical "github.com/labsuite/chemmanager/pkg/repo/chemical"
)

// stubPubChem answers GetCompoundByName for exactly one compound and never
// serves images.
type stubPubChem struct {
	info *repo.CompoundInfo
}

func (s stubPubChem) GetCompoundByName(_ context.Context, name string) (*repo.CompoundInfo, error) {
	if s.info != nil && strings.EqualFold(name, s.info.Name) {
		return s.info, nil
	}
	return nil, code.CompoundNotFound
}

func (s stubPubChem) DownloadImage(context.Context, int64, string) (string, error) {
	return "", code.CompoundNotFound
}

func setup(t *testing.T, pubchem repo.PubChemRepo) (context.Context, core.Service, *model.Actor) {
	t.Helper()
	ctx := context.Background()
	db.InitSQLite(ctx, ":memory:")
	require.NoError(t, migrate.Table(ctx))

	pool, err := ants.NewPool(1, ants.WithNonblocking(true))
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	svc := &chemicalImpl{
		chemicalStore: repoChemical.NewChemicalRepo(),
		pubchem:       pubchem,
		imgPool:       pool,
	}
	return ctx, svc, &model.Actor{UserID: "alice", WorkgroupID: 1}
}

func strp(s string) *string { return &s }

func TestCreateEnrichesFromPubChem(t *testing.T) {
	ctx, svc, actor := setup(t, stubPubChem{info: &repo.CompoundInfo{
		CID:              702,
		Name:             "Ethanol",
		MolecularFormula: "C2H6O",
		MolecularWeight:  46.07,
	}})

	resp, err := svc.Create(ctx, actor, &core.CreateReq{Name: "Ethanol"})
	require.NoError(t, err)
	require.NotNil(t, resp.Structure)
	assert.Equal(t, "C2H6O", *resp.Structure)
	require.NotNil(t, resp.MolarMass)
	assert.InDelta(t, 46.07, *resp.MolarMass, 1e-9)
	require.NotNil(t, resp.CID)
	assert.Equal(t, "702", *resp.CID)
}

func TestCreateKeepsUserValuesOverPubChem(t *testing.T) {
	ctx, svc, actor := setup(t, stubPubChem{info: &repo.CompoundInfo{
		CID:              702,
		Name:             "Ethanol",
		MolecularFormula: "C2H6O",
		MolecularWeight:  46.07,
	}})

	resp, err := svc.Create(ctx, actor, &core.CreateReq{
		Name:      "Ethanol",
		Structure: strp("EtOH"),
	})
	require.NoError(t, err)
	assert.Equal(t, "EtOH", *resp.Structure)
}

func TestCreateDuplicateName(t *testing.T) {
	ctx, svc, actor := setup(t, stubPubChem{})

	_, err := svc.Create(ctx, actor, &core.CreateReq{Name: "Aceton"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, actor, &core.CreateReq{Name: "Aceton"})
	assert.Equal(t, code.ChemicalDuplicateErr, code.From(err))

	// The same name in another workgroup is fine.
	_, err = svc.Create(ctx, &model.Actor{UserID: "bob", WorkgroupID: 2}, &core.CreateReq{Name: "Aceton"})
	assert.NoError(t, err)
}

func TestUpdateReconcilesSynonyms(t *testing.T) {
	ctx, svc, actor := setup(t, stubPubChem{})

	resp, err := svc.Create(ctx, actor, &core.CreateReq{
		Name:     "Ethanol",
		Synonyms: strp("EtOH\nalcohol"),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"EtOH", "alcohol"}, resp.Synonyms)

	err = svc.Update(ctx, actor, &core.UpdateReq{
		UUID:     resp.UUID,
		Synonyms: strp("alcohol\nspirit"),
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, actor, &core.GetReq{UUID: resp.UUID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alcohol", "spirit"}, got.Synonyms)
}

func TestUpdateCreatorOnly(t *testing.T) {
	ctx, svc, actor := setup(t, stubPubChem{})
	resp, err := svc.Create(ctx, actor, &core.CreateReq{Name: "Ethanol"})
	require.NoError(t, err)

	// Same workgroup but different user.
	err = svc.Update(ctx, &model.Actor{UserID: "carol", WorkgroupID: 1}, &core.UpdateReq{
		UUID: resp.UUID,
		Name: strp("Renamed"),
	})
	assert.Equal(t, code.PermissionDenied, code.From(err))
}

func TestDeleteGuardedByStocks(t *testing.T) {
	ctx, svc, actor := setup(t, stubPubChem{})
	resp, err := svc.Create(ctx, actor, &core.CreateReq{Name: "Ethanol"})
	require.NoError(t, err)

	gdb := db.DB().DBIns()
	var chem model.Chemical
	require.NoError(t, gdb.Where("uuid = ?", resp.UUID).First(&chem).Error)

	unit := &model.Unit{Name: "g"}
	require.NoError(t, gdb.Create(unit).Error)
	node := &model.Storage{WorkgroupID: 1, CreatorID: "alice", Name: "Lab A"}
	require.NoError(t, gdb.Create(node).Error)
	stock := &model.Stock{ChemicalID: chem.ID, StorageID: node.ID, UnitID: unit.ID, Name: "Bottle", Quantity: 1}
	require.NoError(t, gdb.Create(stock).Error)

	err = svc.Delete(ctx, actor, &core.DeleteReq{UUID: resp.UUID})
	assert.Equal(t, code.ChemicalInUseErr, code.From(err))

	require.NoError(t, gdb.Delete(stock).Error)
	require.NoError(t, svc.Delete(ctx, actor, &core.DeleteReq{UUID: resp.UUID}))

	_, err = svc.Get(ctx, actor, &core.GetReq{UUID: resp.UUID})
	assert.Equal(t, code.RecordNotFound, code.From(err))
}

func TestGetSecretForeignWorkgroup(t *testing.T) {
	ctx, svc, actor := setup(t, stubPubChem{})
	resp, err := svc.Create(ctx, actor, &core.CreateReq{Name: "Ethanol", Secret: true})
	require.NoError(t, err)

	_, err = svc.Get(ctx, &model.Actor{UserID: "bob", WorkgroupID: 2}, &core.GetReq{UUID: resp.UUID})
	assert.Equal(t, code.PermissionDenied, code.From(err))
}

func TestListVisibility(t *testing.T) {
	ctx, svc, actor := setup(t, stubPubChem{})
	bob := &model.Actor{UserID: "bob", WorkgroupID: 2}

	_, err := svc.Create(ctx, actor, &core.CreateReq{Name: "Own"})
	require.NoError(t, err)
	shared, err := svc.Create(ctx, bob, &core.CreateReq{Name: "Shared"})
	require.NoError(t, err)
	secret, err := svc.Create(ctx, bob, &core.CreateReq{Name: "Hidden", Secret: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, &core.CreateReq{Name: "Unshared"})
	require.NoError(t, err)

	// Bob stores the shared and the secret chemical in a storage his
	// workgroup shares with workgroup 1.
	gdb := db.DB().DBIns()
	unit := &model.Unit{Name: "g"}
	require.NoError(t, gdb.Create(unit).Error)
	node := &model.Storage{WorkgroupID: 2, CreatorID: "bob", Name: "Lab B"}
	require.NoError(t, gdb.Create(node).Error)
	require.NoError(t, gdb.Create(&model.StorageShare{StorageID: node.ID, WorkgroupID: 1}).Error)
	for _, u := range []uuid.UUID{shared.UUID, secret.UUID} {
		var chem model.Chemical
		require.NoError(t, gdb.Where("uuid = ?", u).First(&chem).Error)
		require.NoError(t, gdb.Create(&model.Stock{
			ChemicalID: chem.ID, StorageID: node.ID, UnitID: unit.ID, Name: "Bottle", Quantity: 1,
		}).Error)
	}

	page, err := svc.List(ctx, actor, &core.ListReq{})
	require.NoError(t, err)

	names := make([]string, 0, len(page.Data))
	for _, c := range page.Data {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Own", "Shared"}, names)
}

func TestQueryCompound(t *testing.T) {
	ctx, svc, _ := setup(t, stubPubChem{info: &repo.CompoundInfo{
		CID:              702,
		Name:             "Ethanol",
		MolecularFormula: "C2H6O",
		MolecularWeight:  46.07,
	}})

	resp, err := svc.QueryCompound(ctx, &core.CompoundReq{Name: "ethanol"})
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.EqualValues(t, 702, resp.CID)

	resp, err = svc.QueryCompound(ctx, &core.CompoundReq{Name: "unobtainium"})
	require.NoError(t, err)
	assert.False(t, resp.Found)
}
