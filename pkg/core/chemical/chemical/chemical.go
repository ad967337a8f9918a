package chemical

import (
	// 外部依赖
	"context"
	"path/filepath"
	"strconv"
	"strings"

	ants "github.com/panjf2000/ants/v2"

	// 内部引用
	config "github.com/labsuite/chemmanager/internal/config"
	common "github.com/labsuite/chemmanager/pkg/common"
	code "github.com/labsuite/chemmanager/pkg/common/code"
	core "github.com/labsuite/chemmanager/pkg/core/chemical"
	"github.com/labsuite/chemmanager/pkg/core/policy"
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
	repoChemical "github.com/labsuite/chemmanager/pkg/repo/chemical"
	repoPubchem "github.com/labsuite/chemmanager/pkg/repo/pubchem"
	utils "github.com/labsuite/chemmanager/pkg/utils"
)

type chemicalImpl struct {
	chemicalStore repo.ChemicalRepo
	pubchem       repo.PubChemRepo
	imgPool       *ants.Pool
}

func New() core.Service {
	pool, err := ants.NewPool(4, ants.WithNonblocking(true))
	if err != nil {
		panic(err)
	}
	return &chemicalImpl{
		chemicalStore: repoChemical.NewChemicalRepo(),
		pubchem:       repoPubchem.NewPubChemRepo(),
		imgPool:       pool,
	}
}

func (c *chemicalImpl) Create(ctx context.Context, actor *model.Actor, req *core.CreateReq) (*core.ChemicalResp, error) {
	if actor == nil {
		return nil, code.UnLogin
	}

	count, err := c.chemicalStore.CountByName(ctx, actor.WorkgroupID, req.Name)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, code.ChemicalDuplicateErr.
			WithMsgf("chemical %q already exists in your workgroup", req.Name)
	}

	data := &model.Chemical{
		WorkgroupID:  actor.WorkgroupID,
		CreatorID:    actor.UserID,
		Name:         req.Name,
		Structure:    req.Structure,
		MolarMass:    req.MolarMass,
		Density:      req.Density,
		MeltingPoint: req.MeltingPoint,
		BoilingPoint: req.BoilingPoint,
		Comment:      req.Comment,
		CAS:          req.CAS,
		Secret:       req.Secret,
	}

	c.enrich(ctx, data)

	if err := c.chemicalStore.CreateChemical(ctx, data); err != nil {
		logger.Errorf(ctx, "CreateChemical err: %+v", err)
		return nil, code.ChemicalCreateErr.WithErr(err)
	}

	if names := parseSynonyms(req.Synonyms); len(names) > 0 {
		if err := c.chemicalStore.ReconcileSynonyms(ctx, data.ID, names); err != nil {
			logger.Errorf(ctx, "Create synonyms err: %+v", err)
		}
	}

	if data.CID != nil {
		c.fetchImageAsync(data.ID, *data.CID)
	}

	return c.toResp(ctx, data, true)
}

// enrich fills only the fields the user left empty from a PubChem match.
// A lookup miss or failure never blocks the create.
func (c *chemicalImpl) enrich(ctx context.Context, data *model.Chemical) {
	info, err := c.pubchem.GetCompoundByName(ctx, data.Name)
	if err != nil {
		if code.From(err) != code.CompoundNotFound {
			logger.Warnf(ctx, "pubchem lookup %q err: %+v", data.Name, err)
		}
		return
	}

	if (data.Structure == nil || *data.Structure == "") && info.MolecularFormula != "" {
		data.Structure = &info.MolecularFormula
	}
	if data.MolarMass == nil && info.MolecularWeight > 0 {
		data.MolarMass = &info.MolecularWeight
	}
	if data.CID == nil && info.CID > 0 {
		cid := strconv.FormatInt(info.CID, 10)
		data.CID = &cid
	}
}

// fetchImageAsync downloads the compound PNG off the request path and
// records the local path on the chemical.
func (c *chemicalImpl) fetchImageAsync(chemicalID int64, cidStr string) {
	cid, err := strconv.ParseInt(cidStr, 10, 64)
	if err != nil {
		return
	}

	task := func() {
		ctx := context.Background()
		dir := filepath.Join(config.Global().Media.Dir, "chemical_pics")
		path, err := c.pubchem.DownloadImage(ctx, cid, dir)
		if err != nil {
			logger.Warnf(ctx, "download image cid=%d err: %+v", cid, err)
			return
		}
		if err := c.chemicalStore.UpdateChemicalByID(ctx, chemicalID, map[string]any{
			"image": path,
		}); err != nil {
			logger.Errorf(ctx, "record image path err: %+v", err)
		}
	}
	wrapped := func() {
		if err := utils.SafelyRun(task); err != nil {
			logger.Errorf(context.Background(), "image task panic: %+v", err)
		}
	}
	if err := c.imgPool.Submit(wrapped); err != nil {
		// Pool saturated; the image stays absent until the next fetch.
		logger.Warnf(context.Background(), "image pool submit err: %+v", err)
	}
}

func (c *chemicalImpl) Get(ctx context.Context, actor *model.Actor, req *core.GetReq) (*core.ChemicalResp, error) {
	if actor == nil {
		return nil, code.UnLogin
	}

	id := c.chemicalStore.UUID2ID(ctx, &model.Chemical{}, req.UUID)[req.UUID]
	if id == 0 {
		return nil, code.RecordNotFound
	}
	data, err := c.chemicalStore.GetChemicalByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanReadChemical(actor, data); err != nil {
		return nil, err
	}

	return c.toResp(ctx, data, true)
}

func (c *chemicalImpl) Update(ctx context.Context, actor *model.Actor, req *core.UpdateReq) error {
	id := c.chemicalStore.UUID2ID(ctx, &model.Chemical{}, req.UUID)[req.UUID]
	if id == 0 {
		return code.RecordNotFound
	}
	data, err := c.chemicalStore.GetChemicalByID(ctx, id)
	if err != nil {
		return err
	}

	if err := policy.CanUpdateChemical(actor, data); err != nil {
		return err
	}

	updates := make(map[string]any)
	if req.Name != nil && *req.Name != data.Name {
		count, err := c.chemicalStore.CountByName(ctx, data.WorkgroupID, *req.Name)
		if err != nil {
			return err
		}
		if count > 0 {
			return code.ChemicalDuplicateErr.
				WithMsgf("chemical %q already exists in your workgroup", *req.Name)
		}
		updates["name"] = *req.Name
	}
	if req.Structure != nil {
		updates["structure"] = *req.Structure
	}
	if req.MolarMass != nil {
		updates["molar_mass"] = *req.MolarMass
	}
	if req.Density != nil {
		updates["density"] = *req.Density
	}
	if req.MeltingPoint != nil {
		updates["melting_point"] = *req.MeltingPoint
	}
	if req.BoilingPoint != nil {
		updates["boiling_point"] = *req.BoilingPoint
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}
	if req.CAS != nil {
		updates["cas"] = *req.CAS
	}
	if req.Secret != nil {
		updates["secret"] = *req.Secret
	}

	return c.chemicalStore.ExecTx(ctx, func(txCtx context.Context) error {
		if len(updates) > 0 {
			if err := c.chemicalStore.UpdateChemicalByID(txCtx, id, updates); err != nil {
				return err
			}
		}
		if req.Synonyms != nil {
			return c.chemicalStore.ReconcileSynonyms(txCtx, id, parseSynonyms(req.Synonyms))
		}
		return nil
	})
}

func (c *chemicalImpl) Delete(ctx context.Context, actor *model.Actor, req *core.DeleteReq) error {
	id := c.chemicalStore.UUID2ID(ctx, &model.Chemical{}, req.UUID)[req.UUID]
	if id == 0 {
		return code.RecordNotFound
	}
	data, err := c.chemicalStore.GetChemicalByID(ctx, id)
	if err != nil {
		return err
	}

	stocks, err := c.chemicalStore.CountStocks(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanDeleteChemical(actor, data, stocks); err != nil {
		return err
	}

	return c.chemicalStore.DeleteChemical(ctx, id)
}

func (c *chemicalImpl) List(ctx context.Context, actor *model.Actor, req *core.ListReq) (*common.PageResp[[]*core.ChemicalResp], error) {
	if actor == nil {
		return nil, code.UnLogin
	}

	req.Normalize()
	q := repo.ChemicalQuery{
		WorkgroupID: actor.WorkgroupID,
		Search:      req.Search,
		Offset:      req.Offest(),
		Limit:       req.PageSize,
	}

	list, total, err := c.chemicalStore.ListChemicals(ctx, q)
	if err != nil {
		return nil, code.ChemicalQueryErr.WithErr(err)
	}

	respList := utils.FilterSlice(list, func(data *model.Chemical) (*core.ChemicalResp, bool) {
		resp, err := c.toResp(ctx, data, false)
		return resp, err == nil
	})

	return &common.PageResp[[]*core.ChemicalResp]{
		Data:     respList,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (c *chemicalImpl) QueryCompound(ctx context.Context, req *core.CompoundReq) (*core.CompoundResp, error) {
	info, err := c.pubchem.GetCompoundByName(ctx, req.Name)
	if err != nil {
		if code.From(err) == code.CompoundNotFound {
			return &core.CompoundResp{Found: false}, nil
		}
		return nil, err
	}

	return &core.CompoundResp{
		Found:            true,
		CID:              info.CID,
		MolecularFormula: info.MolecularFormula,
		MolecularWeight:  info.MolecularWeight,
	}, nil
}

func (c *chemicalImpl) SearchDistributors(ctx context.Context, prefix string) ([]string, error) {
	return c.chemicalStore.SearchDistributors(ctx, prefix, 10)
}

func (c *chemicalImpl) Close() {
	c.imgPool.Release()
}

func (c *chemicalImpl) toResp(ctx context.Context, data *model.Chemical, withSynonyms bool) (*core.ChemicalResp, error) {
	resp := &core.ChemicalResp{
		UUID:         data.UUID,
		Name:         data.Name,
		Structure:    data.Structure,
		MolarMass:    data.MolarMass,
		Density:      data.Density,
		MeltingPoint: data.MeltingPoint,
		BoilingPoint: data.BoilingPoint,
		Comment:      data.Comment,
		CID:          data.CID,
		CAS:          data.CAS,
		Image:        data.Image,
		Secret:       data.Secret,
		CreatorID:    data.CreatorID,
		WorkgroupID:  data.WorkgroupID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}

	if withSynonyms {
		synonyms, err := c.chemicalStore.GetSynonyms(ctx, data.ID)
		if err != nil {
			return nil, err
		}
		resp.Synonyms = utils.FilterSlice(synonyms, func(s *model.ChemicalSynonym) (string, bool) {
			return s.Name, true
		})
	}

	return resp, nil
}

func parseSynonyms(raw *string) []string {
	if raw == nil {
		return nil
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, line := range strings.Split(*raw, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
