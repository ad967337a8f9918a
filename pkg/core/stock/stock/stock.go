package stock

import (
	// 外部依赖
	"context"
	"fmt"

	// 内部引用
	code "github.com/labsuite/chemmanager/pkg/common/code"
	"github.com/labsuite/chemmanager/pkg/core/policy"
	core "github.com/labsuite/chemmanager/pkg/core/stock"
	"github.com/labsuite/chemmanager/pkg/core/unitconv"
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
	repoChemical "github.com/labsuite/chemmanager/pkg/repo/chemical"
	repoStock "github.com/labsuite/chemmanager/pkg/repo/stock"
	repoStorage "github.com/labsuite/chemmanager/pkg/repo/storage"
	repoUnit "github.com/labsuite/chemmanager/pkg/repo/unit"
	utils "github.com/labsuite/chemmanager/pkg/utils"
)

type stockImpl struct {
	stockStore    repo.StockRepo
	chemicalStore repo.ChemicalRepo
	storageStore  repo.StorageRepo
	unitStore     repo.UnitRepo
}

func New() core.Service {
	return &stockImpl{
		stockStore:    repoStock.NewStockRepo(),
		chemicalStore: repoChemical.NewChemicalRepo(),
		storageStore:  repoStorage.NewStorageRepo(),
		unitStore:     repoUnit.NewUnitRepo(),
	}
}

func (s *stockImpl) Create(ctx context.Context, actor *model.Actor, req *core.CreateReq) (*core.StockResp, error) {
	chemID := s.stockStore.UUID2ID(ctx, &model.Chemical{}, req.ChemicalUUID)[req.ChemicalUUID]
	if chemID == 0 {
		return nil, code.RecordNotFound
	}
	chem, err := s.chemicalStore.GetChemicalByID(ctx, chemID)
	if err != nil {
		return nil, err
	}

	if err := policy.CanCreateStock(actor, chem); err != nil {
		return nil, err
	}

	storageID := s.stockStore.UUID2ID(ctx, &model.Storage{}, req.StorageUUID)[req.StorageUUID]
	if storageID == 0 {
		return nil, code.StorageNotFound
	}

	unit, err := s.unitStore.FindOrCreateByName(ctx, req.UnitName)
	if err != nil {
		return nil, err
	}

	data := &model.Stock{
		ChemicalID: chemID,
		StorageID:  storageID,
		UnitID:     unit.ID,
		Name:       req.Name,
		Quantity:   req.Quantity,
		Price:      req.Price,
		Purity:     req.Purity,
		Label:      req.Label,
		Comment:    req.Comment,
	}

	if req.Distributor != nil && *req.Distributor != "" {
		dist, err := s.chemicalStore.FindOrCreateDistributor(ctx, *req.Distributor)
		if err != nil {
			return nil, err
		}
		data.DistributorID = &dist.ID
	}

	if err := s.stockStore.CreateStock(ctx, data); err != nil {
		logger.Errorf(ctx, "CreateStock err: %+v", err)
		return nil, code.StockCreateErr.WithErr(err)
	}

	return s.toResp(ctx, data)
}

func (s *stockImpl) Get(ctx context.Context, actor *model.Actor, req *core.GetReq) (*core.StockDetail, error) {
	if actor == nil {
		return nil, code.UnLogin
	}

	id := s.stockStore.UUID2ID(ctx, &model.Stock{}, req.UUID)[req.UUID]
	if id == 0 {
		return nil, code.StockNotFound
	}
	data, err := s.stockStore.GetStockByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	chem, err := s.chemicalStore.GetChemicalByID(ctx, data.ChemicalID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanReadChemical(actor, chem); err != nil {
		return nil, err
	}

	resp, err := s.toResp(ctx, data)
	if err != nil {
		return nil, err
	}

	extractions, err := s.stockStore.ListExtractions(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &core.StockDetail{StockResp: *resp}
	for _, e := range extractions {
		unit, err := s.unitStore.GetUnitByID(ctx, e.UnitID)
		if err != nil {
			return nil, err
		}
		detail.Extractions = append(detail.Extractions, &core.ExtractionResp{
			UUID:      e.UUID,
			Quantity:  e.Quantity,
			UnitName:  unit.Name,
			UserID:    e.UserID,
			Comment:   e.Comment,
			CreatedAt: e.CreatedAt,
		})
	}

	return detail, nil
}

func (s *stockImpl) Update(ctx context.Context, actor *model.Actor, req *core.UpdateReq) error {
	id := s.stockStore.UUID2ID(ctx, &model.Stock{}, req.UUID)[req.UUID]
	if id == 0 {
		return code.StockNotFound
	}
	data, err := s.stockStore.GetStockByID(ctx, id, false)
	if err != nil {
		return err
	}
	chem, err := s.chemicalStore.GetChemicalByID(ctx, data.ChemicalID)
	if err != nil {
		return err
	}

	if err := policy.CanUpdateStock(actor, chem); err != nil {
		return err
	}

	updates := make(map[string]any)
	if req.StorageUUID != nil {
		storageID := s.stockStore.UUID2ID(ctx, &model.Storage{}, *req.StorageUUID)[*req.StorageUUID]
		if storageID == 0 {
			return code.StorageNotFound
		}
		updates["storage_id"] = storageID
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.UnitName != nil {
		unit, err := s.unitStore.FindOrCreateByName(ctx, *req.UnitName)
		if err != nil {
			return err
		}
		updates["unit_id"] = unit.ID
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Purity != nil {
		updates["purity"] = *req.Purity
	}
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}
	if req.Distributor != nil {
		dist, err := s.chemicalStore.FindOrCreateDistributor(ctx, *req.Distributor)
		if err != nil {
			return err
		}
		updates["distributor_id"] = dist.ID
	}

	if len(updates) == 0 {
		return code.ParamErr.WithMsg("at least one field to update is required")
	}

	return s.stockStore.UpdateStockByID(ctx, id, updates)
}

func (s *stockImpl) Delete(ctx context.Context, actor *model.Actor, req *core.DeleteReq) error {
	id := s.stockStore.UUID2ID(ctx, &model.Stock{}, req.UUID)[req.UUID]
	if id == 0 {
		return code.StockNotFound
	}
	data, err := s.stockStore.GetStockByID(ctx, id, false)
	if err != nil {
		return err
	}

	workgroups, err := s.storageWorkgroups(ctx, data.StorageID)
	if err != nil {
		return err
	}
	if err := policy.CanDeleteStock(actor, workgroups); err != nil {
		return err
	}

	return s.stockStore.SoftDeleteStock(ctx, id)
}

func (s *stockImpl) ListByChemical(ctx context.Context, actor *model.Actor, req *core.ListReq) ([]*core.StockResp, error) {
	if actor == nil {
		return nil, code.UnLogin
	}

	chemID := s.stockStore.UUID2ID(ctx, &model.Chemical{}, req.ChemicalUUID)[req.ChemicalUUID]
	if chemID == 0 {
		return nil, code.RecordNotFound
	}
	chem, err := s.chemicalStore.GetChemicalByID(ctx, chemID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanReadChemical(actor, chem); err != nil {
		return nil, err
	}

	list, err := s.stockStore.ListStocksByChemical(ctx, chemID, false)
	if err != nil {
		return nil, code.StockQueryErr.WithErr(err)
	}

	out := make([]*core.StockResp, 0, len(list))
	for _, data := range list {
		resp, err := s.toResp(ctx, data)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *stockImpl) Extract(ctx context.Context, actor *model.Actor, req *core.ExtractReq) (*core.ExtractResp, error) {
	if actor == nil {
		return nil, code.UnLogin
	}

	var resp *core.ExtractResp
	err := s.stockStore.ExecTx(ctx, func(txCtx context.Context) error {
		id := s.stockStore.UUID2ID(txCtx, &model.Stock{}, req.StockUUID)[req.StockUUID]
		if id == 0 {
			return code.StockNotFound
		}
		// Hold the row until commit so concurrent extractions see each
		// other's quantities when the remainder is recomputed.
		data, err := s.stockStore.LockStockByID(txCtx, id)
		if err != nil {
			return err
		}
		chem, err := s.chemicalStore.GetChemicalByID(txCtx, data.ChemicalID)
		if err != nil {
			return err
		}
		workgroups, err := s.storageWorkgroups(txCtx, data.StorageID)
		if err != nil {
			return err
		}
		if err := policy.CanCreateExtraction(actor, chem, workgroups); err != nil {
			return err
		}

		unit, err := s.unitStore.GetUnitByName(txCtx, req.UnitName)
		if err != nil {
			return err
		}
		stockUnit, err := s.unitStore.GetUnitByID(txCtx, data.UnitID)
		if err != nil {
			return err
		}
		// Reject an unconvertible unit before anything is written.
		if _, err := unitconv.Convert(req.Quantity, unit, stockUnit); err != nil {
			return err
		}

		extraction := &model.Extraction{
			StockID:  id,
			UnitID:   unit.ID,
			Quantity: req.Quantity,
			Comment:  req.Comment,
		}
		if !req.Anonymous {
			extraction.UserID = &actor.UserID
		}
		if err := s.stockStore.CreateExtraction(txCtx, extraction); err != nil {
			logger.Errorf(txCtx, "CreateExtraction err: %+v", err)
			return code.ExtractionCreateErr.WithErr(err)
		}

		left, err := s.leftQuantity(txCtx, data)
		if err != nil {
			return err
		}

		resp = &core.ExtractResp{
			UUID:         extraction.UUID,
			LeftQuantity: left,
		}
		if left <= 0 {
			resp.Warning = fmt.Sprintf("stock %s for %s seems to be empty", data.Name, chem.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *stockImpl) ListUnits(ctx context.Context) ([]*core.UnitResp, error) {
	units, err := s.unitStore.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	return utils.FilterSlice(units, func(u *model.Unit) (*core.UnitResp, bool) {
		return &core.UnitResp{UUID: u.UUID, Name: u.Name}, true
	}), nil
}

// storageWorkgroups is the owner workgroup plus every workgroup the node is
// shared with.
func (s *stockImpl) storageWorkgroups(ctx context.Context, storageID int64) ([]int64, error) {
	node, err := s.storageStore.GetStorageByID(ctx, storageID)
	if err != nil {
		return nil, err
	}
	shared, err := s.storageStore.SharedWorkgroupIDs(ctx, storageID)
	if err != nil {
		return nil, err
	}
	return append([]int64{node.WorkgroupID}, shared...), nil
}

// leftQuantity converts every extraction into the stock's own unit and
// subtracts; an unconvertible historic row surfaces as an error, never as a
// silent zero.
func (s *stockImpl) leftQuantity(ctx context.Context, data *model.Stock) (float64, error) {
	stockUnit, err := s.unitStore.GetUnitByID(ctx, data.UnitID)
	if err != nil {
		return 0, err
	}

	extractions, err := s.stockStore.ListExtractions(ctx, data.ID)
	if err != nil {
		return 0, err
	}

	left := data.Quantity
	for _, e := range extractions {
		unit, err := s.unitStore.GetUnitByID(ctx, e.UnitID)
		if err != nil {
			return 0, err
		}
		q, err := unitconv.Convert(e.Quantity, unit, stockUnit)
		if err != nil {
			return 0, err
		}
		left -= q
	}
	return left, nil
}

func (s *stockImpl) toResp(ctx context.Context, data *model.Stock) (*core.StockResp, error) {
	unit, err := s.unitStore.GetUnitByID(ctx, data.UnitID)
	if err != nil {
		return nil, err
	}
	node, err := s.storageStore.GetStorageByID(ctx, data.StorageID)
	if err != nil {
		return nil, err
	}

	left, err := s.leftQuantity(ctx, data)
	if err != nil {
		return nil, err
	}

	resp := &core.StockResp{
		UUID:         data.UUID,
		Name:         data.Name,
		Quantity:     data.Quantity,
		LeftQuantity: left,
		UnitName:     unit.Name,
		StorageUUID:  node.UUID,
		Price:        data.Price,
		Purity:       data.Purity,
		Label:        data.Label,
		Comment:      data.Comment,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}

	if data.DistributorID != nil {
		dist, err := s.chemicalStore.GetDistributorByID(ctx, *data.DistributorID)
		if err == nil {
			resp.Distributor = &dist.Name
		}
	}

	return resp, nil
}
