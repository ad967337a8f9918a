package imports

import (
	// 外部依赖
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	datatypes "gorm.io/datatypes"

	// 内部引用
	config "github.com/labsuite/chemmanager/internal/config"
	code "github.com/labsuite/chemmanager/pkg/common/code"
	uuid "github.com/labsuite/chemmanager/pkg/common/uuid"
	core "github.com/labsuite/chemmanager/pkg/core/imports"
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
	model "github.com/labsuite/chemmanager/pkg/model"
	repo "github.com/labsuite/chemmanager/pkg/repo"
	repoChemical "github.com/labsuite/chemmanager/pkg/repo/chemical"
	repoImports "github.com/labsuite/chemmanager/pkg/repo/imports"
	repoStock "github.com/labsuite/chemmanager/pkg/repo/stock"
	repoStorage "github.com/labsuite/chemmanager/pkg/repo/storage"
	repoUnit "github.com/labsuite/chemmanager/pkg/repo/unit"
)

// defaultStorageName is the shared root used when no storage column is mapped.
const defaultStorageName = "default"

type importsImpl struct {
	listStore     repo.ChemicalListRepo
	chemicalStore repo.ChemicalRepo
	stockStore    repo.StockRepo
	storageStore  repo.StorageRepo
	unitStore     repo.UnitRepo
}

func New() core.Service {
	return &importsImpl{
		listStore:     repoImports.New(),
		chemicalStore: repoChemical.NewChemicalRepo(),
		stockStore:    repoStock.NewStockRepo(),
		storageStore:  repoStorage.NewStorageRepo(),
		unitStore:     repoUnit.NewUnitRepo(),
	}
}

func (s *importsImpl) Upload(ctx context.Context, actor *model.Actor, req *core.UploadReq) (*core.UploadResp, error) {
	if actor == nil {
		return nil, code.UnLogin
	}

	content, err := io.ReadAll(req.File)
	if err != nil {
		return nil, code.ImportFileErr.WithErr(err)
	}
	if len(content) == 0 {
		return nil, code.ImportFileErr.WithMsg("empty file")
	}

	delim := sniffDelimiter(firstLine(content))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = rune(delim[0])
	header, err := reader.Read()
	if err != nil {
		return nil, code.ImportFileErr.WithErr(err)
	}
	columns := make([]string, 0, len(header))
	for _, c := range header {
		columns = append(columns, strings.TrimSpace(c))
	}

	id := uuid.NewV4()

	dir := filepath.Join(config.Global().Media.Dir, "chemical_lists")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, code.ImportFileErr.WithErr(err)
	}
	path := filepath.Join(dir, id.String()+".csv")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, code.ImportFileErr.WithErr(err)
	}

	list := &model.ChemicalList{
		WorkgroupID: actor.WorkgroupID,
		UploadedBy:  actor.UserID,
		FilePath:    path,
		Delimiter:   delim,
		Columns:     datatypes.NewJSONSlice(columns),
	}
	list.UUID = id
	if err := s.listStore.CreateList(ctx, list); err != nil {
		return nil, err
	}

	return &core.UploadResp{
		UUID:      list.UUID,
		Delimiter: delim,
		Columns:   columns,
	}, nil
}

func (s *importsImpl) Verify(ctx context.Context, actor *model.Actor, req *core.VerifyReq) (*core.VerifyResp, error) {
	list, err := s.ownedList(ctx, actor, req.UUID)
	if err != nil {
		return nil, err
	}

	fields := make([]core.FieldChoice, 0, len(core.RequiredFields)+len(core.OptionalFields))
	for _, f := range core.RequiredFields {
		fields = append(fields, core.FieldChoice{Field: f, Required: true})
	}
	for _, f := range core.OptionalFields {
		fields = append(fields, core.FieldChoice{Field: f})
	}

	return &core.VerifyResp{
		UUID:    list.UUID,
		Columns: list.Columns,
		Fields:  fields,
	}, nil
}

func (s *importsImpl) Commit(ctx context.Context, actor *model.Actor, req *core.CommitReq) (*core.CommitResp, error) {
	list, err := s.ownedList(ctx, actor, req.UUID)
	if err != nil {
		return nil, err
	}

	colIdx, err := resolveMapping(list.Columns, req.Mapping)
	if err != nil {
		return nil, err
	}

	records, err := s.readRows(list)
	if err != nil {
		return nil, err
	}
	if max := config.Global().Dynamic().Import.MaxRows; max > 0 && len(records) > max {
		return nil, code.ImportFileErr.WithMsgf("file exceeds %d rows", max)
	}

	created := 0
	err = s.listStore.ExecTx(ctx, func(txCtx context.Context) error {
		run := &commitRun{
			impl:     s,
			actor:    actor,
			colIdx:   colIdx,
			units:    make(map[string]*model.Unit),
			storages: make(map[string]*model.Storage),
		}
		for i, rec := range records {
			if err := run.importRow(txCtx, rec, i+2); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Staging cleanup is best effort; the import already committed.
	if err := s.listStore.DeleteList(ctx, list.ID); err != nil {
		logger.Warnf(ctx, "drop staging list err: %+v", err)
	}
	if err := os.Remove(list.FilePath); err != nil {
		logger.Warnf(ctx, "remove staging file err: %+v", err)
	}

	return &core.CommitResp{Created: created}, nil
}

func (s *importsImpl) ownedList(ctx context.Context, actor *model.Actor, id uuid.UUID) (*model.ChemicalList, error) {
	if actor == nil {
		return nil, code.UnLogin
	}
	list, err := s.listStore.GetListByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if list.WorkgroupID != actor.WorkgroupID {
		return nil, code.PermissionDenied
	}
	return list, nil
}

// readRows returns the data records with the header stripped.
func (s *importsImpl) readRows(list *model.ChemicalList) ([][]string, error) {
	content, err := os.ReadFile(list.FilePath)
	if err != nil {
		return nil, code.ImportFileErr.WithErr(err)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = rune(list.Delimiter[0])
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, code.ImportFileErr.WithErr(err)
	}
	if len(records) < 2 {
		return nil, code.ImportFileErr.WithMsg("file has no data rows")
	}
	return records[1:], nil
}

// resolveMapping checks every required field is mapped to a known column and
// returns field -> column index. Missing fields abort with their names listed.
func resolveMapping(columns []string, mapping map[string]string) (map[string]int, error) {
	idxOf := make(map[string]int, len(columns))
	for i, c := range columns {
		idxOf[c] = i
	}

	colIdx := make(map[string]int, len(mapping))
	missing := make([]string, 0)
	for _, f := range core.RequiredFields {
		col, ok := mapping[f]
		if !ok || col == "" {
			missing = append(missing, f)
			continue
		}
		i, ok := idxOf[col]
		if !ok {
			missing = append(missing, f)
			continue
		}
		colIdx[f] = i
	}
	if len(missing) > 0 {
		return nil, code.ImportColumnsMissingErr.
			WithMsgf("required fields not mapped: %s", strings.Join(missing, ", "))
	}

	for _, f := range core.OptionalFields {
		col, ok := mapping[f]
		if !ok || col == "" {
			continue
		}
		if i, ok := idxOf[col]; ok {
			colIdx[f] = i
		}
	}
	return colIdx, nil
}

// commitRun carries the per-commit caches so repeated unit and storage names
// resolve once.
type commitRun struct {
	impl     *importsImpl
	actor    *model.Actor
	colIdx   map[string]int
	units    map[string]*model.Unit
	storages map[string]*model.Storage
}

func (r *commitRun) importRow(ctx context.Context, rec []string, rowNum int) error {
	chemName := r.value(rec, core.FieldChemical)
	if chemName == "" {
		return code.ImportRowErr.WithMsgf("row %d: chemical name is empty", rowNum)
	}
	stockName := r.value(rec, core.FieldName)
	if stockName == "" {
		return code.ImportRowErr.WithMsgf("row %d: stock name is empty", rowNum)
	}

	quantity, err := parseQuantity(r.value(rec, core.FieldQuantity))
	if err != nil {
		return code.ImportRowErr.
			WithMsgf("row %d: cannot parse quantity %q", rowNum, r.value(rec, core.FieldQuantity))
	}

	chem, err := r.impl.chemicalStore.FindOrCreateByName(ctx, r.actor.WorkgroupID, r.actor.UserID, chemName)
	if err != nil {
		return err
	}
	unit, err := r.resolveUnit(ctx, r.value(rec, core.FieldUnit))
	if err != nil {
		return err
	}
	node, err := r.resolveStorage(ctx, r.value(rec, core.FieldStorage))
	if err != nil {
		return err
	}

	data := &model.Stock{
		ChemicalID: chem.ID,
		StorageID:  node.ID,
		UnitID:     unit.ID,
		Name:       stockName,
		Quantity:   quantity,
	}
	if v := r.value(rec, core.FieldComment); v != "" {
		data.Comment = &v
	}
	if v := r.value(rec, core.FieldPurity); v != "" {
		data.Purity = &v
	}
	if v := r.value(rec, core.FieldLabel); v != "" {
		data.Label = &v
	}
	if v := r.value(rec, core.FieldPrice); v != "" {
		if price, err := parseQuantity(v); err == nil {
			data.Price = &price
		}
	}
	if v := r.value(rec, core.FieldDistributor); v != "" {
		dist, err := r.impl.chemicalStore.FindOrCreateDistributor(ctx, v)
		if err != nil {
			return err
		}
		data.DistributorID = &dist.ID
	}

	return r.impl.stockStore.CreateStock(ctx, data)
}

func (r *commitRun) value(rec []string, field string) string {
	i, ok := r.colIdx[field]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// resolveUnit matches by name against the known units; an empty or unmatched
// value falls back to the sentinel "None" unit.
func (r *commitRun) resolveUnit(ctx context.Context, name string) (*model.Unit, error) {
	if name == "" {
		name = model.NoneUnitName
	}
	if u, ok := r.units[name]; ok {
		return u, nil
	}

	u, err := r.impl.unitStore.GetUnitByName(ctx, name)
	if code.From(err) == code.UnitNotFound && name != model.NoneUnitName {
		return r.resolveUnit(ctx, model.NoneUnitName)
	}
	if code.From(err) == code.UnitNotFound {
		u, err = r.impl.unitStore.FindOrCreateByName(ctx, model.NoneUnitName)
	}
	if err != nil {
		return nil, err
	}

	r.units[name] = u
	return u, nil
}

// resolveStorage finds or creates a root node; rows without a storage value
// land in the shared default root.
func (r *commitRun) resolveStorage(ctx context.Context, name string) (*model.Storage, error) {
	if name == "" {
		name = defaultStorageName
	}
	if n, ok := r.storages[name]; ok {
		return n, nil
	}

	node, err := r.impl.storageStore.FindRootByName(ctx, r.actor.WorkgroupID, name)
	if code.From(err) == code.StorageNotFound {
		node = &model.Storage{
			WorkgroupID: r.actor.WorkgroupID,
			CreatorID:   r.actor.UserID,
			Name:        name,
		}
		err = r.impl.storageStore.CreateStorage(ctx, node)
	}
	if err != nil {
		return nil, err
	}

	r.storages[name] = node
	return node, nil
}

func parseQuantity(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
}

// sniffDelimiter picks the candidate occurring most often in the header line.
func sniffDelimiter(line string) string {
	best := ","
	bestCount := strings.Count(line, ",")
	for _, cand := range []string{";", "\t"} {
		if c := strings.Count(line, cand); c > bestCount {
			best, bestCount = cand, c
		}
	}
	return best
}

func firstLine(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		return string(content[:i])
	}
	return string(content)
}
