package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	model "github.com/labsuite/chemmanager/pkg/model"
)

// ChemicalQuery scopes a listing to the acting workgroup's visibility:
// own chemicals plus non-secret chemicals reachable through shared storage.
type ChemicalQuery struct {
	WorkgroupID int64
	Search      *string // substring over name, cas and synonyms
	Offset      int
	Limit       int
}

type ChemicalRepo interface {
	IDOrUUIDTranslate

	CreateChemical(ctx context.Context, data *model.Chemical) error
	GetChemicalByID(ctx context.Context, id int64) (*model.Chemical, error)
	// CountByName reports existing chemicals with this name inside a workgroup;
	// the application layer enforces uniqueness with it.
	CountByName(ctx context.Context, workgroupID int64, name string) (int64, error)
	UpdateChemicalByID(ctx context.Context, id int64, data map[string]any) error
	DeleteChemical(ctx context.Context, id int64) error
	ListChemicals(ctx context.Context, q ChemicalQuery) ([]*model.Chemical, int64, error)
	// FindOrCreateByName is used by bulk import.
	FindOrCreateByName(ctx context.Context, workgroupID int64, creatorID, name string) (*model.Chemical, error)

	CountStocks(ctx context.Context, chemicalID int64) (int64, error)

	GetSynonyms(ctx context.Context, chemicalID int64) ([]*model.ChemicalSynonym, error)
	// ReconcileSynonyms adds the missing names and removes the dropped ones.
	ReconcileSynonyms(ctx context.Context, chemicalID int64, names []string) error

	FindOrCreateDistributor(ctx context.Context, name string) (*model.Distributor, error)
	GetDistributorByID(ctx context.Context, id int64) (*model.Distributor, error)
	SearchDistributors(ctx context.Context, prefix string, limit int) ([]string, error)
}
