package migrate

import (
	// 外部依赖
	"context"

	// 内部引用
	db "github.com/labsuite/chemmanager/pkg/middleware/db"
	model "github.com/labsuite/chemmanager/pkg/model"
	utils "github.com/labsuite/chemmanager/pkg/utils"
)

func Table(_ context.Context) error {
	return utils.IfErrReturn(func() error {
		return db.DB().DBIns().AutoMigrate(
			&model.Workgroup{},
			&model.Profile{},
			&model.Unit{},
			&model.Chemical{},
			&model.ChemicalSynonym{},
			&model.Distributor{},
			&model.Storage{},
			&model.StorageShare{},
			&model.Stock{},
			&model.Extraction{},
			&model.ChemicalList{},
		)
	}, func() error {
		// partial index keeps the soft-delete filter cheap on big stock tables
		return db.DB().DBIns().Exec(`CREATE INDEX IF NOT EXISTS idx_stock_active ON stock (chemical_id) WHERE deleted_at IS NULL;`).Error
	})
}
