package imports

import (
	// 外部依赖
	"io"

	// 内部引用
	uuid "github.com/labsuite/chemmanager/pkg/common/uuid"
)

// Target fields a CSV column may map onto.
const (
	FieldChemical    = "chemical"
	FieldName        = "name"
	FieldQuantity    = "quantity"
	FieldUnit        = "unit"
	FieldStorage     = "storage"
	FieldComment     = "comment"
	FieldPrice       = "price"
	FieldPurity      = "purity"
	FieldLabel       = "label"
	FieldDistributor = "distributor"
)

// RequiredFields must all be mapped before a commit may run.
var RequiredFields = []string{FieldChemical, FieldName, FieldQuantity}

// OptionalFields complete the selectable target set.
var OptionalFields = []string{
	FieldUnit, FieldStorage, FieldComment,
	FieldPrice, FieldPurity, FieldLabel, FieldDistributor,
}

type UploadReq struct {
	FileName string
	File     io.Reader
}

type UploadResp struct {
	UUID      uuid.UUID `json:"uuid"`
	Delimiter string    `json:"delimiter"`
	Columns   []string  `json:"columns"`
}

type VerifyReq struct {
	UUID uuid.UUID `form:"uuid" json:"uuid" binding:"required"`
}

type FieldChoice struct {
	Field    string `json:"field"`
	Required bool   `json:"required"`
}

type VerifyResp struct {
	UUID    uuid.UUID     `json:"uuid"`
	Columns []string      `json:"columns"`
	Fields  []FieldChoice `json:"fields"`
}

type CommitReq struct {
	UUID uuid.UUID `json:"uuid" binding:"required"`
	// Mapping assigns a target field to a header column name.
	Mapping map[string]string `json:"mapping" binding:"required"`
}

type CommitResp struct {
	Created int `json:"created"`
}
