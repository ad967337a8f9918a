package chemical

import (
	// 外部依赖
	"time"

	// 内部引用
	common "github.com/labsuite/chemmanager/pkg/common"
	uuid "github.com/labsuite/chemmanager/pkg/common/uuid"
)

type CreateReq struct {
	Name         string   `json:"name" binding:"required"`
	Structure    *string  `json:"structure"`
	MolarMass    *float64 `json:"molar_mass"`
	Density      *float64 `json:"density"`
	MeltingPoint *float64 `json:"melting_point"`
	BoilingPoint *float64 `json:"boiling_point"`
	Comment      *string  `json:"comment"`
	CAS          *string  `json:"cas"`
	Secret       bool     `json:"secret"`
	// Synonyms is the newline-separated form value.
	Synonyms *string `json:"synonyms"`
}

type GetReq struct {
	UUID uuid.UUID `form:"uuid" json:"uuid" binding:"required"`
}

type UpdateReq struct {
	UUID         uuid.UUID `json:"uuid" binding:"required"`
	Name         *string   `json:"name"`
	Structure    *string   `json:"structure"`
	MolarMass    *float64  `json:"molar_mass"`
	Density      *float64  `json:"density"`
	MeltingPoint *float64  `json:"melting_point"`
	BoilingPoint *float64  `json:"boiling_point"`
	Comment      *string   `json:"comment"`
	CAS          *string   `json:"cas"`
	Secret       *bool     `json:"secret"`
	Synonyms     *string   `json:"synonyms"`
}

type DeleteReq struct {
	UUID uuid.UUID `json:"uuid" binding:"required"`
}

type ListReq struct {
	common.PageReq

	// Search matches substrings of name, cas and synonyms.
	Search *string `form:"q"`
}

type ChemicalResp struct {
	UUID         uuid.UUID `json:"uuid"`
	Name         string    `json:"name"`
	Structure    *string   `json:"structure"`
	MolarMass    *float64  `json:"molar_mass"`
	Density      *float64  `json:"density"`
	MeltingPoint *float64  `json:"melting_point"`
	BoilingPoint *float64  `json:"boiling_point"`
	Comment      *string   `json:"comment"`
	CID          *string   `json:"cid"`
	CAS          *string   `json:"cas"`
	Image        *string   `json:"image"`
	Secret       bool      `json:"secret"`
	CreatorID    string    `json:"creator_id"`
	WorkgroupID  int64     `json:"workgroup_id"`
	Synonyms     []string  `json:"synonyms,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CompoundReq struct {
	Name string `form:"name" json:"name" binding:"required"`
}

// CompoundResp reports the PubChem lookup; Found=false is not an error.
type CompoundResp struct {
	Found            bool    `json:"found"`
	CID              int64   `json:"cid,omitempty"`
	MolecularFormula string  `json:"molecular_formula,omitempty"`
	MolecularWeight  float64 `json:"molecular_weight,omitempty"`
}
