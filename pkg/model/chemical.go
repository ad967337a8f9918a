package model

type Chemical struct {
	BaseModel
	WorkgroupID  int64    `gorm:"not null;index:idx_chemical_wg_name,priority:1" json:"workgroup_id"`
	CreatorID    string   `gorm:"type:varchar(120);not null;index:idx_chemical_creator" json:"creator_id"`
	Name         string   `gorm:"type:varchar(250);not null;index:idx_chemical_wg_name,priority:2" json:"name"`
	Structure    *string  `gorm:"type:varchar(250)" json:"structure"`
	MolarMass    *float64 `gorm:"type:numeric(12,4)" json:"molar_mass"`
	Density      *float64 `gorm:"type:numeric(12,4)" json:"density"`
	MeltingPoint *float64 `gorm:"type:numeric(12,4)" json:"melting_point"`
	BoilingPoint *float64 `gorm:"type:numeric(12,4)" json:"boiling_point"`
	Comment      *string  `gorm:"type:text" json:"comment"`
	CID          *string  `gorm:"type:varchar(100)" json:"cid"`
	CAS          *string  `gorm:"type:varchar(100);index:idx_chemical_cas" json:"cas"`
	Image        *string  `gorm:"type:varchar(250)" json:"image"`
	Secret       bool     `gorm:"not null;default:false" json:"secret"`
}

func (*Chemical) TableName() string { return "chemical" }

type ChemicalSynonym struct {
	BaseModel
	ChemicalID int64  `gorm:"not null;uniqueIndex:idx_synonym_chem_name,priority:1" json:"chemical_id"`
	Name       string `gorm:"type:varchar(250);not null;uniqueIndex:idx_synonym_chem_name,priority:2" json:"name"`
}

func (*ChemicalSynonym) TableName() string { return "chemical_synonym" }

type Distributor struct {
	BaseModel
	Name string `gorm:"type:varchar(250);not null;uniqueIndex:idx_distributor_name" json:"name"`
}

func (*Distributor) TableName() string { return "distributor" }
