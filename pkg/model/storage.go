package model

// Storage is a node in the location tree; adjacency via ParentID.
type Storage struct {
	BaseModel
	WorkgroupID  int64   `gorm:"not null;index:idx_storage_workgroup" json:"workgroup_id"`
	CreatorID    string  `gorm:"type:varchar(120);not null" json:"creator_id"`
	ParentID     *int64  `gorm:"index:idx_storage_parent" json:"parent_id"`
	Name         string  `gorm:"type:varchar(250);not null" json:"name"`
	Room         *string `gorm:"type:varchar(250)" json:"room"`
	Abbreviation *string `gorm:"type:varchar(32)" json:"abbreviation"`
}

func (*Storage) TableName() string { return "storage" }

// StorageShare grants an additional workgroup access to a storage node.
type StorageShare struct {
	BaseModel
	StorageID   int64 `gorm:"not null;uniqueIndex:idx_share_storage_wg,priority:1" json:"storage_id"`
	WorkgroupID int64 `gorm:"not null;uniqueIndex:idx_share_storage_wg,priority:2;index:idx_share_workgroup" json:"workgroup_id"`
}

func (*StorageShare) TableName() string { return "storage_share" }
