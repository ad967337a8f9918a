package storage

import (
	// 内部引用
	uuid "github.com/labsuite/chemmanager/pkg/common/uuid"
)

type AddRootReq struct {
	Name         string  `json:"name" binding:"required"`
	Room         *string `json:"room"`
	Abbreviation *string `json:"abbreviation"`
}

type AddChildReq struct {
	ParentUUID   uuid.UUID `json:"parent_uuid" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	Room         *string   `json:"room"`
	Abbreviation *string   `json:"abbreviation"`
}

type StorageResp struct {
	UUID uuid.UUID `json:"uuid"`
}

// StorageNode is one row of the tree listing, depth-first with siblings
// ordered by name.
type StorageNode struct {
	UUID             uuid.UUID `json:"uuid"`
	Name             string    `json:"name"`
	Room             *string   `json:"room"`
	Abbreviation     *string   `json:"abbreviation"`
	Depth            int       `json:"depth"`
	Shared           bool      `json:"shared"`
	LocationName     string    `json:"location_name"`
	FullAbbreviation string    `json:"full_abbreviation"`
	DisplayName      string    `json:"display_name"`
}

type DeleteReq struct {
	UUID uuid.UUID `json:"uuid" binding:"required"`
}

type ShareReq struct {
	UUID          uuid.UUID `json:"uuid" binding:"required"`
	WorkgroupName string    `json:"workgroup_name" binding:"required"`
}

type SearchWorkgroupReq struct {
	Prefix string `form:"q"`
}
