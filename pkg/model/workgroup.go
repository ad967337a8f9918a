package model

type Workgroup struct {
	BaseModel
	Name string `gorm:"type:varchar(250);not null;uniqueIndex:idx_workgroup_name" json:"name"`
}

func (*Workgroup) TableName() string { return "workgroup" }

// Profile attaches an authenticated user to their single home workgroup.
type Profile struct {
	BaseModel
	UserID      string `gorm:"type:varchar(120);not null;uniqueIndex:idx_profile_user" json:"user_id"`
	WorkgroupID int64  `gorm:"not null;index:idx_profile_workgroup" json:"workgroup_id"`
}

func (*Profile) TableName() string { return "profile" }

// UserData is the identity returned by the auth layer; not a table.
type UserData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Actor is the explicit acting identity every core operation receives.
type Actor struct {
	UserID      string `json:"user_id"`
	WorkgroupID int64  `json:"workgroup_id"`
}
