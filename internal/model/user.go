package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

type User struct {
	BaseModel
	FullName string   `gorm:"size:100;not null" json:"fullName"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('student','admin');default:'student'" json:"role"`
	CenterID uint     `gorm:"index;type:bigint unsigned" json:"centerId"`
	Center   *Center  `gorm:"foreignKey:CenterID" json:"center,omitempty"`

	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

type Center struct {
	BaseModel
	Name string `gorm:"size:255;unique;not null" json:"name"`
}

func (Center) TableName() string {
	return "centers"
}
