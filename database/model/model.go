// Package model contains the gorm models persisted by the inventaris panel.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the privilege class of a user.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// ParseRole normalizes a role case-insensitively. Only admin and user are accepted.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "user":
		return RoleUser, true
	}
	return "", false
}

type User struct {
	Id        int       `json:"-" gorm:"primaryKey;autoIncrement"`
	Uuid      string    `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"size:16;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Uuid == "" {
		u.Uuid = uuid.NewString()
	}
	return nil
}

type Product struct {
	Id           int       `json:"-" gorm:"primaryKey;autoIncrement"`
	Uuid         string    `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Merek        string    `json:"merek" gorm:"size:255;not null"`
	SerialNumber string    `json:"serialNumber" gorm:"size:32;uniqueIndex;not null"`
	UserId       int       `json:"-" gorm:"index;not null"`
	User         User      `json:"user" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Uuid == "" {
		p.Uuid = uuid.NewString()
	}
	return nil
}

// AuditLog records a mutating request made by an authenticated user.
type AuditLog struct {
	ID           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       int       `json:"-" gorm:"index"`
	UserUuid     string    `json:"userUuid" gorm:"size:36"`
	Email        string    `json:"email"`
	Action       string    `json:"action" gorm:"size:16"`
	Resource     string    `json:"resource" gorm:"size:32"`
	ResourceUuid string    `json:"resourceUuid" gorm:"size:36"`
	Status       int       `json:"status"`
	IP           string    `json:"ip"`
	UserAgent    string    `json:"userAgent"`
	Details      string    `json:"details"`
	Timestamp    time.Time `json:"timestamp" gorm:"index"`
}
