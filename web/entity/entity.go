// Package entity defines the request forms and response shapes of the web layer.
package entity

import (
	"time"

	"github.com/inventaris/panel/database/model"
)

// Msg is the envelope used for acknowledgements and errors.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj,omitempty"`
}

type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type ProductForm struct {
	Name  string `json:"name" form:"name"`
	Merek string `json:"merek" form:"merek"`
}

type UserForm struct {
	Name         string `json:"name" form:"name"`
	Email        string `json:"email" form:"email"`
	Password     string `json:"password" form:"password"`
	ConfPassword string `json:"confPassword" form:"confPassword"`
	Role         string `json:"role" form:"role"`
}

// Owner is the user block embedded in product views.
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type ProductView struct {
	Uuid         string    `json:"uuid"`
	Name         string    `json:"name"`
	Merek        string    `json:"merek"`
	SerialNumber string    `json:"serialNumber"`
	User         *Owner    `json:"user,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreatedProduct is returned by product creation.
type CreatedProduct struct {
	Uuid         string `json:"uuid"`
	Name         string `json:"name"`
	Merek        string `json:"merek"`
	SerialNumber string `json:"serialNumber"`
}

type QRCode struct {
	QRCode  string      `json:"qrCode"`
	QRUrl   string      `json:"qrUrl"`
	Product ProductView `json:"product"`
}

type UserView struct {
	Uuid      string    `json:"uuid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewProductView shapes a product with a preloaded owner. withRole adds the owner's role.
func NewProductView(p *model.Product, withRole bool) ProductView {
	v := ProductView{
		Uuid:         p.Uuid,
		Name:         p.Name,
		Merek:        p.Merek,
		SerialNumber: p.SerialNumber,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.User.Id != 0 {
		v.User = &Owner{Name: p.User.Name, Email: p.User.Email}
		if withRole {
			v.User.Role = p.User.Role
		}
	}
	return v
}

func NewProductViews(products []model.Product, withRole bool) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, NewProductView(&products[i], withRole))
	}
	return views
}

func NewUserView(u *model.User) UserView {
	return UserView{Uuid: u.Uuid, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

// AuditView is an audit log entry as returned to admins.
type AuditView struct {
	ID           int       `json:"id"`
	UserUuid     string    `json:"userUuid"`
	Email        string    `json:"email"`
	Action       string    `json:"action"`
	Resource     string    `json:"resource"`
	ResourceUuid string    `json:"resourceUuid,omitempty"`
	Status       int       `json:"status"`
	IP           string    `json:"ip"`
	Timestamp    time.Time `json:"timestamp"`
}
