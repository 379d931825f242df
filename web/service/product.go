package service

import (
	"context"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/inventaris/panel/database"
	"github.com/inventaris/panel/database/model"
	"github.com/inventaris/panel/logger"
	"github.com/inventaris/panel/util/csvx"
	"github.com/inventaris/panel/util/serial"
	"github.com/inventaris/panel/web/access"
	"github.com/inventaris/panel/web/cache"
	"github.com/inventaris/panel/web/entity"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	productNameMin = 3
	productNameMax = 100

	// serialAttempts bounds serial number regeneration on collision.
	serialAttempts = 10

	csvTimeFormat = "2006-01-02 15:04:05"
)

var csvHeader = []string{"No", "Name", "Merek", "Serial Number", "Owner", "Owner Email", "Created At", "Updated At"}

// ProductService implements product access for authenticated callers.
type ProductService struct {
	// NewSerial overrides the serial number source. Defaults to serial.New.
	NewSerial func() string
}

func (s *ProductService) newSerial() string {
	if s.NewSerial != nil {
		return s.NewSerial()
	}
	return serial.New()
}

// scoped restricts a product query to rows the scope allows.
func scoped(scope access.Scope) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.All {
			return db
		}
		return db.Where("products.user_id = ?", scope.OwnerID)
	}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("products.created_at DESC").Order("products.id DESC")
}

func withOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "uuid", "name", "email", "role")
	})
}

func (s *ProductService) find(ctx context.Context, caller access.Caller, limit int) ([]model.Product, error) {
	db := database.GetDB().WithContext(ctx).
		Scopes(scoped(access.ListScope(caller)), newestFirst, withOwner)
	if limit > 0 {
		db = db.Limit(limit)
	}
	var products []model.Product
	if err := db.Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

// List returns every product visible to caller, newest first.
func (s *ProductService) List(ctx context.Context, caller access.Caller) ([]model.Product, error) {
	return s.find(ctx, caller, 0)
}

// History returns the most recent visible products, capped at access.HistoryLimit.
func (s *ProductService) History(ctx context.Context, caller access.Caller) ([]model.Product, error) {
	return s.find(ctx, caller, access.HistoryLimit)
}

// Get resolves a product by public id within caller's scope.
// A product owned by someone else is reported as ErrProductNotFound.
func (s *ProductService) Get(ctx context.Context, caller access.Caller, uuid string) (*model.Product, error) {
	return s.getScoped(ctx, access.ListScope(caller), uuid)
}

func (s *ProductService) getScoped(ctx context.Context, scope access.Scope, uuid string) (*model.Product, error) {
	product := &model.Product{}
	err := database.GetDB().WithContext(ctx).
		Scopes(scoped(scope), withOwner).
		Where("products.uuid = ?", uuid).
		First(product).Error
	if database.IsNotFound(err) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get product %s", uuid)
	}
	return product, nil
}

// resolve loads a product regardless of owner. Used before mutation checks.
func (s *ProductService) resolve(ctx context.Context, uuid string) (*model.Product, error) {
	product := &model.Product{}
	err := database.GetDB().WithContext(ctx).
		Select("id", "uuid", "user_id").
		Where("uuid = ?", uuid).
		First(product).Error
	if database.IsNotFound(err) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "resolve product %s", uuid)
	}
	return product, nil
}

// validateProduct trims the form in place and reports every failing field.
func validateProduct(form *entity.ProductForm) error {
	form.Name = strings.TrimSpace(form.Name)
	form.Merek = strings.TrimSpace(form.Merek)

	verr := &ValidationError{}
	if form.Name == "" {
		verr.add("name", "validation.required")
	} else if n := utf8.RuneCountInString(form.Name); n < productNameMin || n > productNameMax {
		verr.add("name", "validation.nameLength",
			"Min=="+strconv.Itoa(productNameMin), "Max=="+strconv.Itoa(productNameMax))
	}
	if form.Merek == "" {
		verr.add("merek", "validation.required")
	}
	return verr.err()
}

func (s *ProductService) serialExists(ctx context.Context, sn string) (bool, error) {
	var count int64
	err := database.GetDB().WithContext(ctx).
		Model(&model.Product{}).
		Where("serial_number = ?", sn).
		Count(&count).Error
	return count > 0, err
}

// uniqueSerial draws serial numbers until one is unused, at most serialAttempts times.
func (s *ProductService) uniqueSerial(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= serialAttempts; attempt++ {
		sn := s.newSerial()
		exists, err := s.serialExists(ctx, sn)
		if err != nil {
			return "", errors.Wrap(err, "check serial number")
		}
		if !exists {
			return sn, nil
		}
		logger.Debugf("serial number %s taken (attempt %d/%d)", sn, attempt, serialAttempts)
	}
	logger.Warningf("serial number generation exhausted after %d attempts", serialAttempts)
	return "", ErrSerialExhausted
}

// Create stores a new product owned by caller with a fresh serial number.
func (s *ProductService) Create(ctx context.Context, caller access.Caller, form entity.ProductForm) (*model.Product, error) {
	if err := validateProduct(&form); err != nil {
		return nil, err
	}
	sn, err := s.uniqueSerial(ctx)
	if err != nil {
		return nil, err
	}
	product := &model.Product{
		Name:         form.Name,
		Merek:        form.Merek,
		SerialNumber: sn,
		UserId:       access.CreateOwner(caller),
	}
	err = database.GetDB().WithContext(ctx).Omit(clause.Associations).Create(product).Error
	if database.IsDuplicate(err) {
		// another insert won the race for this serial number
		return nil, ErrSerialTaken
	}
	if err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	return product, nil
}

// Update changes name and merek. Serial number and owner are never touched.
func (s *ProductService) Update(ctx context.Context, caller access.Caller, uuid string, form entity.ProductForm) error {
	product, err := s.resolve(ctx, uuid)
	if err != nil {
		return err
	}
	if err := access.AuthorizeMutation(caller, product.UserId); err != nil {
		return err
	}
	if err := validateProduct(&form); err != nil {
		return err
	}
	err = database.GetDB().WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", product.Id).
		Updates(map[string]any{"name": form.Name, "merek": form.Merek}).Error
	if err != nil {
		return errors.Wrapf(err, "update product %s", uuid)
	}
	cache.Invalidate(ctx, cache.ProductDetailKey(uuid))
	return nil
}

// Delete removes the product immediately once authorized.
func (s *ProductService) Delete(ctx context.Context, caller access.Caller, uuid string) error {
	product, err := s.resolve(ctx, uuid)
	if err != nil {
		return err
	}
	if err := access.AuthorizeMutation(caller, product.UserId); err != nil {
		return err
	}
	if err := database.GetDB().WithContext(ctx).Delete(&model.Product{}, product.Id).Error; err != nil {
		return errors.Wrapf(err, "delete product %s", uuid)
	}
	cache.Invalidate(ctx, cache.ProductDetailKey(uuid))
	return nil
}

// ExportCSV writes every visible product, newest first, as CSV.
func (s *ProductService) ExportCSV(ctx context.Context, caller access.Caller, w io.Writer) error {
	products, err := s.find(ctx, caller, 0)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(products))
	for i, p := range products {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Name,
			p.Merek,
			p.SerialNumber,
			p.User.Name,
			p.User.Email,
			p.CreatedAt.Format(csvTimeFormat),
			p.UpdatedAt.Format(csvTimeFormat),
		})
	}
	return csvx.Write(w, csvHeader, rows)
}

// PublicDetail returns the shareable view a QR code points to. No session is involved,
// so the owner's role is left out. Results are cached until the product changes.
func (s *ProductService) PublicDetail(ctx context.Context, uuid string) (entity.ProductView, error) {
	return cache.GetOrLoad(ctx, cache.ProductDetailKey(uuid), cache.TTLProductDetail, func(ctx context.Context) (entity.ProductView, error) {
		product, err := s.getScoped(ctx, access.Scope{All: true}, uuid)
		if err != nil {
			return entity.ProductView{}, err
		}
		return entity.NewProductView(product, false), nil
	})
}

// QRCode renders the product's public detail link for a caller allowed to read it.
func (s *ProductService) QRCode(ctx context.Context, caller access.Caller, uuid string) (*model.Product, string, []byte, error) {
	product, err := s.Get(ctx, caller, uuid)
	if err != nil {
		return nil, "", nil, err
	}
	link := ProductDetailURL(product.Uuid)
	png, err := RenderQR(link)
	if err != nil {
		return nil, "", nil, errors.Wrap(err, "render qr code")
	}
	return product, link, png, nil
}
