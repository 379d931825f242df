package controller

import (
	"bytes"
	"net/http"
	"time"

	"github.com/inventaris/panel/web/entity"
	"github.com/inventaris/panel/web/middleware"
	"github.com/inventaris/panel/web/service"

	"github.com/gin-gonic/gin"
)

// ProductController exposes products to logged-in users and the public detail page.
type ProductController struct {
	BaseController

	productService service.ProductService
}

func NewProductController(g *gin.RouterGroup) *ProductController {
	a := &ProductController{}
	a.initRouter(g)
	return a
}

func (a *ProductController) initRouter(g *gin.RouterGroup) {
	g.GET("/products/:id/detail", a.publicDetail)

	products := g.Group("/products", middleware.AuthRequired(), middleware.AuditMiddleware())
	products.GET("", a.list)
	products.GET("/history", a.history)
	products.GET("/export/csv", a.exportCSV)
	products.GET("/:id", a.get)
	products.GET("/:id/qrcode", a.qrcode)
	products.POST("", a.create)
	products.PATCH("/:id", a.update)
	products.DELETE("/:id", a.delete)
}

func (a *ProductController) list(c *gin.Context) {
	products, err := a.productService.List(c.Request.Context(), caller(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	jsonObj(c, entity.NewProductViews(products, caller(c).IsAdmin()))
}

func (a *ProductController) history(c *gin.Context) {
	products, err := a.productService.History(c.Request.Context(), caller(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	jsonObj(c, entity.NewProductViews(products, caller(c).IsAdmin()))
}

func (a *ProductController) exportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := a.productService.ExportCSV(c.Request.Context(), caller(c), &buf); err != nil {
		a.fail(c, err)
		return
	}
	filename := "products-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (a *ProductController) get(c *gin.Context) {
	product, err := a.productService.Get(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	jsonObj(c, entity.NewProductView(product, caller(c).IsAdmin()))
}

// qrcode answers with the QR code as a data URL, or the bare PNG with ?format=png.
func (a *ProductController) qrcode(c *gin.Context) {
	product, link, png, err := a.productService.QRCode(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	if c.Query("format") == "png" {
		c.Data(http.StatusOK, "image/png", png)
		return
	}
	jsonObj(c, entity.QRCode{
		QRCode:  service.DataURL(png),
		QRUrl:   link,
		Product: entity.NewProductView(product, caller(c).IsAdmin()),
	})
}

func (a *ProductController) publicDetail(c *gin.Context) {
	view, err := a.productService.PublicDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	jsonObj(c, view)
}

func (a *ProductController) create(c *gin.Context) {
	var form entity.ProductForm
	if !bindForm(c, &form) {
		return
	}
	product, err := a.productService.Create(c.Request.Context(), caller(c), form)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Set(middleware.KeyAuditResource, product.Uuid)
	jsonMsgObj(c, http.StatusCreated, I18nWeb(c, "product.created"), entity.CreatedProduct{
		Uuid:         product.Uuid,
		Name:         product.Name,
		Merek:        product.Merek,
		SerialNumber: product.SerialNumber,
	})
}

func (a *ProductController) update(c *gin.Context) {
	var form entity.ProductForm
	if !bindForm(c, &form) {
		return
	}
	if err := a.productService.Update(c.Request.Context(), caller(c), c.Param("id"), form); err != nil {
		a.fail(c, err)
		return
	}
	jsonMsg(c, http.StatusOK, I18nWeb(c, "product.updated"))
}

func (a *ProductController) delete(c *gin.Context) {
	if err := a.productService.Delete(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	jsonMsg(c, http.StatusOK, I18nWeb(c, "product.deleted"))
}
