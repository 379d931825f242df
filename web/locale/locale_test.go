package locale

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalize(t *testing.T) {
	require.NoError(t, InitLocalizer())

	assert.Equal(t, "Data not found", Localize(NewLocalizer("en"), "product.notFound"))
	assert.Equal(t, "Data tidak ditemukan", Localize(NewLocalizer("id"), "product.notFound"))
	assert.Equal(t, "Data not found", Localize(NewLocalizer("fr"), "product.notFound"))
	assert.Equal(t, "must be between 3 and 100 characters",
		Localize(NewLocalizer("en-US"), "validation.nameLength", "Min==3", "Max==100"))
	assert.Equal(t, "no.such.key", Localize(NewLocalizer("en"), "no.such.key"))
}

func TestMiddlewarePrefersCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LocalizerMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, I18n(c, "forbidden"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.AddCookie(&http.Cookie{Name: "lang", Value: "id-ID"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "Akses terlarang", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "Akses terlarang", w.Body.String())
}
