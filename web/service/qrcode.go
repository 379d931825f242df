package service

import (
	"encoding/base64"

	"github.com/inventaris/panel/config"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// ProductDetailURL is the public frontend page a product's QR code points to.
func ProductDetailURL(uuid string) string {
	return config.GetFrontendURL() + "/products/detail/" + uuid
}

// RenderQR encodes content as a PNG QR code.
func RenderQR(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, qrSize)
}

// DataURL wraps a PNG as a data URL for direct use in an <img> tag.
func DataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
