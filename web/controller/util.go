package controller

import (
	"net"
	"net/http"
	"strings"

	"github.com/inventaris/panel/web/entity"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return strings.TrimSpace(ips[0])
	}
	addr := c.Request.RemoteAddr
	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return ip
}

// jsonMsg sends a successful acknowledgement with status.
func jsonMsg(c *gin.Context, status int, msg string) {
	jsonMsgObj(c, status, msg, nil)
}

// jsonObj sends obj with a 200 status.
func jsonObj(c *gin.Context, obj any) {
	jsonMsgObj(c, http.StatusOK, "", obj)
}

func jsonMsgObj(c *gin.Context, status int, msg string, obj any) {
	c.JSON(status, entity.Msg{
		Success: true,
		Msg:     msg,
		Obj:     obj,
	})
}

// pureJsonMsg sends a pure JSON message response with custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}
