// Package network provides listener helpers for the web server.
package network

import (
	"bufio"
	"net"
	"net/http"
)

// tlsHandshake is the first byte of a TLS record carrying a handshake.
const tlsHandshake = 0x16

// NewAutoHttpsListener wraps a listener that will be served over TLS. A client
// speaking plain HTTP on it receives a 307 to the https:// URL instead of a
// handshake error.
func NewAutoHttpsListener(listener net.Listener) net.Listener {
	return &autoHttpsListener{Listener: listener}
}

type autoHttpsListener struct {
	net.Listener
}

func (l *autoHttpsListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return &peekConn{Conn: conn, r: bufio.NewReader(conn)}, nil
}

// peekConn inspects the first byte on first Read.
type peekConn struct {
	net.Conn
	r       *bufio.Reader
	checked bool
}

func (c *peekConn) Read(b []byte) (int, error) {
	if !c.checked {
		c.checked = true
		first, err := c.r.Peek(1)
		if err != nil {
			return 0, err
		}
		if first[0] != tlsHandshake {
			c.redirect()
			return 0, net.ErrClosed
		}
	}
	return c.r.Read(b)
}

func (c *peekConn) redirect() {
	defer c.Conn.Close()
	req, err := http.ReadRequest(c.r)
	if err != nil {
		return
	}
	resp := http.Response{
		StatusCode: http.StatusTemporaryRedirect,
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
	}
	resp.Header.Set("Location", "https://"+req.Host+req.RequestURI)
	resp.Header.Set("Connection", "close")
	_ = resp.Write(c.Conn)
}
