package realtime

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	jwtmw "dwitter_backend/internal/platform/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin browser clients are expected; bearer-token
	// verification below is the access control.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS returns the GET /stream handler. It applies the same checks
// as the auth gate (bearer token, then user existence) before upgrading
// the connection and registering the subscriber with the hub. Browser
// websocket clients cannot set headers, so the token may also be passed
// as a "token" query parameter.
func ServeWS(hub *Hub, tokens jwtmw.Verifier, users jwtmw.UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			auth := c.GetHeader("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication Error"})
				return
			}
			tokenStr = strings.TrimPrefix(auth, "Bearer ")
		}

		userID, err := tokens.VerifyToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication Error"})
			return
		}
		if _, err := users.FindByID(c.Request.Context(), userID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication Error"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the error response
			slog.Warn("websocket upgrade failed", "error", err, "remote_addr", c.ClientIP())
			return
		}

		cl := &client{hub: hub, conn: conn, send: make(chan []byte, sendBufferSize)}
		select {
		case hub.register <- cl:
		case <-hub.done:
			conn.Close()
			return
		}
		go cl.writePump()
		go cl.readPump()
	}
}
