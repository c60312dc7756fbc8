package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type contextID string

const dbContext contextID = "db"

func setCorsHeaders(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization, X-Request-ID")
	c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
	c.Writer.Header().Set("Access-Control-Max-Age", "86400")
}

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		setCorsHeaders(c)

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// DatabaseMiddleware makes db available to handlers through GetDB.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(dbContext), db)
		c.Next()
	}
}

// GetDB returns the request-scoped database handle, bound to the request
// context so a client disconnect cancels running queries. Nil when
// DatabaseMiddleware was not installed.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(string(dbContext))
	if !ok {
		return nil
	}
	db, ok := v.(*gorm.DB)
	if !ok || db == nil {
		return nil
	}
	if c.Request == nil {
		return db
	}
	return db.WithContext(c.Request.Context())
}
