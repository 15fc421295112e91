package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-credit-api/internal/locale"
)

const labelerKey = "labeler"

// Locale resolves the Accept-Language header once per request.
func Locale(defaultLocale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lab := locale.New(c.GetHeader("Accept-Language"), defaultLocale)
		c.Set(labelerKey, lab)
		c.Header("Content-Language", lab.Tag().String())
		c.Next()
	}
}

// Labeler returns the labeler stored by Locale, or nil when the middleware did not run.
func Labeler(c *gin.Context) *locale.Labeler {
	if value, exists := c.Get(labelerKey); exists {
		if lab, ok := value.(*locale.Labeler); ok {
			return lab
		}
	}
	return nil
}
