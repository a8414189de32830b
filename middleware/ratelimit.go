// ratelimit.go - Per-IP request limits for the login and registration routes

package middleware // Declares the package name

import ( // Import required packages
	"net/http" // HTTP status codes (429)

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/ulule/limiter/v3"                             // Rate parsing and counting
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin" // Gin adapter
	"github.com/ulule/limiter/v3/drivers/store/memory"        // In-process counters
)

// RateLimit limits requests per client IP. rate uses the limiter format
// "<limit>-<period>", e.g. "20-M" for twenty per minute.
func RateLimit(rate string) (gin.HandlerFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	lim := limiter.New(memory.NewStore(), r)
	return mgin.NewMiddleware(lim, mgin.WithLimitReachedHandler(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
	})), nil
}
