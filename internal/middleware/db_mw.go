package middleware

import (
	"context"
	"net/http"

	"user_portal/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// ScopedConn is a connection held for one request; *pgxpool.Conn implements it
type ScopedConn interface {
	repository.DBTX
	Release()
}

// ConnAcquirer hands out one ScopedConn per request
type ConnAcquirer interface {
	Acquire(ctx context.Context) (ScopedConn, error)
}

type poolAcquirer struct {
	pool *pgxpool.Pool
}

// PoolAcquirer adapts a pgx pool to ConnAcquirer
func PoolAcquirer(pool *pgxpool.Pool) ConnAcquirer {
	return poolAcquirer{pool: pool}
}

func (p poolAcquirer) Acquire(ctx context.Context) (ScopedConn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// ScopedConnMiddleware holds one pooled connection for the whole request.
// The connection is released when the handler chain returns, whatever the outcome.
func ScopedConnMiddleware(pool ConnAcquirer, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := pool.Acquire(c.Request.Context())
		if err != nil {
			log.WithError(err).Error("failed to acquire database connection")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"detail": "Database unavailable"})
			return
		}
		defer conn.Release()

		c.Request = c.Request.WithContext(repository.WithConn(c.Request.Context(), conn))
		c.Next()
	}
}
