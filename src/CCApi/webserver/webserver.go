package webserver

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/stake-plus/claimcheck/src/CCApi/config"
	"github.com/stake-plus/claimcheck/src/CCApi/session"
)

func New(cfg config.Config, store session.Store, vf ClaimVerifier, rdb *redis.Client) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, store, vf, rdb)
	return g
}
