package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/stake-plus/claimcheck/src/CCApi/config"
	"github.com/stake-plus/claimcheck/src/CCApi/session"
)

func attachRoutes(r *gin.Engine, cfg config.Config, store session.Store, vf ClaimVerifier, rdb *redis.Client) {
	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	attachStatic(r)

	sessionH := NewSessions([]byte(cfg.JWTSecret), cfg.SessionTTL)
	claimH := NewClaims(store, vf, rdb)

	v1 := r.Group("/v1")
	{
		v1.POST("/session", sessionH.Create)
		v1.GET("/examples", claimH.Examples)

		secured := v1.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
		secured.POST("/claims", claimH.Submit)
		secured.GET("/claims", claimH.List)
		secured.DELETE("/claims", claimH.Clear)
	}
}
