package webserver

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Sessions issues anonymous session tokens. A session owns one
// conversation; no account or identity is attached to it.
type Sessions struct {
	jwtSecret []byte
	ttl       time.Duration
}

func NewSessions(secret []byte, ttl time.Duration) Sessions {
	return Sessions{jwtSecret: secret, ttl: ttl}
}

func (s Sessions) Create(c *gin.Context) {
	sid := uuid.NewString()
	expires := time.Now().Add(s.ttl)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"iat": time.Now().Unix(),
		"exp": expires.Unix(),
	})
	signed, err := tok.SignedString(s.jwtSecret)
	if err != nil {
		log.Printf("Failed to sign session token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionId": sid,
		"token":     signed,
		"expiresAt": expires.UTC().Format(time.RFC3339),
	})
}
