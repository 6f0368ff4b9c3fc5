package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tiendafacil/server/internal/models"
	"tiendafacil/server/internal/utils"
)

// SessionInfo es lo que el proveedor de sesiones guarda en Redis bajo
// sesion:<token>; el backend confía en ese contenido
type SessionInfo struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

// AuthMiddleware valida el token Bearer contra la sesión en Redis y deja la
// identidad en el contexto de gin
func AuthMiddleware(redis *utils.RedisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "falta el token de autorización"})
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		var sesion SessionInfo
		found, err := redis.GetJSON(c.Request.Context(), "sesion:"+token, &sesion)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "error validando la sesión", "details": err.Error()})
			return
		}
		if !found || sesion.UserID == "" || sesion.TenantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sesión inválida o vencida"})
			return
		}

		c.Set("user_id", sesion.UserID)
		c.Set("tenant_id", sesion.TenantID)
		c.Set("role", sesion.Role)
		c.Next()
	}
}

// RequireRole exige uno de los roles indicados (owner siempre pasa)
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rol := c.GetString("role")
		if rol == models.RolOwner {
			c.Next()
			return
		}
		for _, permitido := range roles {
			if rol == permitido {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permisos insuficientes"})
	}
}

// CORSMiddleware habilita CORS para el frontend
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// TenantID devuelve el comercio de la sesión actual
func TenantID(c *gin.Context) string {
	return c.GetString("tenant_id")
}
