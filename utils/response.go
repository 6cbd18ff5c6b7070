package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONFieldErrors reports validation failures with per-field detail,
// e.g. {"errors": {"username": "already taken"}}.
func JSONFieldErrors(c *gin.Context, code int, fields map[string]string) {
	c.JSON(code, gin.H{"success": false, "errors": fields})
}
