package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

func JSONMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "success", "message": message})
}

func JSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"status": "error", "message": message})
}

// JSONFieldErrors answers with a per-field error map alongside the message.
func JSONFieldErrors(c *gin.Context, code int, message string, fields map[string]string) {
	c.AbortWithStatusJSON(code, gin.H{"status": "error", "message": message, "fields": fields})
}
