package utils

import "github.com/gin-gonic/gin"

// JSONSuccess writes the wrapped envelope {"success": true, key: data}.
func JSONSuccess(c *gin.Context, code int, key string, data interface{}) {
	if key == "" {
		key = "data"
	}
	c.JSON(code, gin.H{"success": true, key: data})
}

// JSONMessage writes {"message": msg} plus any extra keys.
func JSONMessage(c *gin.Context, code int, msg string, extra gin.H) {
	body := gin.H{"message": msg}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(code, body)
}

// JSONError writes a short error under key ("message" or "error").
func JSONError(c *gin.Context, code int, key, message string) {
	if key == "" {
		key = "message"
	}
	c.JSON(code, gin.H{key: message})
}
