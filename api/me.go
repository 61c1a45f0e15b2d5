package api

import (
	"github.com/gin-gonic/gin"
)

func GetMe(c *gin.Context) {
	user, ok := SessionUser(c)
	if !ok {
		c.JSON(200, gin.H{"username": "Guest"})
		return
	}
	c.JSON(200, gin.H{"username": user.Username, "role": user.Role})
}
