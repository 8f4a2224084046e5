package response

import "github.com/gin-gonic/gin"

// The API speaks the bare JSON contract of the original leave-management
// frontend: records and arrays are returned as-is, failures as
// {"error": message} and bulk operations as {"message": text}.

func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
