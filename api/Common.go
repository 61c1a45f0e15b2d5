package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zt6453928/lunatv-enhanced/database/accounts"
	"github.com/zt6453928/lunatv-enhanced/database/models"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond sends a standardized JSON response.
func Respond(c *gin.Context, httpStatus int, status string, message string, data interface{}) {
	c.JSON(httpStatus, Response{Status: status, Message: message, Data: data})
}

// RespondSuccess sends a success response with data.
func RespondSuccess(c *gin.Context, data interface{}) {
	Respond(c, http.StatusOK, "success", "", data)
}

// RespondSuccessMessage sends a success response with message and data.
func RespondSuccessMessage(c *gin.Context, message string, data interface{}) {
	Respond(c, http.StatusOK, "success", message, data)
}

// RespondError sends an error response with message.
func RespondError(c *gin.Context, httpStatus int, message string) {
	Respond(c, httpStatus, "error", message, nil)
}

// SessionUser resolves the requesting user from the session cookie.
// Returns a zero User and false for anonymous or expired sessions.
func SessionUser(c *gin.Context) (models.User, bool) {
	session, err := c.Cookie("session_token")
	if err != nil {
		return models.User{}, false
	}
	uuid, err := accounts.GetSession(session)
	if err != nil {
		return models.User{}, false
	}
	user, err := accounts.GetUserByUUID(uuid)
	if err != nil {
		return models.User{}, false
	}
	return user, true
}
