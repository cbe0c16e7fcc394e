package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/expense-bills/internal/domain/entity"
	"github.com/garyjia/expense-bills/pkg/utils"
)

// Request headers identifying the caller. Authentication itself happens
// upstream; this service only trusts what the gateway forwards.
const (
	HeaderUserEmail = "X-User-Email"
	HeaderUserType  = "X-User-Type"
)

const userKey = "current_user"

// currentUserMiddleware reads the caller once and stores it on the context.
// Handlers pass it on explicitly; nothing below reads the headers again.
func currentUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := utils.SanitizeString(c.GetHeader(HeaderUserEmail))
		if err := utils.ValidateEmail(email); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing or invalid " + HeaderUserEmail,
			})
			return
		}

		userType := c.GetHeader(HeaderUserType)
		switch userType {
		case "":
			userType = entity.UserTypeEmployee
		case entity.UserTypeEmployee, entity.UserTypeAdmin:
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "unknown user type",
			})
			return
		}

		c.Set(userKey, entity.User{Type: userType, Email: email})
		c.Next()
	}
}

// currentUser returns the user stored by currentUserMiddleware
func currentUser(c *gin.Context) entity.User {
	if u, ok := c.Get(userKey); ok {
		if user, ok := u.(entity.User); ok {
			return user
		}
	}
	return entity.User{}
}
