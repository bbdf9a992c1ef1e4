package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/internal/middleware"
	"github.com/staffhub-dev/staffhub/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentEmployeeID(ctx *gin.Context) (uuid.UUID, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return uuid.Nil, err
	}

	return user.EmployeeID, nil
}

func GetCurrentToken(ctx *gin.Context) (string, error) {
	token, exists := ctx.Get(types.ContextTokenKey)

	if !exists {
		return "", fmt.Errorf("Token not present in context")
	}

	tokenString, ok := token.(string)

	if !ok {
		return "", fmt.Errorf("Invalid token type in context")
	}

	return tokenString, nil
}
