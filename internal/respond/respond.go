// Package respond shapes every API response into the common envelope:
// success responses as {success, message, data} and errors as
// {success, message, statusCode}.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rentwheels/internal/apperr"
)

func OK(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusCreated, message, data)
}

func write(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// Error maps a service failure to its status code. Typed application errors
// carry their own status; database unique violations become a generic 400;
// anything else is a 500 with the detail kept out of the response body.
func Error(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		switch {
		case isUniqueViolation(err):
			appErr = apperr.Conflict("Duplicate entry: This value already exists")
		default:
			logrus.WithError(err).Error("unhandled service error")
			appErr = apperr.Internal("Internal Server Error")
		}
	}

	Fail(c, appErr.Status(), appErr.Message)
}

// Fail writes an error envelope with the given status and message.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success":    false,
		"message":    message,
		"statusCode": status,
	})
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
