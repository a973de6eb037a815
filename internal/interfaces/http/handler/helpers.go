package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func nowUnix() int64 {
	return time.Now().Unix()
}

// queryInt reads an integer query parameter, zero when absent or malformed
func queryInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}

// parseUUIDQuery parses a UUID query parameter
func parseUUIDQuery(c *gin.Context, name string) (uuid.UUID, bool) {
	value, err := uuid.Parse(c.Query(name))
	if err != nil {
		return uuid.Nil, false
	}
	return value, true
}

// paginationDefaults normalizes page and page size query values
func paginationDefaults(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
