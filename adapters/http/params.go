package http

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tumai/space-api/pkg/apperror"
)

func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewInvalidInput(fmt.Sprintf("'%s' must be a positive integer, got '%s'", name, raw), err)
	}
	return id, nil
}

// queryInt reads an optional integer query parameter. Missing means 0.
func queryInt(c *gin.Context, name string) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewInvalidInput(fmt.Sprintf("'%s' must be an integer, got '%s'", name, raw), err)
	}
	return v, nil
}

func queryIDs(c *gin.Context, name string) ([]int64, error) {
	raw := c.QueryArray(name)
	if len(raw) == 0 {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("query parameter '%s' is required", name), nil)
	}
	ids := make([]int64, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseInt(r, 10, 64)
		if err != nil {
			return nil, apperror.NewInvalidInput(fmt.Sprintf("'%s' contains a non-integer value '%s'", name, r), err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
