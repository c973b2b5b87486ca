package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/database"
	"resumeforge/internal/store"
)

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func roleFromContext(c *gin.Context) database.Role {
	value, ok := c.Get("userRole")
	if !ok {
		return ""
	}
	role, ok := value.(string)
	if !ok {
		return ""
	}
	return database.Role(role)
}

// actorFromContext 组装存储层需要的操作者身份。
func actorFromContext(c *gin.Context) (store.Actor, bool) {
	id, ok := userIDFromContext(c)
	if !ok {
		return store.Actor{}, false
	}
	return store.Actor{ID: id, Role: roleFromContext(c)}, true
}

// uintParam 解析路径参数为 uint，0 与非数字均视为非法。
func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

const dateLayout = "2006-01-02"

// parseDate 按 YYYY-MM-DD 解析日期；空串返回零值且不报错。
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, raw)
}

// parseDatePtr 解析可选日期；空串返回 nil。
func parseDatePtr(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
