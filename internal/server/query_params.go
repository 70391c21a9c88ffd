package server

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

func parsePagination(c *gin.Context) (skip, limit int, err error) {
	skip, err = parseNonNegativeInt(c.Query("skip"), 0)
	if err != nil {
		return 0, 0, err
	}
	limit, err = parseNonNegativeInt(c.Query("limit"), defaultPageLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit == 0 || limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit, nil
}

func parseNonNegativeInt(value string, fallback int) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil || parsed < 0 {
		return 0, ErrInvalidPagination
	}
	return parsed, nil
}

func parseIDParam(c *gin.Context, name string) (snowflake.ID, error) {
	trimmed := strings.TrimSpace(c.Param(name))
	parsed, err := snowflake.ParseString(trimmed)
	if err != nil || parsed == 0 {
		return 0, ErrInvalidID
	}
	return parsed, nil
}
