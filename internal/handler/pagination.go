package handler

import (
	"strconv"

	"socialfeed/backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// pageParam reads the 1-indexed :page path parameter. Missing, malformed or
// non-positive values fall back to the first page.
func pageParam(c *gin.Context) repository.Page {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		page = 1
	}
	return repository.NewPage(page)
}
