package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

// PaginationHeader carries page totals out of band so response bodies stay
// plain lists.
const PaginationHeader = "X-Pagination"

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

// parsePage reads the page and pageSize query values. Out-of-range values are
// clamped later by Normalize, unparsable ones fall back to the defaults.
func parsePage(c *gin.Context) pagination.Request {
	request := pagination.Request{}
	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			request.Page = page
		}
	}
	if raw := c.Query("pageSize"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil {
			request.PageSize = size
		}
	}
	return request.Normalize()
}

func setPaginationHeader[T any](c *gin.Context, page pagination.Page[T]) {
	payload, err := json.Marshal(pagination.NewHeader(page))
	if err != nil {
		return
	}
	c.Header(PaginationHeader, string(payload))
}
