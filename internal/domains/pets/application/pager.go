package application

import pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"

// NewPageInfo derives pagination metadata from the full match count.
func NewPageInfo(req pettypes.PageRequest, total int64) pettypes.PageInfo {
	totalPages := 0
	if total > 0 && req.PageSize > 0 {
		size := int64(req.PageSize)
		totalPages = int((total + size - 1) / size)
	}
	return pettypes.PageInfo{
		Page:            req.Page,
		PageSize:        req.PageSize,
		TotalCount:      total,
		TotalPages:      totalPages,
		HasPreviousPage: req.Page > 1 && total > 0,
		HasNextPage:     req.Page < totalPages,
	}
}

// windowPastEnd reports whether the requested window starts after the last match.
func windowPastEnd(req pettypes.PageRequest, total int64) bool {
	offset := req.Offset()
	return offset < 0 || int64(offset) >= total
}
