package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// paginationParams reads page-based pagination from query parameters
func paginationParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
	params.Validate()
	return params
}

// dateRangeParams reads a [start, end) date range from start_date and
// end_date query parameters (2006-01-02). The default window is the
// trailing 30 days.
func dateRangeParams(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now

	if s := c.Query("start_date"); s != "" {
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			start = parsed
		}
	}
	if s := c.Query("end_date"); s != "" {
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			// End date is inclusive on the wire, exclusive internally.
			end = parsed.AddDate(0, 0, 1)
		}
	}
	return start, end
}
