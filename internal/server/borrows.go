package server

import (
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	borrowdomain "github.com/openshelf/openshelf/internal/borrow/domain"
)

type borrowResponse struct {
	ID         snowflake.ID `json:"id"`
	UserID     snowflake.ID `json:"user_id"`
	BookID     snowflake.ID `json:"book_id"`
	Status     string       `json:"status"`
	BorrowedAt time.Time    `json:"borrowed_at"`
	DueDate    time.Time    `json:"due_date"`
	ReturnedAt *time.Time   `json:"returned_at,omitempty"`
	Notes      string       `json:"notes,omitempty"`
}

type createBorrowRequest struct {
	BookID snowflake.ID `json:"book_id"`
	UserID snowflake.ID `json:"user_id"`
	Days   int          `json:"days"`
	Notes  string       `json:"notes"`
}

func toBorrowResponse(b *borrowdomain.Borrow) borrowResponse {
	return borrowResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		BookID:     b.BookID,
		Status:     b.Status,
		BorrowedAt: b.BorrowedAt,
		DueDate:    b.DueDate,
		ReturnedAt: b.ReturnedAt,
		Notes:      b.Notes,
	}
}

// ListBorrows returns borrow records visible to the caller. Members
// only ever see their own; staff see everyone's.
func (s *Server) ListBorrows(c *gin.Context) {
	skip, limit, err := parsePagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	borrows, err := s.borrowSvc.List(c.Request.Context(), currentUser(c), skip, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]borrowResponse, 0, len(borrows))
	for i := range borrows {
		resp = append(resp, toBorrowResponse(&borrows[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) BorrowBook(c *gin.Context) {
	var req createBorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	borrow, err := s.borrowSvc.Borrow(c.Request.Context(), currentUser(c), borrowdomain.BorrowRequest{
		BookID: req.BookID,
		UserID: req.UserID,
		Days:   req.Days,
		Notes:  req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBorrowResponse(borrow))
}

func (s *Server) ReturnBorrow(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	borrow, err := s.borrowSvc.Return(c.Request.Context(), currentUser(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBorrowResponse(borrow))
}
