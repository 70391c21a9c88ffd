package server

import (
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	bookdomain "github.com/openshelf/openshelf/internal/book/domain"
)

type bookResponse struct {
	ID              snowflake.ID `json:"id"`
	ISBN            string       `json:"isbn"`
	Title           string       `json:"title"`
	Author          string       `json:"author"`
	Publisher       string       `json:"publisher,omitempty"`
	Genre           string       `json:"genre,omitempty"`
	Description     string       `json:"description,omitempty"`
	TotalCopies     int          `json:"total_copies"`
	AvailableCopies int          `json:"available_copies"`
	PublishedYear   *int         `json:"published_year,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type createBookRequest struct {
	ISBN          string `json:"isbn"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	Genre         string `json:"genre"`
	Description   string `json:"description"`
	TotalCopies   int    `json:"total_copies"`
	PublishedYear *int   `json:"published_year"`
}

type updateBookRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Publisher     *string `json:"publisher"`
	Genre         *string `json:"genre"`
	Description   *string `json:"description"`
	TotalCopies   *int    `json:"total_copies"`
	PublishedYear *int    `json:"published_year"`
}

func toBookResponse(b *bookdomain.Book) bookResponse {
	return bookResponse{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		Publisher:       b.Publisher,
		Genre:           b.Genre,
		Description:     b.Description,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		PublishedYear:   b.PublishedYear,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (s *Server) ListBooks(c *gin.Context) {
	skip, limit, err := parsePagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	books, err := s.bookSvc.List(c.Request.Context(), skip, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]bookResponse, 0, len(books))
	for i := range books {
		resp = append(resp, toBookResponse(&books[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	book, err := s.bookSvc.Create(c.Request.Context(), bookdomain.CreateRequest{
		ISBN:          req.ISBN,
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		Genre:         req.Genre,
		Description:   req.Description,
		TotalCopies:   req.TotalCopies,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookResponse(book))
}

func (s *Server) GetBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	book, err := s.bookSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(book))
}

func (s *Server) UpdateBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	book, err := s.bookSvc.Update(c.Request.Context(), id, bookdomain.UpdateRequest{
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		Genre:         req.Genre,
		Description:   req.Description,
		TotalCopies:   req.TotalCopies,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(book))
}

func (s *Server) DeleteBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.bookSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
