package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libris/internal/audit"
	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/entities"
	"github.com/mrlokans/libris/internal/services"
)

// BookRequest is the body of book create and update calls.
type BookRequest struct {
	Title     string  `json:"title" binding:"required"`
	Author    string  `json:"author" binding:"required"`
	Theme     *string `json:"theme"`
	Content   string  `json:"content"`
	Price     float64 `json:"price" binding:"min=0"`
	IsPremium bool    `json:"is_premium"`
}

func (r BookRequest) input() services.BookInput {
	return services.BookInput{
		Title:     r.Title,
		Author:    r.Author,
		Theme:     r.Theme,
		Content:   r.Content,
		Price:     r.Price,
		IsPremium: r.IsPremium,
	}
}

type BookResponse struct {
	Message string         `json:"message"`
	BookID  uint           `json:"book_id"`
	Book    *entities.Book `json:"book"`
}

// PayRequest carries an optional amount. Payment is simulated, so it is not checked.
type PayRequest struct {
	Amount *float64 `json:"amount"`
}

type StopRequest struct {
	DurationSeconds *int `json:"duration_seconds" binding:"required,min=0"`
}

// UserController serves the reader and creator routes.
type UserController struct {
	catalog *services.CatalogService
	access  *services.AccessService
	reading *services.ReadingService
	audit   *audit.Service
}

func NewUserController(catalog *services.CatalogService, access *services.AccessService, reading *services.ReadingService, auditService *audit.Service) *UserController {
	return &UserController{
		catalog: catalog,
		access:  access,
		reading: reading,
		audit:   auditService,
	}
}

func (uc *UserController) Dashboard(c *gin.Context) {
	dashboard, err := uc.reading.Dashboard(auth.GetIdentity(c))
	if err != nil {
		respondServiceError(c, err, "dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (uc *UserController) Summary(c *gin.Context) {
	summary, err := uc.catalog.CreatorSummary(auth.GetIdentity(c))
	if err != nil {
		respondServiceError(c, err, "creator summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (uc *UserController) ListBooks(c *gin.Context) {
	books, err := uc.catalog.ListApproved()
	if err != nil {
		respondServiceError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

func (uc *UserController) GetBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	book, err := uc.catalog.GetBook(auth.GetIdentity(c), bookID)
	if err != nil {
		respondServiceError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (uc *UserController) CreateBook(c *gin.Context) {
	var req BookRequest
	if !bindJSON(c, &req) {
		return
	}

	identity := auth.GetIdentity(c)
	book, err := uc.catalog.CreateBook(identity, req.input())
	if err != nil {
		uc.audit.LogPublish(identity.Username, "book_create", 0, req.Title, err)
		respondServiceError(c, err, "create book")
		return
	}
	uc.audit.LogPublish(identity.Username, "book_create", book.ID, book.Title, nil)

	respondCreated(c, BookResponse{
		Message: "Book created successfully! Sent to Admin for approval.",
		BookID:  book.ID,
		Book:    book,
	})
}

func (uc *UserController) UpdateBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}
	var req BookRequest
	if !bindJSON(c, &req) {
		return
	}

	identity := auth.GetIdentity(c)
	book, err := uc.catalog.UpdateBook(identity, bookID, req.input())
	uc.audit.LogPublish(identity.Username, "book_update", bookID, req.Title, err)
	if err != nil {
		respondServiceError(c, err, "update book")
		return
	}

	c.JSON(http.StatusOK, BookResponse{
		Message: "Book updated! Status reset to Pending for review.",
		BookID:  book.ID,
		Book:    book,
	})
}

func (uc *UserController) Pay(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}
	if c.Request.ContentLength > 0 {
		var req PayRequest
		if !bindJSON(c, &req) {
			return
		}
	}

	identity := auth.GetIdentity(c)
	created, err := uc.access.Pay(identity, bookID)
	if err != nil {
		respondServiceError(c, err, "pay")
		return
	}
	uc.audit.LogPurchase(identity.Username, bookID, created)

	if !created {
		respondMessage(c, "Already purchased")
		return
	}
	respondMessage(c, "Payment successful")
}

func (uc *UserController) StartReading(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	if err := uc.reading.StartReading(auth.GetIdentity(c), bookID); err != nil {
		respondServiceError(c, err, "start reading")
		return
	}
	respondMessage(c, "Session started")
}

func (uc *UserController) StopReading(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}
	var req StopRequest
	if !bindJSON(c, &req) {
		return
	}

	stopped, err := uc.reading.StopReading(auth.GetIdentity(c), bookID, *req.DurationSeconds)
	if err != nil {
		respondServiceError(c, err, "stop reading")
		return
	}
	if !stopped {
		respondMessage(c, "No active session found")
		return
	}
	respondMessage(c, "Session saved")
}
