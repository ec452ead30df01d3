package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/services"
)

type CommentRequest struct {
	BookID   uint   `json:"book_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

type CommentCreatedResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

type CommentsController struct {
	comments *services.CommentService
}

func NewCommentsController(comments *services.CommentService) *CommentsController {
	return &CommentsController{comments: comments}
}

// Tree returns the public discussion of a book.
func (cc *CommentsController) Tree(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	tree, err := cc.comments.Tree(bookID)
	if err != nil {
		respondServiceError(c, err, "comment tree")
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (cc *CommentsController) Create(c *gin.Context) {
	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := cc.comments.AddComment(auth.GetIdentity(c), services.CommentInput{
		BookID:   req.BookID,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		respondServiceError(c, err, "add comment")
		return
	}

	respondCreated(c, CommentCreatedResponse{Message: "Comment added", ID: comment.ID})
}
