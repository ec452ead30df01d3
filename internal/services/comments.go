package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/config"
	"github.com/mrlokans/libris/internal/entities"
)

const unknownAuthor = "Unknown"

// CommentNode is a comment with its replies, newest first.
type CommentNode struct {
	ID        uint           `json:"id"`
	UserName  string         `json:"user_name"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	ParentID  *uint          `json:"parent_id"`
	Replies   []*CommentNode `json:"replies"`
}

type CommentInput struct {
	BookID   uint
	Content  string
	ParentID *uint
}

// CommentService reads and writes threaded comments.
type CommentService struct {
	comments CommentStore
	books    BookStore
	users    UserStore
	maxDepth int
}

// NewCommentService creates a comment service. Replies nested deeper than
// maxDepth levels are left out of trees; non-positive values use the default.
func NewCommentService(comments CommentStore, books BookStore, users UserStore, maxDepth int) *CommentService {
	if maxDepth <= 0 {
		maxDepth = config.DefaultCommentMaxDepth
	}
	return &CommentService{
		comments: comments,
		books:    books,
		users:    users,
		maxDepth: maxDepth,
	}
}

// Tree returns the top-level comments of a book, newest first, each with its
// reply subtree. Replies are fetched one level at a time and grouped by parent.
// A book that does not exist has no thread: ErrBookNotFound.
func (s *CommentService) Tree(bookID uint) ([]*CommentNode, error) {
	if _, err := s.books.GetByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to load book %d: %w", bookID, err)
	}

	top, err := s.comments.ListTopLevel(bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for book %d: %w", bookID, err)
	}

	var rows []entities.Comment
	roots := make([]*CommentNode, 0, len(top))
	byID := make(map[uint]*CommentNode, len(top))
	frontier := make([]uint, 0, len(top))
	for _, c := range top {
		node := newCommentNode(c)
		roots = append(roots, node)
		byID[c.ID] = node
		frontier = append(frontier, c.ID)
	}
	rows = append(rows, top...)

	for depth := 1; depth < s.maxDepth && len(frontier) > 0; depth++ {
		replies, err := s.comments.ListByParents(frontier)
		if err != nil {
			return nil, fmt.Errorf("failed to list replies: %w", err)
		}

		frontier = frontier[:0]
		for _, c := range replies {
			parent, ok := byID[*c.ParentID]
			if !ok {
				continue
			}
			node := newCommentNode(c)
			parent.Replies = append(parent.Replies, node)
			byID[c.ID] = node
			frontier = append(frontier, c.ID)
		}
		rows = append(rows, replies...)
	}

	if err := s.fillAuthorNames(rows, byID); err != nil {
		return nil, err
	}
	return roots, nil
}

func newCommentNode(c entities.Comment) *CommentNode {
	return &CommentNode{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		ParentID:  c.ParentID,
		Replies:   []*CommentNode{},
	}
}

// fillAuthorNames resolves every author handle with a single user query.
func (s *CommentService) fillAuthorNames(rows []entities.Comment, byID map[uint]*CommentNode) error {
	handles := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, c := range rows {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			handles = append(handles, c.UserID)
		}
	}

	names, err := s.users.NamesByHandles(handles)
	if err != nil {
		return fmt.Errorf("failed to resolve comment authors: %w", err)
	}

	for _, c := range rows {
		node, ok := byID[c.ID]
		if !ok {
			continue
		}
		node.UserName = authorName(c.UserID, names)
	}
	return nil
}

func authorName(handle string, names map[string]string) string {
	if name, ok := names[handle]; ok && name != "" {
		return name
	}
	if auth.IsBuiltinUsername(handle) {
		return handle
	}
	return unknownAuthor
}

// AddComment posts a comment or reply as the caller.
// The parent may belong to a different book.
func (s *CommentService) AddComment(identity *auth.Identity, in CommentInput) (*entities.Comment, error) {
	if identity == nil || identity.Username == "" {
		return nil, ErrMissingHandle
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, newError(ErrInvalidInput, "content is required")
	}

	if _, err := s.books.GetByID(in.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to load book %d: %w", in.BookID, err)
	}
	if in.ParentID != nil {
		if _, err := s.comments.GetByID(*in.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentCommentNotFound
			}
			return nil, fmt.Errorf("failed to load parent comment: %w", err)
		}
	}

	comment := &entities.Comment{
		Content:  in.Content,
		UserID:   identity.Username,
		BookID:   in.BookID,
		ParentID: in.ParentID,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	return comment, nil
}
