package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libris/internal/entities"
)

func approvedTitles(t *testing.T, env *testEnv) []string {
	t.Helper()
	books, err := env.catalog.ListApproved()
	require.NoError(t, err)
	titles := make([]string, 0, len(books))
	for _, b := range books {
		titles = append(titles, b.Title)
	}
	return titles
}

func TestCatalogService_ModerationLifecycle(t *testing.T) {
	env := setupEnv(t)
	theme := "sci-fi"

	book, err := env.catalog.CreateBook(creatorIdentity, BookInput{
		Title:   "Dune",
		Author:  "Herbert",
		Content: "Spice",
		Theme:   &theme,
		Price:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.BookStatusPending, book.Status)
	assert.Equal(t, "creator", book.CreatorID)
	assert.NotContains(t, approvedTitles(t, env), "Dune")

	require.NoError(t, env.admin.Approve(book.ID))
	assert.Contains(t, approvedTitles(t, env), "Dune")

	updated, err := env.catalog.UpdateBook(creatorIdentity, book.ID, BookInput{
		Title:   "Dune",
		Author:  "Frank Herbert",
		Content: "Spice must flow",
		Price:   12,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.BookStatusPending, updated.Status)
	require.NotNil(t, updated.Theme)
	assert.Equal(t, "sci-fi", *updated.Theme, "nil theme keeps the current one")
	assert.NotContains(t, approvedTitles(t, env), "Dune")

	require.NoError(t, env.admin.Reject(book.ID))
	assert.NotContains(t, approvedTitles(t, env), "Dune")

	_, err = env.catalog.UpdateBook(creatorIdentity, book.ID, BookInput{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)
	stored, err := env.books.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BookStatusPending, stored.Status)
}

func TestCatalogService_UpdateBook_Ownership(t *testing.T) {
	env := setupEnv(t)
	approved := env.createBook(t, creatorIdentity, "Mine", false, entities.BookStatusApproved)
	pending := env.createBook(t, creatorIdentity, "Draft", false, entities.BookStatusPending)
	input := BookInput{Title: "Stolen", Author: "Thief"}

	_, err := env.catalog.UpdateBook(otherCreator, approved.ID, input)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.catalog.UpdateBook(otherCreator, pending.ID, input)
	assert.ErrorIs(t, err, ErrForbidden)

	rejected := env.createBook(t, creatorIdentity, "Rejected", false, entities.BookStatusRejected)
	_, err = env.catalog.UpdateBook(readerIdentity, rejected.ID, input)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.catalog.UpdateBook(adminIdentity, pending.ID, input)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.catalog.UpdateBook(creatorIdentity, 9999, input)
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := env.books.GetByID(approved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", stored.Title)
	assert.Equal(t, entities.BookStatusApproved, stored.Status)
}

func TestCatalogService_CreateBook_Validation(t *testing.T) {
	env := setupEnv(t)

	tests := []struct {
		name  string
		input BookInput
	}{
		{"missing title", BookInput{Author: "A"}},
		{"missing author", BookInput{Title: "T"}},
		{"negative price", BookInput{Title: "T", Author: "A", Price: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.catalog.CreateBook(creatorIdentity, tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCatalogService_GetBook_Hidden(t *testing.T) {
	env := setupEnv(t)
	pending := env.createBook(t, creatorIdentity, "Draft", false, entities.BookStatusPending)

	_, err := env.catalog.GetBook(readerIdentity, pending.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := env.catalog.GetBook(creatorIdentity, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft", got.Title)
}

func TestCatalogService_CreatorSummary(t *testing.T) {
	env := setupEnv(t)
	env.createBook(t, creatorIdentity, "A", false, entities.BookStatusApproved)
	env.createBook(t, creatorIdentity, "B", false, entities.BookStatusPending)
	env.createBook(t, creatorIdentity, "C", false, entities.BookStatusPending)
	env.createBook(t, creatorIdentity, "D", false, entities.BookStatusRejected)
	env.createBook(t, otherCreator, "E", false, entities.BookStatusApproved)

	summary, err := env.catalog.CreatorSummary(creatorIdentity)
	require.NoError(t, err)
	assert.Equal(t, CreatorStats{Total: 4, Pending: 2, Approved: 1, Rejected: 1}, summary.Stats)
	assert.Len(t, summary.Books, 4)

	_, err = env.catalog.CreatorSummary(readerIdentity)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.catalog.CreatorSummary(adminIdentity)
	assert.ErrorIs(t, err, ErrForbidden)
}
