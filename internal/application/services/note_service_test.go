package services

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

type fakeNoteRepo struct {
	notes  map[int64]*entities.Note
	nextID int64
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[int64]*entities.Note), nextID: 1}
}

func (r *fakeNoteRepo) Create(_ context.Context, note *entities.Note) (*entities.Note, error) {
	stored := *note
	stored.ID = r.nextID
	r.nextID++
	r.notes[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeNoteRepo) GetByID(_ context.Context, id int64) (*entities.Note, error) {
	note, ok := r.notes[id]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	copied := *note
	return &copied, nil
}

func (r *fakeNoteRepo) ListByUser(_ context.Context, userID int64) ([]*entities.Note, error) {
	var out []*entities.Note
	for _, note := range r.notes {
		if note.UserID == userID {
			copied := *note
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) Search(_ context.Context, userID int64, term string) ([]*entities.Note, error) {
	term = strings.ToLower(term)
	var out []*entities.Note
	for _, note := range r.notes {
		if note.UserID != userID {
			continue
		}
		content := ""
		if note.Content != nil {
			content = *note.Content
		}
		if strings.Contains(strings.ToLower(note.Title), term) || strings.Contains(strings.ToLower(content), term) {
			copied := *note
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) Recent(_ context.Context, userID int64, limit int) ([]*entities.Note, error) {
	var out []*entities.Note
	for _, note := range r.notes {
		if note.UserID == userID {
			copied := *note
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNoteRepo) Update(_ context.Context, id int64, patch ports.NotePatch) (*entities.Note, error) {
	note, ok := r.notes[id]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = patch.Content
	}
	copied := *note
	return &copied, nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.notes[id]; !ok {
		return false, nil
	}
	delete(r.notes, id)
	return true, nil
}

func newNoteService(repo ports.NoteRepository) *NoteService {
	return NewNoteService(repo, logger.NewNop())
}

func TestSearchNotesMatchesTitleAndContent(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := newNoteService(repo)

	_, err := svc.CreateNote(context.Background(), 1, ports.CreateNoteRequest{Title: "Grocery list", Content: strPtr("milk, eggs")})
	require.NoError(t, err)
	_, err = svc.CreateNote(context.Background(), 1, ports.CreateNoteRequest{Title: "Meeting", Content: strPtr("discuss groceries budget")})
	require.NoError(t, err)
	_, err = svc.CreateNote(context.Background(), 1, ports.CreateNoteRequest{Title: "Unrelated", Content: nil})
	require.NoError(t, err)

	notes, err := svc.SearchNotes(context.Background(), 1, "grocer")
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestRecentNotesDefaultLimit(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := newNoteService(repo)

	for i := 0; i < 8; i++ {
		_, err := svc.CreateNote(context.Background(), 1, ports.CreateNoteRequest{Title: "Note"})
		require.NoError(t, err)
	}

	notes, err := svc.RecentNotes(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, notes, defaultRecentNotes)

	notes, err = svc.RecentNotes(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Len(t, notes, 3)
}

func TestUpdateNoteEmptyPatchLeavesNoteUntouched(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := newNoteService(repo)

	created, err := svc.CreateNote(context.Background(), 1, ports.CreateNoteRequest{Title: "Ideas", Content: strPtr("write more tests")})
	require.NoError(t, err)

	updated, err := svc.UpdateNote(context.Background(), created.ID, ports.UpdateNoteRequest{})
	require.NoError(t, err)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Content, updated.Content)
}

func TestDeleteNoteMissing(t *testing.T) {
	repo := newFakeNoteRepo()
	svc := newNoteService(repo)

	deleted, err := svc.DeleteNote(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, deleted)
}
