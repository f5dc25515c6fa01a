package services

import (
	"context"
	"fmt"

	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

// defaultRecentNotes is the limit used when the caller does not specify one.
const defaultRecentNotes = 5

// NoteService handles note operations
type NoteService struct {
	noteRepo ports.NoteRepository
	logger   *logger.Logger
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo ports.NoteRepository, logger *logger.Logger) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		logger:   logger,
	}
}

// CreateNote creates a new note
func (s *NoteService) CreateNote(ctx context.Context, userID int64, req ports.CreateNoteRequest) (*entities.Note, error) {
	note := &entities.Note{
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
	}

	created, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Info("Note created", "note_id", created.ID)

	return created, nil
}

// GetNote retrieves a note by ID
func (s *NoteService) GetNote(ctx context.Context, id int64) (*entities.Note, error) {
	return s.noteRepo.GetByID(ctx, id)
}

// ListNotes retrieves a user's notes, most recently updated first
func (s *NoteService) ListNotes(ctx context.Context, userID int64) ([]*entities.Note, error) {
	return s.noteRepo.ListByUser(ctx, userID)
}

// SearchNotes finds notes whose title or content contains the term
func (s *NoteService) SearchNotes(ctx context.Context, userID int64, term string) ([]*entities.Note, error) {
	return s.noteRepo.Search(ctx, userID, term)
}

// RecentNotes retrieves the most recently updated notes
func (s *NoteService) RecentNotes(ctx context.Context, userID int64, limit int) ([]*entities.Note, error) {
	if limit <= 0 {
		limit = defaultRecentNotes
	}
	return s.noteRepo.Recent(ctx, userID, limit)
}

// UpdateNote applies a partial update and bumps updated_at
func (s *NoteService) UpdateNote(ctx context.Context, id int64, req ports.UpdateNoteRequest) (*entities.Note, error) {
	return s.noteRepo.Update(ctx, id, ports.NotePatch{
		Title:   req.Title,
		Content: req.Content,
	})
}

// DeleteNote removes a note, reporting whether a row was deleted
func (s *NoteService) DeleteNote(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.noteRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.Info("Note deleted", "note_id", id)
	}

	return deleted, nil
}
