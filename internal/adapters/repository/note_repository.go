package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/database"
	"github.com/prodotask/server/internal/ports"
)

// NoteRepositoryImpl implements the NoteRepository interface
type NoteRepositoryImpl struct {
	db *database.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *database.DB) ports.NoteRepository {
	return &NoteRepositoryImpl{db: db}
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	res, err := r.db.DB.ExecContext(ctx,
		`INSERT INTO notes (title, content, user_id) VALUES (?, ?, ?)`,
		note.Title, note.Content, note.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrNoteNotFound) {
			return nil, entities.ErrCreationFailed
		}
		return nil, err
	}

	return created, nil
}

func (r *NoteRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	var note entities.Note
	err := r.db.DB.GetContext(ctx, &note, `SELECT * FROM notes WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note by id: %w", err)
	}

	return &note, nil
}

func (r *NoteRepositoryImpl) ListByUser(ctx context.Context, userID int64) ([]*entities.Note, error) {
	var notes []*entities.Note
	err := r.db.DB.SelectContext(ctx, &notes,
		`SELECT * FROM notes WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}

func (r *NoteRepositoryImpl) Search(ctx context.Context, userID int64, term string) ([]*entities.Note, error) {
	pattern := "%" + term + "%"

	var notes []*entities.Note
	err := r.db.DB.SelectContext(ctx, &notes, `
		SELECT * FROM notes
		WHERE user_id = ? AND (title LIKE ? OR content LIKE ?)
		ORDER BY updated_at DESC`, userID, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}

	return notes, nil
}

func (r *NoteRepositoryImpl) Recent(ctx context.Context, userID int64, limit int) ([]*entities.Note, error) {
	var notes []*entities.Note
	err := r.db.DB.SelectContext(ctx, &notes, `
		SELECT * FROM notes
		WHERE user_id = ?
		ORDER BY updated_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent notes: %w", err)
	}

	return notes, nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, id int64, patch ports.NotePatch) (*entities.Note, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	set := &assignments{}
	if patch.Title != nil {
		set.set("title", *patch.Title)
	}
	if patch.Content != nil {
		set.set("content", *patch.Content)
	}
	set.setRaw("updated_at = CURRENT_TIMESTAMP")

	args := append(set.args, id)
	if _, err := r.db.DB.ExecContext(ctx, `UPDATE notes SET `+set.clause()+` WHERE id = ?`, args...); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}

	return affected > 0, nil
}
