package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"turkish_shop_backend/internal/apperr"
	"turkish_shop_backend/internal/models"

	"github.com/gocql/gocql"
)

// HelpRequests is plain CRUD over support threads. Replies are an append-only
// list of JSON entries, same encoding as the order email log.
type HelpRequests struct {
	session *gocql.Session
}

func NewHelpRequests(session *gocql.Session) *HelpRequests {
	return &HelpRequests{session: session}
}

func (s *HelpRequests) Create(ctx context.Context, h *models.HelpRequest) error {
	err := s.session.Query(`
		INSERT INTO help_requests (id, email, subject, message, status, replies, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, h.ID, h.Email, h.Subject, h.Message, h.Status, nil, h.CreatedAt, h.UpdatedAt).WithContext(ctx).Exec()
	if err != nil {
		return err
	}

	return s.session.Query(`
		INSERT INTO help_requests_by_email (email, created_at, id) VALUES (?, ?, ?)
	`, strings.ToLower(h.Email), h.CreatedAt, h.ID).WithContext(ctx).Exec()
}

func (s *HelpRequests) GetByID(ctx context.Context, id gocql.UUID) (*models.HelpRequest, error) {
	var h models.HelpRequest
	var replies []string
	err := s.session.Query(`
		SELECT id, email, subject, message, status, replies, created_at, updated_at
		FROM help_requests WHERE id = ?
	`, id).WithContext(ctx).Scan(&h.ID, &h.Email, &h.Subject, &h.Message, &h.Status, &replies, &h.CreatedAt, &h.UpdatedAt)
	if err == gocql.ErrNotFound {
		return nil, fmt.Errorf("help request %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	for _, raw := range replies {
		var reply models.HelpReply
		if err := json.Unmarshal([]byte(raw), &reply); err != nil {
			log.Printf("⚠️ Malformed reply on help request %s: %v", id, err)
			continue
		}
		h.Replies = append(h.Replies, reply)
	}
	return &h, nil
}

func (s *HelpRequests) ListByEmail(ctx context.Context, email string) ([]models.HelpRequest, error) {
	iter := s.session.Query(`
		SELECT id FROM help_requests_by_email WHERE email = ? ORDER BY created_at DESC
	`, strings.ToLower(email)).WithContext(ctx).Iter()

	var ids []gocql.UUID
	var id gocql.UUID
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	requests := make([]models.HelpRequest, 0, len(ids))
	for _, rid := range ids {
		h, err := s.GetByID(ctx, rid)
		if err != nil {
			log.Printf("⚠️ Dangling help request index entry %s: %v", rid, err)
			continue
		}
		requests = append(requests, *h)
	}
	return requests, nil
}

func (s *HelpRequests) ListAll(ctx context.Context) ([]models.HelpRequest, error) {
	iter := s.session.Query(`SELECT id FROM help_requests`).WithContext(ctx).Iter()

	var ids []gocql.UUID
	var id gocql.UUID
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	requests := make([]models.HelpRequest, 0, len(ids))
	for _, rid := range ids {
		h, err := s.GetByID(ctx, rid)
		if err != nil {
			continue
		}
		requests = append(requests, *h)
	}
	return requests, nil
}

// AppendReply appends one reply to the thread and stamps updated_at.
func (s *HelpRequests) AppendReply(ctx context.Context, id gocql.UUID, reply models.HelpReply) error {
	raw, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	return s.session.Query(`
		UPDATE help_requests SET replies = replies + ?, updated_at = ? WHERE id = ?
	`, []string{string(raw)}, time.Now().UTC(), id).WithContext(ctx).Exec()
}

func (s *HelpRequests) SetStatus(ctx context.Context, id gocql.UUID, status string) error {
	return s.session.Query(`
		UPDATE help_requests SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now().UTC(), id).WithContext(ctx).Exec()
}
