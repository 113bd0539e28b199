package notification

import (
	"context"
	"testing"

	"unityconsult/models"
)

type fakeNotificationRepo struct {
	notifications map[string]*models.Notification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	r.notifications[n.ID] = n
	return nil
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, role, userID string) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.Role == role && n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	var updated int64
	for _, id := range ids {
		if n, ok := r.notifications[id]; ok && n.UserID == userID {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func TestMarkReadScopedToOwner(t *testing.T) {
	repo := &fakeNotificationRepo{notifications: map[string]*models.Notification{
		"n1": {ID: "n1", UserID: "user-a", Role: models.RoleClient},
		"n2": {ID: "n2", UserID: "user-a", Role: models.RoleClient},
		"n3": {ID: "n3", UserID: "user-b", Role: models.RoleClient},
	}}
	svc := &DefaultNotificationService{Repo: repo}
	ctx := context.Background()

	// Marking a mix of own and foreign ids only touches the caller's.
	updated, err := svc.MarkRead(ctx, "user-a", []string{"n1", "n3"})
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
	if !repo.notifications["n1"].IsRead {
		t.Error("n1 must be marked read")
	}
	if repo.notifications["n3"].IsRead {
		t.Error("another user's notification must not be touched")
	}

	updated, err = svc.MarkRead(ctx, "user-b", []string{"n2"})
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if updated != 0 || repo.notifications["n2"].IsRead {
		t.Errorf("cross-user mark must be a no-op, updated = %d", updated)
	}

	if updated, _ := svc.MarkRead(ctx, "user-a", nil); updated != 0 {
		t.Errorf("empty id list must short-circuit, updated = %d", updated)
	}
}
