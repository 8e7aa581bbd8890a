package tasks

import (
	"context"
	"testing"

	"github.com/forgestack/feature_layer/internal/app/domain/task"
	"github.com/forgestack/feature_layer/internal/app/storage/memory"
)

func TestService(t *testing.T) {
	svc := New(memory.New(), nil)

	created, err := svc.Create(context.Background(), "write report", "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != task.StatusOpen {
		t.Fatalf("expected default status open, got %s", created.Status)
	}

	doing := task.StatusDoing
	updated, err := svc.Update(context.Background(), created.ID, nil, &doing, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != task.StatusDoing {
		t.Fatalf("status not updated")
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 task, got %d", len(list))
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc := New(memory.New(), nil)
	if _, err := svc.Create(context.Background(), "x", task.Status("archived"), nil); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc := New(memory.New(), nil)
	created, err := svc.Create(context.Background(), "x", task.StatusOpen, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bogus := task.Status("archived")
	if _, err := svc.Update(context.Background(), created.ID, nil, &bogus, nil); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
}
