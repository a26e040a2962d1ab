package service

import (
	"context"
	"errors"
	"testing"

	"tutor_backend/internal/model"
	"tutor_backend/internal/repository"
	"tutor_backend/internal/util"
	"tutor_backend/pkg/database"
)

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	db := newTestDB(t)
	if err := database.SeedCatalog(db); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	// nil Redis client: cache layer degrades to direct reads.
	return NewCatalogService(repository.NewQuestionRepository(db), nil)
}

func TestTopics(t *testing.T) {
	svc := newCatalogService(t)

	topics, err := svc.Topics(context.Background(), "Math", model.P3)
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	want := map[string]bool{"Addition": true, "Subtraction": true}
	if len(topics) != len(want) {
		t.Fatalf("Math/P3 topics = %v, want Addition and Subtraction", topics)
	}
	for _, name := range topics {
		if !want[name] {
			t.Errorf("unexpected topic %q", name)
		}
	}

	empty, err := svc.Topics(context.Background(), "Science", model.P3)
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Science/P3 should have no topics, got %v", empty)
	}
}

func TestRandomQuestion(t *testing.T) {
	svc := newCatalogService(t)

	q, err := svc.RandomQuestion("Math", model.P4, "Fractions")
	if err != nil {
		t.Fatalf("RandomQuestion: %v", err)
	}
	if q.Topic != "Fractions" || q.Level != model.P4 {
		t.Errorf("filter not honored: got %s/%s", q.Level, q.Topic)
	}
	if q.CorrectAnswer == "" || len(q.Options) == 0 {
		t.Errorf("incomplete question: %+v", q)
	}

	if _, err := svc.RandomQuestion("Math", model.P3, "Fractions"); !errors.Is(err, util.ErrNoQuestions) {
		t.Errorf("empty filter: got %v, want ErrNoQuestions", err)
	}
}

func TestFlagQuestion(t *testing.T) {
	svc := newCatalogService(t)

	qs, err := svc.ListQuestions(repository.QuestionFilter{Subject: "Math"}, 1)
	if err != nil || len(qs) == 0 {
		t.Fatalf("ListQuestions: %v (%d rows)", err, len(qs))
	}
	id := qs[0].ID

	if err := svc.FlagQuestion(id); err != nil {
		t.Fatalf("FlagQuestion: %v", err)
	}
	if err := svc.FlagQuestion(id); err != nil {
		t.Fatalf("FlagQuestion again: %v", err)
	}

	qs, err = svc.ListQuestions(repository.QuestionFilter{Subject: "Math"}, 1)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if qs[0].FlagCount != 2 {
		t.Errorf("flag_count = %d, want 2", qs[0].FlagCount)
	}

	if err := svc.FlagQuestion(99999); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Errorf("missing question: got %v, want ErrQuestionNotFound", err)
	}
}

func TestListQuestions_Cap(t *testing.T) {
	svc := newCatalogService(t)

	qs, err := svc.ListQuestions(repository.QuestionFilter{}, 3)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(qs) > 3 {
		t.Errorf("limit ignored: got %d rows", len(qs))
	}
}
