// ABOUTME: Tests for the background research scheduler
// ABOUTME: Verifies batch isolation, terminal status transitions, and bounded concurrency
package core

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/harper/bookscout/internal/models"
	"github.com/harper/bookscout/internal/storage"
)

// scriptedEngine fails configured titles and can gate completion for
// concurrency assertions
type scriptedEngine struct {
	mu         sync.Mutex
	failTitles map[string]bool
	gate       chan struct{}
	active     int
	maxActive  int
	started    int
}

func (e *scriptedEngine) Research(title, otherInfo string) (*models.ResearchOutput, error) {
	e.mu.Lock()
	e.started++
	e.active++
	if e.active > e.maxActive {
		e.maxActive = e.active
	}
	gate := e.gate
	fail := e.failTitles[title]
	e.mu.Unlock()

	if gate != nil {
		<-gate
	}

	e.mu.Lock()
	e.active--
	e.mu.Unlock()

	if fail {
		return nil, errors.New("scripted research failure")
	}

	record := models.BookRecord{Title: title}
	record.Normalize()
	return &models.ResearchOutput{Info: record, Sources: []models.ResearchSource{}}, nil
}

func (e *scriptedEngine) startedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started
}

func newTestScheduler(engine ResearchEngine, embedder Embedder, maxConcurrent int) (*Scheduler, *storage.TaskStore, *storage.ResearchStore) {
	kv := newMemKV()
	tasks := storage.NewTaskStore(kv)
	research := storage.NewResearchStore(kv, 4)
	return NewScheduler(engine, embedder, tasks, research, maxConcurrent), tasks, research
}

func TestScheduler_SubmitBatchReturnsWorkingTasks(t *testing.T) {
	engine := &scriptedEngine{gate: make(chan struct{})}
	scheduler, tasks, _ := newTestScheduler(engine, &fakeEmbedder{dimension: 4}, 2)

	created, err := scheduler.SubmitBatch([]ResearchRequest{
		{Title: "Book A"},
		{Title: "Book B", OtherInfo: "second edition"},
	})
	if err != nil {
		t.Fatalf("SubmitBatch failed: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("SubmitBatch returned %d tasks, want 2", len(created))
	}

	// Tasks exist in WORKING state before any research finishes
	for _, task := range created {
		if task.Status != models.StatusWorking {
			t.Errorf("task %s status = %q, want working", task.ID, task.Status)
		}
		stored, err := tasks.Get(task.ID)
		if err != nil {
			t.Errorf("task %s not persisted: %v", task.ID, err)
			continue
		}
		if stored.Status != models.StatusWorking {
			t.Errorf("persisted task %s status = %q, want working", task.ID, stored.Status)
		}
	}

	close(engine.gate)
	scheduler.Wait()
}

func TestScheduler_BatchIsolation(t *testing.T) {
	engine := &scriptedEngine{failTitles: map[string]bool{"Book B": true}}
	scheduler, tasks, research := newTestScheduler(engine, &fakeEmbedder{dimension: 4}, 2)

	created, err := scheduler.SubmitBatch([]ResearchRequest{
		{Title: "Book A"},
		{Title: "Book B"},
		{Title: "Book C"},
	})
	if err != nil {
		t.Fatalf("SubmitBatch failed: %v", err)
	}
	scheduler.Wait()

	wantStatus := map[string]models.TaskStatus{
		"Book A": models.StatusSuccess,
		"Book B": models.StatusFailure,
		"Book C": models.StatusSuccess,
	}
	for _, task := range created {
		got, err := tasks.Get(task.ID)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", task.ID, err)
		}
		if got.Status != wantStatus[task.Title] {
			t.Errorf("task %q status = %q, want %q", task.Title, got.Status, wantStatus[task.Title])
		}
	}

	// Only the two successes were persisted
	entries, err := research.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("research store has %d entries, want 2", len(entries))
	}
	for _, entry := range entries {
		if entry.ProvidedTitle == "Book B" {
			t.Error("failed task left an entry in the research store")
		}
	}
}

func TestScheduler_CreateFailureSkipsDispatch(t *testing.T) {
	// Second task-row write fails; its siblings must still run
	kv := newMemKV()
	kv.failNthTaskSet = 2
	tasks := storage.NewTaskStore(kv)
	research := storage.NewResearchStore(kv, 4)
	// Gate the engine so no status write can interleave with the creates
	engine := &scriptedEngine{gate: make(chan struct{})}
	scheduler := NewScheduler(engine, &fakeEmbedder{dimension: 4}, tasks, research, 2)

	created, err := scheduler.SubmitBatch([]ResearchRequest{
		{Title: "Book A"},
		{Title: "Book B"},
		{Title: "Book C"},
	})
	if err == nil {
		t.Error("SubmitBatch with a failing task write succeeded, want joined error")
	}
	if len(created) != 2 {
		t.Fatalf("SubmitBatch returned %d tasks, want 2", len(created))
	}
	for _, task := range created {
		if task.Title == "Book B" {
			t.Error("failed submission appears in the created tasks")
		}
	}
	close(engine.gate)
	scheduler.Wait()

	// Only the two dispatched items ran and persisted
	if engine.startedCount() != 2 {
		t.Errorf("%d research runs, want 2", engine.startedCount())
	}
	entries, _ := research.ListAll()
	if len(entries) != 2 {
		t.Errorf("research store has %d entries, want 2", len(entries))
	}
}

func TestScheduler_EmbeddingFailure(t *testing.T) {
	engine := &scriptedEngine{}
	embedder := &fakeEmbedder{dimension: 4, err: errors.New("embedding provider down")}
	scheduler, tasks, research := newTestScheduler(engine, embedder, 1)

	created, err := scheduler.SubmitBatch([]ResearchRequest{{Title: "Book A"}})
	if err != nil {
		t.Fatalf("SubmitBatch failed: %v", err)
	}
	scheduler.Wait()

	got, err := tasks.Get(created[0].ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != models.StatusFailure {
		t.Errorf("status = %q, want failure", got.Status)
	}

	entries, _ := research.ListAll()
	if len(entries) != 0 {
		t.Errorf("research store has %d entries after embedding failure, want 0", len(entries))
	}
}

func TestScheduler_DimensionMismatchFailsTask(t *testing.T) {
	// Embedder produces the wrong dimension for the store
	engine := &scriptedEngine{}
	scheduler, tasks, research := newTestScheduler(engine, &fakeEmbedder{dimension: 3}, 1)

	created, err := scheduler.SubmitBatch([]ResearchRequest{{Title: "Book A"}})
	if err != nil {
		t.Fatalf("SubmitBatch failed: %v", err)
	}
	scheduler.Wait()

	got, _ := tasks.Get(created[0].ID)
	if got.Status != models.StatusFailure {
		t.Errorf("status = %q, want failure", got.Status)
	}
	entries, _ := research.ListAll()
	if len(entries) != 0 {
		t.Errorf("research store has %d entries after dimension mismatch, want 0", len(entries))
	}
}

func TestScheduler_BoundedConcurrency(t *testing.T) {
	engine := &scriptedEngine{gate: make(chan struct{})}
	scheduler, _, _ := newTestScheduler(engine, &fakeEmbedder{dimension: 4}, 2)

	requests := make([]ResearchRequest, 6)
	for i := range requests {
		requests[i] = ResearchRequest{Title: fmt.Sprintf("Book %d", i)}
	}
	if _, err := scheduler.SubmitBatch(requests); err != nil {
		t.Fatalf("SubmitBatch failed: %v", err)
	}

	// Wait for the semaphore to fill
	deadline := time.Now().Add(2 * time.Second)
	for engine.startedCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	// Give stragglers a chance to (incorrectly) start
	time.Sleep(20 * time.Millisecond)

	engine.mu.Lock()
	started, maxActive := engine.started, engine.maxActive
	engine.mu.Unlock()
	if started != 2 {
		t.Errorf("%d tasks started while gated, want 2", started)
	}
	if maxActive > 2 {
		t.Errorf("max concurrent tasks = %d, want <= 2", maxActive)
	}

	close(engine.gate)
	scheduler.Wait()

	if engine.startedCount() != 6 {
		t.Errorf("%d tasks ran in total, want 6", engine.startedCount())
	}
}

func TestNewScheduler_ClampsConcurrency(t *testing.T) {
	engine := &scriptedEngine{}
	scheduler, tasks, _ := newTestScheduler(engine, &fakeEmbedder{dimension: 4}, 0)

	created, err := scheduler.SubmitBatch([]ResearchRequest{{Title: "Book A"}})
	if err != nil {
		t.Fatalf("SubmitBatch failed: %v", err)
	}
	scheduler.Wait()

	got, err := tasks.Get(created[0].ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != models.StatusSuccess {
		t.Errorf("status = %q, want success", got.Status)
	}
}

func TestScheduler_EmptyBatch(t *testing.T) {
	scheduler, _, _ := newTestScheduler(&scriptedEngine{}, &fakeEmbedder{dimension: 4}, 2)

	created, err := scheduler.SubmitBatch(nil)
	if err != nil {
		t.Fatalf("SubmitBatch failed: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("SubmitBatch(nil) returned %d tasks, want 0", len(created))
	}
	scheduler.Wait()
}
