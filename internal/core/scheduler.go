// ABOUTME: Scheduler fans research requests out to bounded concurrent background tasks
// ABOUTME: Task rows are created before dispatch; failures surface only through task status
package core

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/harper/bookscout/internal/models"
	"github.com/harper/bookscout/internal/storage"
)

// ResearchRequest identifies one book to research
type ResearchRequest struct {
	Title     string `json:"title"`
	OtherInfo string `json:"other_info,omitempty"`
}

// ResearchEngine is what the scheduler drives per task; satisfied by Researcher
type ResearchEngine interface {
	Research(title, otherInfo string) (*models.ResearchOutput, error)
}

// Scheduler runs research tasks in the background. Concurrency is capped by a
// counting semaphore so a large batch cannot flood the LLM provider.
type Scheduler struct {
	engine   ResearchEngine
	embedder Embedder
	tasks    *storage.TaskStore
	research *storage.ResearchStore
	sem      chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a Scheduler with the given concurrency cap
func NewScheduler(engine ResearchEngine, embedder Embedder, tasks *storage.TaskStore, research *storage.ResearchStore, maxConcurrent int) *Scheduler {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Scheduler{
		engine:   engine,
		embedder: embedder,
		tasks:    tasks,
		research: research,
		sem:      make(chan struct{}, maxConcurrent),
	}
}

// SubmitBatch creates one WORKING task per request and dispatches each to run
// independently, returning before any research completes. Items fail
// independently: a task-row creation failure skips that item's dispatch and is
// reported in the joined error, but siblings proceed.
func (s *Scheduler) SubmitBatch(requests []ResearchRequest) ([]models.TaskRecord, error) {
	created := []models.TaskRecord{}
	var errs []error

	for _, req := range requests {
		task, err := s.tasks.Create(req.Title, req.OtherInfo)
		if err != nil {
			errs = append(errs, fmt.Errorf("creating task for %q: %w", req.Title, err))
			continue
		}
		created = append(created, *task)

		s.wg.Add(1)
		go func(req ResearchRequest, taskID string) {
			defer s.wg.Done()
			s.sem <- struct{}{}
			defer func() { <-s.sem }()
			s.runTask(req, taskID)
		}(req, task.ID)
	}

	return created, errors.Join(errs...)
}

// runTask is the per-task unit: research, embed, persist, then mark terminal
// status. Nothing is inserted into the research store on failure, and a
// failure to even update status is logged only; the task stays WORKING.
func (s *Scheduler) runTask(req ResearchRequest, taskID string) {
	output, err := s.engine.Research(req.Title, req.OtherInfo)
	if err != nil {
		s.failTask(taskID, req.Title, err)
		return
	}

	embedding, err := s.embedder.GenerateEmbedding(output.Info.AsText())
	if err != nil {
		s.failTask(taskID, req.Title, err)
		return
	}

	if _, err := s.research.Insert(req.Title, req.OtherInfo, *output, embedding); err != nil {
		s.failTask(taskID, req.Title, err)
		return
	}

	if err := s.tasks.UpdateStatus(taskID, models.StatusSuccess); err != nil {
		log.Printf("[Scheduler] Task %s finished but status update failed: %v", taskID, err)
	}
}

func (s *Scheduler) failTask(taskID, title string, cause error) {
	log.Printf("[Scheduler] Research for %q failed: %v", title, cause)
	if err := s.tasks.UpdateStatus(taskID, models.StatusFailure); err != nil {
		log.Printf("[Scheduler] Task %s failed and status update also failed: %v", taskID, err)
	}
}

// Wait blocks until all dispatched tasks have finished, for clean shutdown
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
