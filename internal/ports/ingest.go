package ports

import "context"

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskProcessing TaskStatus = "processing"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Content extracted from a shared social-media link by the ingestion pipeline.
type IngestedContent struct {
	SourceType string
	SourceURL  string
	Title      string
	Text       string
	AuthorName string
}

// A place the ingestion pipeline suggested for the extracted content.
type SuggestedPlace struct {
	PlaceID   string
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	Category  string
}

// Payload of a completed ingestion task.
type TaskPayload struct {
	Content IngestedContent
	Places  []SuggestedPlace
}

// Snapshot of an ingestion task. Result is non-nil only when Status is
// TaskCompleted; Error is set only when Status is TaskFailed.
type TaskResult struct {
	Status TaskStatus
	Result *TaskPayload
	Error  string
}

// Port: the content-ingestion task endpoint, polled until completion.
type IngestClient interface {
	FetchTask(ctx context.Context, taskID string) (TaskResult, error)
}
