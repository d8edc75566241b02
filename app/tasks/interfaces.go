package tasks

// TaskSchedulerInterface defines the interface for task scheduling
// operations. The HTTP layer uses it to submit on-demand work (trial
// matching, approval repair) to the background worker pool without waiting
// for completion.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
