package interfaces

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
	// Close releases the compressor; the scheduler is unusable afterwards.
	Close()
}
