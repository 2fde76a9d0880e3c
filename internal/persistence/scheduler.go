package persistence

import (
	"leadsdesk/internal/persistence/interfaces"
	"leadsdesk/internal/providers"
	"leadsdesk/internal/services"
	"leadsdesk/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.SlotServiceInterface
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
	savedRev    uint64
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		if err := s.save(false); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		}
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Close() {
	s.Stop()
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	s.fileManager.Close()
}

func (s *Scheduler) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	s.savedRev = s.service.Revision()
	s.logger.Infof(providers.TypeApp, "Restored %d slots from %s", s.service.Len(), s.config.Persistence.FilePath)
	return nil
}

func (s *Scheduler) Persist() error {
	s.logger.Infof(providers.TypeApp, "Persisting slots to file...")
	err := s.save(true)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

// save writes the snapshot when slots changed since the last save, or always when forced.
func (s *Scheduler) save(force bool) error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	rev := s.service.Revision()
	if !force && rev == s.savedRev {
		return nil
	}

	start := time.Now()
	if err := s.fileManager.SaveToFile(s.config.Persistence.FilePath); err != nil {
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.savedRev = rev
	s.logger.Debugf(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.SlotServiceInterface, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
