package persistence

import (
	"fmt"
	"leadsdesk/internal/models"
	"leadsdesk/internal/persistence/interfaces"
	"leadsdesk/internal/providers"
	"leadsdesk/internal/services"
	"os"

	json "github.com/goccy/go-json"
)

type FileManager struct {
	service    services.SlotServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.SlotServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	storage := f.service.GetSnapshot()

	jsonData, err := json.Marshal(storage)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var storage models.Storage
	if err := json.Unmarshal(decompressedData, &storage); err == nil && storage.Version > 0 {
		if storage.Version > models.StorageVersion {
			return fmt.Errorf("unsupported storage version %d", storage.Version)
		}
		f.service.PutSlots(storage.Slots)
		return nil
	}

	// Flat layout: slot name -> value at the top level, as exported from a browser profile
	f.logger.Warnf(providers.TypeApp, "Unversioned storage found, try to migrate from flat format")
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(decompressedData, &flat); err != nil {
		f.logger.Warnf(providers.TypeApp, "Migration failed")
		return err
	}
	slots := make(map[string]json.RawMessage, len(flat))
	for k, v := range flat {
		if f.service.Allowed(k) {
			slots[k] = v
		}
	}
	f.service.PutSlots(slots)
	f.logger.Warnf(providers.TypeApp, "Migration from flat format successful, %d slots restored", len(slots))
	return nil
}
