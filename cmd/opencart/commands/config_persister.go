package commands

import (
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// ConfigPersister writes login state back to the CLI config.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// SaveLogin stores what a login established for store name, creating the
// store entry when it does not exist. The first store saved becomes the
// current one.
func (p *ConfigPersister) SaveLogin(name string, store *StoreConfig, session opencart.SessionState, username string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	saved, exists := config.Stores[name]
	if !exists {
		saved = &StoreConfig{}
		config.Stores[name] = saved
	}

	saved.URL = store.URL
	saved.SessionFile = store.SessionFile
	saved.Token = session.Token()
	saved.APIVersion = session.APIVersion().String()
	saved.Username = username

	now := time.Now().UTC()
	saved.LastLogin = &now

	if config.CurrentStore == "" {
		config.CurrentStore = name
	}

	err := saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save login for store '%s': %w", name, err)
	}

	return nil
}

// ClearLogin forgets the token, version and username of store name.
func (p *ConfigPersister) ClearLogin(name string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()

	store, err := findStore(config, name)
	if err != nil {
		return err
	}

	store.Token = ""
	store.APIVersion = ""
	store.Username = ""
	store.LastLogin = nil

	return saveConfigStruct(config)
}
