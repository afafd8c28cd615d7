package configwatcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/Shibo14/ielts-mock/internal/config"
	"github.com/Shibo14/ielts-mock/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceDelay coalesces the burst of writes editors emit per save.
const debounceDelay = 1 * time.Second

type ConfigReloader func(cfg interface{})

// WatchConfig blocks, reloading the file after every settled write and
// handing the fresh config to reloader.
func WatchConfig(configPath string, cfg interface{}, reloader ConfigReloader) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal("Failed to create config watcher:", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		log.Fatal("Failed to get absolute path:", err)
	}

	if err := watcher.Add(absPath); err != nil {
		log.Fatal("Failed to watch config file:", err)
	}

	var mu sync.Mutex
	var pending *time.Timer

	reload := func() {
		dirPath := filepath.Dir(configPath)
		newCfg, err := config.LoadConfig(dirPath)
		if err != nil {
			logger.Log.Error("Failed to reload config", zap.Error(err))
			return
		}
		reloader(newCfg)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				// editors fire several writes per save, debounce them
				mu.Lock()
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(debounceDelay, reload)
				mu.Unlock()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
