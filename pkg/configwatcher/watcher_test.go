package configwatcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Shibo14/ielts-mock/internal/config"
	"github.com/Shibo14/ielts-mock/pkg/logger"

	"go.uber.org/zap"
)

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	logger.Log = zap.NewNop()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	write := func(port string) {
		t.Helper()
		body := "server:\n" +
			"  port: \"" + port + "\"\n" +
			"  mode: debug\n" +
			"storage:\n" +
			"  type: local\n" +
			"  local_path: \"" + filepath.Join(dir, "uploads") + "\"\n"
		if err := os.WriteFile(cfgPath, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("8080")

	reloaded := make(chan *config.Config, 4)
	go WatchConfig(cfgPath, nil, func(c interface{}) {
		if cfg, ok := c.(*config.Config); ok {
			reloaded <- cfg
		}
	})

	// The watcher registers asynchronously, so keep rewriting the file
	// until a write lands inside its window.
	rewrite := time.NewTicker(500 * time.Millisecond)
	defer rewrite.Stop()
	deadline := time.After(10 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.Server.Port == "9090" {
				return
			}
		case <-rewrite.C:
			write("9090")
		case <-deadline:
			t.Fatal("config write never triggered a reload")
		}
	}
}
