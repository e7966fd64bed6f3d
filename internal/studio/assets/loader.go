package assets

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ============================================================
// Texture Loader
// ============================================================

// Status — явное состояние текстуры логотипа.
type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Loader разрешает ссылки логотипов: загруженные файлы сразу,
// внешние URL асинхронно, по одной горутине на новую ссылку.
// Без ретраев и без таймаута сверх дедлайна клиента — упавшая
// загрузка оставляет оверлей в состоянии failed.
type Loader struct {
	mu       sync.Mutex
	statuses map[string]Status

	logoDir    string
	httpClient *http.Client
}

func NewLoader(logoDir string) *Loader {
	return &Loader{
		statuses:   make(map[string]Status),
		logoDir:    logoDir,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Ensure возвращает текущее состояние ссылки, при первой встрече
// запуская её разрешение.
func (l *Loader) Ensure(ref string) Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	if status, ok := l.statuses[ref]; ok {
		return status
	}

	// Загруженный файл проверяется на месте.
	if name, ok := strings.CutPrefix(ref, "upload:"); ok {
		status := StatusFailed
		if _, err := os.Stat(filepath.Join(l.logoDir, filepath.Base(name))); err == nil {
			status = StatusReady
		}
		l.statuses[ref] = status
		return status
	}

	l.statuses[ref] = StatusPending
	go l.fetch(ref)
	return StatusPending
}

// Status возвращает состояние без запуска загрузки.
func (l *Loader) Status(ref string) (Status, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	status, ok := l.statuses[ref]
	return status, ok
}

func (l *Loader) fetch(ref string) {
	resp, err := l.httpClient.Get(ref)
	if err != nil {
		log.Printf("[ASSETS] fetch %s: %v", ref, err)
		l.set(ref, StatusFailed)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		l.set(ref, StatusFailed)
		return
	}
	l.set(ref, StatusReady)
}

func (l *Loader) set(ref string, status Status) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.statuses[ref] = status
}
