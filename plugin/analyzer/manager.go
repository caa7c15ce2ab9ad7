package analyzer

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/esummer9/mykeyword/common/log"
)

// Manager owns the live analyzer. Readers take the current instance under a
// read lock, reloads build a new instance and swap it in.
type Manager struct {
	userDictPath string
	build        Builder

	initOnce sync.Once
	initErr  error
	ready    chan struct{}

	mu      sync.RWMutex
	current Analyzer

	// reloadMu serializes dictionary rewrites and rebuilds.
	reloadMu sync.Mutex
}

func NewManager(userDictPath string, build Builder) *Manager {
	return &Manager{
		userDictPath: userDictPath,
		build:        build,
		ready:        make(chan struct{}),
	}
}

// UserDictPath returns the dictionary file the analyzer is built from.
func (m *Manager) UserDictPath() string {
	return m.userDictPath
}

// Initialize builds the first analyzer. Only the first call does any work;
// Analyze blocks until it has finished.
func (m *Manager) Initialize(ctx context.Context) error {
	m.initOnce.Do(func() {
		defer close(m.ready)
		m.reloadMu.Lock()
		defer m.reloadMu.Unlock()

		if _, err := os.Stat(m.userDictPath); os.IsNotExist(err) {
			if err := WriteUserDict(m.userDictPath, nil); err != nil {
				m.initErr = err
				return
			}
		}
		if err := ctx.Err(); err != nil {
			m.initErr = err
			return
		}

		start := time.Now()
		analyzer, err := m.build(m.userDictPath)
		if err != nil {
			m.initErr = errors.Wrap(err, "failed to build analyzer")
			return
		}
		m.mu.Lock()
		m.current = analyzer
		m.mu.Unlock()
		log.Info("analyzer initialized", zap.String("userDict", m.userDictPath), zap.Duration("elapsed", time.Since(start)))
	})
	return m.initErr
}

// Ready is closed once initialization has finished, successfully or not.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

func (m *Manager) Analyze(ctx context.Context, text string) ([]Morpheme, error) {
	select {
	case <-m.ready:
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "analyzer is not ready")
	}

	m.mu.RLock()
	analyzer := m.current
	m.mu.RUnlock()
	// A failed first build is recovered by any later successful reload.
	if analyzer == nil {
		if m.initErr != nil {
			return nil, m.initErr
		}
		return nil, errors.New("analyzer is not built")
	}
	return analyzer.Analyze(ctx, text)
}

// Reload rewrites the dictionary file with entries and swaps in a new analyzer.
func (m *Manager) Reload(ctx context.Context, entries []Entry) error {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	if err := WriteUserDict(m.userDictPath, entries); err != nil {
		return err
	}
	return m.rebuild(ctx)
}

// AddWord adds or retags a single dictionary line and reloads when the file changed.
func (m *Manager) AddWord(ctx context.Context, word, pos string) error {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	changed, err := UpsertEntry(m.userDictPath, Entry{Keyword: word, Pos: pos})
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return m.rebuild(ctx)
}

func (m *Manager) rebuild(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	analyzer, err := m.build(m.userDictPath)
	if err != nil {
		return errors.Wrap(err, "failed to rebuild analyzer")
	}

	m.mu.Lock()
	m.current = analyzer
	m.mu.Unlock()
	log.Info("analyzer reloaded", zap.String("userDict", m.userDictPath), zap.Duration("elapsed", time.Since(start)))
	return nil
}
