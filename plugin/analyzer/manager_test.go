package analyzer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dictAnalyzer tags words found in its dictionary snapshot and everything else NNG.
type dictAnalyzer struct {
	generation int32
	entries    map[string]string
}

func (a *dictAnalyzer) Analyze(_ context.Context, text string) ([]Morpheme, error) {
	morphemes := []Morpheme{}
	for _, field := range strings.Fields(text) {
		pos, ok := a.entries[field]
		if !ok {
			pos = "NNG"
		}
		morphemes = append(morphemes, Morpheme{Surface: field, Pos: pos})
	}
	return morphemes, nil
}

func newDictBuilder(builds *int32) Builder {
	return func(path string) (Analyzer, error) {
		entries, err := ReadUserDict(path)
		if err != nil {
			return nil, err
		}
		analyzer := &dictAnalyzer{
			generation: atomic.AddInt32(builds, 1),
			entries:    map[string]string{},
		}
		for _, entry := range entries {
			analyzer.entries[entry.Keyword] = entry.Pos
		}
		return analyzer, nil
	}
}

func TestManagerAnalyzeWaitsForInitialize(t *testing.T) {
	ctx := context.Background()
	var builds int32
	manager := NewManager(filepath.Join(t.TempDir(), "user.dict"), newDictBuilder(&builds))

	result := make(chan []Morpheme, 1)
	go func() {
		morphemes, err := manager.Analyze(ctx, "동덕여대 배달앱")
		if err == nil {
			result <- morphemes
		}
	}()

	select {
	case <-result:
		t.Fatal("analyze returned before initialization")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, manager.Initialize(ctx))
	require.NoError(t, manager.Initialize(ctx))
	require.Equal(t, int32(1), atomic.LoadInt32(&builds))

	select {
	case morphemes := <-result:
		require.Len(t, morphemes, 2)
	case <-time.After(time.Second):
		t.Fatal("analyze did not resume after initialization")
	}
}

func TestManagerAnalyzeCanceled(t *testing.T) {
	var builds int32
	manager := NewManager(filepath.Join(t.TempDir(), "user.dict"), newDictBuilder(&builds))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := manager.Analyze(ctx, "배달앱")
	require.ErrorIs(t, err, context.Canceled)
}

func TestManagerInitializeFailure(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(filepath.Join(t.TempDir(), "user.dict"), func(string) (Analyzer, error) {
		return nil, errors.New("dictionary is corrupt")
	})

	require.Error(t, manager.Initialize(ctx))
	_, err := manager.Analyze(ctx, "배달앱")
	require.Error(t, err)
}

func TestManagerReloadRecoversFailedInitialize(t *testing.T) {
	ctx := context.Background()
	var builds int32
	build := newDictBuilder(&builds)
	var calls int32
	manager := NewManager(filepath.Join(t.TempDir(), "user.dict"), func(path string) (Analyzer, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("transient")
		}
		return build(path)
	})

	require.Error(t, manager.Initialize(ctx))
	_, err := manager.Analyze(ctx, "배달앱")
	require.Error(t, err)

	require.NoError(t, manager.Reload(ctx, []Entry{{Keyword: "배달앱", Pos: "NNP"}}))
	morphemes, err := manager.Analyze(ctx, "배달앱")
	require.NoError(t, err)
	require.Equal(t, []Morpheme{{Surface: "배달앱", Pos: "NNP"}}, morphemes)
}

func TestManagerReloadAndAddWord(t *testing.T) {
	ctx := context.Background()
	var builds int32
	path := filepath.Join(t.TempDir(), "komoran", "user.dict")
	manager := NewManager(path, newDictBuilder(&builds))
	require.NoError(t, manager.Initialize(ctx))

	morphemes, err := manager.Analyze(ctx, "동덕여대")
	require.NoError(t, err)
	require.Equal(t, "NNG", morphemes[0].Pos)

	require.NoError(t, manager.Reload(ctx, []Entry{{Keyword: "동덕여대", Pos: "NNP"}}))
	morphemes, err = manager.Analyze(ctx, "동덕여대")
	require.NoError(t, err)
	require.Equal(t, "NNP", morphemes[0].Pos)
	require.Equal(t, int32(2), atomic.LoadInt32(&builds))

	require.NoError(t, manager.AddWord(ctx, "ㅋㅋ", "NA"))
	morphemes, err = manager.Analyze(ctx, "동덕여대 ㅋㅋ")
	require.NoError(t, err)
	require.Equal(t, "NA", morphemes[1].Pos)
	require.Equal(t, int32(3), atomic.LoadInt32(&builds))

	// Unchanged line does not rebuild.
	require.NoError(t, manager.AddWord(ctx, "ㅋㅋ", "NA"))
	require.Equal(t, int32(3), atomic.LoadInt32(&builds))
}

func TestManagerConcurrentReload(t *testing.T) {
	ctx := context.Background()
	var builds int32
	manager := NewManager(filepath.Join(t.TempDir(), "user.dict"), newDictBuilder(&builds))
	require.NoError(t, manager.Initialize(ctx))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := manager.Analyze(ctx, "배달앱 주문")
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, manager.Reload(ctx, []Entry{{Keyword: "배달앱", Pos: "NNG"}}))
		}()
	}
	wg.Wait()
	require.Equal(t, int32(9), atomic.LoadInt32(&builds))
}
