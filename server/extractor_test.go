package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/esummer9/mykeyword/plugin/analyzer"
	"github.com/esummer9/mykeyword/store"
	"github.com/esummer9/mykeyword/test"
)

// gatedAnalyzer holds the analysis of one title until the gate is closed.
type gatedAnalyzer struct {
	analyzer.Analyzer
	title   string
	entered chan struct{}
	gate    chan struct{}
}

func (a *gatedAnalyzer) Analyze(ctx context.Context, text string) ([]analyzer.Morpheme, error) {
	if text == a.title {
		close(a.entered)
		<-a.gate
	}
	return a.Analyzer.Analyze(ctx, text)
}

func TestExtractSkipsStaleTitle(t *testing.T) {
	ctx := testContext(t)
	gated := &gatedAnalyzer{
		title:   "느린 제목",
		entered: make(chan struct{}),
		gate:    make(chan struct{}),
	}
	s, err := newServer(ctx, test.GetTestingProfile(t), func(path string) (analyzer.Analyzer, error) {
		inner, err := newFieldAnalyzer(path)
		if err != nil {
			return nil, err
		}
		gated.Analyzer = inner
		return gated, nil
	})
	require.NoError(t, err)
	s.Prepare(ctx)
	<-s.Analyzer.Ready()
	t.Cleanup(func() {
		s.db.Close()
	})

	memo, err := s.Store.CreateMemo(ctx, &store.MemoMessage{Title: "느린 제목"})
	require.NoError(t, err)
	s.Extractor.Dispatch(memo.ID)

	select {
	case <-gated.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatched extraction did not start")
	}

	title, status := "새 메모", store.Raw
	_, err = s.Store.UpdateMemo(ctx, &store.UpdateMemoMessage{ID: memo.ID, Title: &title, Status: &status})
	require.NoError(t, err)
	_, err = s.Extractor.Extract(ctx, memo.ID)
	require.NoError(t, err)

	close(gated.gate)
	s.Extractor.Wait()

	found, err := s.Store.GetMemo(ctx, &store.FindMemoMessage{ID: &memo.ID})
	require.NoError(t, err)
	require.Equal(t, "새 메모", found.Title)
	require.Equal(t, store.Analyzed, found.Status)
	keywords, err := s.Store.ListMemoKeywords(ctx, memo.ID)
	require.NoError(t, err)
	texts := []string{}
	for _, keyword := range keywords {
		texts = append(texts, keyword.Keyword)
	}
	require.Equal(t, []string{"새", "메모"}, texts)
}
