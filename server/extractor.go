package server

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/esummer9/mykeyword/common"
	"github.com/esummer9/mykeyword/common/log"
	"github.com/esummer9/mykeyword/plugin/analyzer"
	"github.com/esummer9/mykeyword/store"
)

// dispatchTimeout bounds a background extraction.
const dispatchTimeout = 10 * time.Second

// KeywordExtractor turns memo titles into keyword rows.
type KeywordExtractor struct {
	store    *store.Store
	analyzer analyzer.Analyzer
	metrics  *Metrics

	wg sync.WaitGroup
}

func NewKeywordExtractor(store *store.Store, analyzer analyzer.Analyzer, metrics *Metrics) *KeywordExtractor {
	return &KeywordExtractor{
		store:    store,
		analyzer: analyzer,
		metrics:  metrics,
	}
}

// Extract analyzes the memo title and replaces the memo's keywords with the
// result, marking the memo analyzed.
func (e *KeywordExtractor) Extract(ctx context.Context, memoID int) (keywordList []*store.KeywordMessage, err error) {
	start := time.Now()
	defer func() {
		result := "success"
		if common.ErrorCode(err) == common.Conflict {
			result = "stale"
		} else if err != nil {
			result = "failure"
		}
		e.metrics.Extraction.WithLabelValues(result).Inc()
		e.metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	}()

	memo, err := e.store.GetMemo(ctx, &store.FindMemoMessage{ID: &memoID})
	if err != nil {
		return nil, err
	}

	keywords := []string{}
	if strings.TrimSpace(memo.Title) != "" {
		morphemes, err := e.analyzer.Analyze(ctx, memo.Title)
		if err != nil {
			return nil, err
		}
		keywords = analyzer.Keywords(morphemes)
	}

	// A newer title written meanwhile has its own extraction pending.
	return e.store.ReplaceTitleKeywords(ctx, memoID, memo.Title, keywords)
}

// Dispatch runs Extract off the request path. Failures are only logged; the
// memo stays raw and is picked up by the next reprocess.
func (e *KeywordExtractor) Dispatch(memoID int) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		keywordList, err := e.Extract(ctx, memoID)
		if common.ErrorCode(err) == common.Conflict {
			log.Debug("skipped keywords of a stale title", zap.Int("memoID", memoID))
			return
		}
		if err != nil {
			log.Warn("failed to extract keywords", zap.Int("memoID", memoID), zap.Error(err))
			return
		}
		log.Debug("keywords extracted", zap.Int("memoID", memoID), zap.Int("count", len(keywordList)))
	}()
}

// DispatchReprocess runs Reprocess off the request path.
func (e *KeywordExtractor) DispatchReprocess() {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if _, err := e.Reprocess(context.Background()); err != nil {
			log.Warn("failed to reprocess raw memos", zap.Error(err))
		}
	}()
}

// Reprocess extracts keywords for every live raw memo and returns how many succeeded.
func (e *KeywordExtractor) Reprocess(ctx context.Context) (int, error) {
	status := store.Raw
	memoList, err := e.store.ListMemos(ctx, &store.FindMemoMessage{Status: &status})
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, memo := range memoList {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if _, err := e.Extract(ctx, memo.ID); err != nil {
			log.Warn("failed to reprocess memo", zap.Int("memoID", memo.ID), zap.Error(err))
			continue
		}
		processed++
	}
	log.Info("reprocessed raw memos", zap.Int("raw", len(memoList)), zap.Int("processed", processed))
	return processed, nil
}

// Wait blocks until every dispatched extraction has finished.
func (e *KeywordExtractor) Wait() {
	e.wg.Wait()
}
