package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/esummer9/mykeyword/api"
	"github.com/esummer9/mykeyword/store"
)

// maxPageSize caps the limit query parameter.
const maxPageSize = 200

func (s *Server) registerMemoRoutes(g *echo.Group) {
	g.POST("/memo", func(c echo.Context) error {
		ctx := c.Request().Context()
		createMemoRequest := &api.CreateMemoRequest{}
		if err := json.NewDecoder(c.Request().Body).Decode(createMemoRequest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Malformatted post memo request").SetInternal(err)
		}
		if err := c.Validate(createMemoRequest); err != nil {
			return err
		}

		memoMessage, err := s.createMemo(ctx, convertCreateMemoRequestToMemoMessage(createMemoRequest), sourceAPI)
		if err != nil {
			return newHTTPError(err, "Failed to create memo")
		}
		return c.JSON(http.StatusOK, composeResponse(memoMessage.ToAPI()))
	})

	g.GET("/memo", func(c echo.Context) error {
		ctx := c.Request().Context()
		findMemoMessage, err := parseFindMemoQuery(c, time.Now())
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		}

		memoMessageList, err := s.Store.ListMemos(ctx, findMemoMessage)
		if err != nil {
			return newHTTPError(err, "Failed to fetch memo list")
		}
		memoResponseList := []*api.Memo{}
		for _, memoMessage := range memoMessageList {
			memoResponseList = append(memoResponseList, memoMessage.ToAPI())
		}
		return c.JSON(http.StatusOK, composeResponse(memoResponseList))
	})

	g.GET("/memo/recent", func(c echo.Context) error {
		ctx := c.Request().Context()
		limit := 0
		if v := c.QueryParam("limit"); v != "" {
			l, err := strconv.Atoi(v)
			if err != nil || l < 0 {
				return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid limit %q", v))
			}
			limit = l
		}

		memoMessageList, err := s.Store.ListRecentMemos(ctx, limit)
		if err != nil {
			return newHTTPError(err, "Failed to fetch recent memos")
		}
		memoResponseList := []*api.Memo{}
		for _, memoMessage := range memoMessageList {
			memoResponseList = append(memoResponseList, memoMessage.ToAPI())
		}
		return c.JSON(http.StatusOK, composeResponse(memoResponseList))
	})

	g.GET("/memo/:memoId", func(c echo.Context) error {
		ctx := c.Request().Context()
		memoID, err := strconv.Atoi(c.Param("memoId"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("ID is not a number: %s", c.Param("memoId"))).SetInternal(err)
		}

		memoMessage, err := s.Store.GetMemo(ctx, &store.FindMemoMessage{ID: &memoID})
		if err != nil {
			return newHTTPError(err, fmt.Sprintf("Failed to find memo by ID: %v", memoID))
		}
		keywordList, err := s.Store.ListMemoKeywords(ctx, memoID)
		if err != nil {
			return newHTTPError(err, "Failed to fetch memo keywords")
		}

		memoResponse := memoMessage.ToAPI()
		for _, keyword := range keywordList {
			memoResponse.Keywords = append(memoResponse.Keywords, keyword.Keyword)
		}
		return c.JSON(http.StatusOK, composeResponse(memoResponse))
	})

	g.PATCH("/memo/:memoId", func(c echo.Context) error {
		ctx := c.Request().Context()
		memoID, err := strconv.Atoi(c.Param("memoId"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("ID is not a number: %s", c.Param("memoId"))).SetInternal(err)
		}

		patchMemoRequest := &api.PatchMemoRequest{
			ID: memoID,
		}
		if err := json.NewDecoder(c.Request().Body).Decode(patchMemoRequest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Malformatted patch memo request").SetInternal(err)
		}
		if err := c.Validate(patchMemoRequest); err != nil {
			return err
		}

		updateMemoMessage := convertPatchMemoRequestToUpdateMemoMessage(patchMemoRequest)
		// Any edit invalidates the extracted keywords.
		status := store.Raw
		updateMemoMessage.Status = &status
		memoMessage, err := s.Store.UpdateMemo(ctx, updateMemoMessage)
		if err != nil {
			return newHTTPError(err, "Failed to patch memo")
		}

		s.Extractor.Dispatch(memoMessage.ID)
		return c.JSON(http.StatusOK, composeResponse(memoMessage.ToAPI()))
	})

	g.DELETE("/memo/:memoId", func(c echo.Context) error {
		ctx := c.Request().Context()
		memoID, err := strconv.Atoi(c.Param("memoId"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("ID is not a number: %s", c.Param("memoId"))).SetInternal(err)
		}

		if err := s.Store.DeleteMemo(ctx, &store.DeleteMemoMessage{ID: memoID}); err != nil {
			return newHTTPError(err, fmt.Sprintf("Failed to delete memo ID: %v", memoID))
		}
		return c.JSON(http.StatusOK, true)
	})

	g.POST("/memo/:memoId/duplicate", func(c echo.Context) error {
		ctx := c.Request().Context()
		memoID, err := strconv.Atoi(c.Param("memoId"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("ID is not a number: %s", c.Param("memoId"))).SetInternal(err)
		}

		memoMessage, err := s.Store.DuplicateMemo(ctx, memoID)
		if err != nil {
			return newHTTPError(err, fmt.Sprintf("Failed to duplicate memo ID: %v", memoID))
		}
		s.metrics.MemoCreated.WithLabelValues(sourceAPI).Inc()
		s.Extractor.Dispatch(memoMessage.ID)
		return c.JSON(http.StatusOK, composeResponse(memoMessage.ToAPI()))
	})

	g.GET("/memo/:memoId/keyword", func(c echo.Context) error {
		ctx := c.Request().Context()
		memoID, err := strconv.Atoi(c.Param("memoId"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("ID is not a number: %s", c.Param("memoId"))).SetInternal(err)
		}

		if _, err := s.Store.GetMemo(ctx, &store.FindMemoMessage{ID: &memoID}); err != nil {
			return newHTTPError(err, fmt.Sprintf("Failed to find memo by ID: %v", memoID))
		}
		keywordList, err := s.Store.ListMemoKeywords(ctx, memoID)
		if err != nil {
			return newHTTPError(err, "Failed to fetch memo keywords")
		}
		return c.JSON(http.StatusOK, composeResponse(convertKeywordMessageList(keywordList)))
	})

	g.POST("/memo/:memoId/keyword", func(c echo.Context) error {
		ctx := c.Request().Context()
		memoID, err := strconv.Atoi(c.Param("memoId"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("ID is not a number: %s", c.Param("memoId"))).SetInternal(err)
		}

		keywordList, err := s.Extractor.Extract(ctx, memoID)
		if err != nil {
			return newHTTPError(err, fmt.Sprintf("Failed to extract keywords of memo ID: %v", memoID))
		}
		return c.JSON(http.StatusOK, composeResponse(convertKeywordMessageList(keywordList)))
	})
}

// createMemo stores a memo and dispatches its keyword extraction.
func (s *Server) createMemo(ctx context.Context, create *store.MemoMessage, source string) (*store.MemoMessage, error) {
	memoMessage, err := s.Store.CreateMemo(ctx, create)
	if err != nil {
		return nil, err
	}
	s.metrics.MemoCreated.WithLabelValues(source).Inc()
	s.Extractor.Dispatch(memoMessage.ID)
	return memoMessage, nil
}

func parseFindMemoQuery(c echo.Context, now time.Time) (*store.FindMemoMessage, error) {
	find := &store.FindMemoMessage{}
	if v := c.QueryParam("category"); v != "" {
		find.Category = &v
	}
	if v := c.QueryParam("status"); v != "" {
		status := store.MemoStatus(strings.ToUpper(v))
		if status != store.Raw && status != store.Analyzed {
			return nil, fmt.Errorf("invalid status %q", v)
		}
		find.Status = &status
	}
	if v := c.QueryParam("keyword"); v != "" {
		find.Keyword = &v
	}
	if v := strings.TrimSpace(c.QueryParam("q")); v != "" {
		find.ContentSearch = strings.Fields(v)
	}

	period, err := api.ParsePeriod(c.QueryParam("period"))
	if err != nil {
		return nil, err
	}
	find.RegTsAfter = period.Since(now)

	limit := api.DefaultPageSize
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l <= 0 {
			return nil, fmt.Errorf("invalid limit %q", v)
		}
		limit = l
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	find.Limit = &limit

	if v := c.QueryParam("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("invalid offset %q", v)
		}
		find.Offset = &offset
	}
	return find, nil
}

func convertCreateMemoRequestToMemoMessage(memoCreate *api.CreateMemoRequest) *store.MemoMessage {
	return &store.MemoMessage{
		RegTs:        memoCreate.RegDate,
		Category:     strings.TrimSpace(memoCreate.Category),
		Title:        memoCreate.Title,
		Meaning:      memoCreate.Meaning,
		URL:          memoCreate.URL,
		Lat:          memoCreate.Lat,
		Lon:          memoCreate.Lon,
		Address:      memoCreate.Address,
		Sido:         memoCreate.Sido,
		Sigungu:      memoCreate.Sigungu,
		Eupmyeondong: memoCreate.Eupmyeondong,
	}
}

func convertPatchMemoRequestToUpdateMemoMessage(patch *api.PatchMemoRequest) *store.UpdateMemoMessage {
	return &store.UpdateMemoMessage{
		ID:           patch.ID,
		RegTs:        patch.RegDate,
		Category:     patch.Category,
		Title:        patch.Title,
		Meaning:      patch.Meaning,
		URL:          patch.URL,
		Lat:          patch.Lat,
		Lon:          patch.Lon,
		Address:      patch.Address,
		Sido:         patch.Sido,
		Sigungu:      patch.Sigungu,
		Eupmyeondong: patch.Eupmyeondong,
	}
}

func convertKeywordMessageList(keywordList []*store.KeywordMessage) []*api.MemoKeyword {
	list := []*api.MemoKeyword{}
	for _, keyword := range keywordList {
		list = append(list, &api.MemoKeyword{
			ID:      keyword.ID,
			MemoID:  keyword.MemoID,
			Keyword: keyword.Keyword,
		})
	}
	return list
}
