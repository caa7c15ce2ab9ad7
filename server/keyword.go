package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/esummer9/mykeyword/api"
	"github.com/esummer9/mykeyword/store"
)

const dateLayout = "2006-01-02"

// pathParam returns the decoded path parameter. echo routes on the decoded
// path unless the request carries a distinct raw path.
func pathParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}

func (s *Server) registerKeywordRoutes(g *echo.Group) {
	g.GET("/keyword/trending", func(c echo.Context) error {
		ctx := c.Request().Context()
		limit, err := parseLimit(c.QueryParam("limit"), store.DefaultTrendingLimit)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		}

		keywordList, err := s.Store.ListTrendingKeywords(ctx, limit)
		if err != nil {
			return newHTTPError(err, "Failed to fetch trending keywords")
		}
		return c.JSON(http.StatusOK, composeResponse(convertKeywordCountList(keywordList)))
	})

	g.GET("/keyword", func(c echo.Context) error {
		ctx := c.Request().Context()
		find, err := s.parseFindKeywordQuery(c, time.Now())
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		}

		keywordList, err := s.Store.ListKeywords(ctx, find)
		if err != nil {
			return newHTTPError(err, "Failed to fetch keywords")
		}
		return c.JSON(http.StatusOK, composeResponse(convertKeywordCountList(keywordList)))
	})

	g.GET("/keyword/:keyword/memo", func(c echo.Context) error {
		ctx := c.Request().Context()
		keyword, err := pathParam(c, "keyword")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Malformatted keyword").SetInternal(err)
		}

		memoMessageList, err := s.Store.ListMemos(ctx, &store.FindMemoMessage{Keyword: &keyword})
		if err != nil {
			return newHTTPError(err, "Failed to fetch memo list")
		}
		memoResponseList := []*api.Memo{}
		for _, memoMessage := range memoMessageList {
			memoResponseList = append(memoResponseList, memoMessage.ToAPI())
		}
		return c.JSON(http.StatusOK, composeResponse(memoResponseList))
	})

	g.DELETE("/keyword/:keyword", func(c echo.Context) error {
		ctx := c.Request().Context()
		keyword, err := pathParam(c, "keyword")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Malformatted keyword").SetInternal(err)
		}

		affected, err := s.Store.DeleteKeyword(ctx, keyword)
		if err != nil {
			return newHTTPError(err, fmt.Sprintf("Failed to delete keyword %q", keyword))
		}
		return c.JSON(http.StatusOK, composeResponse(&api.DeleteKeywordResponse{
			Keyword:      keyword,
			AffectedMemo: affected,
		}))
	})

	g.POST("/keyword/reprocess", func(c echo.Context) error {
		ctx := c.Request().Context()
		processed, err := s.Extractor.Reprocess(ctx)
		if err != nil {
			return newHTTPError(err, "Failed to reprocess memos")
		}
		return c.JSON(http.StatusOK, composeResponse(&api.ReprocessResponse{
			Processed: processed,
		}))
	})
}

// parseFindKeywordQuery reads either an explicit from/to date range or a period.
func (s *Server) parseFindKeywordQuery(c echo.Context, now time.Time) (*store.FindKeywordMessage, error) {
	find := &store.FindKeywordMessage{}
	loc := s.Profile.Location()

	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from != "" || to != "" {
		if from != "" {
			t, err := time.ParseInLocation(dateLayout, from, loc)
			if err != nil {
				return nil, fmt.Errorf("invalid from date %q", from)
			}
			ms := t.UnixMilli()
			find.RegTsAfter = &ms
		}
		if to != "" {
			t, err := time.ParseInLocation(dateLayout, to, loc)
			if err != nil {
				return nil, fmt.Errorf("invalid to date %q", to)
			}
			ms := t.AddDate(0, 0, 1).UnixMilli() - 1
			find.RegTsBefore = &ms
		}
		if find.RegTsAfter != nil && find.RegTsBefore != nil && *find.RegTsAfter > *find.RegTsBefore {
			return nil, fmt.Errorf("from date %q is after to date %q", from, to)
		}
	} else {
		period, err := api.ParsePeriod(c.QueryParam("period"))
		if err != nil {
			return nil, err
		}
		find.RegTsAfter = period.Since(now)
	}

	if v := c.QueryParam("limit"); v != "" {
		limit, err := parseLimit(v, 0)
		if err != nil {
			return nil, err
		}
		find.Limit = &limit
	}
	return find, nil
}

func parseLimit(v string, fallback int) (int, error) {
	if v == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit %q", v)
	}
	return limit, nil
}

func convertKeywordCountList(keywordList []*store.KeywordCount) []*api.Keyword {
	list := []*api.Keyword{}
	for _, keyword := range keywordList {
		list = append(list, &api.Keyword{
			Keyword: keyword.Keyword,
			Count:   keyword.Count,
		})
	}
	return list
}
