package server

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"

	"github.com/esummer9/mykeyword/common"
	"github.com/esummer9/mykeyword/store"
)

const (
	maxRSSItemCount       = 100
	maxRSSItemTitleLength = 100
)

func (s *Server) registerRSSRoutes(g *echo.Group) {
	g.GET("/rss.xml", func(c echo.Context) error {
		ctx := c.Request().Context()
		limit := maxRSSItemCount
		memoList, err := s.Store.ListMemos(ctx, &store.FindMemoMessage{
			Limit:     &limit,
			OrderByID: true,
		})
		if err != nil {
			return newHTTPError(err, "Failed to find memo list")
		}

		baseURL := c.Scheme() + "://" + c.Request().Host
		rss, err := s.generateRSSFromMemoList(ctx, memoList, baseURL)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate rss").SetInternal(err)
		}
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXMLCharsetUTF8)
		return c.String(http.StatusOK, rss)
	})
}

func (s *Server) generateRSSFromMemoList(ctx context.Context, memoList []*store.MemoMessage, baseURL string) (string, error) {
	feed := &feeds.Feed{
		Title:       "MyKeyword",
		Link:        &feeds.Link{Href: baseURL},
		Description: "Recent memos",
		Created:     time.Now(),
	}

	feed.Items = make([]*feeds.Item, 0, len(memoList))
	for _, memo := range memoList {
		keywordList, err := s.Store.ListMemoKeywords(ctx, memo.ID)
		if err != nil {
			return "", err
		}
		description, err := getRSSItemDescription(memo.Meaning)
		if err != nil {
			return "", err
		}

		link := baseURL + "/api/memo/" + strconv.Itoa(memo.ID)
		if memo.URL != "" {
			link = memo.URL
		}
		keywords := make([]string, 0, len(keywordList))
		for _, keyword := range keywordList {
			keywords = append(keywords, keyword.Keyword)
		}

		feed.Items = append(feed.Items, &feeds.Item{
			Id:          strconv.Itoa(memo.ID),
			Title:       getRSSItemTitle(memo.Title),
			Link:        &feeds.Link{Href: link},
			Description: description,
			Content:     strings.Join(keywords, ", "),
			Created:     time.UnixMilli(memo.RegTs),
		})
	}

	return feed.ToRss()
}

func getRSSItemTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "(untitled)"
	}
	return common.Truncate(title, maxRSSItemTitleLength)
}

func getRSSItemDescription(meaning string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(meaning), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
