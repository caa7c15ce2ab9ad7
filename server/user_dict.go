package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/esummer9/mykeyword/api"
	"github.com/esummer9/mykeyword/common/log"
	"github.com/esummer9/mykeyword/plugin/analyzer"
	"github.com/esummer9/mykeyword/store"
)

func (s *Server) registerUserDictRoutes(g *echo.Group) {
	g.GET("/dict", func(c echo.Context) error {
		ctx := c.Request().Context()
		find := &store.FindUserDictMessage{}
		if v := c.QueryParam("chosung"); v != "" {
			initial, size := utf8.DecodeRuneInString(v)
			if size != len(v) || initial == utf8.RuneError {
				return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid chosung %q", v))
			}
			find.Chosung = &initial
		}

		userDictList, err := s.Store.ListUserDicts(ctx, find)
		if err != nil {
			return newHTTPError(err, "Failed to fetch user dictionary")
		}
		userDictResponseList := []*api.UserDict{}
		for _, userDict := range userDictList {
			userDictResponseList = append(userDictResponseList, userDict.ToAPI())
		}
		return c.JSON(http.StatusOK, composeResponse(userDictResponseList))
	})

	g.POST("/dict", func(c echo.Context) error {
		ctx := c.Request().Context()
		upsertRequest := &api.UpsertUserDictRequest{}
		if err := json.NewDecoder(c.Request().Body).Decode(upsertRequest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Malformatted post user dictionary request").SetInternal(err)
		}
		return s.upsertUserDict(ctx, c, upsertRequest)
	})

	g.PATCH("/dict/:dictId", func(c echo.Context) error {
		ctx := c.Request().Context()
		dictID, err := strconv.Atoi(c.Param("dictId"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("ID is not a number: %s", c.Param("dictId"))).SetInternal(err)
		}
		upsertRequest := &api.UpsertUserDictRequest{}
		if err := json.NewDecoder(c.Request().Body).Decode(upsertRequest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Malformatted patch user dictionary request").SetInternal(err)
		}
		upsertRequest.ID = dictID
		return s.upsertUserDict(ctx, c, upsertRequest)
	})

	g.DELETE("/dict/:dictId", func(c echo.Context) error {
		ctx := c.Request().Context()
		dictID, err := strconv.Atoi(c.Param("dictId"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("ID is not a number: %s", c.Param("dictId"))).SetInternal(err)
		}

		if err := s.Store.DeleteUserDict(ctx, dictID); err != nil {
			return newHTTPError(err, fmt.Sprintf("Failed to delete user dictionary ID: %v", dictID))
		}
		s.reloadUserDict(ctx)
		return c.JSON(http.StatusOK, true)
	})

	g.POST("/dict/reload", func(c echo.Context) error {
		ctx := c.Request().Context()
		entries, err := UserDictEntries(ctx, s.Store)
		if err != nil {
			return newHTTPError(err, "Failed to fetch user dictionary")
		}
		if err := s.Analyzer.Reload(ctx, entries); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reload analyzer").SetInternal(err)
		}
		return c.JSON(http.StatusOK, composeResponse(map[string]any{
			"path":  s.Analyzer.UserDictPath(),
			"count": len(entries),
		}))
	})
}

func (s *Server) upsertUserDict(ctx context.Context, c echo.Context, upsertRequest *api.UpsertUserDictRequest) error {
	upsertRequest.Keyword = strings.TrimSpace(upsertRequest.Keyword)
	upsertRequest.Pos = strings.ToUpper(strings.TrimSpace(upsertRequest.Pos))
	if upsertRequest.Pos == "" {
		upsertRequest.Pos = api.PosProperNoun
	}
	if err := c.Validate(upsertRequest); err != nil {
		return err
	}
	if strings.ContainsAny(upsertRequest.Keyword, "\t\r\n") {
		return echo.NewHTTPError(http.StatusBadRequest, "Keyword must be a single line without tabs")
	}

	userDict, err := s.Store.UpsertUserDict(ctx, &store.UserDictMessage{
		ID:      upsertRequest.ID,
		Keyword: upsertRequest.Keyword,
		Pos:     upsertRequest.Pos,
	})
	if err != nil {
		return newHTTPError(err, "Failed to save user dictionary entry")
	}
	s.reloadUserDict(ctx)
	return c.JSON(http.StatusOK, composeResponse(userDict.ToAPI()))
}

// UserDictEntries returns the stored dictionary as file entries, oldest first.
func UserDictEntries(ctx context.Context, storeInstance *store.Store) ([]analyzer.Entry, error) {
	userDictList, err := storeInstance.ListUserDicts(ctx, &store.FindUserDictMessage{})
	if err != nil {
		return nil, err
	}
	entries := make([]analyzer.Entry, 0, len(userDictList))
	for i := len(userDictList) - 1; i >= 0; i-- {
		entries = append(entries, analyzer.Entry{
			Keyword: userDictList[i].Keyword,
			Pos:     userDictList[i].Pos,
		})
	}
	return entries, nil
}

// writeUserDict writes the stored dictionary to the analyzer's file without reloading.
func (s *Server) writeUserDict(ctx context.Context) error {
	entries, err := UserDictEntries(ctx, s.Store)
	if err != nil {
		return err
	}
	return analyzer.WriteUserDict(s.Analyzer.UserDictPath(), entries)
}

// reloadUserDict regenerates the dictionary file and swaps the analyzer. Failures are logged.
func (s *Server) reloadUserDict(ctx context.Context) {
	entries, err := UserDictEntries(ctx, s.Store)
	if err != nil {
		log.Warn("failed to fetch user dictionary", zap.Error(err))
		return
	}
	if err := s.Analyzer.Reload(ctx, entries); err != nil {
		log.Warn("failed to reload analyzer", zap.Error(err))
	}
}
