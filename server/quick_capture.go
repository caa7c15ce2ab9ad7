package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/esummer9/mykeyword/api"
	"github.com/esummer9/mykeyword/common"
	"github.com/esummer9/mykeyword/store"
)

const (
	quickCaptureTimeLayout = "2006-01-02 15:04:05"
	quickCapturePosMarker  = "(위치 정보)"
)

func (s *Server) registerQuickCaptureRoutes(g *echo.Group) {
	g.POST("/quick", func(c echo.Context) error {
		ctx := c.Request().Context()
		quickCaptureRequest := &api.QuickCaptureRequest{}
		if err := json.NewDecoder(c.Request().Body).Decode(quickCaptureRequest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Malformatted quick capture request").SetInternal(err)
		}
		if err := c.Validate(quickCaptureRequest); err != nil {
			return err
		}

		now := time.Now()
		create, err := convertQuickCaptureRequestToMemoMessage(quickCaptureRequest, now.In(s.Profile.Location()))
		if err != nil {
			return newHTTPError(err, "Invalid quick capture request")
		}

		memoMessage, err := s.createMemo(ctx, create, sourceQuick)
		if err != nil {
			return newHTTPError(err, "Failed to create memo")
		}
		return c.JSON(http.StatusOK, composeResponse(memoMessage.ToAPI()))
	})
}

// quickCaptureTitle builds the memo title for an action.
func quickCaptureTitle(action api.QuickCaptureAction, text string, now time.Time) (string, error) {
	text = strings.TrimSpace(text)
	switch action {
	case api.QuickCaptureMemo:
		if text == "" {
			return "", &common.Error{Code: common.Invalid, Err: errEmptyQuickCapture}
		}
		return text, nil
	case api.QuickCaptureTime:
		timestamp := now.Format(quickCaptureTimeLayout)
		if text == "" {
			return timestamp, nil
		}
		return text + " - " + timestamp, nil
	case api.QuickCapturePos:
		if text == "" {
			return "", &common.Error{Code: common.Invalid, Err: errEmptyQuickCapture}
		}
		return text + " - " + quickCapturePosMarker, nil
	}
	return "", &common.Error{Code: common.Invalid, Err: errUnknownQuickCapture}
}

func convertQuickCaptureRequestToMemoMessage(request *api.QuickCaptureRequest, now time.Time) (*store.MemoMessage, error) {
	title, err := quickCaptureTitle(request.Action, request.Text, now)
	if err != nil {
		return nil, err
	}

	create := &store.MemoMessage{
		RegTs: now.UnixMilli(),
		Title: title,
	}
	if request.Action == api.QuickCapturePos {
		create.Lat = request.Lat
		create.Lon = request.Lon
	}
	return create, nil
}
