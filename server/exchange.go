package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/esummer9/mykeyword/api"
	"github.com/esummer9/mykeyword/common/log"
	"github.com/esummer9/mykeyword/plugin/storage/s3"
)

func (s *Server) registerExchangeRoutes(g *echo.Group) {
	g.GET("/export", func(c echo.Context) error {
		ctx := c.Request().Context()
		data, err := s.Store.Export(ctx, c.QueryParam("category"))
		if err != nil {
			return newHTTPError(err, "Failed to export memos")
		}

		filename := fmt.Sprintf("mykeyword-%s.json", time.Now().In(s.Profile.Location()).Format("20060102-150405"))
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.JSON(http.StatusOK, data)
	})

	g.POST("/import", func(c echo.Context) error {
		ctx := c.Request().Context()
		data := &api.ExportData{}
		if err := json.NewDecoder(c.Request().Body).Decode(data); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Malformatted import request").SetInternal(err)
		}

		result, err := s.Store.Import(ctx, data)
		if err != nil {
			return newHTTPError(err, "Failed to import memos")
		}
		s.metrics.MemoCreated.WithLabelValues(sourceImport).Add(float64(result.MemosImported))
		if result.DictImported > 0 {
			s.reloadUserDict(ctx)
		}
		if result.MemosImported > 0 {
			s.Extractor.DispatchReprocess()
		}
		return c.JSON(http.StatusOK, composeResponse(result))
	})

	g.POST("/export/s3", func(c echo.Context) error {
		ctx := c.Request().Context()
		if !s.Profile.S3Enabled() {
			return echo.NewHTTPError(http.StatusBadRequest, "Object storage is not configured")
		}

		data, err := s.Store.Export(ctx, c.QueryParam("category"))
		if err != nil {
			return newHTTPError(err, "Failed to export memos")
		}
		buf, err := json.Marshal(data)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to marshal export").SetInternal(err)
		}

		client, err := s3.NewClient(ctx, &s3.Config{
			AccessKey: s.Profile.S3AccessKey,
			SecretKey: s.Profile.S3SecretKey,
			Bucket:    s.Profile.S3Bucket,
			EndPoint:  s.Profile.S3Endpoint,
			Region:    s.Profile.S3Region,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create s3 client").SetInternal(err)
		}
		key := client.ExportKey(time.Now().In(s.Profile.Location()))
		link, err := client.UploadFile(ctx, key, echo.MIMEApplicationJSON, bytes.NewReader(buf))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, "Failed to upload export").SetInternal(err)
		}
		log.Info("export uploaded", zap.String("bucket", s.Profile.S3Bucket), zap.String("key", key))

		return c.JSON(http.StatusOK, composeResponse(&api.ExportUploadResponse{
			Bucket: s.Profile.S3Bucket,
			Key:    key,
			URL:    link,
		}))
	})
}
