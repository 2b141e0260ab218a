package ingest

import (
	"context"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type doclingResponse struct {
	Document struct {
		MdContent string `json:"md_content"`
	} `json:"document"`
	Status string `json:"status"`
}

// DoclingClient converts documents to markdown through a docling-serve
// sidecar.
type DoclingClient struct {
	client  *resty.Client
	baseURL string
}

func NewDoclingClient(baseURL string) *DoclingClient {
	return &DoclingClient{
		client:  resty.New(),
		baseURL: baseURL,
	}
}

func (d *DoclingClient) Extract(ctx context.Context, filePath string) (string, error) {
	var out doclingResponse

	resp, err := d.client.R().
		SetContext(ctx).
		SetFile("files", filePath).
		SetFormData(map[string]string{
			"to_formats": "md",
		}).
		SetResult(&out).
		Post(d.baseURL + "/v1alpha/convert/file")

	if err != nil {
		logger.Error("docling request failed", zap.String("file", filePath), zap.Error(err))
		return "", err
	}

	if resp.IsError() {
		logger.Error("docling returned error status",
			zap.String("file", filePath), zap.Int("status", resp.StatusCode()))
		return "", fmt.Errorf("docling convert failed with status %d", resp.StatusCode())
	}

	return out.Document.MdContent, nil
}
