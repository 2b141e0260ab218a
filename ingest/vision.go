package ingest

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/shopmindai/shopmind/llm"
	"github.com/shopmindai/shopmind/prompts"
	"go.uber.org/zap"
)

// VisionExtractor pulls structured invoice data out of photographed or
// scanned bills. Handwritten invoices are common; the prompt tells the
// model to leave unreadable fields empty rather than guess.
type VisionExtractor struct {
	client *llm.AnthropicClient
}

func NewVisionExtractor(client *llm.AnthropicClient) *VisionExtractor {
	return &VisionExtractor{client: client}
}

func (v *VisionExtractor) Extract(ctx context.Context, filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		logger.Error("failed to read image", zap.String("file", filePath), zap.Error(err))
		return "", err
	}

	prompt, err := prompts.InvoiceExtractionPrompt()
	if err != nil {
		return "", err
	}

	imageB64 := base64.StdEncoding.EncodeToString(data)
	return v.client.GenerateVision(ctx, prompt, imageB64, mediaType(filePath),
		llm.WithTemperature(0.0), llm.WithMaxTokens(2000))
}

func mediaType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".jpeg", ".jpg":
		return "image/jpeg"
	}
	return "application/octet-stream"
}
