package workers

import (
	"context"
	"errors"

	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/shopmindai/shopmind/ingest"
	"github.com/shopmindai/shopmind/store"
	"github.com/shopmindai/shopmind/summarize"
)

// Activities holds the services the workflows run against.
type Activities struct {
	extractor  ingest.Extractor
	chunker    *ingest.Chunker
	vector     *store.VectorStore
	summarizer *summarize.MapReduce
}

func ProvideActivities(extractor ingest.Extractor, chunker *ingest.Chunker, vector *store.VectorStore, summarizer *summarize.MapReduce) *Activities {
	return &Activities{
		extractor:  extractor,
		chunker:    chunker,
		vector:     vector,
		summarizer: summarizer,
	}
}

func (a *Activities) ExtractDocument(ctx context.Context, filePath string) (string, error) {
	markdown, err := a.extractor.Extract(ctx, filePath)
	if err != nil {
		return "", errors.New("failed to extract document: " + err.Error())
	}
	if markdown == "" {
		return "", errors.New("document produced no text: " + filePath)
	}
	return markdown, nil
}

func (a *Activities) ChunkDocument(ctx context.Context, source, markdown string) ([]ingest.Chunk, error) {
	return a.chunker.ChunkMarkdown(source, []byte(markdown)), nil
}

func (a *Activities) EmbedAndStoreChunks(ctx context.Context, chunks []ingest.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	contents := linq.Map(chunks, func(c ingest.Chunk) string { return c.Text })
	return a.vector.InsertChunks(ctx, contents, chunks[0].Source)
}

func (a *Activities) SummarizeChunks(ctx context.Context, chunks []ingest.Chunk) (string, error) {
	contents := linq.Map(chunks, func(c ingest.Chunk) string { return c.Text })
	return a.summarizer.Summarize(ctx, contents)
}
