package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/pkoukk/tiktoken-go"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"
)

const (
	maxTokens = 400
	overlap   = 50
)

var (
	tablePattern    = regexp.MustCompile(`(?m)((?:\|.+\|\n)+)`)
	currencyPattern = regexp.MustCompile(`[₹$,]`)
	pipePattern     = regexp.MustCompile(`\s*\|\s*`)
)

// Chunk is one indexable unit of an ingested document.
type Chunk struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Section string `json:"section,omitempty"`
	Source  string `json:"source"`
}

type Chunker struct {
	// To load encoder only once across all chunking operations.
	tok *tiktoken.Tiktoken
}

func ProvideChunker() *Chunker {
	tok, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		logger.Error("Failed to get token encoder", zap.Error(err))
		return nil
	}
	return &Chunker{tok: tok}
}

// ChunkMarkdown splits markdown into chunks. Tables become standalone
// cleaned chunks so amounts survive intact; the remaining prose is cut into
// overlapping token windows, carrying its heading path for context.
func (c *Chunker) ChunkMarkdown(source string, markdown []byte) []Chunk {
	var out []Chunk
	for _, sec := range parseSections(markdown) {
		body := sec.body

		for _, table := range tablePattern.FindAllString(body, -1) {
			cleaned := CleanTable(table)
			if cleaned == "" {
				continue
			}
			out = append(out, c.newChunk(source, sec.path, cleaned))
		}
		body = tablePattern.ReplaceAllString(body, "")

		tokens := c.tok.Encode(body, nil, nil)
		for i := 0; i < len(tokens); i += maxTokens - overlap {
			end := min(i+maxTokens, len(tokens))
			txt := strings.TrimSpace(c.tok.Decode(tokens[i:end]))
			if txt != "" {
				out = append(out, c.newChunk(source, sec.path, txt))
			}
			if end == len(tokens) {
				break
			}
		}
	}

	logger.Info("markdown chunked", zap.Int("chunkCount", len(out)), zap.String("source", source))
	return out
}

func (c *Chunker) newChunk(source string, path []string, txt string) Chunk {
	id := sha1.Sum([]byte(source + ":" + txt))
	return Chunk{
		ID:      hex.EncodeToString(id[:]),
		Text:    txt,
		Section: strings.Join(path, " | "),
		Source:  source,
	}
}

// CleanTable normalizes a markdown table: it strips currency symbols,
// drops empty cells and rows, and rebuilds a uniform header separator.
// Input that does not look like a table comes back unchanged.
func CleanTable(table string) string {
	var lines []string
	for _, line := range strings.Split(table, "\n") {
		if stripped := strings.TrimSpace(line); stripped != "" {
			lines = append(lines, stripped)
		}
	}
	if len(lines) < 2 {
		return table
	}

	var header []string
	for _, part := range pipePattern.Split(lines[0], -1) {
		if part = strings.TrimSpace(part); part != "" {
			header = append(header, part)
		}
	}
	if len(header) < 2 {
		return table
	}

	numColumns := len(header)
	cleaned := []string{
		"| " + strings.Join(header, " | ") + " |",
		"|" + strings.Repeat("---|", numColumns),
	}

	for _, row := range lines[2:] {
		var cells []string
		for _, cell := range pipePattern.Split(row, -1) {
			if v := currencyPattern.ReplaceAllString(strings.TrimSpace(cell), ""); v != "" {
				cells = append(cells, v)
			}
		}
		// rows that lost most of their cells carry no data
		if len(cells) >= numColumns/2 {
			if len(cells) > numColumns {
				cells = cells[:numColumns]
			}
			cleaned = append(cleaned, "| "+strings.Join(cells, " | ")+" |")
		}
	}

	return strings.Join(cleaned, "\n")
}

type markdownSection struct {
	path []string
	body string
}

// parseSections slices markdown at its headings, tracking the heading
// hierarchy as a path. Markdown without headings becomes one section.
func parseSections(md []byte) []markdownSection {
	reader := text.NewReader(md)
	root := goldmark.DefaultParser().Parse(reader)

	type head struct {
		start   int // byte offset of heading line start
		lineEnd int // byte offset just after the end-of-line
		level   int
		title   string
	}
	var heads []head

	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			seg := h.Lines().At(0)
			lineEnd := seg.Stop
			for lineEnd < len(md) && (md[lineEnd] == '\n' || md[lineEnd] == '\r') {
				lineEnd++
			}
			heads = append(heads, head{
				start:   seg.Start,
				lineEnd: lineEnd,
				level:   h.Level,
				title:   strings.TrimSpace(string(h.Text(md))),
			})
		}
		return ast.WalkContinue, nil
	})

	if len(heads) == 0 {
		return []markdownSection{{body: string(md)}}
	}

	var sections []markdownSection
	var path []string
	for i, h := range heads {
		if len(path) >= h.level {
			path = path[:h.level-1]
		}
		path = append(path, h.title)

		start := h.lineEnd // body starts after the heading line
		end := len(md)
		if i+1 < len(heads) {
			end = heads[i+1].start
		}

		sections = append(sections, markdownSection{
			path: append([]string(nil), path...),
			body: string(md[start:end]),
		})
	}
	return sections
}
