package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"contentops/internal/llm"
	"contentops/internal/stream"
)

// Completer runs one full-article language-model completion.
type Completer interface {
	GenerateArticle(ctx context.Context, req llm.ArticleRequest) (*llm.Article, error)
}

// VideoFinder looks up an illustrative video by topic.
type VideoFinder interface {
	Find(ctx context.Context, topic string) (string, error)
}

// ImageGenerator produces an illustrative image by topic.
type ImageGenerator interface {
	Generate(ctx context.Context, topic string) (string, error)
}

// Request describes one pipeline run.
type Request struct {
	Topic       string
	Source      string
	TargetWords int
	Language    string
	Brief       string
}

// Enrichment records which optional branches produced an asset.
type Enrichment struct {
	VideoURL string `json:"videoUrl,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	VideoOK  bool   `json:"videoOk"`
	ImageOK  bool   `json:"imageOk"`
}

// AssetCount is the number of enrichment assets that were spliced in, used
// for the per-asset credit surcharge.
func (e Enrichment) AssetCount() int {
	n := 0
	if e.VideoOK {
		n++
	}
	if e.ImageOK {
		n++
	}
	return n
}

// Result is the assembled content artifact payload.
type Result struct {
	Title      string
	Body       string
	WordCount  int
	Enrichment Enrichment
}

// Pipeline assembles one content artifact: a single completion call followed
// by concurrent, individually optional enrichment lookups.
type Pipeline struct {
	completer Completer
	video     VideoFinder
	image     ImageGenerator
	logger    *slog.Logger
}

func New(completer Completer, video VideoFinder, image ImageGenerator, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		completer: completer,
		video:     video,
		image:     image,
		logger:    logger.With("component", "pipeline"),
	}
}

// Run generates the article text, fans out enrichment, and splices the
// results. Enrichment failures are logged and absorbed; only the completion
// call can fail the pipeline.
func (p *Pipeline) Run(ctx context.Context, req Request, emitter *stream.Emitter) (*Result, error) {
	emitter.Progress("Writing article draft", "generate", 0)

	article, err := p.completer.GenerateArticle(ctx, llm.ArticleRequest{
		Topic:       req.Topic,
		Source:      req.Source,
		TargetWords: req.TargetWords,
		Language:    req.Language,
		Brief:       req.Brief,
	})
	if err != nil {
		return nil, err
	}

	body := stripBoilerplate(article.Body)
	if body == "" {
		return nil, fmt.Errorf("completion produced an empty body")
	}

	// The completion arrives in one piece; the draft still goes out as a
	// chunk frame so clients can render text before the terminal frame.
	emitter.Chunk(body)

	enrichment := p.enrich(ctx, req.Topic, emitter)
	body = splice(body, enrichment)

	return &Result{
		Title:      article.Title,
		Body:       body,
		WordCount:  WordCount(body),
		Enrichment: enrichment,
	}, nil
}

func (p *Pipeline) enrich(ctx context.Context, topic string, emitter *stream.Emitter) Enrichment {
	var branches []branch
	if p.video != nil {
		branches = append(branches, branch{Name: "video", Run: func(ctx context.Context) (string, error) {
			return p.video.Find(ctx, topic)
		}})
	}
	if p.image != nil {
		branches = append(branches, branch{Name: "image", Run: func(ctx context.Context) (string, error) {
			return p.image.Generate(ctx, topic)
		}})
	}

	var enrichment Enrichment
	if len(branches) == 0 {
		return enrichment
	}

	emitter.Progress("Looking for supporting media", "enrich", 0)
	outcomes := settleAll(ctx, branches)

	if v, ok := outcomes["video"]; ok {
		if v.Err != nil {
			p.logger.Warn("video enrichment not available", "topic", topic, "error", v.Err)
		} else {
			enrichment.VideoURL = v.Value
			enrichment.VideoOK = true
		}
	}
	if img, ok := outcomes["image"]; ok {
		if img.Err != nil {
			p.logger.Warn("image enrichment not available", "topic", topic, "error", img.Err)
		} else {
			enrichment.ImageURL = img.Value
			enrichment.ImageOK = true
		}
	}

	return enrichment
}

// splice inserts enrichment assets at computed points: the video after the
// introductory paragraph, the image near the midpoint. Branches that did not
// settle successfully are simply absent.
func splice(body string, enrichment Enrichment) string {
	if !enrichment.VideoOK && !enrichment.ImageOK {
		return body
	}

	paragraphs := strings.Split(body, "\n\n")

	if enrichment.VideoOK {
		embed := fmt.Sprintf("[video](%s)", enrichment.VideoURL)
		if len(paragraphs) > 1 {
			paragraphs = insertAt(paragraphs, 1, embed)
		} else {
			paragraphs = append(paragraphs, embed)
		}
	}

	if enrichment.ImageOK {
		img := fmt.Sprintf("![illustration](%s)", enrichment.ImageURL)
		mid := len(paragraphs) / 2
		if mid == 0 {
			mid = len(paragraphs)
		}
		paragraphs = insertAt(paragraphs, mid, img)
	}

	return strings.Join(paragraphs, "\n\n")
}

func insertAt(paragraphs []string, idx int, value string) []string {
	if idx >= len(paragraphs) {
		return append(paragraphs, value)
	}
	out := make([]string, 0, len(paragraphs)+1)
	out = append(out, paragraphs[:idx]...)
	out = append(out, value)
	out = append(out, paragraphs[idx:]...)
	return out
}

var boilerplatePrefixes = []string{
	"markdown",
	"html",
	"Here is the article:",
	"Here's the article:",
}

// stripBoilerplate removes code fences and lead-in phrases the model may
// prepend despite instructions.
func stripBoilerplate(body string) string {
	body = strings.TrimSpace(body)

	if strings.HasPrefix(body, "```") {
		body = strings.TrimPrefix(body, "```")
		if idx := strings.Index(body, "\n"); idx >= 0 {
			body = body[idx+1:]
		}
		body = strings.TrimSuffix(strings.TrimSpace(body), "```")
		body = strings.TrimSpace(body)
	}

	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(body, prefix+"\n") {
			body = strings.TrimSpace(strings.TrimPrefix(body, prefix+"\n"))
		}
	}

	return body
}

var markupReplacer = strings.NewReplacer(
	"#", " ", "*", " ", "_", " ", "`", " ",
	"<", " ", ">", " ", "[", " ", "]", " ",
	"(", " ", ")", " ", "!", " ",
)

// WordCount counts whitespace-delimited tokens after stripping markup. This
// is an approximation, not a linguistic word count.
func WordCount(body string) int {
	return len(strings.Fields(markupReplacer.Replace(body)))
}
