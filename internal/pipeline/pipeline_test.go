package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentops/internal/llm"
	"contentops/internal/stream"
)

type fakeCompleter struct {
	article *llm.Article
	err     error
	gotReq  llm.ArticleRequest
}

func (f *fakeCompleter) GenerateArticle(_ context.Context, req llm.ArticleRequest) (*llm.Article, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.article, nil
}

type fakeFinder struct {
	url string
	err error
}

func (f *fakeFinder) Find(context.Context, string) (string, error)     { return f.url, f.err }
func (f *fakeFinder) Generate(context.Context, string) (string, error) { return f.url, f.err }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEmitter() (*stream.Emitter, *stream.ChannelSink) {
	sink := stream.NewChannelSink()
	return stream.NewEmitter(sink, 0), sink
}

const threeParagraphs = "Intro paragraph about topic.\n\nSecond paragraph with detail.\n\nClosing paragraph."

func TestRun_SplicesBothAssets(t *testing.T) {
	completer := &fakeCompleter{article: &llm.Article{Title: "Topic Guide", Body: threeParagraphs}}
	p := New(completer,
		&fakeFinder{url: "https://videos.example/v/1"},
		&fakeFinder{url: "https://images.example/i/1"},
		testLogger(),
	)

	emitter, sink := testEmitter()
	result, err := p.Run(context.Background(), Request{Topic: "topic", TargetWords: 800, Language: "en"}, emitter)

	require.NoError(t, err)
	assert.Equal(t, "Topic Guide", result.Title)

	var chunked string
	for _, frame := range sink.Frames() {
		if frame.Type == stream.FrameChunk {
			chunked = frame.Content
		}
	}
	assert.Equal(t, threeParagraphs, chunked)
	assert.True(t, result.Enrichment.VideoOK)
	assert.True(t, result.Enrichment.ImageOK)
	assert.Equal(t, 2, result.Enrichment.AssetCount())

	paragraphs := strings.Split(result.Body, "\n\n")
	require.Len(t, paragraphs, 5)
	// Video goes right after the intro, image near the midpoint.
	assert.Equal(t, "[video](https://videos.example/v/1)", paragraphs[1])
	assert.Contains(t, result.Body, "![illustration](https://images.example/i/1)")
	assert.Positive(t, result.WordCount)
}

func TestRun_EnrichmentFailuresAreAbsorbed(t *testing.T) {
	completer := &fakeCompleter{article: &llm.Article{Title: "Topic Guide", Body: threeParagraphs}}
	p := New(completer,
		&fakeFinder{err: errors.New("video api down")},
		&fakeFinder{err: errors.New("image api down")},
		testLogger(),
	)

	emitter, _ := testEmitter()
	result, err := p.Run(context.Background(), Request{Topic: "topic"}, emitter)

	require.NoError(t, err)
	assert.False(t, result.Enrichment.VideoOK)
	assert.False(t, result.Enrichment.ImageOK)
	assert.Equal(t, 0, result.Enrichment.AssetCount())
	assert.Equal(t, threeParagraphs, result.Body)
}

func TestRun_PartialEnrichment(t *testing.T) {
	completer := &fakeCompleter{article: &llm.Article{Title: "Topic Guide", Body: threeParagraphs}}
	p := New(completer,
		&fakeFinder{url: "https://videos.example/v/1"},
		&fakeFinder{err: errors.New("image api down")},
		testLogger(),
	)

	emitter, _ := testEmitter()
	result, err := p.Run(context.Background(), Request{Topic: "topic"}, emitter)

	require.NoError(t, err)
	assert.True(t, result.Enrichment.VideoOK)
	assert.False(t, result.Enrichment.ImageOK)
	assert.Equal(t, 1, result.Enrichment.AssetCount())
	assert.Contains(t, result.Body, "[video](https://videos.example/v/1)")
	assert.NotContains(t, result.Body, "![illustration]")
}

func TestRun_NilEnrichersSkipFanOut(t *testing.T) {
	completer := &fakeCompleter{article: &llm.Article{Title: "Topic Guide", Body: threeParagraphs}}
	p := New(completer, nil, nil, testLogger())

	emitter, sink := testEmitter()
	result, err := p.Run(context.Background(), Request{Topic: "topic"}, emitter)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Enrichment.AssetCount())

	for _, frame := range sink.Frames() {
		assert.NotEqual(t, "enrich", frame.Step)
	}
}

func TestRun_CompletionFailurePropagates(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("model unavailable")}
	p := New(completer, nil, nil, testLogger())

	emitter, _ := testEmitter()
	_, err := p.Run(context.Background(), Request{Topic: "topic"}, emitter)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestRun_PassesRequestThrough(t *testing.T) {
	completer := &fakeCompleter{article: &llm.Article{Title: "T", Body: "Body text here."}}
	p := New(completer, nil, nil, testLogger())

	emitter, _ := testEmitter()
	_, err := p.Run(context.Background(), Request{
		Topic:       "email marketing",
		Source:      "existing body",
		TargetWords: 600,
		Language:    "de",
		Brief:       "focus on linking",
	}, emitter)

	require.NoError(t, err)
	assert.Equal(t, "email marketing", completer.gotReq.Topic)
	assert.Equal(t, "existing body", completer.gotReq.Source)
	assert.Equal(t, 600, completer.gotReq.TargetWords)
	assert.Equal(t, "de", completer.gotReq.Language)
	assert.Equal(t, "focus on linking", completer.gotReq.Brief)
}

func TestRun_EmptyBodyAfterStripping(t *testing.T) {
	completer := &fakeCompleter{article: &llm.Article{Title: "T", Body: "```\n```"}}
	p := New(completer, nil, nil, testLogger())

	emitter, _ := testEmitter()
	_, err := p.Run(context.Background(), Request{Topic: "topic"}, emitter)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty body")
}

func TestStripBoilerplate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Hello world.", "Hello world."},
		{"code fence removed", "```markdown\n# Title\n\nBody.\n```", "# Title\n\nBody."},
		{"bare fence removed", "```\nBody.\n```", "Body."},
		{"lead-in phrase removed", "Here is the article:\n# Title", "# Title"},
		{"contracted lead-in removed", "Here's the article:\n# Title", "# Title"},
		{"language word line removed", "markdown\n# Title", "# Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripBoilerplate(tt.in))
		})
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 2, WordCount("two words"))
	assert.Equal(t, 3, WordCount("# Heading with **bold**"))
	assert.Equal(t, 2, WordCount("[video](https://example.com/v)"))
}

func TestSplice_SingleParagraphBody(t *testing.T) {
	out := splice("Only paragraph.", Enrichment{
		VideoOK:  true,
		VideoURL: "https://videos.example/v/1",
		ImageOK:  true,
		ImageURL: "https://images.example/i/1",
	})

	paragraphs := strings.Split(out, "\n\n")
	require.Len(t, paragraphs, 3)
	assert.Equal(t, "Only paragraph.", paragraphs[0])
}
