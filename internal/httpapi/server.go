package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/MimeLyc/tubescribe/internal/llm"
	"github.com/MimeLyc/tubescribe/internal/transcript"
)

// acquirer resolves a video URL to its transcript record.
type acquirer interface {
	Acquire(ctx context.Context, sourceURL string) (*transcript.Record, error)
}

// recordReader is the read side of the transcript cache.
type recordReader interface {
	FindByVideoID(ctx context.Context, videoID string) (*transcript.Record, error)
}

// chatCompleter forwards a conversation to the chat-completion capability.
type chatCompleter interface {
	ChatCompletion(ctx context.Context, messages []llm.Message, opts *llm.ChatCompletionOptions) (*llm.ChatResponse, error)
}

type Server struct {
	acquirer  acquirer
	records   recordReader
	completer chatCompleter

	mux    *http.ServeMux
	server *http.Server
}

type Option func(*Server)

// WithChatCompleter enables the /api/chat and /api/tools/generate endpoints.
// Without it they respond 503.
func WithChatCompleter(completer chatCompleter) Option {
	return func(s *Server) {
		s.completer = completer
	}
}

// WithRecordReader enables GET /api/transcripts/{videoId}.
func WithRecordReader(records recordReader) Option {
	return func(s *Server) {
		s.records = records
	}
}

func NewServer(acq acquirer, opts ...Option) *Server {
	s := &Server{
		acquirer: acq,
		mux:      http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/transcribe", s.handleTranscribe)
	s.mux.HandleFunc("/api/chat", s.handleChat)
	s.mux.HandleFunc("/api/tools/generate", s.handleToolsGenerate)
	s.mux.HandleFunc("/api/transcripts/", s.handleGetTranscript)
	s.mux.HandleFunc("/api/demo", s.handleDemo)
}
