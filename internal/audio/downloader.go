package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/MimeLyc/tubescribe/pkg/log"
)

// DefaultTimeout bounds the wall clock of one audio download. A video whose
// audio cannot be fetched within this window fails the acquisition.
const DefaultTimeout = 2 * time.Minute

// CommandRunner abstracts external process execution so tests can substitute
// a fake yt-dlp.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmdPath, err := exec.LookPath(name)
	if err != nil {
		return nil, err
	}
	return exec.CommandContext(ctx, cmdPath, args...).CombinedOutput()
}

// Downloader fetches the audio track of a video as an in-memory buffer via
// yt-dlp. All on-disk artifacts live in a per-call temp directory that is
// removed on success and failure alike.
type Downloader struct {
	binary  string
	timeout time.Duration
	runner  CommandRunner
}

type Option func(*Downloader)

// WithBinary overrides the yt-dlp binary name or path.
func WithBinary(binary string) Option {
	return func(d *Downloader) {
		d.binary = binary
	}
}

// WithTimeout overrides the download wall-clock bound.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Downloader) {
		d.timeout = timeout
	}
}

// WithRunner substitutes the process runner, used by tests.
func WithRunner(runner CommandRunner) Option {
	return func(d *Downloader) {
		d.runner = runner
	}
}

func NewDownloader(opts ...Option) *Downloader {
	d := &Downloader{
		binary:  "yt-dlp",
		timeout: DefaultTimeout,
		runner:  ExecRunner{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download returns the raw mp3 audio of the video. The context carries the
// configured timeout; exceeding it aborts yt-dlp and reports an error.
func (d *Downloader) Download(ctx context.Context, videoID string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "tubescribe-audio-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			log.Warn("Failed to remove temp dir %s: %v", tmpDir, err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	audioPath := filepath.Join(tmpDir, videoID+".mp3")
	output, err := d.runner.Run(ctx, d.binary, downloadArgs(videoID, audioPath)...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("audio download exceeded %s: %w", d.timeout, ctx.Err())
		}
		return nil, fmt.Errorf("yt-dlp failed: %w (output: %s)", err, truncate(output, 512))
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp finished but no audio file was produced: %w", err)
	}
	return data, nil
}

func downloadArgs(videoID, audioPath string) []string {
	return []string{
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "0",
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"--output", audioPath,
		"https://www.youtube.com/watch?v=" + videoID,
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
