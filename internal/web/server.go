// Package web serves the browser UI: drag an audio file onto the page and
// get Swedish text back. The model loads in the background while the server
// is already answering status polls.
package web

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taltext/taltext/internal/audio"
	"github.com/taltext/taltext/internal/transcribe"
)

//go:embed index.html
var indexHTML string

// MaxUploadBytes caps the multipart body size for uploads.
const MaxUploadBytes = 100 * 1024 * 1024

type Server struct {
	app       *fiber.App
	loader    *audio.Loader
	language  string
	uploadDir string
	logger    *zap.Logger

	mu        sync.Mutex
	engine    transcribe.Engine
	loading   bool
	loadError error
}

type Config struct {
	Language  string
	UploadDir string
	Loader    *audio.Loader
	Logger    *zap.Logger
}

func NewServer(cfg Config) *Server {
	language := cfg.Language
	if language == "" {
		language = transcribe.DefaultLanguage
	}

	uploadDir := cfg.UploadDir
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}

	loader := cfg.Loader
	if loader == nil {
		loader = &audio.Loader{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             MaxUploadBytes,
		DisableStartupMessage: true,
	})

	s := &Server{
		app:       app,
		loader:    loader,
		language:  language,
		uploadDir: uploadDir,
		logger:    logger,
	}

	app.Get("/", s.handleIndex)
	app.Get("/status", s.handleStatus)
	app.Post("/transcribe", s.handleTranscribe)
	app.Get("/download", s.handleDownload)

	return s
}

// StartLoading runs load in the background and installs the engine when it
// returns. Until then /status reports loading and /transcribe answers 503.
func (s *Server) StartLoading(load func() (transcribe.Engine, error)) {
	s.mu.Lock()
	s.loading = true
	s.loadError = nil
	s.mu.Unlock()

	go func() {
		engine, err := load()

		s.mu.Lock()
		defer s.mu.Unlock()
		s.loading = false
		if err != nil {
			s.loadError = err
			s.logger.Error("model load failed", zap.Error(err))
			return
		}
		s.engine = engine
		s.logger.Info("model ready")
	}()
}

// SetEngine installs an already loaded engine.
func (s *Server) SetEngine(engine transcribe.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine = engine
	s.loading = false
	s.loadError = nil
}

func (s *Server) engineState() (transcribe.Engine, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine, s.loading, s.loadError
}

// App exposes the fiber app for in-process request tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	err := s.app.Shutdown()

	s.mu.Lock()
	engine := s.engine
	s.engine = nil
	s.mu.Unlock()

	if engine != nil {
		if closeErr := engine.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(indexHTML)
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	engine, loading, loadErr := s.engineState()

	payload := fiber.Map{
		"loading": loading,
		"ready":   engine != nil,
		"error":   nil,
	}
	if loadErr != nil {
		payload["error"] = loadErr.Error()
	}
	return c.JSON(payload)
}

func (s *Server) handleTranscribe(c *fiber.Ctx) error {
	engine, loading, loadErr := s.engineState()
	if loading {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "model is still loading, try again shortly"})
	}
	if loadErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("model failed to load: %v", loadErr)})
	}
	if engine == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "no transcription engine available"})
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no audio file provided"})
	}
	if fileHeader.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no file selected"})
	}

	if !audio.IsSupported(fileHeader.Filename) {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
			"error": fmt.Sprintf("unsupported audio format %q (supported: %s)", audio.NormalizeExt(fileHeader.Filename), strings.Join(audio.SupportedExtensions(), ", ")),
		})
	}

	tempPath := filepath.Join(s.uploadDir, "upload-"+uuid.NewString()+audio.NormalizeExt(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, tempPath); err != nil {
		s.logger.Error("store upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not store upload"})
	}
	defer os.Remove(tempPath)

	result, err := transcribe.File(c.UserContext(), engine, s.loader, tempPath, s.language)
	if err != nil {
		s.logger.Warn("transcription failed", zap.String("file", fileHeader.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	s.logger.Info("transcribed upload",
		zap.String("file", fileHeader.Filename),
		zap.Duration("elapsed", result.Elapsed),
		zap.Int("chars", len(result.Text)))

	return c.JSON(fiber.Map{
		"transcription":   result.Text,
		"processing_time": fmt.Sprintf("%.2f seconds", result.Elapsed.Seconds()),
	})
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	text := c.Query("text")
	if text == "" {
		return c.Status(fiber.StatusBadRequest).SendString("no text to download")
	}

	name := c.Query("filename", "transcription")
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." {
		base = "transcription"
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", base+"_transcription.txt"))
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(text)
}
