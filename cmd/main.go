package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cheggaaa/pb/v3"
	"go.uber.org/zap"

	"pdfquiz/internal/config"
	"pdfquiz/internal/constants"
	"pdfquiz/internal/export"
	"pdfquiz/internal/extract"
	"pdfquiz/internal/models"
	"pdfquiz/internal/parse"
	"pdfquiz/internal/server"
	"pdfquiz/internal/store"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiCyan   = "\x1b[36m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
	ansiGray   = "\x1b[90m"
)

var useANSI = detectANSI()

func main() {
	defer func() {
		if r := recover(); r != nil {
			printErrorf("Unexpected error: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := run(); err != nil {
		printErrorf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to YAML config file")
	dir := flag.String("dir", "", "Directory with exam PDFs (overrides config)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	exportFormat := flag.String("export", "", "Export study sheets instead of serving: markdown, html or pdf")
	outDir := flag.String("out", "", "Export output directory (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug logs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *dir != "" {
		cfg.TestsDir = *dir
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *outDir != "" {
		cfg.Export.Dir = *outDir
	}

	logger, err := newLogger(*debug)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	opts := parse.Options{
		AnswerSectionRatio: cfg.Parser.AnswerSectionRatio,
		MinOptions:         cfg.Parser.MinOptions,
	}
	extractor := extract.New(logger)

	var onParsed func()
	parseFile := func(path string) (*models.Test, error) {
		defer func() {
			if cb := onParsed; cb != nil {
				cb()
			}
		}()
		lines, err := extractor.Lines(path)
		if err != nil {
			return nil, err
		}
		res, err := parse.Build(lines, path, opts)
		if err != nil {
			return nil, err
		}
		reportDiagnostics(logger, path, res)
		return res.Test, nil
	}

	cache := store.New(cfg.TestsDir, parseFile, logger)

	printBanner()
	printInfof("Scanning %s for exam PDFs...\n", cfg.TestsDir)

	pdfs, err := filepath.Glob(filepath.Join(cfg.TestsDir, "*.pdf"))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.TestsDir, err)
	}

	if len(pdfs) > 0 {
		bar := pb.StartNew(len(pdfs))
		onParsed = func() { bar.Increment() }
		if _, err := cache.Reload(); err != nil {
			bar.Finish()
			return err
		}
		onParsed = nil
		bar.SetCurrent(int64(len(pdfs)))
		bar.Finish()
	}

	printSuccessf("Loaded %d test(s) from %d PDF file(s).\n", cache.Len(), len(pdfs))

	if *exportFormat != "" {
		return exportAll(cache, *exportFormat, cfg.Export.Dir)
	}

	uploadFn := func(data []byte, filename string) (*models.Test, error) {
		lines, err := extractor.LinesFromBytes(data)
		if err != nil {
			return nil, err
		}
		res, err := parse.Build(lines, filename, opts)
		if err != nil {
			return nil, err
		}
		reportDiagnostics(logger, filename, res)
		return res.Test, nil
	}

	srv := server.New(cache, cfg, uploadFn, logger)
	return serve(cfg.ListenAddr, srv.Router(), logger)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// reportDiagnostics surfaces everything a parse dropped or guessed, so a
// short quiz is explainable from the logs.
func reportDiagnostics(logger *zap.Logger, source string, res *parse.Result) {
	for _, skip := range res.Skips {
		printWarnf("%s: %s\n", filepath.Base(source), skip)
		logger.Warn("question skipped",
			zap.String("source", source),
			zap.Int("number", skip.Number),
			zap.String("reason", skip.Reason))
	}
	for _, num := range res.DuplicateBlocks {
		logger.Warn("duplicate question number, first occurrence kept",
			zap.String("source", source), zap.Int("number", num))
	}
	if res.KeyLocation == parse.LocatePositional {
		logger.Debug("no answer header found, used positional fallback",
			zap.String("source", source))
	}
	if res.RescanFilled > 0 {
		logger.Info("whole-document rescan recovered answer entries",
			zap.String("source", source), zap.Int("filled", res.RescanFilled))
	}
}

func exportAll(cache *store.Cache, format, dir string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	tests := cache.Tests()
	if len(tests) == 0 {
		return fmt.Errorf("nothing to export")
	}

	written := make([]string, 0, len(tests))
	for _, test := range tests {
		path, err := export.Write(test, f, dir)
		if err != nil {
			return err
		}
		written = append(written, path)
	}

	printSuccessf("Exported %d file(s): %s\n", len(written), strings.Join(written, ", "))
	return nil
}

func serve(addr string, handler http.Handler, logger *zap.Logger) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  constants.ReadTimeout,
		WriteTimeout: constants.WriteTimeout,
		IdleTimeout:  constants.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		printInfof("Serving on %s\n", addr)
		logger.Info("http server starting", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	printInfof("Shutting down...\n")
	logger.Info("http server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func printBanner() {
	fmt.Println(style(strings.Repeat("=", 64), ansiGray))
	fmt.Println(style(" pdfquiz - Exam PDF Quiz Server", ansiBold+ansiCyan))
	fmt.Println(style(strings.Repeat("=", 64), ansiGray))
	fmt.Println()
}

func printInfof(format string, args ...any) {
	fmt.Printf(style("[INFO] ", ansiCyan)+format, args...)
}

func printSuccessf(format string, args ...any) {
	fmt.Printf(style("[OK] ", ansiGreen)+format, args...)
}

func printWarnf(format string, args ...any) {
	fmt.Printf(style("[WARN] ", ansiYellow)+format, args...)
}

func printErrorf(format string, args ...any) {
	fmt.Printf(style("[ERROR] ", ansiRed)+format, args...)
}

func style(text string, code string) string {
	if !useANSI || text == "" {
		return text
	}
	return code + text + ansiReset
}

func detectANSI() bool {
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("NO_COLOR")), "1") {
		return false
	}
	term := strings.TrimSpace(strings.ToLower(os.Getenv("TERM")))
	if term == "dumb" {
		return false
	}
	return true
}
