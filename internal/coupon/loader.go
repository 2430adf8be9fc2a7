package coupon

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for code list files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based code list loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "code-loader").Logger(),
	}
}

// Load reads a code list file. Files ending in .gz are gunzipped.
func (l *fileLoader) Load(ctx context.Context, filePath string) (CodeSet, error) {
	l.logger.Info().Str("file", filePath).Msg("loading code list")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open code list")
		return nil, fmt.Errorf("failed to open code list %s: %w", filePath, err)
	}
	defer file.Close()

	set, err := readCodes(ctx, file, isGzipped(filePath))
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading code list")
		return nil, fmt.Errorf("error reading code list %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("codes_loaded", set.Size()).
		Msg("code list loaded successfully")

	return set, nil
}

func isGzipped(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// readCodes scans one code per line into a normalized set. Blank lines and
// lines that normalize to nothing are skipped.
func readCodes(ctx context.Context, r io.Reader, gzipped bool) (CodeSet, error) {
	if gzipped {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	set := NewMapCodeSet(1024).(*mapCodeSet)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineCount := 0
	for scanner.Scan() {
		// Check context cancellation periodically
		if lineCount%100_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		lineCount++

		if line := strings.TrimSpace(scanner.Text()); line != "" {
			set.Add(line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}
