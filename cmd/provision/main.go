package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"codebind/internal/config"
	"codebind/internal/coupon"
	"codebind/internal/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("provision", flag.ContinueOnError)
	fromS3 := flags.Bool("s3", false, "read code lists from S3 (S3_BUCKET/S3_PREFIX), falling back to local files")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: provision [-s3] <code-list> [code-list...]\n\n")
		fmt.Fprintf(flags.Output(), "Adds every code in the given lists (one per line, .gz supported) to the code document.\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return errors.New("at least one code list is required")
	}

	if err := loadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	loader, err := newLoader(ctx, cfg, *fromS3, logger)
	if err != nil {
		return err
	}

	store, closeStore, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}
	defer closeStore()

	var total coupon.ProvisionResult
	for _, path := range flags.Args() {
		set, err := loader.Load(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}

		result, err := coupon.Provision(ctx, store, set, logger)
		if err != nil {
			return fmt.Errorf("failed to provision %s: %w", path, err)
		}

		total.Added += result.Added
		total.AlreadyPresent += result.AlreadyPresent
		total.AlreadyBound += result.AlreadyBound
	}

	fmt.Printf("added=%d already_present=%d already_bound=%d\n",
		total.Added, total.AlreadyPresent, total.AlreadyBound)

	return nil
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// newLoader returns a local loader, or an S3 loader with local fallback.
func newLoader(ctx context.Context, cfg *config.Config, fromS3 bool, logger zerolog.Logger) (coupon.Loader, error) {
	fileLoader := coupon.NewFileLoader(logger)
	if !fromS3 {
		return fileLoader, nil
	}

	if cfg.S3.Bucket == "" {
		return nil, errors.New("S3_BUCKET is required with -s3")
	}

	client, err := repository.NewS3Client(ctx, cfg.S3.Region)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 client, falling back to local file system only")
		return coupon.NewFallbackLoader(nil, fileLoader, cfg.S3.Prefix, logger), nil
	}

	s3Loader := coupon.NewS3Loader(client, cfg.S3.Bucket, logger)
	return coupon.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger), nil
}
