// Package dial opens the record store backend named by a store URI.
package dial

import (
	"context"
	"fmt"
	"strings"

	"github.com/staffbook/staffql/internal/config"
	"github.com/staffbook/staffql/internal/logging"
	"github.com/staffbook/staffql/internal/store"
	"github.com/staffbook/staffql/internal/store/boltstore"
	"github.com/staffbook/staffql/internal/store/filestore"
	"github.com/staffbook/staffql/internal/store/mongostore"
)

// Supported URI schemes.
const (
	SchemeMongo    = "mongodb"
	SchemeMongoSRV = "mongodb+srv"
	SchemeBolt     = "bolt"
	SchemeFile     = "file"
)

// Open connects to the backend selected by cfg.URI's scheme.
func Open(ctx context.Context, cfg config.StoreConfig, log logging.Logger) (store.Store, error) {
	if log == nil {
		log = logging.Discard()
	}

	scheme, rest, ok := strings.Cut(cfg.URI, "://")
	if !ok {
		return nil, fmt.Errorf("invalid store uri %q: missing scheme", cfg.URI)
	}

	switch strings.ToLower(scheme) {
	case SchemeMongo, SchemeMongoSRV:
		s, err := mongostore.Open(ctx, cfg.URI, mongostore.Options{
			Database: cfg.Database,
			Logger:   log,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case SchemeBolt:
		if rest == "" {
			return nil, fmt.Errorf("invalid store uri %q: missing database path", cfg.URI)
		}
		log.Info(ctx, "opening bolt store", "path", rest)
		s, err := boltstore.Open(ctx, rest)
		if err != nil {
			return nil, err
		}
		return s, nil
	case SchemeFile:
		if rest == "" {
			return nil, fmt.Errorf("invalid store uri %q: missing directory", cfg.URI)
		}
		log.Info(ctx, "opening file store", "dir", rest)
		s, err := filestore.Open(ctx, rest, filestore.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported store scheme %q (want mongodb, mongodb+srv, bolt or file)", scheme)
	}
}
