package domain

import "context"

// FileStore archives uploaded BEO documents (infrastructure port).
type FileStore interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
}
