package ports

import (
	"context"

	"warped/internal/domain/content"
)

type ContentProvider interface {
	Tables(ctx context.Context) (content.Tables, error)
}
