package dal

import (
	"context"
	"errors"
	"sort"

	tables "github.com/bezalel-media-core/crosspost/dal/tables/v1"
)

// MetaStore is the host's per-entity key-value metadata, modelled on
// WordPress user meta and post meta. Missing keys read as "".
type MetaStore interface {
	GetAllMeta(ctx context.Context, kind tables.MetaKind, entityID string) (map[string]string, error)
	// UpdateMeta writes every pair in values in one transaction.
	UpdateMeta(ctx context.Context, kind tables.MetaKind, entityID string, values map[string]string) error
}

var ErrTooManyMetaKeys = errors.New("too many meta keys in one update")

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
