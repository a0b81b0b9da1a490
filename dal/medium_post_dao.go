package dal

import (
	"context"
	"fmt"

	tables "github.com/bezalel-media-core/crosspost/dal/tables/v1"
	models "github.com/bezalel-media-core/crosspost/service/models"
)

// MediumPostDao is the post-link store: which Medium post, if any, a local post became.
type MediumPostDao struct {
	Meta MetaStore
}

func (d MediumPostDao) GetMediumPost(ctx context.Context, postId string) (models.MediumPost, error) {
	if postId == "" {
		return models.MediumPost{}, nil
	}
	meta, err := d.Meta.GetAllMeta(ctx, tables.META_KIND_POST, postId)
	if err != nil {
		return models.MediumPost{}, fmt.Errorf("load medium post %s: %w", postId, err)
	}
	return models.NewMediumPost(meta), nil
}

func (d MediumPostDao) SaveMediumPost(ctx context.Context, postId string, post models.MediumPost) error {
	if err := d.Meta.UpdateMeta(ctx, tables.META_KIND_POST, postId, post.Meta()); err != nil {
		return fmt.Errorf("save medium post %s: %w", postId, err)
	}
	return nil
}
