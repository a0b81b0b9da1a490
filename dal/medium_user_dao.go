package dal

import (
	"context"
	"fmt"

	tables "github.com/bezalel-media-core/crosspost/dal/tables/v1"
	models "github.com/bezalel-media-core/crosspost/service/models"
)

// MediumUserDao is the credential store: the Medium account linked to each local user.
// No enum validation happens here.
type MediumUserDao struct {
	Meta MetaStore
}

func (d MediumUserDao) GetMediumUser(ctx context.Context, userId string) (models.MediumUser, error) {
	if userId == "" {
		return models.MediumUser{}, nil
	}
	meta, err := d.Meta.GetAllMeta(ctx, tables.META_KIND_USER, userId)
	if err != nil {
		return models.MediumUser{}, fmt.Errorf("load medium user %s: %w", userId, err)
	}
	return models.NewMediumUser(meta), nil
}

// SaveMediumUser writes all seven keys, empty values included.
func (d MediumUserDao) SaveMediumUser(ctx context.Context, userId string, user models.MediumUser) error {
	if err := d.Meta.UpdateMeta(ctx, tables.META_KIND_USER, userId, user.Meta()); err != nil {
		return fmt.Errorf("save medium user %s: %w", userId, err)
	}
	return nil
}
