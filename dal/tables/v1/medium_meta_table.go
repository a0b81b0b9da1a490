package v1

import "fmt"

type MetaKind string

const (
	META_KIND_USER MetaKind = "user"
	META_KIND_POST MetaKind = "post"
)

// MetaEntry is one key-value pair attached to a local user or post.
// Shared by the DynamoDB and SQLite metadata backends.
type MetaEntry struct {
	// Required
	EntityKey string `gorm:"primaryKey;size:191" dynamodbav:"EntityKey"` // <kind>#<entity id>
	MetaKey   string `gorm:"primaryKey;size:191" dynamodbav:"MetaKey"`   // medium_user_id, medium_post_status, ...

	// Optional
	MetaValue           string `dynamodbav:"MetaValue"`
	UpdatedAtEpochMilli int64  `dynamodbav:"UpdatedAtEpochMilli"`
}

func (MetaEntry) TableName() string {
	return "medium_meta"
}

func EntityKey(kind MetaKind, entityID string) string {
	return fmt.Sprintf("%s#%s", kind, entityID)
}
