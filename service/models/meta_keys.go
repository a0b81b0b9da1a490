package models

// Per-user metadata keys.
const (
	META_USER_DEFAULT_LICENSE = "medium_user_default_license"
	META_USER_DEFAULT_STATUS  = "medium_user_default_status"
	META_USER_ID              = "medium_user_id"
	META_USER_IMAGE_URL       = "medium_user_image_url"
	META_USER_NAME            = "medium_user_name"
	META_USER_TOKEN           = "medium_integration_token"
	META_USER_URL             = "medium_user_url"
)

// Per-post metadata keys.
const (
	META_POST_ID      = "medium_post_id"
	META_POST_LICENSE = "medium_post_license"
	META_POST_STATUS  = "medium_post_status"
	META_POST_URL     = "medium_post_url"
)
