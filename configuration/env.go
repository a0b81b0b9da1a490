package configuration

import (
	"fmt"
	"log"
	"os"
	"sync"

	"gopkg.in/yaml.v2"
)

const (
	META_BACKEND_DYNAMO = "dynamo"
	META_BACKEND_SQLITE = "sqlite"

	SESSION_BACKEND_MEMORY = "memory"
	SESSION_BACKEND_REDIS  = "redis"
)

type EnvConfigVals struct {
	ListenAddr     string   `yaml:"ListenAddr"`
	SiteName       string   `yaml:"SiteName"`
	MediumApiHost  string   `yaml:"MediumApiHost"`
	AdminApiKey    string   `yaml:"AdminApiKey"`
	AdminUserIDs   []string `yaml:"AdminUserIDs"`
	EditProfileURL string   `yaml:"EditProfileURL"` // fmt template, %s is the user id.

	MetaStoreBackend string `yaml:"MetaStoreBackend"`
	SqlitePath       string `yaml:"SqlitePath"`
	DynamoMetaTable  string `yaml:"DynamoMetaTable"`
	AwsEndpoint      string `yaml:"AwsEndpoint"` // Empty for the regional endpoint, set for dynamodb-local.

	SessionBackend string `yaml:"SessionBackend"`
	RedisAddr      string `yaml:"RedisAddr"`
	RedisPassword  string `yaml:"RedisPassword"`
	RedisDB        int    `yaml:"RedisDB"`
	NoticeTTLSec   int64  `yaml:"NoticeTTLSec"`

	CrosspostTopicArn string `yaml:"CrosspostTopicArn"` // Empty disables crosspost events.

	CanonicalUrlFromPermalink bool `yaml:"CanonicalUrlFromPermalink"`
	PersistOverridesOnFailure bool `yaml:"PersistOverridesOnFailure"`

	LogLevel  string `yaml:"LogLevel"`
	LogPretty bool   `yaml:"LogPretty"`
}

var configSync sync.Once
var EnvConfigs *EnvConfigVals

func GetEnvConfigs() *EnvConfigVals {
	if EnvConfigs != nil {
		return EnvConfigs
	}
	configSync.Do(func() {
		path := "./configuration/env-dev.yml"
		if os.Getenv("env") == "prod" {
			path = "./configuration/env-prod.yml"
		}
		vals, err := LoadEnvConfigs(path)
		if err != nil {
			log.Fatalf("failed to load config file: %s", err)
		}
		EnvConfigs = vals
	})
	return EnvConfigs
}

// LoadEnvConfigs reads a yaml config file and fills defaults for unset values.
// ADMIN_API_KEY and REDIS_PASSWORD in the environment override the file.
func LoadEnvConfigs(path string) (*EnvConfigVals, error) {
	configFile, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var vals EnvConfigVals
	err = yaml.Unmarshal(configFile, &vals)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshall config file values: %w", err)
	}
	if key := os.Getenv("ADMIN_API_KEY"); key != "" {
		vals.AdminApiKey = key
	}
	if pw := os.Getenv("REDIS_PASSWORD"); pw != "" {
		vals.RedisPassword = pw
	}
	vals.applyDefaults()
	if err := vals.validate(); err != nil {
		return nil, err
	}
	return &vals, nil
}

func (c *EnvConfigVals) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.MediumApiHost == "" {
		c.MediumApiHost = "https://api.medium.com"
	}
	if c.MetaStoreBackend == "" {
		c.MetaStoreBackend = META_BACKEND_SQLITE
	}
	if c.SqlitePath == "" {
		c.SqlitePath = "crosspost.db"
	}
	if c.DynamoMetaTable == "" {
		c.DynamoMetaTable = "MediumMeta"
	}
	if c.SessionBackend == "" {
		c.SessionBackend = SESSION_BACKEND_MEMORY
	}
	if c.NoticeTTLSec <= 0 {
		c.NoticeTTLSec = 3600
	}
	if c.EditProfileURL == "" {
		c.EditProfileURL = "/wp-admin/user-edit.php?user_id=%s"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *EnvConfigVals) validate() error {
	switch c.MetaStoreBackend {
	case META_BACKEND_DYNAMO, META_BACKEND_SQLITE:
	default:
		return fmt.Errorf("unknown MetaStoreBackend: %s", c.MetaStoreBackend)
	}
	switch c.SessionBackend {
	case SESSION_BACKEND_MEMORY, SESSION_BACKEND_REDIS:
	default:
		return fmt.Errorf("unknown SessionBackend: %s", c.SessionBackend)
	}
	if c.SessionBackend == SESSION_BACKEND_REDIS && c.RedisAddr == "" {
		return fmt.Errorf("RedisAddr is required for the redis session backend")
	}
	return nil
}
