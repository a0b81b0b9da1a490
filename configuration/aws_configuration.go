package configuration

import (
	"os"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
)

var sessInst *session.Session
var once sync.Once

// GetAwsSession returns the process wide session used by the DynamoDB metadata
// store and the crosspost SNS publisher.
func GetAwsSession() *session.Session {
	if sessInst != nil {
		return sessInst
	}
	once.Do(func() {
		sess, err := NewAwsSession(GetEnvConfigs().AwsEndpoint)
		if err != nil {
			panic(err)
		}
		sessInst = sess
	})

	return sessInst
}

func NewAwsSession(endpoint string) (*session.Session, error) {
	creds := credentials.NewStaticCredentials(os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"), "")
	cfg := &aws.Config{
		Region:      aws.String(os.Getenv("AWS_REGION")),
		Credentials: creds,
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	return session.NewSession(cfg)
}
