package crosspost

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
)

const EVENT_TYPE_POST_CROSSPOSTED = "PostCrossposted"

type PostCrossposted struct {
	PostID                  string `json:"postId"`
	AuthorID                string `json:"authorId"`
	MediumPostID            string `json:"mediumPostId"`
	MediumURL               string `json:"mediumUrl"`
	Status                  string `json:"status"`
	License                 string `json:"license"`
	CrosspostedAtEpochMilli int64  `json:"crosspostedAtEpochMilli"`
}

type Message struct {
	Default string `json:"default"`
}

type SnsEventPublisher struct {
	svc      snsiface.SNSAPI
	topicArn string
}

func NewSnsEventPublisher(svc snsiface.SNSAPI, topicArn string) *SnsEventPublisher {
	return &SnsEventPublisher{svc: svc, topicArn: topicArn}
}

func (p *SnsEventPublisher) PublishCrossposted(ctx context.Context, evt PostCrossposted) error {
	eventBytes, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("error marshalling crosspost event: %w", err)
	}
	snsMessageBytes, err := json.Marshal(Message{Default: string(eventBytes)})
	if err != nil {
		return fmt.Errorf("error marshalling crosspost event wrapper: %w", err)
	}
	_, err = p.svc.PublishWithContext(ctx, &sns.PublishInput{
		Message:          aws.String(string(snsMessageBytes)),
		TopicArn:         aws.String(p.topicArn),
		MessageStructure: aws.String("json"),

		MessageAttributes: map[string]*sns.MessageAttributeValue{
			"filterKey": {
				DataType:    aws.String("String"),
				StringValue: aws.String(EVENT_TYPE_POST_CROSSPOSTED),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed publishing to crosspost sns topic: %w", err)
	}
	return nil
}
