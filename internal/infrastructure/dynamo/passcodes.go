package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/bankbot-fulfillment/internal/domain"
)

// PasscodeRepo persists one-time passcodes. PK: recipient.
// Put overwrites any prior record for the same recipient, which is how the
// at-most-one-live-code invariant is enforced.
type PasscodeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPasscodeRepo(client *dynamodb.Client, tableName string) *PasscodeRepo {
	return &PasscodeRepo{client: client, tableName: tableName}
}

func (r *PasscodeRepo) Put(ctx context.Context, p *domain.Passcode) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal passcode: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PasscodeRepo) Get(ctx context.Context, recipient string) (*domain.Passcode, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       recipientKey(recipient),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("passcode for %s: %w", recipient, domain.ErrNotFound)
	}
	var p domain.Passcode
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PasscodeRepo) Delete(ctx context.Context, recipient string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       recipientKey(recipient),
	})
	return err
}

func recipientKey(recipient string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"recipient": &types.AttributeValueMemberS{Value: recipient},
	}
}
