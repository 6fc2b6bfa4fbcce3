// Package dynamo is the DynamoDB backend. Each collection lives in its own
// table keyed by a numeric PK; ids come from an atomic counter table.
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"sort"
	"strconv"
)

// table wraps the item operations shared by every collection.
type table[T any] struct {
	client *dynamodb.Client
	name   string
	tag    string
	id     func(*T) int
}

func pkKey(id int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberN{Value: strconv.Itoa(id)},
	}
}

func (t *table[T]) get(ctx context.Context, id int) (*T, error) {
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &t.name,
		Key:       pkKey(id),
	})
	if err != nil {
		logging.Log.Errorf("%s: GetItem for ID %d failed: %v", t.tag, id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%w: %s %d", storage.ErrNotFound, t.tag, id)
	}
	var item T
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		logging.Log.Errorf("%s: failed to unmarshal item %d: %v", t.tag, id, err)
		return nil, err
	}
	return &item, nil
}

// scan reads the whole table and sorts by id.
func (t *table[T]) scan(ctx context.Context) ([]*T, error) {
	var items []*T
	p := dynamodb.NewScanPaginator(t.client, &dynamodb.ScanInput{TableName: &t.name})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			logging.Log.Errorf("%s: scan failed: %v", t.tag, err)
			return nil, err
		}
		var batch []*T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			logging.Log.Errorf("%s: failed to unmarshal list: %v", t.tag, err)
			return nil, err
		}
		items = append(items, batch...)
	}
	sort.Slice(items, func(i, j int) bool { return t.id(items[i]) < t.id(items[j]) })
	return items, nil
}

func (t *table[T]) filter(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	all, err := t.scan(ctx)
	if err != nil {
		return nil, err
	}
	var out []*T
	for _, item := range all {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// put writes item. With mustExist the write fails with ErrNotFound when the
// PK is absent; otherwise it fails with ErrAlreadyExists when present.
func (t *table[T]) put(ctx context.Context, item *T, mustExist bool) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		logging.Log.Errorf("%s: failed to marshal item: %v", t.tag, err)
		return err
	}
	cond := "attribute_not_exists(PK)"
	if mustExist {
		cond = "attribute_exists(PK)"
	}
	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &t.name,
		Item:                av,
		ConditionExpression: aws.String(cond),
	})
	var cce *types.ConditionalCheckFailedException
	if errors.As(err, &cce) {
		if mustExist {
			return fmt.Errorf("%w: %s %d", storage.ErrNotFound, t.tag, t.id(item))
		}
		return fmt.Errorf("%w: %s %d", storage.ErrAlreadyExists, t.tag, t.id(item))
	}
	if err != nil {
		logging.Log.Errorf("%s: failed to put item %d: %v", t.tag, t.id(item), err)
		return err
	}
	return nil
}

func (t *table[T]) delete(ctx context.Context, id int) error {
	_, err := t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           &t.name,
		Key:                 pkKey(id),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	var cce *types.ConditionalCheckFailedException
	if errors.As(err, &cce) {
		return fmt.Errorf("%w: %s %d", storage.ErrNotFound, t.tag, id)
	}
	if err != nil {
		logging.Log.Errorf("%s: failed to delete item %d: %v", t.tag, id, err)
		return err
	}
	return nil
}

func (t *table[T]) deleteWhere(ctx context.Context, match func(*T) bool) error {
	items, err := t.filter(ctx, match)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := t.delete(ctx, t.id(item)); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	return nil
}

// counters hands out ids through an atomic ADD on a per-collection item.
type counters struct {
	client *dynamodb.Client
	name   string
}

func (c *counters) next(ctx context.Context, collection string) (int, error) {
	out, err := c.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &c.name,
		Key: map[string]types.AttributeValue{
			"Name": &types.AttributeValueMemberS{Value: collection},
		},
		UpdateExpression: aws.String("ADD #v :one"),
		ExpressionAttributeNames: map[string]string{
			"#v": "Value",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		logging.Log.Errorf("COUNTER: failed to increment %s: %v", collection, err)
		return 0, err
	}
	var v struct{ Value int }
	if err := attributevalue.UnmarshalMap(out.Attributes, &v); err != nil {
		return 0, err
	}
	return v.Value, nil
}
