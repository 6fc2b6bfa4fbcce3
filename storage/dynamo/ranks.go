package dynamo

import (
	"context"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"strconv"
)

// The baseline is a single item holding a team id -> rank map.
const baselinePK = 0

type baselineItem struct {
	PK    int            `dynamodbav:"PK"`
	Ranks map[string]int `dynamodbav:"Ranks"`
}

type rankStore struct {
	client *dynamodb.Client
	name   string
}

func (s *rankStore) SaveRanks(ctx context.Context, ranks map[int]int) error {
	item := baselineItem{PK: baselinePK, Ranks: make(map[string]int, len(ranks))}
	for id, rank := range ranks {
		item.Ranks[strconv.Itoa(id)] = rank
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: &s.name, Item: av})
	if err != nil {
		logging.Log.Errorf("RANK: failed to save baseline: %v", err)
	}
	return err
}

func (s *rankStore) LoadRanks(ctx context.Context) (map[int]int, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{TableName: &s.name, Key: pkKey(baselinePK)})
	if err != nil {
		logging.Log.Errorf("RANK: failed to load baseline: %v", err)
		return nil, err
	}
	ranks := map[int]int{}
	if out.Item == nil {
		return ranks, nil
	}
	var item baselineItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}
	for k, rank := range item.Ranks {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		ranks[id] = rank
	}
	return ranks, nil
}
