package dynamo

import (
	"context"
	"errors"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type Config struct {
	Endpoint    string
	Region      string
	TablePrefix string
}

type Store struct {
	Client *dynamodb.Client
	prefix string
}

const (
	tableTeams       = "Teams"
	tableUsers       = "Users"
	tableChallenges  = "Challenges"
	tableScores      = "Scores"
	tableActivity    = "Activity"
	tableSubmissions = "Submissions"
	tableRanks       = "RankBaseline"
	tableCounters    = "Counters"
)

// Open loads the default AWS configuration. A non-empty Endpoint points the
// client at a local DynamoDB such as localstack.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Store{Client: client, prefix: cfg.TablePrefix}, nil
}

func (s *Store) table(name string) string {
	return s.prefix + name
}

// EnsureTables creates any missing table with on-demand billing.
func (s *Store) EnsureTables(ctx context.Context) error {
	numeric := []string{tableTeams, tableUsers, tableChallenges, tableScores, tableActivity, tableSubmissions, tableRanks}
	for _, name := range numeric {
		if err := s.ensure(ctx, s.table(name), "PK", types.ScalarAttributeTypeN); err != nil {
			return err
		}
	}
	return s.ensure(ctx, s.table(tableCounters), "Name", types.ScalarAttributeTypeS)
}

func (s *Store) ensure(ctx context.Context, name, key string, kind types.ScalarAttributeType) error {
	_, err := s.Client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: &name})
	if err == nil {
		return nil
	}
	var nf *types.ResourceNotFoundException
	if !errors.As(err, &nf) {
		return fmt.Errorf("describe table %s: %w", name, err)
	}
	_, err = s.Client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:            &name,
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{{AttributeName: &key, AttributeType: kind}},
		KeySchema:            []types.KeySchemaElement{{AttributeName: &key, KeyType: types.KeyTypeHash}},
	})
	if err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}
	logging.Log.Infof("STORAGE: created dynamo table %s", name)
	return nil
}

func (s *Store) Repository() *storage.Repository {
	ids := &counters{client: s.Client, name: s.table(tableCounters)}
	return &storage.Repository{
		Mode: storage.ModeDynamo,
		Teams: &teamStore{ids: ids, t: &table[storage.Team]{
			client: s.Client, name: s.table(tableTeams), tag: "TEAM",
			id: func(t *storage.Team) int { return t.ID },
		}},
		Users: &userStore{ids: ids, t: &table[storage.User]{
			client: s.Client, name: s.table(tableUsers), tag: "USER",
			id: func(u *storage.User) int { return u.ID },
		}},
		Challenges: &challengeStore{ids: ids, t: &table[storage.Challenge]{
			client: s.Client, name: s.table(tableChallenges), tag: "CHALLENGE",
			id: func(c *storage.Challenge) int { return c.ID },
		}},
		Scores: &scoreStore{ids: ids, t: &table[storage.Score]{
			client: s.Client, name: s.table(tableScores), tag: "SCORE",
			id: func(sc *storage.Score) int { return sc.ID },
		}},
		Activities: &activityStore{ids: ids, t: &table[storage.Activity]{
			client: s.Client, name: s.table(tableActivity), tag: "ACTIVITY",
			id: func(a *storage.Activity) int { return a.ID },
		}},
		Submissions: &submissionStore{ids: ids, t: &table[storage.Submission]{
			client: s.Client, name: s.table(tableSubmissions), tag: "SUBMISSION",
			id: func(sb *storage.Submission) int { return sb.ID },
		}},
		Ranks: &rankStore{client: s.Client, name: s.table(tableRanks)},
	}
}
