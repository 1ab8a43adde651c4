package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/Beyondthell/shopify-auction-backend/internal/auctionerrors"
	model "github.com/Beyondthell/shopify-auction-backend/internal/models"
)

// DynamoRepo persists auction state and bid history in DynamoDB.
//
// Table requirements:
//   - states table: PK product_id (string), with a numeric version attribute
//   - bids table:   PK product_id (string), SK bid_id (string)
//
// The version compare-and-swap maps onto a ConditionExpression, and
// CommitBid uses TransactWriteItems so the state swap and the bid append
// commit or fail together.
type DynamoRepo struct {
	ddb         *dynamodb.Client
	statesTable string
	bidsTable   string
}

var _ AuctionStore = (*DynamoRepo)(nil)

// NewDynamoRepo creates a DynamoDB-backed store over the given tables.
func NewDynamoRepo(ddb *dynamodb.Client, statesTable, bidsTable string) *DynamoRepo {
	return &DynamoRepo{ddb: ddb, statesTable: statesTable, bidsTable: bidsTable}
}

// NewDynamoClient builds a DynamoDB client from explicit settings. An
// empty endpoint uses the real AWS endpoint for the region; a non-empty
// one targets a local DynamoDB, which does not validate the static
// credentials but the SDK still requires them.
func NewDynamoClient(ctx context.Context, region, endpoint, accessKey, secretKey string) (*dynamodb.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

type stateItem struct {
	ProductID     string `dynamodbav:"product_id"`
	CloseTime     string `dynamodbav:"close_time,omitempty"`
	HighestAmount string `dynamodbav:"highest_amount,omitempty"`
	LeaderName    string `dynamodbav:"leader_name,omitempty"`
	LeaderEmail   string `dynamodbav:"leader_email,omitempty"`
	LastUpdatedAt string `dynamodbav:"last_updated_at"`
	NotifiedAt    string `dynamodbav:"notified_at,omitempty"`
	Version       int64  `dynamodbav:"version"`
}

type bidItem struct {
	ProductID   string `dynamodbav:"product_id"`
	BidID       string `dynamodbav:"bid_id"`
	BidderEmail string `dynamodbav:"bidder_email"`
	BidderName  string `dynamodbav:"bidder_name"`
	Amount      string `dynamodbav:"amount"`
	SubmittedAt string `dynamodbav:"submitted_at"`
}

func toStateItem(s model.AuctionState) stateItem {
	it := stateItem{
		ProductID:     s.ProductID,
		LeaderName:    s.LeaderName,
		LeaderEmail:   s.LeaderEmail,
		LastUpdatedAt: s.LastUpdatedAt.UTC().Format(time.RFC3339Nano),
		Version:       s.Version,
	}
	if s.CloseTime != nil {
		it.CloseTime = s.CloseTime.UTC().Format(time.RFC3339Nano)
	}
	if s.HighestAmount != nil {
		it.HighestAmount = s.HighestAmount.String()
	}
	if s.NotifiedAt != nil {
		it.NotifiedAt = s.NotifiedAt.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromStateItem(it stateItem) (model.AuctionState, error) {
	s := model.AuctionState{
		ProductID:   it.ProductID,
		LeaderName:  it.LeaderName,
		LeaderEmail: it.LeaderEmail,
		Version:     it.Version,
	}

	var err error
	if s.LastUpdatedAt, err = time.Parse(time.RFC3339Nano, it.LastUpdatedAt); err != nil {
		return model.AuctionState{}, fmt.Errorf("parse last_updated_at: %w", err)
	}
	if it.CloseTime != "" {
		t, err := time.Parse(time.RFC3339Nano, it.CloseTime)
		if err != nil {
			return model.AuctionState{}, fmt.Errorf("parse close_time: %w", err)
		}
		s.CloseTime = &t
	}
	if it.HighestAmount != "" {
		d, err := decimal.NewFromString(it.HighestAmount)
		if err != nil {
			return model.AuctionState{}, fmt.Errorf("parse highest_amount: %w", err)
		}
		s.HighestAmount = &d
	}
	if it.NotifiedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, it.NotifiedAt)
		if err != nil {
			return model.AuctionState{}, fmt.Errorf("parse notified_at: %w", err)
		}
		s.NotifiedAt = &t
	}
	return s, nil
}

func toBidItem(b model.Bid) bidItem {
	return bidItem{
		ProductID:   b.ProductID,
		BidID:       b.BidID,
		BidderEmail: b.BidderEmail,
		BidderName:  b.BidderName,
		Amount:      b.Amount.String(),
		SubmittedAt: b.SubmittedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromBidItem(it bidItem) (model.Bid, error) {
	amount, err := decimal.NewFromString(it.Amount)
	if err != nil {
		return model.Bid{}, fmt.Errorf("parse amount: %w", err)
	}
	submittedAt, err := time.Parse(time.RFC3339Nano, it.SubmittedAt)
	if err != nil {
		return model.Bid{}, fmt.Errorf("parse submitted_at: %w", err)
	}
	return model.Bid{
		BidID:       it.BidID,
		ProductID:   it.ProductID,
		BidderEmail: it.BidderEmail,
		BidderName:  it.BidderName,
		Amount:      amount,
		SubmittedAt: submittedAt,
	}, nil
}

// versionCondition guards a state put: version 1 requires the record to
// not exist yet; later versions require the stored version to match.
func versionCondition(version int64) (expr string, values map[string]types.AttributeValue) {
	if version == 1 {
		return "attribute_not_exists(product_id)", nil
	}
	return "version = :prev", map[string]types.AttributeValue{
		":prev": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", version-1)},
	}
}

// GetState reads the state record with a consistent read, returning the
// default open state when none exists.
func (r *DynamoRepo) GetState(ctx context.Context, productID string) (model.AuctionState, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.statesTable),
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return model.AuctionState{}, fmt.Errorf("get state for product %s: %w", productID, err)
	}
	if len(out.Item) == 0 {
		return model.NewAuctionState(productID), nil
	}

	var it stateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return model.AuctionState{}, fmt.Errorf("unmarshal state for product %s: %w", productID, err)
	}
	return fromStateItem(it)
}

// SaveState writes the state record guarded by the version condition.
func (r *DynamoRepo) SaveState(ctx context.Context, state model.AuctionState) error {
	av, err := attributevalue.MarshalMap(toStateItem(state))
	if err != nil {
		return fmt.Errorf("marshal state for product %s: %w", state.ProductID, err)
	}

	cond, values := versionCondition(state.Version)
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.statesTable),
		Item:                      av,
		ConditionExpression:       aws.String(cond),
		ExpressionAttributeValues: values,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("save state for product %s: %w", state.ProductID, auctionerrors.ErrVersionConflict)
		}
		return fmt.Errorf("save state for product %s: %w", state.ProductID, err)
	}
	return nil
}

// CommitBid writes the state swap and the bid append in one transaction.
func (r *DynamoRepo) CommitBid(ctx context.Context, state model.AuctionState, bid model.Bid) error {
	stateAV, err := attributevalue.MarshalMap(toStateItem(state))
	if err != nil {
		return fmt.Errorf("marshal state for product %s: %w", state.ProductID, err)
	}
	bidAV, err := attributevalue.MarshalMap(toBidItem(bid))
	if err != nil {
		return fmt.Errorf("marshal bid %s: %w", bid.BidID, err)
	}

	cond, values := versionCondition(state.Version)
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                 aws.String(r.statesTable),
					Item:                      stateAV,
					ConditionExpression:       aws.String(cond),
					ExpressionAttributeValues: values,
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.bidsTable),
					Item:      bidAV,
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			for _, reason := range canceled.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return fmt.Errorf("commit bid for product %s: %w", state.ProductID, auctionerrors.ErrVersionConflict)
				}
			}
		}
		return fmt.Errorf("commit bid for product %s: %w", state.ProductID, err)
	}
	return nil
}

// sortBidsBySubmission restores append order on a queried history. The
// sort key is the random bid_id, so DynamoDB hands items back in UUID
// order, not the order the bids landed. Ties on the timestamp fall back
// to bid_id so the order is stable.
func sortBidsBySubmission(bids []model.Bid) {
	sort.Slice(bids, func(i, j int) bool {
		if bids[i].SubmittedAt.Equal(bids[j].SubmittedAt) {
			return bids[i].BidID < bids[j].BidID
		}
		return bids[i].SubmittedAt.Before(bids[j].SubmittedAt)
	})
}

// ListBids queries the full bid history for a product in append order.
func (r *DynamoRepo) ListBids(ctx context.Context, productID string) ([]model.Bid, error) {
	bids := []model.Bid{}
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.bidsTable),
			KeyConditionExpression: aws.String("product_id = :pid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pid": &types.AttributeValueMemberS{Value: productID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query bids for product %s: %w", productID, err)
		}

		for _, raw := range out.Items {
			var it bidItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, fmt.Errorf("unmarshal bid for product %s: %w", productID, err)
			}
			bid, err := fromBidItem(it)
			if err != nil {
				return nil, fmt.Errorf("decode bid for product %s: %w", productID, err)
			}
			bids = append(bids, bid)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	sortBidsBySubmission(bids)
	return bids, nil
}

// ResetProduct writes the cleared state guarded by the version condition,
// then purges the bid history. The two steps cannot share one transaction
// (the history is unbounded, TransactWriteItems is not), so a bid that
// lands between them is lost to the purge; the in-memory store closes
// that window, here it stays a best effort.
func (r *DynamoRepo) ResetProduct(ctx context.Context, state model.AuctionState) error {
	if err := r.SaveState(ctx, state); err != nil {
		return err
	}
	return r.purgeBids(ctx, state.ProductID)
}

// purgeBids deletes every bid record for a product in batches of 25, the
// BatchWriteItem limit.
func (r *DynamoRepo) purgeBids(ctx context.Context, productID string) error {
	bids, err := r.ListBids(ctx, productID)
	if err != nil {
		return fmt.Errorf("purge bids for product %s: %w", productID, err)
	}

	for start := 0; start < len(bids); start += 25 {
		end := start + 25
		if end > len(bids) {
			end = len(bids)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, bid := range bids[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						"product_id": &types.AttributeValueMemberS{Value: productID},
						"bid_id":     &types.AttributeValueMemberS{Value: bid.BidID},
					},
				},
			})
		}

		batch := map[string][]types.WriteRequest{r.bidsTable: requests}
		for len(batch[r.bidsTable]) > 0 {
			out, err := r.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: batch})
			if err != nil {
				return fmt.Errorf("purge bids for product %s: %w", productID, err)
			}
			batch = out.UnprocessedItems
		}
	}
	return nil
}
