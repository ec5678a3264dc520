package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/RichardAwuor/Collarless/internal/domain/entities"
	"github.com/RichardAwuor/Collarless/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultAttemptsTableName   = "payment_attempts"
	attemptsCorrelationIndex   = "correlation_key-index"
	attemptsStateDeadlineIndex = "state-index"
)

type paymentAttemptItem struct {
	ID                string `dynamodbav:"id"`
	CorrelationKey    string `dynamodbav:"correlation_key,omitempty"`
	MerchantRequestID string `dynamodbav:"merchant_request_id,omitempty"`
	State             string `dynamodbav:"state"`
	FailureReason     string `dynamodbav:"failure_reason,omitempty"`
	FailureDetail     string `dynamodbav:"failure_detail,omitempty"`

	Amount           int64  `dynamodbav:"amount"`
	PhoneNumber      string `dynamodbav:"phone_number"`
	AccountReference string `dynamodbav:"account_reference"`
	Description      string `dynamodbav:"description"`

	RequestTimestamp string `dynamodbav:"request_timestamp"`
	// epoch millis so the state-index range key compares numerically
	Deadline int64 `dynamodbav:"deadline"`

	CallbackPayloadRaw     string `dynamodbav:"callback_payload_raw,omitempty"`
	LateCallbackPayloadRaw string `dynamodbav:"late_callback_payload_raw,omitempty"`
	CallbackReceivedCount  int    `dynamodbav:"callback_received_count"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// PaymentAttemptDynamoRepository persists PaymentAttempt entities in
// DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: correlation_key-index (PK: correlation_key)
//   - GSI: state-index (PK: state, SK: deadline (number))
//
// Conditional expressions carry the concurrency contract: Transition only
// applies while the stored state equals the expected one, and a failed
// condition is reported as a zero-value attempt, never as an error.

type PaymentAttemptDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentLedgerRepository = (*PaymentAttemptDynamoRepository)(nil)

func NewPaymentAttemptDynamoRepository(ddb *dynamodb.Client) *PaymentAttemptDynamoRepository {
	return &PaymentAttemptDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENT_ATTEMPTS_TABLE", defaultAttemptsTableName),
	}
}

func (r *PaymentAttemptDynamoRepository) Create(ctx context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, error) {
	it := toPaymentAttemptItem(a)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.PaymentAttempt{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.PaymentAttempt{}, err
	}
	return a, nil
}

func (r *PaymentAttemptDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentAttempt, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentAttempt{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentAttempt{}, nil
	}

	var it paymentAttemptItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentAttempt{}, err
	}
	return fromPaymentAttemptItem(it), nil
}

func (r *PaymentAttemptDynamoRepository) GetByCorrelationKey(ctx context.Context, key string) (entities.PaymentAttempt, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(attemptsCorrelationIndex),
		KeyConditionExpression: aws.String("correlation_key = :ck"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ck": &types.AttributeValueMemberS{Value: key},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.PaymentAttempt{}, err
	}
	if len(out.Items) == 0 {
		return entities.PaymentAttempt{}, nil
	}

	var it paymentAttemptItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.PaymentAttempt{}, err
	}
	return fromPaymentAttemptItem(it), nil
}

func (r *PaymentAttemptDynamoRepository) AttachCorrelationKey(ctx context.Context, id, merchantRequestID, correlationKey string) (entities.PaymentAttempt, error) {
	return r.update(ctx, id,
		"attribute_exists(#id) AND attribute_not_exists(#ck)",
		func(now string) (string, map[string]types.AttributeValue, map[string]string) {
			expr := "SET #ck = :ck, #mrid = :mrid, #updated_at = :updated_at"
			vals := map[string]types.AttributeValue{
				":ck":         &types.AttributeValueMemberS{Value: correlationKey},
				":mrid":       &types.AttributeValueMemberS{Value: merchantRequestID},
				":updated_at": &types.AttributeValueMemberS{Value: now},
			}
			names := map[string]string{
				"#ck":         "correlation_key",
				"#mrid":       "merchant_request_id",
				"#updated_at": "updated_at",
			}
			return expr, vals, names
		})
}

func (r *PaymentAttemptDynamoRepository) Transition(ctx context.Context, id string, from, to entities.AttemptState, payload json.RawMessage, reason entities.FailureReason, detail string) (entities.PaymentAttempt, error) {
	return r.update(ctx, id,
		"attribute_exists(#id) AND #state = :from",
		func(now string) (string, map[string]types.AttributeValue, map[string]string) {
			expr := "SET #state = :to, #updated_at = :updated_at"
			vals := map[string]types.AttributeValue{
				":from":       &types.AttributeValueMemberS{Value: string(from)},
				":to":         &types.AttributeValueMemberS{Value: string(to)},
				":updated_at": &types.AttributeValueMemberS{Value: now},
			}
			names := map[string]string{
				"#state":      "state",
				"#updated_at": "updated_at",
			}
			if reason != "" {
				expr += ", #reason = :reason"
				vals[":reason"] = &types.AttributeValueMemberS{Value: string(reason)}
				names["#reason"] = "failure_reason"
			}
			if detail != "" {
				expr += ", #detail = :detail"
				vals[":detail"] = &types.AttributeValueMemberS{Value: detail}
				names["#detail"] = "failure_detail"
			}
			if payload != nil {
				expr += ", #payload = :payload ADD #cbc :one"
				vals[":payload"] = &types.AttributeValueMemberS{Value: string(payload)}
				vals[":one"] = &types.AttributeValueMemberN{Value: "1"}
				names["#payload"] = "callback_payload_raw"
				names["#cbc"] = "callback_received_count"
			}
			return expr, vals, names
		})
}

func (r *PaymentAttemptDynamoRepository) RecordDuplicateCallback(ctx context.Context, id string, latePayload json.RawMessage) (entities.PaymentAttempt, error) {
	return r.update(ctx, id,
		"attribute_exists(#id)",
		func(now string) (string, map[string]types.AttributeValue, map[string]string) {
			expr := "SET #updated_at = :updated_at"
			vals := map[string]types.AttributeValue{
				":updated_at": &types.AttributeValueMemberS{Value: now},
				":one":        &types.AttributeValueMemberN{Value: "1"},
			}
			names := map[string]string{
				"#updated_at": "updated_at",
				"#cbc":        "callback_received_count",
			}
			if latePayload != nil {
				expr += ", #late = :late"
				vals[":late"] = &types.AttributeValueMemberS{Value: string(latePayload)}
				names["#late"] = "late_callback_payload_raw"
			}
			expr += " ADD #cbc :one"
			return expr, vals, names
		})
}

func (r *PaymentAttemptDynamoRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]entities.PaymentAttempt, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(attemptsStateDeadlineIndex),
		KeyConditionExpression: aws.String("#state = :pending AND #deadline < :now"),
		ExpressionAttributeNames: map[string]string{
			"#state":    "state",
			"#deadline": "deadline",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: string(entities.AttemptStatePending)},
			":now":     &types.AttributeValueMemberN{Value: strconv.FormatInt(now.UnixMilli(), 10)},
		},
		Limit: aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.PaymentAttempt, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentAttemptItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentAttemptItem(it))
	}
	return items, nil
}

func (r *PaymentAttemptDynamoRepository) update(
	ctx context.Context,
	id string,
	condition string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.PaymentAttempt, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			// Condition lost, e.g. another writer won the CAS.
			return entities.PaymentAttempt{}, nil
		}
		return entities.PaymentAttempt{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.PaymentAttempt{}, nil
	}
	var it paymentAttemptItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PaymentAttempt{}, err
	}
	return fromPaymentAttemptItem(it), nil
}

func toPaymentAttemptItem(a entities.PaymentAttempt) paymentAttemptItem {
	return paymentAttemptItem{
		ID:                     a.ID,
		CorrelationKey:         a.CorrelationKey,
		MerchantRequestID:      a.MerchantRequestID,
		State:                  string(a.State),
		FailureReason:          string(a.FailureReason),
		FailureDetail:          a.FailureDetail,
		Amount:                 a.Intent.Amount,
		PhoneNumber:            a.Intent.PhoneNumber,
		AccountReference:       a.Intent.AccountReference,
		Description:            a.Intent.Description,
		RequestTimestamp:       a.RequestTimestamp.UTC().Format(time.RFC3339Nano),
		Deadline:               a.Deadline.UnixMilli(),
		CallbackPayloadRaw:     string(a.CallbackPayloadRaw),
		LateCallbackPayloadRaw: string(a.LateCallbackPayloadRaw),
		CallbackReceivedCount:  a.CallbackReceivedCount,
		CreatedAt:              a.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:              a.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentAttemptItem(it paymentAttemptItem) entities.PaymentAttempt {
	requestTimestamp, _ := time.Parse(time.RFC3339Nano, it.RequestTimestamp)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.PaymentAttempt{
		ID:                it.ID,
		CorrelationKey:    it.CorrelationKey,
		MerchantRequestID: it.MerchantRequestID,
		State:             entities.AttemptState(it.State),
		FailureReason:     entities.FailureReason(it.FailureReason),
		FailureDetail:     it.FailureDetail,
		Intent: entities.PaymentIntent{
			Amount:           it.Amount,
			PhoneNumber:      it.PhoneNumber,
			AccountReference: it.AccountReference,
			Description:      it.Description,
		},
		RequestTimestamp:       requestTimestamp,
		Deadline:               time.UnixMilli(it.Deadline).UTC(),
		CallbackPayloadRaw:     rawOrNil(it.CallbackPayloadRaw),
		LateCallbackPayloadRaw: rawOrNil(it.LateCallbackPayloadRaw),
		CallbackReceivedCount:  it.CallbackReceivedCount,
		CreatedAt:              createdAt,
		UpdatedAt:              updatedAt,
	}
}

func rawOrNil(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}
