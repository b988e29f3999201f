package transactionrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/domain/model/transaction"
	"valet/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const indexKey = "transactions"

// ErrDuplicateTransaction is returned when adding a transaction whose id is taken.
var ErrDuplicateTransaction = errors.New("transaction already exists")

// RedisTransactionRepository implements ports.TransactionRepository on Redis.
type RedisTransactionRepository struct {
	client redis.UniversalClient
}

func NewRedisTransactionRepository(client redis.UniversalClient) *RedisTransactionRepository {
	return &RedisTransactionRepository{client: client}
}

// Add stores tx and appends its id to the insertion-ordered index in one
// MULTI/EXEC. A concurrent Add of the same id aborts the transaction and is
// reported as ErrDuplicateTransaction.
func (r *RedisTransactionRepository) Add(ctx context.Context, tx *transaction.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(fromDomain(tx))
	if err != nil {
		return fmt.Errorf("encode transaction: %w", err)
	}

	key := documentKey(tx.ID())
	err = r.client.Watch(ctx, func(rtx *redis.Tx) error {
		exists, existsErr := rtx.Exists(ctx, key).Result()
		if existsErr != nil {
			return existsErr
		}
		if exists > 0 {
			return ErrDuplicateTransaction
		}

		_, pipeErr := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.RPush(ctx, indexKey, tx.ID().String())
			return nil
		})
		return pipeErr
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrDuplicateTransaction
	}
	return err
}

func (r *RedisTransactionRepository) Get(ctx context.Context, id kernel.UUID) (*transaction.Transaction, error) {
	raw, err := r.client.Get(ctx, documentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.NewObjectNotFoundError("transaction", id.String())
		}
		return nil, err
	}
	return decode(raw)
}

// ListAll returns every transaction in the order it was added.
func (r *RedisTransactionRepository) ListAll(ctx context.Context) ([]*transaction.Transaction, error) {
	ids, err := r.client.LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*transaction.Transaction{}, nil
	}

	cmds := make([]*redis.StringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.Get(ctx, keyFor(id))
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	out := make([]*transaction.Transaction, 0, len(ids))
	for _, cmd := range cmds {
		raw, cmdErr := cmd.Bytes()
		if errors.Is(cmdErr, redis.Nil) {
			continue
		}
		if cmdErr != nil {
			return nil, cmdErr
		}
		tx, decodeErr := decode(raw)
		if decodeErr != nil {
			return nil, decodeErr
		}
		out = append(out, tx)
	}
	return out, nil
}

// UpdateStatus rewrites the stored document with the new status. Concurrent
// writers are not serialized; the last write wins.
func (r *RedisTransactionRepository) UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	raw, err := r.client.Get(ctx, documentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return errs.NewObjectNotFoundError("transaction", id.String())
		}
		return err
	}

	tx, err := decode(raw)
	if err != nil {
		return err
	}
	if err = tx.OverwriteStatus(status); err != nil {
		return err
	}

	data, err := json.Marshal(fromDomain(tx))
	if err != nil {
		return fmt.Errorf("encode transaction: %w", err)
	}

	updated, err := r.client.SetXX(ctx, documentKey(id), data, 0).Result()
	if err != nil {
		return err
	}
	if !updated {
		return errs.NewObjectNotFoundError("transaction", id.String())
	}
	return nil
}

func documentKey(id kernel.UUID) string {
	return keyFor(id.String())
}

func keyFor(id string) string {
	return "transaction:" + id
}

func decode(raw []byte) (*transaction.Transaction, error) {
	var dto transactionDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	return toDomain(dto)
}
