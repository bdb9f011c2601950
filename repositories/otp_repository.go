package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golden-elegance/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// OTPRepository keeps the most recent one-time code per email. Replace
// supersedes every earlier code for the same email.
type OTPRepository interface {
	Latest(ctx context.Context, email string) (*models.OTPRecord, error)
	Replace(ctx context.Context, rec *models.OTPRecord) error
	Update(ctx context.Context, rec *models.OTPRecord) error
}

type MemoryOTPRepository struct {
	mu      sync.Mutex
	records map[string]models.OTPRecord
	nextID  int64
}

func NewMemoryOTPRepository() *MemoryOTPRepository {
	return &MemoryOTPRepository{records: make(map[string]models.OTPRecord)}
}

func (r *MemoryOTPRepository) Latest(_ context.Context, email string) (*models.OTPRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[email]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *MemoryOTPRepository) Replace(_ context.Context, rec *models.OTPRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec.ID = r.nextID
	r.records[rec.Email] = *rec
	return nil
}

func (r *MemoryOTPRepository) Update(_ context.Context, rec *models.OTPRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.records[rec.Email]; !ok || cur.ID != rec.ID {
		return nil
	}
	r.records[rec.Email] = *rec
	return nil
}

type RedisOTPRepository struct {
	client *redis.Client
}

func NewRedisOTPRepository(client *redis.Client) *RedisOTPRepository {
	return &RedisOTPRepository{client: client}
}

func otpKey(email string) string {
	return "otp_request_" + email
}

func (r *RedisOTPRepository) Latest(ctx context.Context, email string) (*models.OTPRecord, error) {
	data, err := r.client.Get(ctx, otpKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get otp: %w", err)
	}
	var rec models.OTPRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode otp: %w", err)
	}
	return &rec, nil
}

func (r *RedisOTPRepository) Replace(ctx context.Context, rec *models.OTPRecord) error {
	id, err := r.client.Incr(ctx, "otp_request_seq").Result()
	if err != nil {
		return fmt.Errorf("redis incr otp seq: %w", err)
	}
	rec.ID = id
	return r.store(ctx, r.client, rec)
}

// Update rewrites rec only while it is still the latest code for its email.
func (r *RedisOTPRepository) Update(ctx context.Context, rec *models.OTPRecord) error {
	key := otpKey(rec.Email)
	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("redis get otp: %w", err)
		}
		var cur models.OTPRecord
		if err := json.Unmarshal(data, &cur); err != nil {
			return fmt.Errorf("decode otp: %w", err)
		}
		if cur.ID != rec.ID {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return r.store(ctx, pipe, rec)
		})
		return err
	}, key)
}

// store keeps the record until it expires; an expired record is useless for
// verification and for the resend cooldown alike.
func (r *RedisOTPRepository) store(ctx context.Context, cmd redis.Cmdable, rec *models.OTPRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode otp: %w", err)
	}
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := cmd.Set(ctx, otpKey(rec.Email), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set otp: %w", err)
	}
	return nil
}

type PostgresOTPRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOTPRepository(db *pgxpool.Pool) *PostgresOTPRepository {
	return &PostgresOTPRepository{db: db}
}

func (r *PostgresOTPRepository) Latest(ctx context.Context, email string) (*models.OTPRecord, error) {
	query := `SELECT id, email, otp_hash, COALESCE(ip_address, ''), attempts, is_used, expires_at, created_at
	          FROM otp_requests WHERE email = $1 ORDER BY created_at DESC, id DESC LIMIT 1`

	var rec models.OTPRecord
	err := r.db.QueryRow(ctx, query, email).Scan(
		&rec.ID, &rec.Email, &rec.Hash, &rec.IPAddress, &rec.Attempts, &rec.Used, &rec.ExpiresAt, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load otp: %w", err)
	}
	return &rec, nil
}

func (r *PostgresOTPRepository) Replace(ctx context.Context, rec *models.OTPRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE otp_requests SET is_used = true WHERE email = $1 AND is_used = false`, rec.Email,
	); err != nil {
		return fmt.Errorf("failed to invalidate old otps: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO otp_requests (email, otp_hash, ip_address, attempts, is_used, expires_at, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		RETURNING id`,
		rec.Email, rec.Hash, rec.IPAddress, rec.Attempts, rec.Used, rec.ExpiresAt, rec.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to insert otp: %w", err)
	}

	return tx.Commit(ctx)
}

// Update applies only while rec is still the latest code for its email.
func (r *PostgresOTPRepository) Update(ctx context.Context, rec *models.OTPRecord) error {
	_, err := r.db.Exec(ctx,
		`UPDATE otp_requests o SET attempts = $1, is_used = $2
		 WHERE o.id = $3
		   AND NOT EXISTS (SELECT 1 FROM otp_requests n WHERE n.email = o.email AND n.id > o.id)`,
		rec.Attempts, rec.Used, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update otp: %w", err)
	}
	return nil
}
