package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	appctx "langodata/internal/core/context"
	"langodata/internal/domain/extract"
	"langodata/pkg/logger"
)

// CompressionAlgo specifies the compression algorithm used for stored SQL.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// QueryAudit records every executed extraction into the query_audit table.
// Recording is best-effort: a failed insert is logged and never fails the
// extraction that triggered it.
type QueryAudit struct {
	pool              *Pool
	encoder           *zstd.Encoder
	compressThreshold int
	log               *logger.Logger
}

// NewQueryAudit creates the audit trail writer.
func NewQueryAudit(pool *Pool, log *logger.Logger) (*QueryAudit, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	return &QueryAudit{
		pool:              pool,
		encoder:           encoder,
		compressThreshold: 10 * 1024,
		log:               log.WithComponent("query_audit"),
	}, nil
}

// Record implements extract.Auditor.
func (a *QueryAudit) Record(ctx context.Context, entry extract.AuditEntry) {
	var (
		sqlText       *string
		sqlCompressed []byte
		algo          = CompressionNone
	)
	if len(entry.SQL) > a.compressThreshold {
		sqlCompressed = a.encoder.EncodeAll([]byte(entry.SQL), nil)
		algo = CompressionZstd
	} else {
		sqlText = &entry.SQL
	}

	const insert = `
		INSERT INTO query_audit (
			id, username, data_group, data_source, data_type, filter_code,
			sql_text, sql_compressed, compression_algo, row_count, duration_ms,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := a.pool.Exec(ctx, insert,
		uuid.New(), appctx.GetUsername(ctx),
		entry.Group, entry.Source, entry.Type, entry.FilterCode,
		sqlText, sqlCompressed, algo, entry.RowCount,
		entry.Duration.Milliseconds(), time.Now().UTC(),
	)
	if err != nil {
		a.log.WithContext(ctx).Warnw("audit insert failed",
			"data_group", entry.Group, "error", err)
	}
}
