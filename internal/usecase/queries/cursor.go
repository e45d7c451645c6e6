package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// Cursor is an opaque keyset position over (created_at DESC, id DESC).
// After holds base64url("<unix micros>.<uuid>"); micros match the
// precision of a PostgreSQL timestamptz.
type Cursor struct {
	After string `json:"after,omitempty"`
}

func cursorAt(createdAt time.Time, id uuid.UUID) *Cursor {
	raw := strconv.FormatInt(createdAt.UnixMicro(), 10) + "." + id.String()
	return &Cursor{After: base64.URLEncoding.EncodeToString([]byte(raw))}
}

// position decodes the row the next page starts after.
func (c *Cursor) position() (time.Time, uuid.UUID, error) {
	raw, err := base64.URLEncoding.DecodeString(c.After)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(err, "cursor is not base64url")
	}
	micros, idPart, found := strings.Cut(string(raw), ".")
	if !found {
		return time.Time{}, uuid.Nil, errs.Newf("cursor %q has no separator", raw)
	}
	ts, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(err, "cursor timestamp")
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(err, "cursor id")
	}
	return time.UnixMicro(ts), id, nil
}

// ClampLimit maps a requested page size into [1, MaxListLimit].
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
