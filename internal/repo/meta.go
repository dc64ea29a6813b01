package repo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	db "netrestrict/internal/db/gen"
)

// ---------------- User meta & network options ----------------

func (p *pgRepo) GetUserMeta(ctx context.Context, uid uuid.UUID, key string) (string, bool, error) {
	slog.DebugContext(ctx, "GetUserMeta", "user_id", uid.String(), "key", key)
	v, err := p.q.GetUserMeta(ctx, db.GetUserMetaParams{UserID: fromUUID(uid), MetaKey: key})
	if err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		slog.ErrorContext(ctx, "GetUserMeta failed", "err", err)
		return "", false, err
	}
	return v, true, nil
}

func (p *pgRepo) SetUserMeta(ctx context.Context, uid uuid.UUID, key, value string) error {
	slog.DebugContext(ctx, "SetUserMeta", "user_id", uid.String(), "key", key)
	err := p.q.SetUserMeta(ctx, db.SetUserMetaParams{UserID: fromUUID(uid), MetaKey: key, MetaValue: value})
	if err != nil {
		slog.ErrorContext(ctx, "SetUserMeta failed", "err", err)
	}
	return err
}

func (p *pgRepo) GetNetworkOption(ctx context.Context, key string) (string, bool, error) {
	slog.DebugContext(ctx, "GetNetworkOption", "key", key)
	v, err := p.q.GetNetworkOption(ctx, key)
	if err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		slog.ErrorContext(ctx, "GetNetworkOption failed", "err", err)
		return "", false, err
	}
	return v, true, nil
}

func (p *pgRepo) SetNetworkOption(ctx context.Context, key, value string) error {
	slog.DebugContext(ctx, "SetNetworkOption", "key", key)
	err := p.q.SetNetworkOption(ctx, db.SetNetworkOptionParams{OptionKey: key, OptionValue: value})
	if err != nil {
		slog.ErrorContext(ctx, "SetNetworkOption failed", "err", err)
	}
	return err
}
