package root

import (
	"context"
	"database/sql"
	"fmt"

	"dailyroutine/internal/engine"
	"dailyroutine/internal/logger"
	"dailyroutine/internal/storage"
	"dailyroutine/internal/ui"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := cfg.ResolveDBPath(dbPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug().Str("path", path).Msg("opening database")
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := engine.NewService(db)
	ui.ApplySettings(svc.Settings(ctx))
	return svc, cleanup, nil
}

// resolveTask finds a task by id or unique id prefix, failing when none match.
func resolveTask(ctx context.Context, svc *engine.Service, ref string) (string, error) {
	t, err := svc.FindTask(ctx, ref)
	if err != nil {
		return "", err
	}
	if t == nil {
		return "", fmt.Errorf("no task matches %q", ref)
	}
	return t.ID, nil
}
