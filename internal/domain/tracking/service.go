package tracking

import (
	"context"
)

type TrackingService interface {
	Start(ctx context.Context) (SessionResponse, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Stop(ctx context.Context) (SessionResponse, error)
	Heartbeat(ctx context.Context, req HeartbeatRequest) error
	Status(ctx context.Context) (StatusResponse, error)
	SetInterval(ctx context.Context, req UpdateIntervalRequest) error
	Sessions(ctx context.Context, req ListSessionsRequest) ([]SessionResponse, error)
	Screenshots(ctx context.Context, sessionID string) ([]ScreenshotResponse, error)
}
