package httpapi

import (
	"log"
	"net/http"
	"time"

	"golang.org/x/net/websocket"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/services/combat/domain"
)

const (
	defaultReplayInterval = 500 * time.Millisecond
	maxReplayInterval     = 5 * time.Second
)

// handleReplay streams a stored combat frame by frame. The combat is loaded
// before the upgrade so a missing combat is a plain 404.
func (h handlers) handleReplay(w http.ResponseWriter, r *http.Request) {
	interval, err := replayInterval(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	combat, err := h.svc.GetCombat(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	frames := domain.Replay(combat)

	websocket.Handler(func(conn *websocket.Conn) {
		defer func() {
			_ = conn.Close()
		}()
		streamFrames(conn, frames, interval)
	}).ServeHTTP(w, r)
}

func streamFrames(conn *websocket.Conn, frames []domain.Frame, interval time.Duration) {
	ctx := conn.Request().Context()
	for i, frame := range frames {
		if i > 0 && interval > 0 {
			timer := time.NewTimer(interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		if err := websocket.JSON.Send(conn, frame); err != nil {
			log.Printf("replay stream closed frame=%d: %v", frame.Index, err)
			return
		}
	}
}

func replayInterval(r *http.Request) (time.Duration, error) {
	ms, err := httpx.QueryInt(r, "interval_ms", int(defaultReplayInterval/time.Millisecond))
	if err != nil {
		return 0, err
	}
	interval := time.Duration(ms) * time.Millisecond
	if interval < 0 || interval > maxReplayInterval {
		return 0, apperrors.New(apperrors.CodeInvalidArgument, "interval_ms must be between 0 and 5000")
	}
	return interval, nil
}
