package health

import (
	"context"
	"fmt"

	"github.com/MrWong99/flexfx/pkg/flexfx"
	"github.com/MrWong99/flexfx/pkg/flexfx/player"
)

// CatalogChecker reports ready once store holds at least min effect
// templates. It guards against a deployment whose effect files failed to
// load. The detail line carries the current catalog size.
func CatalogChecker(store *flexfx.Store, min int) Checker {
	return Checker{
		Name: "catalog",
		Check: func(ctx context.Context) (string, error) {
			n := store.Len()
			detail := fmt.Sprintf("%d effects loaded", n)
			if n < min {
				return detail, fmt.Errorf("only %d of %d expected effects loaded", n, min)
			}
			return detail, nil
		},
	}
}

// PlayerChecker reports on the scheduler's ability to make progress: a
// player that is suspended while plays are still queued is considered not
// ready, since nothing will sound until someone resumes it. The detail line
// carries the scheduler state and queue depth.
func PlayerChecker(p *player.Player) Checker {
	return Checker{
		Name: "player",
		Check: func(ctx context.Context) (string, error) {
			state, queued := p.State(), p.QueueLength()
			detail := fmt.Sprintf("state=%s queued=%d", state, queued)
			if state == player.StateSuspended && queued > 0 {
				return detail, fmt.Errorf("suspended with %d plays queued", queued)
			}
			return detail, nil
		},
	}
}
