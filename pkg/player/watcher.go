package player

import (
	"context"
	"log"
)

// WatchBus consumes pipeline bus messages until ctx is cancelled. On an
// end-of-stream message it advances the queue through the same skip path
// user commands use, under the controller lock. Advance errors (such as
// an exhausted queue) are logged and the loop keeps watching; this is
// the sole mechanism by which playback auto-advances.
func (c *Controller) WatchBus(ctx context.Context) {
	bus := c.driver.Bus()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-bus:
			if !ok {
				log.Printf("pipeline bus closed, end-of-stream watcher exiting")
				return
			}
			switch msg.Kind {
			case BusEOS:
				if err := c.Skip(); err != nil {
					log.Printf("end of stream: could not advance queue: %v", err)
				}
			case BusError:
				log.Printf("pipeline reported error: %v", msg.Err)
			}
		}
	}
}
