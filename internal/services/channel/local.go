package channel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

type envelope struct {
	id    string
	ctx   context.Context
	msg   domain.Message
	reply chan domain.Response
}

// Local is an in-process port to a Handler
type Local struct {
	handler  Handler
	requests chan envelope
	done     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
	logger   *slog.Logger
}

// NewLocal starts serving h. Call Close to stop.
func NewLocal(h Handler, logger *slog.Logger) *Local {
	l := &Local{
		handler:  h,
		requests: make(chan envelope),
		done:     make(chan struct{}),
		logger:   logger,
	}
	l.wg.Add(1)
	go l.serve()
	return l
}

func (l *Local) serve() {
	defer l.wg.Done()
	for {
		select {
		case <-l.done:
			return
		case env := <-l.requests:
			l.wg.Add(1)
			go func() {
				defer l.wg.Done()
				resp := Serve(env.ctx, l.handler, env.msg)
				l.logger.Debug("port reply", "id", env.id, "action", env.msg.Action, "error", resp.Error != "")
				env.reply <- resp
			}()
		}
	}
}

// Send delivers msg and waits for the response. After Close it fails with
// domain.ErrContextInvalidated.
func (l *Local) Send(ctx context.Context, msg domain.Message) (domain.Response, error) {
	env := envelope{
		id:    uuid.NewString(),
		ctx:   ctx,
		msg:   msg,
		reply: make(chan domain.Response, 1),
	}

	select {
	case <-l.done:
		return domain.Response{}, domain.ErrContextInvalidated
	case <-ctx.Done():
		return domain.Response{}, ctx.Err()
	case l.requests <- env:
	}

	select {
	case resp := <-env.reply:
		return resp, nil
	case <-l.done:
		return domain.Response{}, domain.ErrContextInvalidated
	case <-ctx.Done():
		return domain.Response{}, ctx.Err()
	}
}

// Close invalidates the port and waits for in-flight handlers to finish
func (l *Local) Close() error {
	l.once.Do(func() { close(l.done) })
	l.wg.Wait()
	return nil
}
