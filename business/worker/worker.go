// Package worker runs the per-session analysis pipeline: a goroutine per
// concern, joined by channels, exactly one owner per piece of rolling state.
package worker

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/persona-ai/goPersonaCoach/business/fusion"
	"github.com/persona-ai/goPersonaCoach/business/pipeline"
	"github.com/persona-ai/goPersonaCoach/business/report"
	"github.com/persona-ai/goPersonaCoach/foundation/pubsub"
	"github.com/persona-ai/goPersonaCoach/foundation/state"
	"github.com/persona-ai/goPersonaCoach/foundation/store"
)

const defaultCycleInterval = 100 * time.Millisecond

type Worker struct {
	config Config
	state  *state.State
	logger *zap.SugaredLogger

	feed     Feed
	sink     Sink
	sessions *store.Store
	pipe     *pipeline.Pipeline

	broker    *pubsub.Broker[Frame]
	startedAt time.Time
	averager  report.Averager

	videoSub      *pubsub.Subscriber[Frame]
	audioSub      *pubsub.Subscriber[Frame]
	transcriptSub *pubsub.Subscriber[Frame]
	displaySub    *pubsub.Subscriber[Frame]

	wg    sync.WaitGroup
	shut  chan struct{}
	error chan error
	once  sync.Once

	scoresCh chan fusion.FusedState
}

// Run starts the session worker and returns its error channel. The channel
// yields once, when the pipeline dies or is shut down.
func Run(s Settings) (<-chan error, error) {
	if s.CycleInterval <= 0 {
		s.CycleInterval = defaultCycleInterval
	}

	pipe, err := pipeline.New(s.Context, s.SampleRate)
	if err != nil {
		return nil, err
	}
	pipe.Start()

	if s.Profile != nil {
		if err := pipe.SetProfile(*s.Profile); err != nil {
			return nil, err
		}
	}

	w := &Worker{
		config:    s.Config,
		state:     state.NewState(),
		logger:    s.Logger,
		feed:      s.Feed,
		sink:      s.Sink,
		sessions:  s.Store,
		pipe:      pipe,
		broker:    pubsub.NewBroker[Frame](),
		startedAt: time.Now(),
		shut:      make(chan struct{}),
		error:     make(chan error, 1),
		scoresCh:  make(chan fusion.FusedState, 10),

		videoSub:      pubsub.NewSubscriber[Frame](10),
		audioSub:      pubsub.NewSubscriber[Frame](10),
		transcriptSub: pubsub.NewSubscriber[Frame](10),
		displaySub:    pubsub.NewSubscriber[Frame](10),
	}

	// Every subscription is registered before the feed goroutine starts, so
	// the first inbound frame always finds its topic.
	w.broker.Subscribe(videoTopic, w.videoSub)
	w.broker.Subscribe(audioTopic, w.audioSub)
	w.broker.Subscribe(transcriptTopic, w.transcriptSub)
	w.broker.Subscribe(transcriptTopic, w.displaySub)

	operations := []func(){
		w.feedOperation,
		w.cycleOperation,
		w.publishOperation,
	}

	g := len(operations)
	w.wg.Add(g)

	hasStarted := make(chan bool)

	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	for i := 0; i < g; i++ {
		<-hasStarted
	}

	return w.error, nil
}

// Shutdown terminates the pipeline goroutines and reports err (which may be
// nil for a clean session end) on the worker error channel.
func (w *Worker) Shutdown(err error) {
	w.once.Do(func() {
		w.logger.Infow("worker: shutdown: started")
		defer w.logger.Infow("worker: shutdown: completed")

		if err != nil {
			w.logger.Errorw("worker: shutdown", "ERROR", err)
		}
		w.logger.Infow("worker: shutdown: terminate goroutines")
		close(w.shut)

		w.error <- err
	})
}

// Wait blocks until all operation goroutines have exited.
func (w *Worker) Wait() {
	w.wg.Wait()
}
