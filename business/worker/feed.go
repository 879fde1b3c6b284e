package worker

import (
	"errors"
	"io"
)

// feedOperation reads inbound frames from the media feed and fans them out
// to the analyzer operations by topic.
func (w *Worker) feedOperation() {
	w.logger.Infow("worker: feedOperation: G started")
	defer w.logger.Infow("worker: feedOperation: G completed")

	frames := make(chan Frame)
	readErr := make(chan error, 1)

	go func() {
		for {
			frame, err := w.feed.ReadFrame()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case frames <- frame:
			case <-w.shut:
				return
			}
		}
	}()

	w.logger.Infow("worker: feedOperation: G listening")
	for {
		select {
		case frame := <-frames:
			topic, ok := topicFor(frame.Kind)
			if !ok {
				w.logger.Errorw("worker: feedOperation: unknown frame kind", "kind", frame.Kind)
				continue
			}
			if err := w.broker.Publish(topic, frame); err != nil {
				w.Shutdown(err)
				return
			}

		case err := <-readErr:
			// A closed feed is the normal end of a session.
			if errors.Is(err, io.EOF) {
				w.Shutdown(nil)
				return
			}
			w.Shutdown(err)
			return

		case <-w.shut:
			w.logger.Infow("worker: feedOperation: received shut signal")
			return
		}
	}
}

func topicFor(kind string) (string, bool) {
	switch kind {
	case "video":
		return videoTopic, true
	case "audio":
		return audioTopic, true
	case "transcript":
		return transcriptTopic, true
	}
	return "", false
}
