package worker

// publishOperation forwards fused scores and display transcripts to the
// outbound sink. Sink failures end the session; there is nobody watching.
func (w *Worker) publishOperation() {
	w.logger.Infow("worker: publishOperation: G started")
	defer w.logger.Infow("worker: publishOperation: G completed")

	w.logger.Infow("worker: publishOperation: G listening")
	for {
		select {
		case fused := <-w.scoresCh:
			if err := w.sink.SendScores(fused); err != nil {
				w.Shutdown(err)
				return
			}

		case frame := <-w.displaySub.GetChannel():
			// Interim text is display-only; final text reaches the speech
			// analyzer through the cycle operation.
			if err := w.sink.SendTranscript(frame.Text, frame.IsFinal); err != nil {
				w.Shutdown(err)
				return
			}

		case <-w.shut:
			w.logger.Infow("worker: publishOperation: received shut signal")
			return
		}
	}
}
