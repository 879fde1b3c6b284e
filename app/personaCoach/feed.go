package main

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/persona-ai/goPersonaCoach/business/fusion"
	"github.com/persona-ai/goPersonaCoach/business/worker"
)

// wsFeed adapts one websocket connection into both the inbound media feed
// and the outbound score sink. Reads happen from a single worker goroutine;
// writes are serialized with a mutex since scores and transcripts can be
// sent from different instants of the publish loop.
type wsFeed struct {
	conn *websocket.Conn

	writeMu sync.Mutex
}

func newWsFeed(conn *websocket.Conn) *wsFeed {
	return &wsFeed{conn: conn}
}

func (f *wsFeed) ReadFrame() (worker.Frame, error) {
	var frame worker.Frame
	if err := f.conn.ReadJSON(&frame); err != nil {
		return worker.Frame{}, err
	}
	return frame, nil
}

func (f *wsFeed) SendScores(s fusion.FusedState) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	return f.conn.WriteJSON(struct {
		Type   string            `json:"type"`
		Scores fusion.FusedState `json:"scores"`
	}{
		Type:   "scores",
		Scores: s,
	})
}

func (f *wsFeed) SendTranscript(text string, isFinal bool) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	return f.conn.WriteJSON(struct {
		Type    string `json:"type"`
		Text    string `json:"text"`
		IsFinal bool   `json:"isFinal"`
	}{
		Type:    "transcript",
		Text:    text,
		IsFinal: isFinal,
	})
}
