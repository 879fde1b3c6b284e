package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/persona-ai/goPersonaCoach/business/fusion"
	"github.com/persona-ai/goPersonaCoach/business/worker"
	"github.com/persona-ai/goPersonaCoach/foundation/config"
	"github.com/persona-ai/goPersonaCoach/foundation/logger"
	"github.com/persona-ai/goPersonaCoach/foundation/store"
)

var (
	version   string
	buildTime string
)

func main() {
	// =================================================================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Session struct {
			Context           string `conf:"default:job-seekers"`
			ProfileConfigPath string `conf:"default:,noprint"`
			ProfileID         string
		}
		Feed struct {
			URL string `conf:"default:ws://localhost:8081/feed"`
		}
		Audio struct {
			SampleRate      int `conf:"default:44100"`
			CycleIntervalMs int `conf:"default:100"`
		}
		Store struct {
			Path string `conf:"default:personacoach.db"`
		}
		Logger struct {
			LogDirectory string `conf:"default:,noprint"`
		}
	}{
		Version: conf.Version{
			Build: version,
			Desc:  buildTime,
		},
	}

	help, err := conf.Parse("PERSONA", &cfg)
	if err != nil {
		if help != "" {
			fmt.Println(help)
			os.Exit(0)
		}
		os.Exit(1)
	}

	// =================================================================================================================
	// Session Identity and Application Logger

	sessionID := uuid.New().String()

	log, err := logger.New(cfg.Logger.LogDirectory, sessionID)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	out, err := conf.String(&cfg)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
	}
	log.Infow("startup", "config", out, "sessionID", sessionID)

	// =================================================================================================================
	// Context Weight Profile

	sessionContext := fusion.Context(cfg.Session.Context)
	if _, err := fusion.ProfileFor(sessionContext); err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}

	var customProfile *fusion.WeightProfile
	if cfg.Session.ProfileConfigPath != "" {
		p, err := config.GetProfile(cfg.Session.ProfileConfigPath, cfg.Session.ProfileID)
		if err != nil {
			log.Errorw("startup", "ERROR", err)
			os.Exit(1)
		}
		wp := fusion.WeightProfile{
			Context:           fusion.Context(p.ID),
			EyeContact:        p.Weights.EyeContact,
			Posture:           p.Weights.Posture,
			BodyLanguage:      p.Weights.BodyLanguage,
			FacialExpression:  p.Weights.FacialExpression,
			VoiceQuality:      p.Weights.VoiceQuality,
			SpeechClarity:     p.Weights.SpeechClarity,
			ContentEngagement: p.Weights.ContentEngagement,
		}
		if err := wp.Validate(); err != nil {
			log.Errorw("startup", "ERROR", err)
			os.Exit(1)
		}
		customProfile = &wp
	}

	// =================================================================================================================
	// Session Store

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	sessions, err := store.Open(ctx, cfg.Store.Path)
	cancel()
	if err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}
	defer sessions.Close()

	// =================================================================================================================
	// Media Feed

	conn, _, err := websocket.DefaultDialer.Dial(cfg.Feed.URL, nil)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}
	defer conn.Close()

	feed := newWsFeed(conn)

	// =================================================================================================================
	// Run Worker

	workerCh, err := worker.Run(worker.Settings{
		Logger:  log,
		Feed:    feed,
		Sink:    feed,
		Store:   sessions,
		Profile: customProfile,
		Config: worker.Config{
			SessionID:     sessionID,
			Context:       sessionContext,
			SampleRate:    cfg.Audio.SampleRate,
			CycleInterval: time.Duration(cfg.Audio.CycleIntervalMs) * time.Millisecond,
		},
	})
	if err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}

	// Blocking main and waiting for error or shutdown.
	err = <-workerCh

	log.Infow("shutdown", "status", "shutdown started")
	defer log.Infow("shutdown", "status", "shutdown complete")

	if err != nil {
		log.Errorw("shutdown", "ERROR", err)
	}
}
