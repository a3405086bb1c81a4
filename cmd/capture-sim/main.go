// capture-sim drives the client-side capture flow end to end without a
// device: it synthesizes touch and motion streams into a capture session,
// runs the extraction pipeline, and submits the gait payload to the hash
// backend. Works offline through the local fallback client.
package main

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/drushti-surkar/hashgait-demo/internal/capture"
	"github.com/drushti-surkar/hashgait-demo/internal/client"
	"github.com/drushti-surkar/hashgait-demo/internal/config"
	"github.com/drushti-surkar/hashgait-demo/internal/logging"
	"github.com/drushti-surkar/hashgait-demo/internal/models"
)

const simulatedWindow = 3 * time.Second

func main() {
	log, err := logging.Init("logs")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	session := capture.NewSession("sim-user", simulatedWindow)
	log.Info("Capture window opened",
		zap.String("session_id", session.ID()),
		zap.Duration("window", simulatedWindow),
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); produceTouches(session) }()
	go func() { defer wg.Done(); produceMotion(session, session.AddAccelerometer, 9.81) }()
	go func() { defer wg.Done(); produceMotion(session, session.AddGyroscope, 0.3) }()
	wg.Wait()

	result, err := session.Result()
	if err != nil {
		log.Fatal("Capture produced no usable data", zap.Error(err))
	}

	log.Info("Capture complete",
		zap.String("pattern_hash", result.PatternHash),
		zap.Int("confidence", result.Confidence),
		zap.Int("touch_samples", result.TouchSamples),
		zap.Int("accelerometer_samples", result.AccelerometerCount),
		zap.Int("gyroscope_samples", result.GyroscopeCount),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	timeout := time.Duration(config.Conf.Backend.TimeoutMS) * time.Millisecond
	backend := client.Probe(ctx, config.Conf.Backend.BaseURL, timeout, log)

	hashResult, err := backend.GenerateHash(ctx, result.GaitData)
	if err != nil {
		log.Fatal("Failed to hash gait data", zap.Error(err))
	}
	log.Info("Gait data hashed",
		zap.String("hash", hashResult.Hash),
		zap.Int("history_count", hashResult.HistoryCount),
	)

	hist, err := backend.History(ctx)
	if err != nil {
		log.Fatal("Failed to fetch hash history", zap.Error(err))
	}
	log.Info("Hash history", zap.Int("count", hist.Count), zap.Int("max", hist.MaxCount))

	stats, err := backend.Stats(ctx)
	if err != nil {
		log.Fatal("Failed to fetch backend stats", zap.Error(err))
	}
	log.Info("Backend stats",
		zap.Int64("total_hashes", stats.Stats.TotalHashesGenerated),
		zap.Float64("uptime_seconds", stats.Stats.ServerUptime),
	)
}

// produceTouches emits a slow synthetic swipe: a start sample, a stream of
// moves along a jittered diagonal, and an end sample carrying the duration.
func produceTouches(session *capture.Session) {
	start := time.Now()
	x, y := 100.0, 400.0

	if session.AddTouch(models.TouchSample{
		Timestamp: start.UnixMilli(),
		X:         x,
		Y:         y,
		Pressure:  0.4 + rand.Float64()*0.2,
		Phase:     models.TouchStart,
	}) != nil {
		return
	}

	ticker := time.NewTicker(40 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		x += 6 + rand.Float64()*2
		y -= 4 + rand.Float64()*2
		err := session.AddTouch(models.TouchSample{
			Timestamp: time.Now().UnixMilli(),
			X:         x,
			Y:         y,
			Pressure:  0.4 + rand.Float64()*0.2,
			Phase:     models.TouchMove,
		})
		if err != nil {
			return
		}
		if time.Since(start) > simulatedWindow-500*time.Millisecond {
			break
		}
	}

	session.AddTouch(models.TouchSample{
		Timestamp: time.Now().UnixMilli(),
		X:         x,
		Y:         y,
		Pressure:  0.3,
		Phase:     models.TouchEnd,
		Duration:  time.Since(start).Milliseconds(),
	})
}

// produceMotion emits sinusoidal motion samples with noise around the given
// baseline until the window closes.
func produceMotion(session *capture.Session, add func(models.MotionSample) error, baseline float64) {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	var t float64
	for range ticker.C {
		t += 0.02
		sample := models.MotionSample{
			Timestamp: time.Now().UnixMilli(),
			X:         math.Sin(t*2*math.Pi) * baseline * 0.1,
			Y:         math.Cos(t*2*math.Pi) * baseline * 0.1,
			Z:         baseline + (rand.Float64()-0.5)*baseline*0.05,
		}
		if add(sample) != nil {
			return
		}
	}
}
