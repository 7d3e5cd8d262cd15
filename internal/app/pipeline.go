package app

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
)

// runPipeline is the main detection loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. Run hand detection and feed the strongest hand to the gesture engine
// 4. On an emitted event: persist it, run the bound plugin action, notify listeners
// 5. After 2s without motion, switch back to idle mode and reset the engine
func (a *App) runPipeline() {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					a.Engine().Reset()
					log.Println("Switched to idle mode")
				}
			}

			d := a.Detector()
			if !activeMode || d == nil {
				frame.Close()
				continue
			}

			hands, err := d.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			event, err := a.Engine().Process(strongestHand(hands), time.Now())
			if err != nil {
				log.Printf("Error processing hand frame: %v", err)
				continue
			}

			if event != nil {
				a.handleEvent(event)
			}
		}
	}
}

// strongestHand picks the detection with the highest score, or nil when
// no hand is visible. Hand loss has to reach the engine so it can reset
// its stabilizer buffer.
func strongestHand(hands []detector.HandFrame) *detector.HandFrame {
	var best *detector.HandFrame
	for i := range hands {
		if best == nil || hands[i].Score > best.Score {
			best = &hands[i]
		}
	}
	return best
}

// handleEvent persists an emitted event, executes the bound plugin
// action and notifies registered listeners.
func (a *App) handleEvent(event *gesture.Event) {
	log.Printf("Gesture emitted: %s (confidence %.2f)", event.Label, event.Confidence)

	if a.config.Store != nil {
		err := a.config.Store.Events().Insert(&store.Event{
			ID:         uuid.New().String(),
			SessionID:  a.SessionID(),
			Label:      string(event.Label),
			Confidence: event.Confidence,
			EmittedAt:  event.EmittedAt,
		})
		if err != nil {
			log.Printf("Error persisting event: %v", err)
		}

		a.executeBinding(event)
	}

	a.mu.RLock()
	listeners := make([]Listener, len(a.listeners))
	copy(listeners, a.listeners)
	a.mu.RUnlock()

	for _, l := range listeners {
		l(event)
	}
}

// executeBinding looks up the binding for the event's label and runs
// the bound plugin action. Unbound labels are skipped silently.
func (a *App) executeBinding(event *gesture.Event) {
	binding, err := a.config.Store.Bindings().GetByLabel(string(event.Label))
	if err != nil {
		log.Printf("Error looking up binding for %s: %v", event.Label, err)
		return
	}
	if binding == nil || !binding.Enabled {
		return
	}

	plg, err := a.pluginMgr.Get(binding.PluginName)
	if err != nil {
		log.Printf("Plugin %s not available for %s: %v", binding.PluginName, event.Label, err)
		return
	}

	if !plg.Manifest.Supports(binding.ActionName) {
		log.Printf("Plugin %s does not support action %s", binding.PluginName, binding.ActionName)
		return
	}

	config := binding.Config
	if config == nil {
		config = json.RawMessage("{}")
	}

	resp, err := a.pluginExec.Execute(plg, &plugin.Request{
		Action:     binding.ActionName,
		Label:      string(event.Label),
		Confidence: event.Confidence,
		Config:     config,
	})
	if err != nil {
		log.Printf("Error executing %s/%s: %v", binding.PluginName, binding.ActionName, err)
		return
	}
	if !resp.Success {
		log.Printf("Action %s/%s failed: %s", binding.PluginName, binding.ActionName, resp.Error)
	}
}
