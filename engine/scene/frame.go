package scene

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/polydrift/engine/model"
	"github.com/Carmen-Shannon/polydrift/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Frame is an immutable snapshot of a scene, everything a renderer needs to draw one frame.
// Models holds one matrix per drifter; the outline and fill draws of drifter i both use Models[i].
type Frame struct {
	Scene          string
	ViewProj       mgl32.Mat4
	View           mgl32.Mat4
	CameraPosition mgl32.Vec3
	Near, Far      float32
	Fog            Fog
	Background     colorful.Color
	Outline        material.Params
	Fill           material.Params
	Mesh           model.Mesh
	Models         []mgl32.Mat4
}

func (s *scene) Frame() Frame {
	s.mu.RLock()
	f := Frame{
		Scene:      s.name,
		Fog:        s.fog,
		Background: s.background,
	}
	s.mu.RUnlock()

	f.ViewProj = s.cam.ViewProjectionMatrix()
	f.View = s.cam.ViewMatrix()
	f.CameraPosition = s.cam.Position()
	f.Near, f.Far = s.cam.Near(), s.cam.Far()
	f.Outline = s.outline.Snapshot()
	f.Fill = s.fill.Snapshot()
	f.Mesh = s.mesh
	f.Models = s.buildModels()
	return f
}

// buildModels fans model matrix construction out over the frame pool in chunks and
// waits for every chunk. Workers only read drifter transforms.
func (s *scene) buildModels() []mgl32.Mat4 {
	n := len(s.drifters)
	models := make([]mgl32.Mat4, n)
	if n == 0 {
		return models
	}

	// The pool's own Wait blocks until workers idle-exit, so a WaitGroup is the per-frame barrier.
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < n; start += s.chunkSize {
		end := min(start+s.chunkSize, n)
		wg.Add(1)
		s.framePool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				for i := start; i < end; i++ {
					models[i] = s.drifters[i].ModelMatrix()
				}
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()
	return models
}
