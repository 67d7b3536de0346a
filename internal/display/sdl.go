// Package display hosts the emulator in an SDL2 window: framebuffer blit,
// audio queueing, and keyboard-to-controller mapping.
package display

import (
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/nesquik/corenes/internal/console"
	"github.com/nesquik/corenes/internal/input"
)

const (
	screenW = 256
	screenH = 240
	scale   = 3

	windowTitle = "corenes"

	audioBufferSize = 1024

	// NTSC frame cadence: 1789773 / 29780.5 Hz.
	targetFPS = 60.0988
)

var frameTime = time.Duration(float64(time.Second) / targetFPS)

// Window owns the SDL2 window, renderer, texture, and audio device for one
// running Console.
type Window struct {
	console *console.Console

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	audioDevice sdl.AudioDeviceID
	audioSpec   *sdl.AudioSpec

	running bool
}

// Open creates an SDL2 window bound to c. Call Run to enter the event
// loop; call Close when done.
func Open(c *console.Console) (*Window, error) {
	runtime.LockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, err
	}

	win, err := sdl.CreateWindow(windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		screenW*scale, screenH*scale, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, err
	}
	renderer.SetDrawBlendMode(sdl.BLENDMODE_NONE)

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING, screenW, screenH)
	if err != nil {
		renderer.Destroy()
		win.Destroy()
		sdl.Quit()
		return nil, err
	}
	texture.SetBlendMode(sdl.BLENDMODE_NONE)

	w := &Window{
		console:  c,
		window:   win,
		renderer: renderer,
		texture:  texture,
		running:  true,
	}
	if err := w.openAudio(); err != nil {
		// Audio is a convenience, not a requirement; keep running silent.
		w.audioDevice = 0
	} else {
		c.RegisterAudioSink(w.queueAudio)
	}
	return w, nil
}

// Close tears down the SDL2 resources.
func (w *Window) Close() {
	if w.audioDevice != 0 {
		sdl.CloseAudioDevice(w.audioDevice)
	}
	w.texture.Destroy()
	w.renderer.Destroy()
	w.window.Destroy()
	sdl.Quit()
}

// Run drives the console one frame per host frame, pacing to the NES's
// NTSC frame rate, until the window is closed or Escape is pressed.
func (w *Window) Run() {
	next := time.Now()
	for w.running {
		w.pollEvents()
		w.console.StepFrame()
		w.present()

		next = next.Add(frameTime)
		if d := time.Until(next); d > 0 {
			time.Sleep(d)
		} else {
			next = time.Now()
		}
	}
}

func (w *Window) pollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.running = false
		case *sdl.KeyboardEvent:
			w.handleKey(e)
		}
	}
}

func (w *Window) handleKey(e *sdl.KeyboardEvent) {
	pressed := e.State == sdl.PRESSED
	in := w.console.Input
	switch e.Keysym.Sym {
	case sdl.K_z:
		in.SetButton(0, input.ButtonA, pressed)
	case sdl.K_x:
		in.SetButton(0, input.ButtonB, pressed)
	case sdl.K_a:
		in.SetButton(0, input.ButtonSelect, pressed)
	case sdl.K_s:
		in.SetButton(0, input.ButtonStart, pressed)
	case sdl.K_UP:
		in.SetButton(0, input.ButtonUp, pressed)
	case sdl.K_DOWN:
		in.SetButton(0, input.ButtonDown, pressed)
	case sdl.K_LEFT:
		in.SetButton(0, input.ButtonLeft, pressed)
	case sdl.K_RIGHT:
		in.SetButton(0, input.ButtonRight, pressed)
	case sdl.K_ESCAPE:
		w.running = false
	}
}

func (w *Window) present() {
	fb := w.console.Framebuffer()
	w.texture.Update(nil, unsafe.Pointer(&fb[0]), screenW*4)
	w.renderer.SetDrawColor(0, 0, 0, 255)
	w.renderer.Clear()
	w.renderer.Copy(w.texture, nil, nil)
	w.renderer.Present()
}

func (w *Window) openAudio() error {
	want := &sdl.AudioSpec{
		Freq:     48000,
		Format:   sdl.AUDIO_F32LSB,
		Channels: 1,
		Samples:  audioBufferSize,
	}
	var have sdl.AudioSpec
	device, err := sdl.OpenAudioDevice("", false, want, &have, sdl.AUDIO_ALLOW_ANY_CHANGE)
	if err != nil {
		return fmt.Errorf("display: open audio device: %w", err)
	}
	w.audioDevice = device
	w.audioSpec = &have
	sdl.PauseAudioDevice(device, false)
	return nil
}

// queueAudio is the console's registered audio sink: sample batches land
// here as frames emulate and are handed to SDL's queue, dropped when the
// queue is already comfortably ahead of playback.
func (w *Window) queueAudio(samples []float32) {
	if w.audioDevice == 0 || len(samples) == 0 {
		return
	}
	queued := sdl.GetQueuedAudioSize(w.audioDevice)
	if queued >= uint32(audioBufferSize*4*2) {
		return
	}
	data := make([]byte, len(samples)*4)
	for i, s := range samples {
		bits := *(*uint32)(unsafe.Pointer(&s))
		data[i*4+0] = byte(bits)
		data[i*4+1] = byte(bits >> 8)
		data[i*4+2] = byte(bits >> 16)
		data[i*4+3] = byte(bits >> 24)
	}
	sdl.QueueAudio(w.audioDevice, data)
}
