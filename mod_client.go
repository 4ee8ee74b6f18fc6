package vantage

import (
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// ClientModule owns the one window and the GPU surface behind it. The
// render system clears the surface to the ClearColor resource and
// presents; geometry submission sits behind the same pass when a
// backend grows one.
type ClientModule struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
	HideCursor   bool

	// Surface clear color; zero value means mid gray.
	Clear ClearColor

	// State to enter when the window is closed. Ignored for
	// stateless apps.
	QuitState State
}

type clientState struct {
	windowGlfw   *glfw.Window
	windowWidth  int
	windowHeight int

	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration

	quitState State
	stateful  bool
}

func (mod ClientModule) Install(app *App, cmd *Commands) {
	// https://github.com/go-gl/glfw
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // no OpenGL context, wgpu owns the surface
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(mod.WindowWidth, mod.WindowHeight, mod.WindowTitle, nil, nil)
	if err != nil {
		panic(err)
	}
	if mod.HideCursor {
		win.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	}

	state := &clientState{
		windowGlfw:   win,
		windowWidth:  mod.WindowWidth,
		windowHeight: mod.WindowHeight,
		quitState:    mod.QuitState,
		stateful:     app.stateful,
	}
	state.initGpu()

	app.UseSystem(
		System(windowEventsSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(renderClearSystem).
			InStage(Render).
			RunAlways(),
	)

	clear := mod.Clear
	if clear == (ClearColor{}) {
		clear = ClearColor{R: 0.5, G: 0.5, B: 0.5, A: 1}
	}
	cmd.AddResources(state, &clear)
}

func (state *clientState) initGpu() {
	// https://github.com/cogentcore/webgpu
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(state.windowGlfw))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		panic(err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(state.windowWidth),
		Height:      uint32(state.windowHeight),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &surfaceConfig)

	state.surface = surface
	state.adapter = adapter
	state.device = device
	state.queue = queue
	state.surfaceConfig = &surfaceConfig
}

func windowEventsSystem(state *clientState, cmd *Commands) {
	glfw.PollEvents()

	if state.windowGlfw.ShouldClose() && state.stateful {
		cmd.ChangeState(state.quitState)
	}

	w, h := state.windowGlfw.GetFramebufferSize()
	if w > 0 && h > 0 && (w != state.windowWidth || h != state.windowHeight) {
		state.windowWidth = w
		state.windowHeight = h
		state.surfaceConfig.Width = uint32(w)
		state.surfaceConfig.Height = uint32(h)
		state.surface.Configure(state.adapter, state.device, state.surfaceConfig)
	}
}

func renderClearSystem(state *clientState, clear *ClearColor) {
	texture, err := state.surface.GetCurrentTexture()
	if err != nil {
		// Swapchain can be momentarily invalid during resize; skip
		// the frame and let the next reconfigure fix it.
		return
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		return
	}
	defer view.Release()

	encoder, err := state.device.CreateCommandEncoder(nil)
	if err != nil {
		return
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  wgpu.LoadOpClear,
			StoreOp: wgpu.StoreOpStore,
			ClearValue: wgpu.Color{
				R: clear.R,
				G: clear.G,
				B: clear.B,
				A: clear.A,
			},
		}},
	})
	pass.End()
	pass.Release()

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return
	}
	defer cmdBuffer.Release()

	state.queue.Submit(cmdBuffer)
	state.surface.Present()
}
