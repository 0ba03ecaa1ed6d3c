// Command vista renders a scene headlessly and saves a frame as PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/vista"
	"github.com/gogpu/vista/anim"
	"github.com/gogpu/vista/asset"
	"github.com/gogpu/vista/host"
	"github.com/gogpu/vista/mount"
	"github.com/gogpu/vista/page"
)

func main() {
	var (
		sceneName = flag.String("scene", "globe", "scene to render: globe, backdrop or floating")
		width     = flag.Int("width", 400, "viewport width in CSS pixels")
		height    = flag.Int("height", 400, "viewport height in CSS pixels")
		ratio     = flag.Float64("ratio", 1, "device pixel ratio")
		frames    = flag.Int("frames", 60, "frames to advance before the snapshot")
		config    = flag.String("config", "", "YAML config file")
		assets    = flag.String("assets", ".", "directory textures are served from")
		baseURL   = flag.String("base-url", "", "fetch textures over HTTP from this origin instead")
		pointerX  = flag.Float64("pointer-x", -1, "hover the pointer at this client x")
		pointerY  = flag.Float64("pointer-y", -1, "hover the pointer at this client y")
		output    = flag.String("output", "vista.png", "output file")
		verbose   = flag.Bool("v", false, "log scene lifecycle to stderr")
	)
	flag.Parse()

	if *verbose {
		vista.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := vista.DefaultConfig()
	if *config != "" {
		var err error
		if cfg, err = vista.LoadConfig(*config); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	var fetcher asset.Fetcher = asset.DirFetcher(*assets)
	if *baseURL != "" {
		fetcher = asset.HTTPFetcher{Base: *baseURL}
	}

	size := page.Size{Width: *width, Height: *height}
	win := page.NewWindow(size, *ratio)
	el := page.NewElement(win, size)

	sched := anim.NewManualScheduler(time.Now())
	settled := *sceneName != "globe"
	opts := []mount.Option{
		mount.WithConfig(cfg),
		mount.WithFetcher(fetcher),
		mount.WithHostOptions(host.WithScheduler(sched)),
		mount.OnAssetLoaded(func() { settled = true }),
		mount.OnError(func(msg string) {
			log.Print(msg)
			settled = true
		}),
	}

	h, err := mountScene(*sceneName, el, opts)
	if err != nil {
		log.Fatal(err)
	}
	defer h.Unmount()

	if *pointerX >= 0 && *pointerY >= 0 {
		p := page.Pointer{ClientX: *pointerX, ClientY: *pointerY}
		el.DispatchPointerEnter()
		el.DispatchPointerMove(p)
		win.DispatchMouseMove(p)
	}

	// The texture load runs off the loop; keep ticking until it lands.
	deadline := time.Now().Add(10 * time.Second)
	for !settled && time.Now().Before(deadline) {
		sched.Advance(anim.DefaultFrameInterval)
		time.Sleep(time.Millisecond)
	}
	sched.Step(*frames, anim.DefaultFrameInterval)

	if err := save(*output, h); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	st := h.Context().Renderer().Stats()
	log.Printf("Frame saved to %s (%s, %d triangles, %d points, %d sprites)\n",
		*output, *sceneName, st.Triangles, st.Points, st.Sprites)
}

func mountScene(name string, el *page.Element, opts []mount.Option) (*mount.Handle, error) {
	var h *mount.Handle
	switch name {
	case "globe":
		h = mount.Globe(el, opts...)
	case "backdrop":
		h = mount.Backdrop(el, opts...)
	case "floating":
		h = mount.Floating(el, opts...)
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	if h == nil {
		return nil, fmt.Errorf("scene %q could not be mounted", name)
	}
	return h, nil
}

func save(path string, h *mount.Handle) error {
	img := h.Context().Renderer().Image()
	if img == nil {
		return fmt.Errorf("no frame rendered")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
