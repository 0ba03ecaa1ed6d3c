// Package vista embeds small animated 3D scenes into page containers.
//
// # Overview
//
// vista ships three scenes: a textured earth globe with a location marker,
// a full-page particle and star backdrop, and a floating decorative cube.
// Each renders through a perspective camera onto a gg drawing surface,
// follows the pointer, and tears itself down completely on unmount.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/vista/mount"
//	    "github.com/gogpu/vista/page"
//	)
//
//	win := page.NewWindow(page.Size{Width: 1280, Height: 720}, 2)
//	el := page.NewElement(win, page.Size{Width: 400, Height: 400})
//
//	h := mount.Globe(el, mount.OnError(func(msg string) { log.Print(msg) }))
//	defer h.Unmount()
//
// # Architecture
//
// The module is organized into:
//   - page: containers, windows and listener handles
//   - scene, geo: scene graph, geometry and coordinate helpers
//   - shader, render: material programs, WGSL modules and the rasterizer
//   - anim, interaction, asset: frame loop, pointer state and texture loading
//   - host: the per-mount scene context and its ordered teardown
//   - globe, backdrop, floating: the scenes themselves
//   - mount: the page-facing entry points
//
// # Configuration
//
// Scene tunables live in [Config] and can be loaded from YAML with
// [LoadConfig]. Unset keys keep their [DefaultConfig] values.
//
// # Logging
//
// vista is silent by default. Use [SetLogger] to route its structured
// logs to any [log/slog] handler.
package vista
