// Package page models the host environment a scene is embedded in: the
// container element that holds the render surface, the window it lives in,
// and the pointer, touch and resize notifications both deliver.
//
// Element and Window are concrete in-memory implementations. Desktop and
// headless hosts drive them by calling the Dispatch and Set methods from
// their event goroutine; scenes only see the Container interface.
package page
