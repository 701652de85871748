// Package tuicore: registry.go holds the intrinsic element registry — the
// extension point by which element type ids pick up non-default
// measure/layout/render behaviour, beyond the default box/text handling
// built into layout.go/renderer_tree.go. Unregistered type ids fall back to
// plain box layout and painting.
package tuicore

import "sync"

// IntrinsicMeasureFunc measures the natural size of an intrinsic element.
type IntrinsicMeasureFunc func(node VNode) (width, height int)

// IntrinsicLayoutFunc computes the layout for an intrinsic element type.
type IntrinsicLayoutFunc func(node VNode, ctx LayoutContext) *LayoutBox

// IntrinsicRenderFunc paints an intrinsic element's own content (not its
// children, which the tree renderer recurses into regardless) onto buf.
type IntrinsicRenderFunc func(box *LayoutBox, buf *CellBuffer)

// IntrinsicHandler customises measurement/layout/rendering for one element
// type id. Any nil field falls back to the default box behaviour.
type IntrinsicHandler struct {
	Measure IntrinsicMeasureFunc
	Layout  IntrinsicLayoutFunc
	Render  IntrinsicRenderFunc
}

var (
	intrinsicRegistry = make(map[string]*IntrinsicHandler)
	registryMu        sync.RWMutex
)

// RegisterIntrinsic registers a handler for an intrinsic element type id,
// typically called from an init() function.
func RegisterIntrinsic(name string, handler *IntrinsicHandler) {
	registryMu.Lock()
	defer registryMu.Unlock()
	intrinsicRegistry[name] = handler
}

// GetIntrinsicHandler returns the handler registered for name, or nil.
func GetIntrinsicHandler(name string) *IntrinsicHandler {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return intrinsicRegistry[name]
}

// HasIntrinsicHandler reports whether a handler is registered for name.
func HasIntrinsicHandler(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := intrinsicRegistry[name]
	return ok
}
