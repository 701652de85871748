// Package tuicore: component_registry.go is the component instance registry
// (C6). Each rendered component occupies one ComponentInstance keyed by its
// full ancestor path of NodeKeys (not a bare NodeKey — NodeKey identity is
// only unique among siblings, so two components of the same type at the
// same index under different parents need distinct instances), holding the
// HookContext that backs its positional hook slots across renders.
// BeginRender/EndRender track which instances survived a render pass so
// stale ones can be cleaned up (effect cleanups run, hooks disposed) the way
// an unmounted SolidJS owner would be disposed — adapted here to a
// run-every-render component model instead of a run-once one.
package tuicore

import (
	"strings"
	"sync"
)

// InstancePath identifies a component occurrence by the chain of NodeKeys
// from the root down to it.
type InstancePath string

// pathFor appends key's string form to parent, forming a child path.
func pathFor(parent InstancePath, key NodeKey) InstancePath {
	if parent == "" {
		return InstancePath(key.String())
	}
	return InstancePath(string(parent) + "/" + key.String())
}

func (p InstancePath) String() string { return string(p) }

func (p InstancePath) hasPrefix(prefix InstancePath) bool {
	return strings.HasPrefix(string(p), string(prefix))
}

// ComponentInstance is the persistent state behind one component occurrence
// in the tree, identified by InstancePath across renders.
type ComponentInstance struct {
	Path  InstancePath
	Key   NodeKey
	Hooks *HookContext
	used  bool
}

// Registry tracks component instances for one App/tree.
type Registry struct {
	mu        sync.Mutex
	instances map[InstancePath]*ComponentInstance
}

// NewRegistry returns an empty component instance registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[InstancePath]*ComponentInstance)}
}

// GetOrCreate returns the instance at path, creating one (with a fresh,
// empty HookContext) on first encounter. Marks the instance used for the
// current render pass.
func (r *Registry) GetOrCreate(path InstancePath, key NodeKey) *ComponentInstance {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instances[path]
	if !ok {
		inst = &ComponentInstance{Path: path, Key: key, Hooks: newHookContext()}
		r.instances[path] = inst
	}
	inst.used = true
	return inst
}

// BeginRender clears the used flag on every instance, so EndRender can tell
// which ones were not visited by the render that just started.
func (r *Registry) BeginRender() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inst := range r.instances {
		inst.used = false
	}
}

// EndRender returns the paths of instances not touched since BeginRender —
// these are the unmounted components whose effect cleanups must run.
func (r *Registry) EndRender() []InstancePath {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stale []InstancePath
	for path, inst := range r.instances {
		if !inst.used {
			stale = append(stale, path)
		}
	}
	return stale
}

// Cleanup runs effect cleanups for and evicts each instance named in paths.
func (r *Registry) Cleanup(paths []InstancePath) {
	r.mu.Lock()
	evicted := make([]*ComponentInstance, 0, len(paths))
	for _, path := range paths {
		if inst, ok := r.instances[path]; ok {
			evicted = append(evicted, inst)
			delete(r.instances, path)
		}
	}
	r.mu.Unlock()

	for _, inst := range evicted {
		inst.Hooks.disposeAll()
	}
}

// Clear disposes every instance in the registry, e.g. on app shutdown.
func (r *Registry) Clear() {
	r.mu.Lock()
	all := make([]*ComponentInstance, 0, len(r.instances))
	for _, inst := range r.instances {
		all = append(all, inst)
	}
	r.instances = make(map[InstancePath]*ComponentInstance)
	r.mu.Unlock()

	for _, inst := range all {
		inst.Hooks.disposeAll()
	}
}
