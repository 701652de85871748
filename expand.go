// Package tuicore: expand.go turns a declarative VNode tree (components
// still opaque) into a fully expanded tree of Box/Text nodes ready for
// layout, by invoking each Component function within its instance's hook
// context. This is the render phase: every component in view runs exactly
// once per frame, its hooks claim slots in positional order, and the
// component's own return value is itself expanded recursively so a
// component that renders another component works the same as any other
// child.
package tuicore

// ExpandResult is an expanded tree plus the instances visited while
// producing it, so the caller can run effects/drain commands afterward.
type ExpandResult struct {
	Tree    VNode
	Touched []*ComponentInstance
}

// ExpandTree expands root against registry with no runtime context, so
// hooks that need one (UseInput, UseMouse, UseMeasure, ...) see nil.
func ExpandTree(root VNode, registry *Registry) VNode {
	res := ExpandTreeWithRuntime(root, registry, nil)
	return res.Tree
}

// ExpandTreeWithRuntime is ExpandTree with an explicit runtime context
// (needed so UseMouse/UseMeasure/etc. have somewhere to register).
func ExpandTreeWithRuntime(root VNode, registry *Registry, rt *RuntimeContext) ExpandResult {
	var touched []*ComponentInstance
	tree := expandNode(root, "", registry, rt, &touched)
	return ExpandResult{Tree: tree, Touched: touched}
}

func expandNode(node VNode, parentPath InstancePath, registry *Registry, rt *RuntimeContext, touched *[]*ComponentInstance) VNode {
	if node.Kind == KindComponent {
		path := pathFor(parentPath, node.Key())
		inst := registry.GetOrCreate(path, node.Key())
		*touched = append(*touched, inst)

		inst.Hooks.beginRender(requestRenderFor(rt))
		result := withRenderContext(inst.Hooks, rt, func() VNode {
			return node.Component(node.Props)
		})
		inst.Hooks.endRender()

		return expandNode(result, path, registry, rt, touched)
	}

	if len(node.Children) == 0 {
		return node
	}

	expandedChildren := make([]VNode, len(node.Children))
	for i, child := range node.Children {
		expandedChildren[i] = expandNode(child, pathFor(parentPath, node.Key()), registry, rt, touched)
	}
	clone := node
	clone.Children = withIndices(expandedChildren)
	return clone
}

func requestRenderFor(rt *RuntimeContext) func() {
	if rt == nil {
		return func() {}
	}
	return rt.RequestRender
}

// CommitInstances runs pending effects and returns the commands enqueued by
// every instance touched during the render that just committed, then
// disposes any instance EndRender reports as stale.
func CommitInstances(registry *Registry, touched []*ComponentInstance) []Command {
	var commands []Command
	seen := make(map[InstancePath]bool, len(touched))
	for _, inst := range touched {
		if seen[inst.Path] {
			continue
		}
		seen[inst.Path] = true
		inst.Hooks.runEffects()
		commands = append(commands, inst.Hooks.drainCommands()...)
	}
	stale := registry.EndRender()
	if len(stale) > 0 {
		registry.Cleanup(stale)
	}
	return commands
}
