package tuicore

import "testing"

func TestRegisterMeasurementsPopulatesByKeyForEveryNode(t *testing.T) {
	tree := Box(Props{"width": 10, "height": 4},
		Text("hi", Props{"width": 2, "height": 1}),
	)
	box := ComputeLayout(tree, LayoutContext{Width: 10, Height: 4})

	rt := NewRuntimeContext()
	RegisterMeasurements(rt, box)

	w, h, ok := rt.MeasureKey(box.Node.Key())
	if !ok {
		t.Fatal("root box key not registered")
	}
	if w != box.InnerWidth || h != box.InnerHeight {
		t.Fatalf("MeasureKey(root) = (%d, %d), want (%d, %d)", w, h, box.InnerWidth, box.InnerHeight)
	}

	child := box.Children[0]
	w, h, ok = rt.MeasureKey(child.Node.Key())
	if !ok {
		t.Fatal("child box key not registered")
	}
	if w != child.InnerWidth || h != child.InnerHeight {
		t.Fatalf("MeasureKey(child) = (%d, %d), want (%d, %d)", w, h, child.InnerWidth, child.InnerHeight)
	}
}

func TestRegisterMeasurementsDropsStaleIDsEachFrame(t *testing.T) {
	rt := NewRuntimeContext()

	withID := Box(Props{"width": 5, "height": 1, MeasureIDProp: "panel"})
	box := ComputeLayout(withID, LayoutContext{Width: 5, Height: 1})
	RegisterMeasurements(rt, box)
	if _, _, ok := rt.Measure("panel"); !ok {
		t.Fatal("expected \"panel\" to be registered after the first frame")
	}

	withoutID := Box(Props{"width": 5, "height": 1})
	box = ComputeLayout(withoutID, LayoutContext{Width: 5, Height: 1})
	RegisterMeasurements(rt, box)
	if _, _, ok := rt.Measure("panel"); ok {
		t.Fatal("\"panel\" should not survive a frame that stopped registering it")
	}
}
