package termcore

// LayoutType selects which viewport-recompute algorithm a ScreenManager
// applies to its managed screens.
type LayoutType int

const (
	LayoutSingle LayoutType = iota
	LayoutSplitHorizontal
	LayoutSplitVertical
	LayoutGrid
	LayoutTabbed
	LayoutFloating
	LayoutCustom
)

// GridConfig configures LayoutGrid.
type GridConfig struct {
	Rows, Cols           int
	RowSpacing, ColSpacing int
}

// SplitConfig configures LayoutSplitHorizontal / LayoutSplitVertical.
// Ratio is clamped to [0.1, 0.9] by the manager before use.
type SplitConfig struct {
	Ratio   float64
	Spacing int
}

// layoutPlan is the output of a recompute: one viewport and visibility
// flag per managed screen, in the same order as m.screens.
type layoutPlan struct {
	viewports []Rect
	visible   []bool
}

// recomputeLayout dispatches on the manager's current LayoutType. It never
// mutates m; the caller applies the plan. custom is a pass-through: each
// screen keeps its externally set viewport and the manager only marks
// every screen visible.
func recomputeLayout(m *ScreenManager, bounds Rect) layoutPlan {
	n := len(m.screens)
	plan := layoutPlan{viewports: make([]Rect, n), visible: make([]bool, n)}

	switch m.layout {
	case LayoutSingle:
		layoutSingle(m, bounds, &plan)
	case LayoutSplitHorizontal:
		layoutSplit(m, bounds, &plan, true)
	case LayoutSplitVertical:
		layoutSplit(m, bounds, &plan, false)
	case LayoutGrid:
		layoutGrid(m, bounds, &plan)
	case LayoutTabbed:
		layoutTabbed(m, bounds, &plan)
	case LayoutFloating:
		layoutFloating(m, bounds, &plan)
	case LayoutCustom:
		layoutCustom(m, &plan)
	}
	return plan
}

func layoutSingle(m *ScreenManager, bounds Rect, plan *layoutPlan) {
	for i := range m.screens {
		if i == 0 {
			plan.viewports[i] = bounds
			plan.visible[i] = true
		} else {
			plan.visible[i] = false
		}
	}
}

func layoutSplit(m *ScreenManager, bounds Rect, plan *layoutPlan, horizontal bool) {
	ratio := clampRatio(m.split.Ratio)
	spacing := m.split.Spacing

	if horizontal {
		first := int(float64(bounds.Width-spacing) * ratio)
		second := bounds.Width - spacing - first
		for i := range m.screens {
			switch i {
			case 0:
				plan.viewports[i] = NewRect(bounds.X, bounds.Y, first, bounds.Height)
				plan.visible[i] = true
			case 1:
				plan.viewports[i] = NewRect(bounds.X+first+spacing, bounds.Y, second, bounds.Height)
				plan.visible[i] = true
			default:
				plan.visible[i] = false
			}
		}
		return
	}

	first := int(float64(bounds.Height-spacing) * ratio)
	second := bounds.Height - spacing - first
	for i := range m.screens {
		switch i {
		case 0:
			plan.viewports[i] = NewRect(bounds.X, bounds.Y, bounds.Width, first)
			plan.visible[i] = true
		case 1:
			plan.viewports[i] = NewRect(bounds.X, bounds.Y+first+spacing, bounds.Width, second)
			plan.visible[i] = true
		default:
			plan.visible[i] = false
		}
	}
}

func clampRatio(r float64) float64 {
	if r < 0.1 {
		return 0.1
	}
	if r > 0.9 {
		return 0.9
	}
	return r
}

func layoutGrid(m *ScreenManager, bounds Rect, plan *layoutPlan) {
	cfg := m.grid
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		for i := range m.screens {
			plan.visible[i] = false
		}
		return
	}
	cellWidth := (bounds.Width - cfg.ColSpacing*(cfg.Cols-1)) / cfg.Cols
	cellHeight := (bounds.Height - cfg.RowSpacing*(cfg.Rows-1)) / cfg.Rows
	capacity := cfg.Rows * cfg.Cols

	for i := range m.screens {
		if i >= capacity {
			plan.visible[i] = false
			continue
		}
		row := i / cfg.Cols
		col := i % cfg.Cols
		x := bounds.X + col*(cellWidth+cfg.ColSpacing)
		y := bounds.Y + row*(cellHeight+cfg.RowSpacing)
		plan.viewports[i] = NewRect(x, y, cellWidth, cellHeight)
		plan.visible[i] = true
	}
}

func layoutTabbed(m *ScreenManager, bounds Rect, plan *layoutPlan) {
	for i := range m.screens {
		if i == m.active {
			plan.viewports[i] = bounds
			plan.visible[i] = true
		} else {
			plan.visible[i] = false
		}
	}
}

func layoutFloating(m *ScreenManager, bounds Rect, plan *layoutPlan) {
	for i, ms := range m.screens {
		plan.viewports[i] = ms.viewport.Clamp(bounds)
		plan.visible[i] = ms.visible
	}
}

func layoutCustom(m *ScreenManager, plan *layoutPlan) {
	for i, ms := range m.screens {
		plan.viewports[i] = ms.viewport
		plan.visible[i] = true
	}
}
