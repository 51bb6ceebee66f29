package termcore

import (
	"sync"
	"time"
)

// FocusEventKind classifies a focus transition delivered to ScreenManager
// focus callbacks.
type FocusEventKind int

const (
	FocusGained FocusEventKind = iota
	FocusLost
	FocusLocked
	FocusUnlocked
)

// FocusEvent describes one focus transition. A locked event carries the
// locked screen in Screen and a nil Previous; an unlocked event carries a
// nil Screen and the released lock screen in Previous.
type FocusEvent struct {
	Kind        FocusEventKind
	Screen      *Screen
	Previous    *Screen
	TimestampMs int64
}

// ManagedScreen is one screen's bookkeeping inside a ScreenManager: its
// assigned viewport, z-order, visibility, and focusability.
type ManagedScreen struct {
	screen    *Screen
	viewport  Rect
	zIndex    int
	visible   bool
	focusable bool
	id        string
}

// Screen returns the underlying screen.
func (m *ManagedScreen) Screen() *Screen { return m.screen }

// Viewport returns the screen's current assigned viewport.
func (m *ManagedScreen) Viewport() Rect { return m.viewport }

// ZIndex returns the screen's current z-order value.
func (m *ManagedScreen) ZIndex() int { return m.zIndex }

// Visible reports whether the layout currently shows this screen.
func (m *ManagedScreen) Visible() bool { return m.visible }

// Focusable reports whether this screen can receive focus.
func (m *ManagedScreen) Focusable() bool { return m.focusable }

// ID returns the identifier the screen was added under, or "" if none.
func (m *ManagedScreen) ID() string { return m.id }

// ScreenManager partitions a terminal into viewports, one per managed
// screen, and routes resize, focus, and z-order across them. It never
// owns a screen's storage - only its placement and visibility.
type ScreenManager struct {
	mu sync.Mutex

	terminal *Terminal
	screens  []*ManagedScreen

	layout LayoutType
	grid   GridConfig
	split  SplitConfig

	focusedIndex     int
	focusLocked      bool
	focusLockScreen  *Screen
	modalScreen      *Screen
	active           int
	focusCallbacks   []func(FocusEvent)

	isResizing bool
	nextZIndex int

	logger Logger
}

// NewScreenManager builds a manager with no terminal and no screens. The
// default layout is single.
func NewScreenManager() *ScreenManager {
	return &ScreenManager{
		layout:       LayoutSingle,
		split:        SplitConfig{Ratio: 0.5},
		focusedIndex: -1,
		logger:       defaultLogger,
	}
}

// SetLogger installs the Logger used for per-screen resize failures.
func (m *ScreenManager) SetLogger(l Logger) {
	if l == nil {
		l = defaultLogger
	}
	m.logger = l
}

// SetTerminal attaches the terminal this manager computes viewports
// against and registers a resize callback that drives HandleResize.
func (m *ScreenManager) SetTerminal(t *Terminal) {
	m.terminal = t
	t.OnResize(func(evt ResizeEvent) {
		m.HandleResize(evt.New.Cols, evt.New.Rows, ResizePreserveContent)
	})
}

// SetLayout changes the active layout and recomputes viewports.
func (m *ScreenManager) SetLayout(l LayoutType) error {
	m.mu.Lock()
	m.layout = l
	m.mu.Unlock()
	return m.recompute()
}

// SetGridConfig installs the grid layout's row/column configuration and
// recomputes viewports under the current layout (the config only changes
// them while the grid layout is active).
func (m *ScreenManager) SetGridConfig(cfg GridConfig) error {
	m.mu.Lock()
	m.grid = cfg
	m.mu.Unlock()
	return m.recompute()
}

// SetSplitConfig installs the split layouts' ratio/spacing and recomputes
// viewports under the current layout (the config only changes them while a
// split layout is active). Ratio is clamped to [0.1, 0.9].
func (m *ScreenManager) SetSplitConfig(cfg SplitConfig) error {
	cfg.Ratio = clampRatio(cfg.Ratio)
	m.mu.Lock()
	m.split = cfg
	m.mu.Unlock()
	return m.recompute()
}

// SetScreenViewport sets a screen's viewport directly; meaningful for
// LayoutCustom, where the manager keeps it as set and only marks every
// screen visible, and for LayoutFloating, which clamps it to the terminal.
func (m *ScreenManager) SetScreenViewport(s *Screen, vp Rect) error {
	m.mu.Lock()
	ms := m.find(s)
	if ms == nil {
		m.mu.Unlock()
		return ErrScreenNotFound
	}
	ms.viewport = vp
	m.mu.Unlock()
	return m.recompute()
}

// AddScreen registers a screen under an optional id. The first screen
// added becomes focused and active. Recomputes layout.
func (m *ScreenManager) AddScreen(s *Screen, id string) error {
	m.mu.Lock()
	if id != "" {
		for _, ms := range m.screens {
			if ms.id == id {
				m.mu.Unlock()
				return ErrDuplicateID
			}
		}
	}
	ms := &ManagedScreen{screen: s, focusable: true, visible: true, id: id, zIndex: m.nextZIndex}
	m.nextZIndex++
	s.setParentManager(m, Rect{})
	m.screens = append(m.screens, ms)
	if len(m.screens) == 1 {
		m.focusedIndex = 0
		m.active = 0
	}
	m.mu.Unlock()
	return m.recompute()
}

// RemoveScreen locates s by identity and detaches it. Returns
// ErrScreenNotFound if s is not managed by m.
func (m *ScreenManager) RemoveScreen(s *Screen) error {
	m.mu.Lock()
	idx := -1
	for i, ms := range m.screens {
		if ms.screen == s {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return ErrScreenNotFound
	}
	s.clearParentManager()
	m.screens = append(m.screens[:idx], m.screens[idx+1:]...)
	m.adjustIndexAfterRemoval(idx)
	remaining := len(m.screens)
	m.mu.Unlock()
	if remaining == 0 {
		return nil
	}
	return m.recompute()
}

func (m *ScreenManager) adjustIndexAfterRemoval(removed int) {
	shift := func(idx int) int {
		switch {
		case idx == removed:
			return -1
		case idx > removed:
			return idx - 1
		default:
			return idx
		}
	}
	m.focusedIndex = shift(m.focusedIndex)
	m.active = shift(m.active)
	if m.active < 0 {
		m.active = 0
	}
}

func (m *ScreenManager) find(s *Screen) *ManagedScreen {
	for _, ms := range m.screens {
		if ms.screen == s {
			return ms
		}
	}
	return nil
}

// recompute runs the current layout algorithm against the terminal's own
// current size (as reported by GetSize) and applies it with
// ResizePreserveContent. Used by every structural change other than a
// resize event, where the triggering dimensions are instead known
// up front.
func (m *ScreenManager) recompute() error {
	m.mu.Lock()
	if m.terminal == nil {
		m.mu.Unlock()
		return ErrTerminalNotSet
	}
	size, err := m.terminal.GetSize()
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return m.recomputeWithBounds(NewRect(0, 0, size.Cols, size.Rows), ResizePreserveContent)
}

// recomputeWithBounds applies the current layout algorithm against an
// explicit terminal size, bypassing a (possibly stale) cached
// Terminal.GetSize - the caller already knows the authoritative
// dimensions, as HandleResize does from its cols/rows arguments.
func (m *ScreenManager) recomputeWithBounds(bounds Rect, mode ResizeMode) error {
	m.mu.Lock()
	plan := recomputeLayout(m, bounds)
	for i, ms := range m.screens {
		ms.visible = plan.visible[i]
		if ms.visible {
			ms.viewport = plan.viewports[i]
		}
	}
	screens := append([]*ManagedScreen(nil), m.screens...)
	m.mu.Unlock()

	for _, ms := range screens {
		if !ms.visible {
			continue
		}
		m.resizeOne(ms, mode)
	}
	return nil
}

func (m *ScreenManager) resizeOne(ms *ManagedScreen, mode ResizeMode) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("screen %q resize failed: %v", ms.id, r)
		}
	}()
	ms.screen.setParentManager(m, ms.viewport)
	ms.screen.Resize(ms.viewport.Width, ms.viewport.Height, mode)
}

// HandleResize is the manager's entry point from the terminal's resize
// notification. A re-entrancy guard rejects nested calls. Viewports are
// computed against the passed cols/rows directly rather than
// Terminal.GetSize, since a notification's dimensions may not yet be
// reflected in the terminal's own cache (e.g. when routed from an
// input-source resize event rather than the SIGWINCH path, which
// updates the cache before firing).
func (m *ScreenManager) HandleResize(cols, rows int, mode ResizeMode) error {
	m.mu.Lock()
	if m.isResizing {
		m.mu.Unlock()
		return ErrResizeInProgress
	}
	m.isResizing = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.isResizing = false
		m.mu.Unlock()
	}()

	if cols <= 0 || rows <= 0 {
		return ErrInvalidDimensions
	}
	return m.recomputeWithBounds(NewRect(0, 0, cols, rows), mode)
}

// FocusScreen focuses s if it is managed and focusable, emitting lost
// then gained events. Returns ErrFocusLocked if focus is locked to a
// different screen, ErrScreenNotFound if s is unmanaged.
func (m *ScreenManager) FocusScreen(s *Screen) error {
	m.mu.Lock()
	idx := -1
	for i, ms := range m.screens {
		if ms.screen == s {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return ErrScreenNotFound
	}
	if !m.screens[idx].focusable {
		m.mu.Unlock()
		return nil
	}
	if m.focusLocked && m.focusLockScreen != s {
		m.mu.Unlock()
		return ErrFocusLocked
	}
	m.setFocus(idx)
	m.mu.Unlock()
	return nil
}

// setFocus moves focus to idx, firing lost then gained. Caller holds mu.
func (m *ScreenManager) setFocus(idx int) {
	ts := time.Now().UnixMilli()
	var prev *Screen
	if m.focusedIndex >= 0 && m.focusedIndex < len(m.screens) {
		prev = m.screens[m.focusedIndex].screen
	}
	next := m.screens[idx].screen
	if prev == next {
		return
	}
	m.focusedIndex = idx
	if prev != nil {
		m.dispatchFocus(FocusEvent{Kind: FocusLost, Screen: prev, Previous: next, TimestampMs: ts})
	}
	m.dispatchFocus(FocusEvent{Kind: FocusGained, Screen: next, Previous: prev, TimestampMs: ts})
}

func (m *ScreenManager) dispatchFocus(evt FocusEvent) {
	for _, cb := range m.focusCallbacks {
		cb(evt)
	}
}

// OnFocusChange registers a callback invoked, in registration order, for
// every focus transition.
func (m *ScreenManager) OnFocusChange(cb func(FocusEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.focusCallbacks = append(m.focusCallbacks, cb)
}

// focusableVisible returns indices of screens that are both focusable
// and currently visible, in manager order. Caller holds mu.
func (m *ScreenManager) focusableVisible() []int {
	var out []int
	for i, ms := range m.screens {
		if ms.focusable && ms.visible {
			out = append(out, i)
		}
	}
	return out
}

// FocusNext cycles focus to the next focusable, visible screen. If there
// is none, focus is left unchanged and ErrNoFocusableScreens is returned.
func (m *ScreenManager) FocusNext() error { return m.cycleFocus(1) }

// FocusPrevious cycles focus to the previous focusable, visible screen.
func (m *ScreenManager) FocusPrevious() error { return m.cycleFocus(-1) }

func (m *ScreenManager) cycleFocus(delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	candidates := m.focusableVisible()
	if len(candidates) == 0 {
		return ErrNoFocusableScreens
	}
	if m.focusLocked {
		return ErrFocusLocked
	}
	pos := 0
	for i, idx := range candidates {
		if idx == m.focusedIndex {
			pos = i
			break
		}
	}
	next := candidates[(pos+delta+len(candidates))%len(candidates)]
	m.setFocus(next)
	return nil
}

// LockFocus locks focus to s, which must be managed and focusable, and
// fires a locked event. LockFocus(nil) releases the lock and fires
// unlocked.
func (m *ScreenManager) LockFocus(s *Screen) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s == nil {
		m.focusLocked = false
		prev := m.focusLockScreen
		m.focusLockScreen = nil
		m.dispatchFocus(FocusEvent{Kind: FocusUnlocked, Previous: prev, TimestampMs: time.Now().UnixMilli()})
		return nil
	}
	ms := m.find(s)
	if ms == nil || !ms.focusable {
		return ErrScreenNotFound
	}
	for i, cand := range m.screens {
		if cand.screen == s {
			m.setFocus(i)
			break
		}
	}
	m.focusLocked = true
	m.focusLockScreen = s
	m.dispatchFocus(FocusEvent{Kind: FocusLocked, Screen: s, TimestampMs: time.Now().UnixMilli()})
	return nil
}

// SetModalScreen brings s to the top of z-order and locks focus to it.
// SetModalScreen(nil) clears the modal state and releases the lock.
func (m *ScreenManager) SetModalScreen(s *Screen) error {
	if s == nil {
		m.mu.Lock()
		m.modalScreen = nil
		m.mu.Unlock()
		return m.LockFocus(nil)
	}
	if err := m.BringToFront(s); err != nil {
		return err
	}
	m.mu.Lock()
	m.modalScreen = s
	m.mu.Unlock()
	return m.LockFocus(s)
}

// ModalScreen returns the current modal screen, or nil if none.
func (m *ScreenManager) ModalScreen() *Screen {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modalScreen
}

// BringToFront sets s's z-index above every other managed screen.
func (m *ScreenManager) BringToFront(s *Screen) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms := m.find(s)
	if ms == nil {
		return ErrScreenNotFound
	}
	max := ms.zIndex
	for _, other := range m.screens {
		if other.zIndex > max {
			max = other.zIndex
		}
	}
	ms.zIndex = max + 1
	return nil
}

// SendToBack sets s's z-index below every other managed screen.
func (m *ScreenManager) SendToBack(s *Screen) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms := m.find(s)
	if ms == nil {
		return ErrScreenNotFound
	}
	min := ms.zIndex
	for _, other := range m.screens {
		if other.zIndex < min {
			min = other.zIndex
		}
	}
	ms.zIndex = min - 1
	return nil
}

// MoveUp swaps s's z-index with its nearest higher neighbor.
func (m *ScreenManager) MoveUp(s *Screen) error { return m.swapNeighbor(s, true) }

// MoveDown swaps s's z-index with its nearest lower neighbor.
func (m *ScreenManager) MoveDown(s *Screen) error { return m.swapNeighbor(s, false) }

func (m *ScreenManager) swapNeighbor(s *Screen, up bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms := m.find(s)
	if ms == nil {
		return ErrScreenNotFound
	}
	var neighbor *ManagedScreen
	for _, other := range m.screens {
		if other == ms {
			continue
		}
		if up {
			if other.zIndex > ms.zIndex && (neighbor == nil || other.zIndex < neighbor.zIndex) {
				neighbor = other
			}
		} else {
			if other.zIndex < ms.zIndex && (neighbor == nil || other.zIndex > neighbor.zIndex) {
				neighbor = other
			}
		}
	}
	if neighbor == nil {
		return nil
	}
	ms.zIndex, neighbor.zIndex = neighbor.zIndex, ms.zIndex
	return nil
}

// GetScreenAtPoint returns the topmost visible managed screen whose
// viewport contains (x,y), or nil if none does.
func (m *ScreenManager) GetScreenAtPoint(x, y int) *Screen {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *ManagedScreen
	for _, ms := range m.screens {
		if !ms.visible || !ms.viewport.Contains(x, y) {
			continue
		}
		if best == nil || ms.zIndex > best.zIndex {
			best = ms
		}
	}
	if best == nil {
		return nil
	}
	return best.screen
}

// NormalizeZIndices compacts z-order values to [0, n) while preserving
// relative order, preventing unbounded growth from repeated front/back
// operations.
func (m *ScreenManager) NormalizeZIndices() {
	m.mu.Lock()
	defer m.mu.Unlock()
	ordered := append([]*ManagedScreen(nil), m.screens...)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].zIndex < ordered[i].zIndex {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}
	for i, ms := range ordered {
		ms.zIndex = i
	}
	m.nextZIndex = len(ordered)
}

// SetActiveTab selects the screen shown by LayoutTabbed and recomputes.
func (m *ScreenManager) SetActiveTab(index int) error {
	m.mu.Lock()
	if index < 0 || index >= len(m.screens) {
		m.mu.Unlock()
		return ErrScreenNotFound
	}
	m.active = index
	m.mu.Unlock()
	return m.recompute()
}

// Screens returns a snapshot of the managed screens in manager order.
func (m *ScreenManager) Screens() []*ManagedScreen {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*ManagedScreen(nil), m.screens...)
}

// FocusedScreen returns the currently focused screen, or nil if none.
func (m *ScreenManager) FocusedScreen() *Screen {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.focusedIndex < 0 || m.focusedIndex >= len(m.screens) {
		return nil
	}
	return m.screens[m.focusedIndex].screen
}
