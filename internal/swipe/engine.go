package swipe

import (
	"sync"
	"time"
)

// State состояние жестового движка для привязанной верхней карточки.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateExiting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateExiting:
		return "exiting"
	}
	return "unknown"
}

const (
	// commitThreshold дистанция фиксации решения; строго больше:
	// ровно 120 — это ещё snap-back.
	commitThreshold = 120.0

	rotationDivisor   = 16.0
	maxRotationDeg    = 10.0
	indicatorDeadZone = 45.0
	indicatorRange    = 90.0

	// exitDistance горизонтальная точка за экраном при вылете.
	exitDistance = 620.0

	// ExitDuration длительность анимации вылета.
	ExitDuration = 170 * time.Millisecond
)

// Frame значения для отрисовки карточки на текущем кадре.
type Frame struct {
	OffsetX     float64
	OffsetY     float64
	RotationDeg float64
	LikeOpacity float64
	NopeOpacity float64
}

// sample эфемерное состояние одного драга. Живёт от pointer-down до
// pointer-up/cancel либо до конца анимации вылета.
type sample struct {
	startX   float64
	startY   float64
	dx       float64
	dy       float64
	dragging bool
}

// Engine машина состояний одного верхнего слота стопки. Все мутации
// сериализованы мьютексом: события указателя приходят из event loop, а
// коммит вылета — из одноразового таймера.
type Engine struct {
	mu      sync.Mutex
	stack   *Stack
	boundID string
	state   State
	sample  sample

	exitDuration time.Duration
	exitTimer    *time.Timer
	exitFrame    Frame
}

// NewEngine создаёт движок и привязывает его к текущей верхней карточке.
func NewEngine(stack *Stack) *Engine {
	e := &Engine{
		stack:        stack,
		exitDuration: ExitDuration,
	}

	if top, ok := stack.Current(); ok {
		e.boundID = top.ID
	}

	return e
}

func (e *Engine) WithExitDuration(d time.Duration) *Engine {
	e.exitDuration = d
	return e
}

// Bind явный сброс машины на новую верхнюю карточку: состояние, сэмпл и
// отложенный таймер уничтожаются, а не "пересоздаются отрисовкой".
func (e *Engine) Bind(cardID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.bindLocked(cardID)
}

func (e *Engine) bindLocked(cardID string) {
	if e.exitTimer != nil {
		e.exitTimer.Stop()
		e.exitTimer = nil
	}

	e.boundID = cardID
	e.state = StateIdle
	e.sample = sample{}
	e.exitFrame = Frame{}
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

func (e *Engine) BoundCardID() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.boundID
}

// PointerDown начинает драг. Во время вылета вход игнорируется, чтобы
// исключить двойной коммит по одной карточке.
func (e *Engine) PointerDown(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateIdle || e.boundID == "" {
		return
	}

	e.state = StateDragging
	e.sample = sample{startX: x, startY: y, dragging: true}
}

func (e *Engine) PointerMove(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateDragging {
		return
	}

	e.sample.dx = x - e.sample.startX
	e.sample.dy = y - e.sample.startY
}

// PointerUp завершает драг: за порогом — вылет, иначе snap-back в ноль.
func (e *Engine) PointerUp() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateDragging {
		return
	}

	switch {
	case e.sample.dx > commitThreshold:
		e.beginExitLocked(DirectionRight)
	case e.sample.dx < -commitThreshold:
		e.beginExitLocked(DirectionLeft)
	default:
		e.state = StateIdle
		e.sample = sample{}
	}
}

// PointerCancel обрабатывается как отпускание: порог решает.
func (e *Engine) PointerCancel() {
	e.PointerUp()
}

// ForceCommit явные кнопки accept/skip: без проверки дистанции, но с той
// же анимацией вылета. Во время уже идущего вылета игнорируется.
func (e *Engine) ForceCommit(direction Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateExiting || e.boundID == "" {
		return
	}

	e.beginExitLocked(direction)
}

// beginExitLocked переводит машину в Exiting: вертикальное смещение и
// поворот замораживаются на момент отпускания, горизонталь летит за экран.
func (e *Engine) beginExitLocked(direction Direction) {
	released := e.frameLocked()

	targetX := exitDistance
	likeOpacity, nopeOpacity := 1.0, 0.0

	if direction == DirectionLeft {
		targetX = -exitDistance
		likeOpacity, nopeOpacity = 0.0, 1.0
	}

	e.state = StateExiting
	e.exitFrame = Frame{
		OffsetX:     targetX,
		OffsetY:     released.OffsetY,
		RotationDeg: released.RotationDeg,
		LikeOpacity: likeOpacity,
		NopeOpacity: nopeOpacity,
	}

	e.exitTimer = time.AfterFunc(e.exitDuration, func() {
		e.commit(direction)
	})
}

// commit конец анимации: решение отдаётся стопке, движок переходит в
// Idle уже для новой верхней карточки.
func (e *Engine) commit(direction Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateExiting {
		return
	}

	next, ok := e.stack.Advance(direction)
	if !ok {
		e.bindLocked("")
		return
	}

	e.bindLocked(next.ID)
}

// Frame возвращает живые значения обратной связи для отрисовки.
func (e *Engine) Frame() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.frameLocked()
}

func (e *Engine) frameLocked() Frame {
	if e.state == StateExiting {
		return e.exitFrame
	}

	dx, dy := e.sample.dx, e.sample.dy

	return Frame{
		OffsetX:     dx,
		OffsetY:     dy,
		RotationDeg: clamp(dx/rotationDivisor, -maxRotationDeg, maxRotationDeg),
		LikeOpacity: clamp((dx-indicatorDeadZone)/indicatorRange, 0, 1),
		NopeOpacity: clamp((-dx-indicatorDeadZone)/indicatorRange, 0, 1),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
