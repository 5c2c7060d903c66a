package swipe_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"winedeck/internal/swipe"
)

const testExitDuration = 50 * time.Millisecond

func newTestEngine(ids ...string) (*swipe.Engine, *swipe.Stack) {
	stack := swipe.NewStack(testDeck(ids...))
	engine := swipe.NewEngine(stack).WithExitDuration(testExitDuration)

	return engine, stack
}

func drag(engine *swipe.Engine, dx, dy float64) {
	engine.PointerDown(200, 400)
	engine.PointerMove(200+dx, 400+dy)
}

func waitIdle(t *testing.T, engine *swipe.Engine) {
	t.Helper()

	require.Eventually(t, func() bool {
		return engine.State() == swipe.StateIdle
	}, time.Second, time.Millisecond)
}

func TestEngineCommitRight(t *testing.T) {
	rq := require.New(t)

	engine, stack := newTestEngine("a", "b")
	rq.Equal("a", engine.BoundCardID())

	drag(engine, 121, -8)
	engine.PointerUp()

	rq.Equal(swipe.StateExiting, engine.State())

	frame := engine.Frame()
	rq.InDelta(620, frame.OffsetX, 0.001)
	rq.InDelta(-8, frame.OffsetY, 0.001)
	rq.InDelta(1, frame.LikeOpacity, 0.001)
	rq.InDelta(0, frame.NopeOpacity, 0.001)

	waitIdle(t, engine)
	rq.Equal("b", engine.BoundCardID())
	rq.Equal(1, stack.Len())
}

func TestEngineCommitLeft(t *testing.T) {
	rq := require.New(t)

	engine, _ := newTestEngine("a", "b")

	drag(engine, -200, 12)
	engine.PointerUp()

	frame := engine.Frame()
	rq.InDelta(-620, frame.OffsetX, 0.001)
	rq.InDelta(12, frame.OffsetY, 0.001)
	rq.InDelta(0, frame.LikeOpacity, 0.001)
	rq.InDelta(1, frame.NopeOpacity, 0.001)

	waitIdle(t, engine)
	rq.Equal("b", engine.BoundCardID())
}

func TestEngineSnapBack(t *testing.T) {
	rq := require.New(t)

	engine, stack := newTestEngine("a", "b")

	// ровно на пороге — ещё не коммит
	drag(engine, 120, 0)
	engine.PointerUp()

	rq.Equal(swipe.StateIdle, engine.State())
	rq.Equal("a", engine.BoundCardID())
	rq.Equal(2, stack.Len())
	rq.Equal(swipe.Frame{}, engine.Frame())

	drag(engine, -119, 30)
	engine.PointerUp()

	rq.Equal(swipe.StateIdle, engine.State())
	rq.Equal(2, stack.Len())
}

func TestEngineDragFrame(t *testing.T) {
	rq := require.New(t)

	engine, _ := newTestEngine("a")

	drag(engine, 80, -20)

	frame := engine.Frame()
	rq.InDelta(80, frame.OffsetX, 0.001)
	rq.InDelta(-20, frame.OffsetY, 0.001)
	rq.InDelta(5, frame.RotationDeg, 0.001) // 80/16
	rq.InDelta((80-45.0)/90.0, frame.LikeOpacity, 0.001)
	rq.InDelta(0, frame.NopeOpacity, 0.001)

	// поворот упирается в потолок
	engine.PointerMove(200+400, 400)
	frame = engine.Frame()
	rq.InDelta(10, frame.RotationDeg, 0.001)
	rq.InDelta(1, frame.LikeOpacity, 0.001)
}

func TestEngineIndicatorDeadZone(t *testing.T) {
	rq := require.New(t)

	engine, _ := newTestEngine("a")

	drag(engine, 45, 0)
	frame := engine.Frame()
	rq.InDelta(0, frame.LikeOpacity, 0.001)
	rq.InDelta(0, frame.NopeOpacity, 0.001)

	engine.PointerMove(200-60, 400)
	frame = engine.Frame()
	rq.InDelta(0, frame.LikeOpacity, 0.001)
	rq.InDelta((60-45.0)/90.0, frame.NopeOpacity, 0.001)
}

func TestEngineIgnoresInputWhileExiting(t *testing.T) {
	rq := require.New(t)

	engine, stack := newTestEngine("a", "b", "c")

	engine.ForceCommit(swipe.DirectionRight)
	rq.Equal(swipe.StateExiting, engine.State())

	// во время вылета новые жесты и коммиты не принимаются
	engine.PointerDown(0, 0)
	engine.PointerMove(300, 0)
	engine.PointerUp()
	engine.ForceCommit(swipe.DirectionLeft)

	waitIdle(t, engine)

	// снялась ровно одна карточка
	rq.Equal("b", engine.BoundCardID())
	rq.Equal(2, stack.Len())
}

func TestEngineForceCommitWithoutDrag(t *testing.T) {
	rq := require.New(t)

	engine, stack := newTestEngine("a", "b")

	engine.ForceCommit(swipe.DirectionLeft)

	frame := engine.Frame()
	rq.InDelta(-620, frame.OffsetX, 0.001)
	rq.InDelta(0, frame.RotationDeg, 0.001)
	rq.InDelta(1, frame.NopeOpacity, 0.001)

	waitIdle(t, engine)
	rq.Equal(1, stack.Len())
}

func TestEngineExhaustion(t *testing.T) {
	rq := require.New(t)

	engine, stack := newTestEngine("only")

	engine.ForceCommit(swipe.DirectionRight)

	require.Eventually(t, func() bool {
		return engine.BoundCardID() == ""
	}, time.Second, time.Millisecond)

	rq.True(stack.Empty())

	// без привязанной карточки жесты игнорируются
	engine.PointerDown(0, 0)
	rq.Equal(swipe.StateIdle, engine.State())

	engine.ForceCommit(swipe.DirectionRight)
	rq.Equal(swipe.StateIdle, engine.State())
}

func TestEngineBindResetsPendingExit(t *testing.T) {
	rq := require.New(t)

	stack := swipe.NewStack(testDeck("a", "b"))
	engine := swipe.NewEngine(stack).WithExitDuration(250 * time.Millisecond)

	drag(engine, 300, 0)
	engine.PointerUp()
	rq.Equal(swipe.StateExiting, engine.State())

	// явный ребинд до конца анимации отменяет коммит
	engine.Bind("a")

	time.Sleep(300 * time.Millisecond)

	rq.Equal(swipe.StateIdle, engine.State())
	rq.Equal("a", engine.BoundCardID())
	rq.Equal(2, stack.Len())
}

func TestEnginePointerCancel(t *testing.T) {
	rq := require.New(t)

	engine, _ := newTestEngine("a", "b")

	drag(engine, 130, 0)
	engine.PointerCancel()

	rq.Equal(swipe.StateExiting, engine.State())

	waitIdle(t, engine)
	rq.Equal("b", engine.BoundCardID())
}
