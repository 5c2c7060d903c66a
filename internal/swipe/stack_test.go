package swipe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"winedeck/internal/domain/entity"
	"winedeck/internal/swipe"
)

func testDeck(ids ...string) entity.Deck {
	deck := make(entity.Deck, 0, len(ids))
	for _, id := range ids {
		deck = append(deck, entity.Card{ID: id, Name: "wine " + id, URL: "https://item/" + id})
	}

	return deck
}

func TestStackAdvance(t *testing.T) {
	rq := require.New(t)

	stack := swipe.NewStack(testDeck("a", "b", "c"))

	top, ok := stack.Current()
	rq.True(ok)
	rq.Equal("a", top.ID)

	next, ok := stack.PeekNext()
	rq.True(ok)
	rq.Equal("b", next.ID)

	top, ok = stack.Advance(swipe.DirectionRight)
	rq.True(ok)
	rq.Equal("b", top.ID)
	rq.Equal(2, stack.Len())

	// направление не влияет на порядок снятия
	top, ok = stack.Advance(swipe.DirectionLeft)
	rq.True(ok)
	rq.Equal("c", top.ID)
}

func TestStackAdvanceExhausted(t *testing.T) {
	rq := require.New(t)

	stack := swipe.NewStack(testDeck("only"))

	_, ok := stack.Advance(swipe.DirectionRight)
	rq.False(ok)
	rq.True(stack.Empty())

	// повторный Advance на пустой очереди — no-op, не паника
	_, ok = stack.Advance(swipe.DirectionLeft)
	rq.False(ok)

	_, ok = stack.Current()
	rq.False(ok)
}

func TestStackDecisionSink(t *testing.T) {
	rq := require.New(t)

	decisions := make(chan swipe.Decision, 2)
	stack := swipe.NewStack(testDeck("a", "b")).WithDecisionSink(decisions)

	stack.Advance(swipe.DirectionRight)
	stack.Advance(swipe.DirectionLeft)

	first := <-decisions
	rq.Equal("a", first.CardID)
	rq.Equal(swipe.DirectionRight, first.Direction)
	rq.False(first.DecidedAt.IsZero())

	second := <-decisions
	rq.Equal("b", second.CardID)
	rq.Equal(swipe.DirectionLeft, second.Direction)
}

func TestStackDecisionSinkFull(t *testing.T) {
	rq := require.New(t)

	// забитый канал не блокирует снятие карточки
	decisions := make(chan swipe.Decision)
	stack := swipe.NewStack(testDeck("a", "b")).WithDecisionSink(decisions)

	top, ok := stack.Advance(swipe.DirectionRight)
	rq.True(ok)
	rq.Equal("b", top.ID)
	rq.Equal(1, stack.Len())
}

func TestStackReplace(t *testing.T) {
	rq := require.New(t)

	stack := swipe.NewStack(testDeck("a"))
	stack.Advance(swipe.DirectionRight)
	rq.True(stack.Empty())

	stack.Replace(testDeck("x", "y"))
	rq.Equal(2, stack.Len())

	top, ok := stack.Current()
	rq.True(ok)
	rq.Equal("x", top.ID)
}
