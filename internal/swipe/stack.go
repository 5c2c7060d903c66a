// Package swipe клиентское ядро стопки карточек: очередь колоды и
// жестовый движок, переводящий движение указателя в принятые и
// отклонённые карточки.
package swipe

import (
	"sync"
	"time"

	"winedeck/internal/domain/entity"
)

// Direction исход решения по карточке.
type Direction int

const (
	DirectionRight Direction = iota // accept / like
	DirectionLeft                   // reject / skip
)

func (d Direction) String() string {
	if d == DirectionRight {
		return "like"
	}
	return "nope"
}

// Decision сигнал внешнему миру о принятом решении. Ядро решения не
// хранит — персистентность, если нужна, живёт у подписчика.
type Decision struct {
	CardID    string
	Direction Direction
	DecidedAt time.Time
}

// Stack очередь карточек текущей колоды. Первый элемент — верхняя
// карточка, второй виден из-под неё.
type Stack struct {
	mu        sync.Mutex
	cards     entity.Deck
	decisions chan<- Decision
}

func NewStack(deck entity.Deck) *Stack {
	return &Stack{cards: deck}
}

// WithDecisionSink подключает канал решений. Отправка неблокирующая:
// медленный подписчик теряет события, а не подвешивает UI.
func (s *Stack) WithDecisionSink(decisions chan<- Decision) *Stack {
	s.decisions = decisions
	return s
}

// Current возвращает верхнюю карточку, ok=false — колода исчерпана.
func (s *Stack) Current() (entity.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cardAt(0)
}

// PeekNext возвращает карточку, видимую из-под верхней.
func (s *Stack) PeekNext() (entity.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cardAt(1)
}

// Advance безусловно снимает верхнюю карточку; направление здесь только
// информационное. Возвращает новую верхнюю карточку. На пустой очереди —
// no-op с повторным отчётом о пустоте, не ошибка.
func (s *Stack) Advance(direction Direction) (entity.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	top, ok := s.cardAt(0)
	if !ok {
		return entity.Card{}, false
	}

	s.cards = s.cards[1:]

	if s.decisions != nil {
		select {
		case s.decisions <- Decision{
			CardID:    top.ID,
			Direction: direction,
			DecidedAt: time.Now(),
		}:
		default:
		}
	}

	return s.cardAt(0)
}

// Replace загружает свежую колоду после исчерпания (полный re-fetch,
// не дозагрузка).
func (s *Stack) Replace(deck entity.Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards = deck
}

func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.cards)
}

func (s *Stack) Empty() bool {
	return s.Len() == 0
}

func (s *Stack) cardAt(i int) (entity.Card, bool) {
	if i >= len(s.cards) {
		return entity.Card{}, false
	}

	return s.cards[i], true
}
