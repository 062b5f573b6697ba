package client

import (
	"sync"

	"estate-marketplace/internal/domain"
)

// State is an immutable snapshot of the application state. Every Dispatch
// replaces the snapshot; readers never observe a half-applied update.
type State struct {
	CurrentUser *domain.User
	Loading     bool
	Error       string
}

type ActionType string

const (
	SignInStart       ActionType = "user/signInStart"
	SignInSuccess     ActionType = "user/signInSuccess"
	SignInFailure     ActionType = "user/signInFailure"
	UpdateUserStart   ActionType = "user/updateUserStart"
	UpdateUserSuccess ActionType = "user/updateUserSuccess"
	UpdateUserFailure ActionType = "user/updateUserFailure"
	DeleteUserStart   ActionType = "user/deleteUserStart"
	DeleteUserSuccess ActionType = "user/deleteUserSuccess"
	DeleteUserFailure ActionType = "user/deleteUserFailure"
	SignOutSuccess    ActionType = "user/signOutSuccess"
)

type Action struct {
	Type ActionType
	User *domain.User
	Err  string
}

// Reducer computes the next state from the previous snapshot and an action.
// Reducers are pure; they must not mutate the input state.
type Reducer func(State, Action) State

type Store struct {
	mu       sync.RWMutex
	state    State
	reducers map[ActionType]Reducer
}

func NewStore() *Store {
	s := &Store{reducers: map[ActionType]Reducer{}}

	start := func(prev State, _ Action) State {
		return State{CurrentUser: prev.CurrentUser, Loading: true}
	}
	success := func(prev State, a Action) State {
		return State{CurrentUser: a.User}
	}
	failure := func(prev State, a Action) State {
		return State{CurrentUser: prev.CurrentUser, Error: a.Err}
	}
	cleared := func(State, Action) State {
		return State{}
	}

	s.Register(SignInStart, start)
	s.Register(SignInSuccess, success)
	s.Register(SignInFailure, failure)
	s.Register(UpdateUserStart, start)
	s.Register(UpdateUserSuccess, success)
	s.Register(UpdateUserFailure, failure)
	s.Register(DeleteUserStart, start)
	s.Register(DeleteUserSuccess, cleared)
	s.Register(DeleteUserFailure, failure)
	s.Register(SignOutSuccess, cleared)
	return s
}

func (s *Store) Register(t ActionType, r Reducer) {
	s.reducers[t] = r
}

// Dispatch applies the reducer registered for the action type. Unknown
// actions leave the state untouched.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reducer, ok := s.reducers[a.Type]; ok {
		s.state = reducer(s.state, a)
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
