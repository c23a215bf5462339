// Package scope implements the layered name-resolution environment: a stack
// of frames holding variables, environment values, commands and alias
// expansions. Resolution scans frames innermost-first, so the most recent
// lexical scope wins and shadowing is total.
package scope

import (
	"fmt"
	"sort"
	"sync"

	"tide/internal/command"
	"tide/internal/object"
	"tide/internal/sig"
	"tide/internal/token"
)

// Frame is one lexical level of the stack.
type Frame struct {
	Vars     map[string]object.Object
	Env      map[string]string
	Commands map[string]command.Command
	Aliases  map[string][]token.Spanned
}

func newFrame() *Frame {
	return &Frame{
		Vars:     make(map[string]object.Object),
		Env:      make(map[string]string),
		Commands: make(map[string]command.Command),
		Aliases:  make(map[string][]token.Spanned),
	}
}

// Scope is shared between the parser (signature and alias lookup) and the
// evaluator. All operations take the lock for the duration of the scan or
// mutation only; the lock is never held across a suspension point.
type Scope struct {
	mu     sync.Mutex
	frames []*Frame
}

// New creates a scope with its global frame. That frame is never popped.
func New() *Scope {
	return &Scope{frames: []*Frame{newFrame()}}
}

// EnterScope pushes a fresh frame. Push never fails; every EnterScope must
// be paired with an ExitScope on all exit paths.
func (s *Scope) EnterScope() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, newFrame())
}

// ExitScope pops the topmost frame. Popping the global frame is a logic
// error the caller must never trigger.
func (s *Scope) ExitScope() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) <= 1 {
		panic("scope: exit on global frame")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *Scope) AddVar(name string, value object.Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.top().Vars[name] = value
}

func (s *Scope) AddVars(vars map[string]object.Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, value := range vars {
		s.top().Vars[name] = value
	}
}

func (s *Scope) GetVar(name string) (object.Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].Vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// GetVars merges variable bindings outermost-first so inner frames win.
func (s *Scope) GetVars() map[string]object.Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]object.Object)
	for _, frame := range s.frames {
		for name, value := range frame.Vars {
			out[name] = value
		}
	}
	return out
}

func (s *Scope) AddEnvVar(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.top().Env[name] = value
}

func (s *Scope) AddEnv(env map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, value := range env {
		s.top().Env[name] = value
	}
}

func (s *Scope) GetEnvVars() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string)
	for _, frame := range s.frames {
		for name, value := range frame.Env {
			out[name] = value
		}
	}
	return out
}

func (s *Scope) AddCommand(name string, cmd command.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.top().Commands[name] = cmd
}

func (s *Scope) GetCommand(name string) (command.Command, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.frames) - 1; i >= 0; i-- {
		if cmd, ok := s.frames[i].Commands[name]; ok {
			return cmd, true
		}
	}
	return command.Command{}, false
}

func (s *Scope) HasCommand(name string) bool {
	_, ok := s.GetCommand(name)
	return ok
}

// ExpectCommand resolves a command or fails with an error naming the lookup
// key.
func (s *Scope) ExpectCommand(name string) (command.Command, error) {
	if cmd, ok := s.GetCommand(name); ok {
		return cmd, nil
	}
	return command.Command{}, fmt.Errorf("missing command '%s'", name)
}

// GetCommandNames concatenates all frames' command names, de-duplicated and
// sorted. Used for completion and introspection, not for resolution order.
func (s *Scope) GetCommandNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	var names []string
	for _, frame := range s.frames {
		for name := range frame.Commands {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (s *Scope) GetSignature(name string) (*sig.Signature, bool) {
	cmd, ok := s.GetCommand(name)
	if !ok {
		return nil, false
	}
	return cmd.Signature(), true
}

func (s *Scope) AddAlias(name string, expansion []token.Spanned) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.top().Aliases[name] = expansion
}

func (s *Scope) GetAlias(name string) ([]token.Spanned, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.frames) - 1; i >= 0; i-- {
		if expansion, ok := s.frames[i].Aliases[name]; ok {
			return expansion, true
		}
	}
	return nil, false
}

// top returns the innermost frame. There is always at least one; the caller
// must hold the lock.
func (s *Scope) top() *Frame {
	return s.frames[len(s.frames)-1]
}

var _ command.NameSpace = (*Scope)(nil)
