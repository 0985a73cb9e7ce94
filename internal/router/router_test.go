package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockprep/internal/screen"
)

type fakeScreen struct {
	name    string
	inits   int
	resumes int
	got     []tea.Msg
}

func (f *fakeScreen) Init() tea.Cmd { f.inits++; return nil }
func (f *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	f.got = append(f.got, msg)
	return f, nil
}
func (f *fakeScreen) View(int, int) string { return f.name }
func (f *fakeScreen) Title() string        { return f.name }

type resumingScreen struct{ fakeScreen }

func (r *resumingScreen) Resume() tea.Cmd { r.resumes++; return nil }

func stack(r *Router) []string {
	var names []string
	for _, s := range r.stack {
		names = append(names, s.Title())
	}
	return names
}

func assertStack(t *testing.T, r *Router, want ...string) {
	t.Helper()
	got := stack(r)
	if len(got) != len(want) {
		t.Fatalf("stack = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stack = %v, want %v", got, want)
		}
	}
}

func TestRouter_Navigation(t *testing.T) {
	home := &fakeScreen{name: "home"}
	setup := &fakeScreen{name: "setup"}
	interview := &fakeScreen{name: "interview"}
	report := &fakeScreen{name: "report"}

	r := New(home)
	r.Update(PushScreenMsg{Screen: setup})
	r.Update(PushScreenMsg{Screen: interview})
	assertStack(t, r, "home", "setup", "interview")

	r.Update(ReplaceScreenMsg{Screen: report})
	assertStack(t, r, "home", "setup", "report")

	r.Update(PopScreenMsg{})
	assertStack(t, r, "home", "setup")

	for _, s := range []*fakeScreen{setup, interview, report} {
		if s.inits != 1 {
			t.Errorf("%s: Init ran %d times, want 1", s.name, s.inits)
		}
	}
}

func TestRouter_RootIsNeverPopped(t *testing.T) {
	r := New(&fakeScreen{name: "home"})
	r.Pop()
	r.PopToRoot()
	r.Update(PopScreenMsg{})
	assertStack(t, r, "home")
}

func TestRouter_PopToRoot(t *testing.T) {
	r := New(&fakeScreen{name: "home"})
	r.Push(&fakeScreen{name: "setup"})
	r.Push(&fakeScreen{name: "report"})
	r.Push(&fakeScreen{name: "review"})

	r.Update(PopToRootMsg{})
	assertStack(t, r, "home")
	if got := r.View(80, 24); got != "home" {
		t.Errorf("View = %q", got)
	}
}

func TestRouter_ResumesRevealedScreen(t *testing.T) {
	home := &resumingScreen{fakeScreen{name: "home"}}
	r := New(home)
	r.Push(&fakeScreen{name: "setup"})
	r.Push(&fakeScreen{name: "report"})

	r.Pop()
	if home.resumes != 0 {
		t.Fatalf("home resumed while still covered")
	}
	r.PopToRoot()
	if home.resumes != 1 {
		t.Fatalf("home resumed %d times, want 1", home.resumes)
	}
	r.PopToRoot()
	if home.resumes != 1 {
		t.Fatalf("PopToRoot at root should not resume again")
	}
}

func TestRouter_ForwardsToTopScreen(t *testing.T) {
	home := &fakeScreen{name: "home"}
	setup := &fakeScreen{name: "setup"}
	r := New(home)
	r.Push(setup)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if len(setup.got) != 1 || len(home.got) != 0 {
		t.Fatalf("message delivered to wrong screen: home=%d setup=%d", len(home.got), len(setup.got))
	}
}
