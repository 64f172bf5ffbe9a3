package session

import "testing"

func TestSessionValid(t *testing.T) {
	if New("").Valid() {
		t.Fatal("empty token must be invalid")
	}
	s := New("tok")
	if !s.Valid() || s.Token() != "tok" {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestSourceReplaceNotifiesSubscribers(t *testing.T) {
	src := NewSource(New("old"))

	var seen []string
	src.Subscribe(func(s Session) {
		seen = append(seen, s.Token())
	})

	src.Replace(New("new"))
	if src.Current().Token() != "new" {
		t.Fatalf("unexpected current token: %q", src.Current().Token())
	}
	if len(seen) != 1 || seen[0] != "new" {
		t.Fatalf("subscriber not notified: %v", seen)
	}

	src.Replace(New(""))
	if src.Current().Valid() {
		t.Fatal("logout must leave an invalid session")
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
}
