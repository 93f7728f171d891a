package blog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		next    Status
		wantErr error
	}{
		{"draft stays draft", StatusDraft, StatusDraft, nil},
		{"draft publishes", StatusDraft, StatusPublished, nil},
		{"published stays published", StatusPublished, StatusPublished, nil},
		{"published back to draft rejected", StatusPublished, StatusDraft, ErrPublishedToDraft},
		{"unknown status rejected", StatusDraft, Status("archived"), ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Blog{Status: tt.current}
			err := b.ValidateTransition(tt.next)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPublishedToDraftMessage(t *testing.T) {
	assert.Equal(t, "Published posts cannot be changed to draft.", ErrPublishedToDraft.Error())
}

func TestCanView(t *testing.T) {
	author := uuid.New()
	other := uuid.New()

	tests := []struct {
		name   string
		status Status
		viewer uuid.UUID
		want   bool
	}{
		{"published visible to anonymous", StatusPublished, uuid.Nil, true},
		{"published visible to other user", StatusPublished, other, true},
		{"published visible to author", StatusPublished, author, true},
		{"draft hidden from anonymous", StatusDraft, uuid.Nil, false},
		{"draft hidden from other user", StatusDraft, other, false},
		{"draft visible to author", StatusDraft, author, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Blog{AuthorID: author, Status: tt.status}
			assert.Equal(t, tt.want, b.CanView(tt.viewer))
		})
	}
}

func TestIsAuthor(t *testing.T) {
	author := uuid.New()
	b := &Blog{AuthorID: author}

	assert.True(t, b.IsAuthor(author))
	assert.False(t, b.IsAuthor(uuid.New()))
	// Anonymous is never the author, even if AuthorID were zero.
	assert.False(t, (&Blog{}).IsAuthor(uuid.Nil))
}

func TestCountsView(t *testing.T) {
	author := uuid.New()
	b := &Blog{AuthorID: author, Status: StatusPublished}

	assert.False(t, b.CountsView(author), "author self-view must not count")
	assert.True(t, b.CountsView(uuid.New()))
	assert.True(t, b.CountsView(uuid.Nil), "anonymous views count")
}

func TestResolveScope(t *testing.T) {
	viewer := uuid.New()

	tests := []struct {
		name      string
		requested string
		viewer    uuid.UUID
		want      ListScope
	}{
		{"anonymous coerced to published", "mine", uuid.Nil, ScopePublished},
		{"anonymous default", "", uuid.Nil, ScopePublished},
		{"authed default is visible", "", viewer, ScopeVisible},
		{"authed unknown falls back", "archived", viewer, ScopeVisible},
		{"authed drafts", "drafts", viewer, ScopeDrafts},
		{"authed mine", "mine", viewer, ScopeMine},
		{"authed published", "published", viewer, ScopePublished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveScope(tt.requested, tt.viewer))
		})
	}
}

func TestScopeSQLPredicate(t *testing.T) {
	// Every scope compiles to a plain filter, never a UNION.
	for _, scope := range []ListScope{ScopePublished, ScopeDrafts, ScopeMine, ScopeVisible} {
		assert.NotContains(t, scope.SQLPredicate(), "UNION")
	}
}
