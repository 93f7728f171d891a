package blog

import "github.com/google/uuid"

// ListScope names the visibility filters of the blog list endpoint.
type ListScope string

const (
	// ScopePublished: published posts only.
	ScopePublished ListScope = "published"
	// ScopeDrafts: the viewer's own drafts.
	ScopeDrafts ListScope = "drafts"
	// ScopeMine: everything the viewer authored.
	ScopeMine ListScope = "mine"
	// ScopeVisible: published posts plus the viewer's own drafts. Default.
	ScopeVisible ListScope = "visible"
)

// ResolveScope coerces a requested scope for the given viewer. Anonymous
// viewers only ever see published posts; unknown scopes fall back to visible.
func ResolveScope(requested string, viewerID uuid.UUID) ListScope {
	if viewerID == uuid.Nil {
		return ScopePublished
	}
	switch ListScope(requested) {
	case ScopePublished, ScopeDrafts, ScopeMine:
		return ListScope(requested)
	default:
		return ScopeVisible
	}
}

// SQLPredicate compiles the scope to a single WHERE filter over blogs b.
// The viewer is bound as @viewer; no scope needs a UNION.
func (s ListScope) SQLPredicate() string {
	switch s {
	case ScopePublished:
		return `b.status = 'published'`
	case ScopeDrafts:
		return `b.author_id = @viewer AND b.status = 'draft'`
	case ScopeMine:
		return `b.author_id = @viewer`
	default:
		return `(b.status = 'published' OR b.author_id = @viewer)`
	}
}
