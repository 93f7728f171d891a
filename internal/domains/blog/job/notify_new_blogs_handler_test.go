package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogify-backend/internal/domains/blog"
	"blogify-backend/internal/domains/user"
	"blogify-backend/internal/infrastructure/email"
)

// fakeBlogRepo serves ListPublishedSince; the rest is unused by the digest.
type fakeBlogRepo struct {
	published []blog.Blog
	calls     int
}

func (r *fakeBlogRepo) ListPublishedSince(ctx context.Context, since time.Time) ([]blog.Blog, error) {
	r.calls++
	return r.published, nil
}

func (r *fakeBlogRepo) Create(ctx context.Context, b *blog.Blog) error { return nil }
func (r *fakeBlogRepo) FindByID(ctx context.Context, id uuid.UUID) (*blog.Blog, error) {
	return nil, blog.ErrBlogNotFound
}
func (r *fakeBlogRepo) FindByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*blog.Blog, error) {
	return nil, blog.ErrBlogNotFound
}
func (r *fakeBlogRepo) List(ctx context.Context, viewerID uuid.UUID, scope blog.ListScope, limit, offset int) ([]blog.Blog, int64, error) {
	return nil, 0, nil
}
func (r *fakeBlogRepo) Update(ctx context.Context, b *blog.Blog) error            { return nil }
func (r *fakeBlogRepo) Delete(ctx context.Context, id, authorID uuid.UUID) error  { return nil }
func (r *fakeBlogRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) error { return nil }

// fakeUserRepo serves ListActive only.
type fakeUserRepo struct {
	active []user.User
	calls  int
}

func (r *fakeUserRepo) ListActive(ctx context.Context) ([]user.User, error) {
	r.calls++
	return r.active, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return nil, user.ErrUserNotFound
}
func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}
func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) SetPin(ctx context.Context, userID uuid.UUID, pin string) error { return nil }
func (r *fakeUserRepo) Activate(ctx context.Context, userID uuid.UUID) error           { return nil }
func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return nil
}

// fakeLogRepo records digest send entries.
type fakeLogRepo struct {
	logs []blog.NotificationLog
}

func (r *fakeLogRepo) Create(ctx context.Context, log *blog.NotificationLog) error {
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeLogRepo) ListByBlog(ctx context.Context, blogID uuid.UUID) ([]blog.NotificationLog, error) {
	return r.logs, nil
}

// fakeEmailService records announcements; failTitles makes specific blogs fail.
type fakeEmailService struct {
	announcements []email.NewBlogAnnouncementData
	failTitles    map[string]bool
}

func (f *fakeEmailService) SendNewBlogAnnouncement(ctx context.Context, data email.NewBlogAnnouncementData) error {
	if f.failTitles[data.BlogTitle] {
		return errors.New("smtp unavailable")
	}
	f.announcements = append(f.announcements, data)
	return nil
}

func (f *fakeEmailService) SendActivationPin(ctx context.Context, data email.ActivationPinData) error {
	return nil
}
func (f *fakeEmailService) SendResetPin(ctx context.Context, data email.ResetPinData) error {
	return nil
}
func (f *fakeEmailService) SendCommentNotification(ctx context.Context, data email.CommentNotificationData) error {
	return nil
}

// fakeCache implements the lock with a switchable SetNX answer.
type fakeCache struct {
	acquire bool
	setNX   int
}

func (f *fakeCache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	f.setNX++
	return f.acquire, nil
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (f *fakeCache) Delete(ctx context.Context, keys ...string) error { return nil }
func (f *fakeCache) Ping(ctx context.Context) error                   { return nil }

func activeUser(email string) user.User {
	return user.User{ID: uuid.New(), Email: email, IsActive: true}
}

func publishedBlog(title, authorEmail string) blog.Blog {
	now := time.Now()
	return blog.Blog{
		ID:          uuid.New(),
		AuthorID:    uuid.New(),
		Title:       title,
		Status:      blog.StatusPublished,
		PublishedAt: &now,
		AuthorName:  "author",
		AuthorEmail: authorEmail,
	}
}

func newHandler(blogs []blog.Blog, users []user.User, acquire bool) (*NotifyNewBlogsHandler, *fakeBlogRepo, *fakeUserRepo, *fakeLogRepo, *fakeEmailService, *fakeCache) {
	blogRepo := &fakeBlogRepo{published: blogs}
	userRepo := &fakeUserRepo{active: users}
	logRepo := &fakeLogRepo{}
	emailSvc := &fakeEmailService{failTitles: map[string]bool{}}
	c := &fakeCache{acquire: acquire}
	h := NewNotifyNewBlogsHandler(blogRepo, userRepo, logRepo, emailSvc, c, time.Minute)
	return h, blogRepo, userRepo, logRepo, emailSvc, c
}

func TestDigestEmptyWindowIsNoOp(t *testing.T) {
	h, _, userRepo, logRepo, emailSvc, _ := newHandler(nil, nil, true)

	notified, err := h.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, notified)
	assert.Zero(t, userRepo.calls, "no user fetch for an empty window")
	assert.Empty(t, emailSvc.announcements)
	assert.Empty(t, logRepo.logs)
}

func TestDigestSkipsWhenLockHeld(t *testing.T) {
	blogs := []blog.Blog{publishedBlog("Going Async", "author@blogify.dev")}
	h, blogRepo, _, _, emailSvc, c := newHandler(blogs, nil, false)

	notified, err := h.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, notified)
	assert.Equal(t, 1, c.setNX)
	assert.Zero(t, blogRepo.calls, "locked runs never touch the database")
	assert.Empty(t, emailSvc.announcements)
}

func TestDigestExcludesAuthor(t *testing.T) {
	blogs := []blog.Blog{publishedBlog("Going Async", "author@blogify.dev")}
	users := []user.User{
		activeUser("author@blogify.dev"),
		activeUser("reader1@blogify.dev"),
		activeUser("reader2@blogify.dev"),
	}
	h, _, _, logRepo, emailSvc, _ := newHandler(blogs, users, true)

	notified, err := h.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, notified)

	require.Len(t, emailSvc.announcements, 1)
	sent := emailSvc.announcements[0]
	assert.ElementsMatch(t, []string{"reader1@blogify.dev", "reader2@blogify.dev"}, sent.Recipients)

	require.Len(t, logRepo.logs, 1)
	assert.Equal(t, blogs[0].ID, logRepo.logs[0].BlogID)
	assert.ElementsMatch(t, sent.Recipients, logRepo.logs[0].Recipients)
}

func TestDigestSkipsRecipientlessBlog(t *testing.T) {
	blogs := []blog.Blog{publishedBlog("Talking To Myself", "author@blogify.dev")}
	users := []user.User{activeUser("author@blogify.dev")}
	h, _, _, logRepo, emailSvc, _ := newHandler(blogs, users, true)

	notified, err := h.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, notified)
	assert.Empty(t, emailSvc.announcements)
	assert.Empty(t, logRepo.logs)
}

func TestDigestCountsDistinctBlogs(t *testing.T) {
	blogs := []blog.Blog{
		publishedBlog("First", "a@blogify.dev"),
		publishedBlog("Second", "b@blogify.dev"),
	}
	users := []user.User{
		activeUser("a@blogify.dev"),
		activeUser("b@blogify.dev"),
		activeUser("reader@blogify.dev"),
	}
	h, _, _, _, emailSvc, _ := newHandler(blogs, users, true)

	notified, err := h.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, notified)
	assert.Len(t, emailSvc.announcements, 2)
}

func TestDigestContinuesPastSendFailure(t *testing.T) {
	blogs := []blog.Blog{
		publishedBlog("Broken", "a@blogify.dev"),
		publishedBlog("Fine", "b@blogify.dev"),
	}
	users := []user.User{activeUser("reader@blogify.dev")}
	h, _, _, logRepo, emailSvc, _ := newHandler(blogs, users, true)
	emailSvc.failTitles["Broken"] = true

	notified, err := h.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, notified)
	require.Len(t, emailSvc.announcements, 1)
	assert.Equal(t, "Fine", emailSvc.announcements[0].BlogTitle)
	assert.Len(t, logRepo.logs, 1, "failed sends are not logged as delivered")
}
