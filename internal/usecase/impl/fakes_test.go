package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"agora/internal/domain/entity"
	"agora/internal/domain/repository"
	"agora/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProvider is an in-memory IdentityProvider.
type fakeProvider struct {
	authURL        string
	authErr        error
	exchangeResult *service.TokenResult
	exchangeErr    error
	silentResult   *service.TokenResult
	silentErr      error

	exchangeCalls int
	silentCalls   int
}

func (f *fakeProvider) AuthCodeURL(state string, selectAccount bool) (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}

	return f.authURL + "?state=" + state, nil
}

func (f *fakeProvider) ExchangeCode(ctx context.Context, code, redirectURI string) (*service.TokenResult, error) {
	f.exchangeCalls++
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}

	return f.exchangeResult, nil
}

func (f *fakeProvider) AcquireSilently(ctx context.Context, account entity.Account, tokenCache []byte, scopes []string) (*service.TokenResult, error) {
	f.silentCalls++
	if f.silentErr != nil {
		return nil, f.silentErr
	}

	return f.silentResult, nil
}

// fakeProfiles is an in-memory ProfileSource.
type fakeProfiles struct {
	profile *entity.Profile
	err     error
	calls   int
}

func (f *fakeProfiles) Profile(ctx context.Context, accessToken string) (*entity.Profile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return f.profile, nil
}

// fakeStates encodes the return path behind a recognizable prefix.
type fakeStates struct{}

func (fakeStates) Encode(returnTo string) (string, error) {
	return "signed:" + returnTo, nil
}

func (fakeStates) Decode(state string) (string, error) {
	returnTo, ok := strings.CutPrefix(state, "signed:")
	if !ok {
		return "", errors.New("invalid state token")
	}

	return returnTo, nil
}

// fakeSessionRepo is an in-memory SessionRepository.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session

	findErr      error
	saveErr      error
	destroyErr   error
	destroyCalls int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) Find(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return nil, f.findErr
	}
	sess, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	copied := *sess

	return &copied, nil
}

func (f *fakeSessionRepo) Save(ctx context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}
	copied := *session
	f.sessions[session.ID] = &copied

	return nil
}

func (f *fakeSessionRepo) Destroy(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.destroyCalls++
	if f.destroyErr != nil {
		return f.destroyErr
	}
	delete(f.sessions, id)

	return nil
}

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User

	createCalls int
	createErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok || user.Disabled {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) FindByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.ExternalID == externalID {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByName(ctx context.Context, name string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Name == name {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) ListActive(ctx context.Context) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var active []*entity.User
	for _, user := range f.users {
		if !user.Disabled {
			active = append(active, user)
		}
	}

	return active, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.users[user.Email]; exists {
		// Conflict target behaviour: the insert is silently skipped.
		return nil
	}
	user.ID = uuid.New()
	f.users[user.Email] = user

	return nil
}

func (f *fakeUserRepo) Disable(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.ID == id {
			user.Disabled = true

			return nil
		}
	}

	return repository.ErrUserNotFound
}

// fakeTxManager runs the transactional function directly over the fakes.
type fakeTxManager struct {
	users *fakeUserRepo
}

func (f *fakeTxManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	return fn(&fakeRepoFactory{users: f.users})
}

type fakeRepoFactory struct {
	users *fakeUserRepo
}

func (f *fakeRepoFactory) NewUserRepository() repository.UserRepository {
	return f.users
}

func (f *fakeRepoFactory) NewDiscussionRepository() repository.DiscussionRepository {
	return nil
}

func (f *fakeRepoFactory) NewResponseRepository() repository.ResponseRepository {
	return nil
}
